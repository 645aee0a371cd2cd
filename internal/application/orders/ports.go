package orders

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de órdenes e inventario atados a esa tx. Una recepción entera
// (líneas + stock + movimientos + cabecera) hace Commit o Rollback como unidad.
type TxRunner interface {
	RunOrders(ctx context.Context, fn func(
		orderRepo repository.PurchaseOrderRepository,
		detailRepo repository.OrderDetailRepository,
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
	) error) error
}

// InventoryUseCase es lo que el motor de órdenes necesita del motor de stock:
// registrar una entrada dentro de la transacción del caller. Lo implementa
// inventory.StockUseCase.
type InventoryUseCase interface {
	IncreaseInTx(
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
		productID string,
		quantity int64,
		referenceType, referenceID, sourceSystem, notes, userID string,
		now time.Time,
	) (*entity.InventoryMovement, error)
}
