package repository

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para la cabecera de
// órdenes de compra. Las líneas se manejan vía OrderDetailRepository.
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	GetByOrderNumber(orderNumber string) (*entity.PurchaseOrder, error)
	GetForUpdate(id string) (*entity.PurchaseOrder, error)
	Update(order *entity.PurchaseOrder) error
	List(status string, limit, offset int) ([]*entity.PurchaseOrder, error)
	// ListDueBefore lista órdenes en los estados dados cuya fecha esperada es
	// anterior o igual a la fecha límite (escáner de alertas, solo lectura).
	ListDueBefore(deadline time.Time, statuses []string) ([]*entity.PurchaseOrder, error)
}
