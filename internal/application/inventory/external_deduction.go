package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/audit"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ExternalDeductionInput entrada para la deducción desde un sistema externo
// (facturación). El producto se ubica por código, no por id.
type ExternalDeductionInput struct {
	ProductCode  string
	Quantity     int64
	SourceSystem string
	Notes        string
	UserID       string
}

// DeductForExternalSystem descuenta stock a nombre de un sistema externo y
// devuelve el snapshot que ese sistema espera: stock previo, stock actual e id
// y timestamp del movimiento creado. El movimiento queda con referencia SALE y
// el SourceSystem registrado.
func (uc *StockUseCase) DeductForExternalSystem(ctx context.Context, in ExternalDeductionInput) (*dto.ExternalStockDeductionResponse, error) {
	if in.ProductCode == "" || in.Quantity <= 0 || in.SourceSystem == "" {
		return nil, domain.ErrInvalidInput
	}
	var resp *dto.ExternalStockDeductionResponse
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		product, err := productRepo.GetByCodeForUpdate(in.ProductCode)
		if err != nil {
			return err
		}
		// Inactivo cuenta como no encontrado para el sistema externo.
		if product == nil || !product.Active {
			return domain.ErrNotFound
		}
		previousStock := product.CurrentStock
		if err := product.Decrease(in.Quantity); err != nil {
			return err
		}
		if err := productRepo.UpdateStock(product.ID, product.CurrentStock); err != nil {
			return err
		}
		now := time.Now()
		mov := &entity.InventoryMovement{
			ID:            uuid.New().String(),
			ProductID:     product.ID,
			Direction:     entity.MovementDirectionOUT,
			Quantity:      in.Quantity,
			ReferenceType: entity.ReferenceSale,
			SourceSystem:  in.SourceSystem,
			Notes:         in.Notes,
			CreatedBy:     in.UserID,
			CreatedAt:     now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		resp = &dto.ExternalStockDeductionResponse{
			ProductCode:      product.Code,
			ProductName:      product.Name,
			QuantityDeducted: in.Quantity,
			PreviousStock:    previousStock,
			CurrentStock:     product.CurrentStock,
			SourceSystem:     in.SourceSystem,
			Timestamp:        now,
			MovementID:       mov.ID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.record(ctx, audit.ActionStockExternal, resp.ProductCode, in.UserID)
	return resp, nil
}
