package orders

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/audit"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// UpdateStatusUseCase cambia el estado de una orden validando la tabla de
// transiciones. La cabecera se bloquea (FOR UPDATE) durante el cambio para que
// dos transiciones simultáneas no se pisen.
type UpdateStatusUseCase struct {
	txRunner TxRunner
	auditor  audit.Recorder
}

// NewUpdateStatusUseCase construye el caso de uso.
func NewUpdateStatusUseCase(txRunner TxRunner, auditor audit.Recorder) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{txRunner: txRunner, auditor: auditor}
}

// UpdateStatus aplica la transición manual. Las notas se concatenan a las
// existentes; al entrar a COMPLETED sin fecha de recepción se estampa hoy.
func (uc *UpdateStatusUseCase) UpdateStatus(ctx context.Context, orderID, userID string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	if orderID == "" || !entity.ValidOrderStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	var order *entity.PurchaseOrder
	err := uc.txRunner.RunOrders(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		detailRepo repository.OrderDetailRepository,
		_ repository.ProductRepository,
		_ repository.InventoryMovementRepository,
	) error {
		o, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if err := o.TransitionTo(in.Status, time.Now()); err != nil {
			return err
		}
		o.AppendNotes(in.Notes)
		if err := orderRepo.Update(o); err != nil {
			return err
		}
		o.Details, err = detailRepo.ListByOrder(o.ID)
		if err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	if uc.auditor != nil {
		_ = uc.auditor.Record(ctx, audit.ActionOrderStatus, "purchase_order", orderID, userID)
	}
	return toOrderResponse(order), nil
}
