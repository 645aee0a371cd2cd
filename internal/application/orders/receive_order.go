package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/audit"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ReceiveOrderUseCase procesa recepciones parciales o totales de una orden.
// Toda la recepción es una sola transacción: incrementos de stock, movimientos,
// líneas y cabecera se confirman juntos; un fallo en cualquier línea revierte
// las demás (sin entradas parciales).
type ReceiveOrderUseCase struct {
	txRunner    TxRunner
	inventoryUC InventoryUseCase
	auditor     audit.Recorder
}

// NewReceiveOrderUseCase construye el caso de uso.
func NewReceiveOrderUseCase(txRunner TxRunner, inventoryUC InventoryUseCase, auditor audit.Recorder) *ReceiveOrderUseCase {
	return &ReceiveOrderUseCase{txRunner: txRunner, inventoryUC: inventoryUC, auditor: auditor}
}

// ReceiveOrder registra las cantidades recibidas por línea. Solo órdenes
// CONFIRMED o PARTIAL admiten recepción: CANCELLED produce conflicto de estado,
// COMPLETED y PENDING una operación inválida. Cada línea con cantidad > 0
// incrementa el stock del producto vía el motor de inventario (referencia
// PURCHASE_ORDER apuntando a la orden) y aporta un resumen a la respuesta.
func (uc *ReceiveOrderUseCase) ReceiveOrder(ctx context.Context, orderID, userID string, in dto.ReceiveOrderRequest) (*dto.OrderReceiptResponse, error) {
	if orderID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	var resp *dto.OrderReceiptResponse
	err := uc.txRunner.RunOrders(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		detailRepo repository.OrderDetailRepository,
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		switch order.Status {
		case entity.OrderStatusCancelled:
			return fmt.Errorf("%w: la orden %s está cancelada", domain.ErrConflict, order.OrderNumber)
		case entity.OrderStatusCompleted:
			return fmt.Errorf("%w: la orden %s ya está completada", domain.ErrInvalidOperation, order.OrderNumber)
		case entity.OrderStatusPending:
			return fmt.Errorf("%w: la orden %s debe confirmarse antes de recibir", domain.ErrInvalidOperation, order.OrderNumber)
		}

		details, err := detailRepo.ListByOrder(order.ID)
		if err != nil {
			return err
		}
		detailsByID := make(map[string]*entity.OrderDetail, len(details))
		for _, d := range details {
			detailsByID[d.ID] = d
		}

		now := time.Now()
		var summaries []dto.ReceiptLineSummary
		for _, line := range in.Lines {
			detail, ok := detailsByID[line.OrderDetailID]
			if !ok {
				// La línea no existe o pertenece a otra orden
				return fmt.Errorf("%w: la línea %s no pertenece a la orden %s",
					domain.ErrInvalidOperation, line.OrderDetailID, order.OrderNumber)
			}
			if line.QuantityReceived < 0 {
				return domain.ErrInvalidInput
			}
			if line.QuantityReceived > detail.QuantityPending() {
				return &domain.OverReceiptError{
					OrderDetailID: detail.ID,
					Requested:     line.QuantityReceived,
					Pending:       detail.QuantityPending(),
				}
			}
			if line.QuantityReceived == 0 {
				continue
			}
			previouslyReceived := detail.QuantityReceived
			if err := detail.Receive(line.QuantityReceived); err != nil {
				return err
			}
			if err := detailRepo.UpdateReceived(detail.ID, detail.QuantityReceived); err != nil {
				return err
			}
			if _, err := uc.inventoryUC.IncreaseInTx(
				productRepo, movRepo,
				detail.ProductID, line.QuantityReceived,
				entity.ReferencePurchaseOrder, order.ID, "", in.Notes, userID,
				now,
			); err != nil {
				return err
			}
			product, err := productRepo.GetByID(detail.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			summaries = append(summaries, dto.ReceiptLineSummary{
				ProductCode:         product.Code,
				ProductName:         product.Name,
				QuantityOrdered:     detail.QuantityOrdered,
				PreviouslyReceived:  previouslyReceived,
				QuantityReceivedNow: line.QuantityReceived,
				TotalReceived:       detail.QuantityReceived,
				Pending:             detail.QuantityPending(),
				IsFullyReceived:     detail.IsFullyReceived(),
			})
		}

		if order.ReceivedDate == nil {
			receivedDate := now
			if in.ReceivedDate != nil {
				receivedDate = *in.ReceivedDate
			}
			order.ReceivedDate = &receivedDate
		}
		order.AppendNotes(in.Notes)
		order.Details = details
		order.RecalculateStatusFromDetails(now)
		order.UpdatedAt = now
		if err := orderRepo.Update(order); err != nil {
			return err
		}

		resp = &dto.OrderReceiptResponse{
			OrderID:            order.ID,
			OrderNumber:        order.OrderNumber,
			NewStatus:          order.Status,
			ReceivedDate:       order.ReceivedDate,
			Notes:              order.Notes,
			Lines:              summaries,
			OrderFullyReceived: order.IsFullyReceived(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if uc.auditor != nil {
		_ = uc.auditor.Record(ctx, audit.ActionOrderReceive, "purchase_order", orderID, userID)
	}
	return resp, nil
}
