package orders

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// OrderQueryUseCase consultas de solo lectura sobre órdenes de compra.
type OrderQueryUseCase struct {
	orderRepo  repository.PurchaseOrderRepository
	detailRepo repository.OrderDetailRepository
}

// NewOrderQueryUseCase construye el caso de uso de consultas.
func NewOrderQueryUseCase(orderRepo repository.PurchaseOrderRepository, detailRepo repository.OrderDetailRepository) *OrderQueryUseCase {
	return &OrderQueryUseCase{orderRepo: orderRepo, detailRepo: detailRepo}
}

// GetOrder devuelve una orden con sus líneas, o nil si no existe.
func (uc *OrderQueryUseCase) GetOrder(ctx context.Context, orderID string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	order.Details, err = uc.detailRepo.ListByOrder(order.ID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// ListOrders lista órdenes con paginación, opcionalmente por estado.
func (uc *OrderQueryUseCase) ListOrders(ctx context.Context, status string, limit, offset int) (*dto.OrderListResponse, error) {
	if status != "" && !entity.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.orderRepo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}
