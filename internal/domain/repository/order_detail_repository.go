package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// OrderDetailRepository define el puerto de persistencia para líneas de orden.
// QuantityOrdered y UnitPrice son inmutables después de Create; solo
// UpdateReceived muta la línea.
type OrderDetailRepository interface {
	Create(detail *entity.OrderDetail) error
	GetByID(id string) (*entity.OrderDetail, error)
	ListByOrder(orderID string) ([]*entity.OrderDetail, error)
	UpdateReceived(detailID string, quantityReceived int64) error
}
