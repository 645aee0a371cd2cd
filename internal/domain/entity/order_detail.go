package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

// OrderDetail es una línea de una orden de compra. QuantityOrdered queda fija al
// crear la orden; QuantityReceived solo crece vía Receive. UnitPrice es el precio
// pactado al momento del pedido (no se relee del producto).
type OrderDetail struct {
	ID               string
	OrderID          string
	ProductID        string
	QuantityOrdered  int64
	QuantityReceived int64
	UnitPrice        decimal.Decimal
	CreatedAt        time.Time
}

// QuantityPending devuelve lo que falta por recibir de la línea.
func (d *OrderDetail) QuantityPending() int64 {
	return d.QuantityOrdered - d.QuantityReceived
}

// IsFullyReceived indica si la línea ya se recibió completa.
func (d *OrderDetail) IsFullyReceived() bool {
	return d.QuantityPending() == 0
}

// LineTotal devuelve cantidad pedida × precio unitario.
func (d *OrderDetail) LineTotal() decimal.Decimal {
	return decimal.NewFromInt(d.QuantityOrdered).Mul(d.UnitPrice)
}

// Receive acumula una recepción parcial. Falla antes de mutar si la cantidad
// excede la pendiente o no es positiva.
func (d *OrderDetail) Receive(quantity int64) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if quantity > d.QuantityPending() {
		return &domain.OverReceiptError{
			OrderDetailID: d.ID,
			Requested:     quantity,
			Pending:       d.QuantityPending(),
		}
	}
	d.QuantityReceived += quantity
	return nil
}
