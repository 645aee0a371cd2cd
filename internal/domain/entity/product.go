package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

// Product representa un producto del almacén. El stock actual vive en el producto
// (una sola bodega); toda mutación pasa por los motores, nunca directo en repositorio.
// MinStock/MaxStock son niveles de alerta: no se imponen al mutar, solo en consultas.
type Product struct {
	ID           string
	Code         string // código único (SKU)
	Name         string
	Description  string
	UnitPrice    decimal.Decimal
	CurrentStock int64
	MinStock     int64
	MaxStock     *int64 // opcional
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Increase suma cantidad al stock. No impone tope superior (MaxStock es consultivo).
func (p *Product) Increase(quantity int64) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	p.CurrentStock += quantity
	return nil
}

// Decrease resta cantidad del stock. Falla antes de mutar si dejaría el stock negativo.
func (p *Product) Decrease(quantity int64) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if quantity > p.CurrentStock {
		return &domain.InsufficientStockError{
			ProductID: p.ID,
			Code:      p.Code,
			Available: p.CurrentStock,
			Requested: quantity,
		}
	}
	p.CurrentStock -= quantity
	return nil
}

// HasAvailableStock indica si hay stock suficiente para la cantidad pedida.
func (p *Product) HasAvailableStock(quantity int64) bool {
	return quantity > 0 && quantity <= p.CurrentStock
}

// IsLowStock indica si el stock actual está en o por debajo del mínimo.
func (p *Product) IsLowStock() bool {
	return p.CurrentStock <= p.MinStock
}

// IsOverStock indica si el stock actual supera el máximo (si está definido).
func (p *Product) IsOverStock() bool {
	return p.MaxStock != nil && p.CurrentStock > *p.MaxStock
}
