package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products. InitialStock > 0 genera un
// movimiento IN de ajuste inicial.
type CreateProductRequest struct {
	Code         string          `json:"code" validate:"required,min=1,max=50"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Description  string          `json:"description,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	InitialStock int64           `json:"initial_stock,omitempty" validate:"min=0"`
	MinStock     int64           `json:"min_stock,omitempty" validate:"min=0"`
	MaxStock     *int64          `json:"max_stock,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id. Solo datos maestros;
// el stock se muta vía movimientos.
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	MinStock    *int64           `json:"min_stock,omitempty"`
	MaxStock    *int64           `json:"max_stock,omitempty"`
}

// ProductResponse representación HTTP de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	CurrentStock int64           `json:"current_stock"`
	MinStock     int64           `json:"min_stock"`
	MaxStock     *int64          `json:"max_stock,omitempty"`
	Active       bool            `json:"active"`
	LowStock     bool            `json:"low_stock"`
	OverStock    bool            `json:"over_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
