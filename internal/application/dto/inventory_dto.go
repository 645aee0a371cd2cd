package dto

import "time"

// StockOperationRequest body para POST /api/inventory/increase|decrease.
type StockOperationRequest struct {
	ProductID     string `json:"product_id" validate:"required,uuid"`
	Quantity      int64  `json:"quantity" validate:"required,gt=0"`
	ReferenceType string `json:"reference_type" validate:"required"`
	ReferenceID   string `json:"reference_id,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// AdjustStockRequest body para POST /api/inventory/adjust. NewStock es el valor
// objetivo; el motor calcula el delta.
type AdjustStockRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	NewStock  int64  `json:"new_stock" validate:"min=0"`
	Notes     string `json:"notes,omitempty"`
}

// ExternalDeductionRequest body para POST /api/inventory/external-deduction
// (integraciones tipo facturación; el producto se ubica por código, no por id).
type ExternalDeductionRequest struct {
	ProductCode  string `json:"product_code" validate:"required"`
	Quantity     int64  `json:"quantity" validate:"required,gt=0"`
	SourceSystem string `json:"source_system" validate:"required"`
	Notes        string `json:"notes,omitempty"`
}

// ExternalStockDeductionResponse es el contrato estable que consumen los
// sistemas externos de facturación. Los nombres de campo no se tocan.
type ExternalStockDeductionResponse struct {
	ProductCode      string    `json:"productCode"`
	ProductName      string    `json:"productName"`
	QuantityDeducted int64     `json:"quantityDeducted"`
	PreviousStock    int64     `json:"previousStock"`
	CurrentStock     int64     `json:"currentStock"`
	SourceSystem     string    `json:"sourceSystem"`
	Timestamp        time.Time `json:"timestamp"`
	MovementID       string    `json:"movementId"`
}

// MovementResponse representación HTTP de un movimiento del libro.
type MovementResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	Direction     string    `json:"direction"`
	Quantity      int64     `json:"quantity"`
	ReferenceType string    `json:"reference_type"`
	ReferenceID   string    `json:"reference_id,omitempty"`
	SourceSystem  string    `json:"source_system,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedBy     string    `json:"created_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// MovementListResponse listado paginado de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// StockAlertResponse producto bajo el mínimo o sobre el máximo.
type StockAlertResponse struct {
	ProductID    string `json:"product_id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	CurrentStock int64  `json:"current_stock"`
	MinStock     int64  `json:"min_stock"`
	MaxStock     *int64 `json:"max_stock,omitempty"`
}
