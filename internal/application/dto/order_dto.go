package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest una línea solicitada al crear la orden. El precio unitario
// viene del request (precio pactado), no se relee del producto.
type OrderLineRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int64           `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	OrderNumber  string             `json:"order_number" validate:"required,min=1,max=50"`
	SupplierID   string             `json:"supplier_id" validate:"required,uuid"`
	OrderDate    time.Time          `json:"order_date"`
	ExpectedDate time.Time          `json:"expected_date"`
	Notes        string             `json:"notes,omitempty"`
	Lines        []OrderLineRequest `json:"lines" validate:"required,min=1"`
}

// UpdateOrderStatusRequest body para PATCH /api/orders/:id/status. Las notas se
// concatenan a las existentes.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes,omitempty"`
}

// ReceiveOrderLineRequest una línea recibida en una recepción (parcial o total).
type ReceiveOrderLineRequest struct {
	OrderDetailID    string `json:"order_detail_id" validate:"required,uuid"`
	QuantityReceived int64  `json:"quantity_received" validate:"min=0"`
}

// ReceiveOrderRequest body para POST /api/orders/:id/receive.
type ReceiveOrderRequest struct {
	ReceivedDate *time.Time                `json:"received_date,omitempty"`
	Notes        string                    `json:"notes,omitempty"`
	Lines        []ReceiveOrderLineRequest `json:"lines" validate:"required,min=1"`
}

// OrderDetailResponse representación HTTP de una línea de orden.
type OrderDetailResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	QuantityOrdered  int64           `json:"quantity_ordered"`
	QuantityReceived int64           `json:"quantity_received"`
	QuantityPending  int64           `json:"quantity_pending"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	LineTotal        decimal.Decimal `json:"line_total"`
	FullyReceived    bool            `json:"fully_received"`
}

// OrderResponse representación HTTP de una orden con sus líneas.
type OrderResponse struct {
	ID           string                `json:"id"`
	OrderNumber  string                `json:"order_number"`
	SupplierID   string                `json:"supplier_id"`
	OrderDate    time.Time             `json:"order_date"`
	ExpectedDate time.Time             `json:"expected_date"`
	ReceivedDate *time.Time            `json:"received_date,omitempty"`
	Status       string                `json:"status"`
	TotalAmount  decimal.Decimal       `json:"total_amount"`
	Notes        string                `json:"notes,omitempty"`
	CreatedBy    string                `json:"created_by,omitempty"`
	Details      []OrderDetailResponse `json:"details"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// OrderListResponse listado paginado de órdenes (sin líneas).
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// ReceiptLineSummary resumen por línea dentro de la respuesta de recepción.
// Contrato consumido por la capa de recepción (UI/API); nombres estables.
type ReceiptLineSummary struct {
	ProductCode         string `json:"productCode"`
	ProductName         string `json:"productName"`
	QuantityOrdered     int64  `json:"quantityOrdered"`
	PreviouslyReceived  int64  `json:"previouslyReceived"`
	QuantityReceivedNow int64  `json:"quantityReceivedNow"`
	TotalReceived       int64  `json:"totalReceived"`
	Pending             int64  `json:"pending"`
	IsFullyReceived     bool   `json:"isFullyReceived"`
}

// OrderReceiptResponse respuesta agregada de una recepción.
type OrderReceiptResponse struct {
	OrderID            string               `json:"orderId"`
	OrderNumber        string               `json:"orderNumber"`
	NewStatus          string               `json:"newStatus"`
	ReceivedDate       *time.Time           `json:"receivedDate,omitempty"`
	Notes              string               `json:"notes,omitempty"`
	Lines              []ReceiptLineSummary `json:"lines"`
	OrderFullyReceived bool                 `json:"orderFullyReceived"`
}
