package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

// Estados de una orden de compra.
const (
	OrderStatusPending   = "PENDING"   // creada, aún no confirmada con el proveedor
	OrderStatusConfirmed = "CONFIRMED" // confirmada, lista para recibir mercancía
	OrderStatusPartial   = "PARTIAL"   // recibida parcialmente
	OrderStatusCompleted = "COMPLETED" // terminal: todo recibido
	OrderStatusCancelled = "CANCELLED" // terminal
)

// orderTransitions es la tabla de transiciones permitidas. Los estados terminales
// (COMPLETED, CANCELLED) no tienen salidas.
var orderTransitions = map[string][]string{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusPartial, OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusPartial:   {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}

// ValidOrderStatus indica si el string es uno de los estados conocidos.
func ValidOrderStatus(s string) bool {
	_, ok := orderTransitions[s]
	return ok
}

// PurchaseOrder agrega las líneas de una orden de compra y es dueña exclusiva de
// ellas (se persisten y eliminan en cascada con la orden). TotalAmount siempre
// debe igualar la suma de los totales de línea.
type PurchaseOrder struct {
	ID           string
	OrderNumber  string // único
	SupplierID   string
	OrderDate    time.Time
	ExpectedDate time.Time
	ReceivedDate *time.Time
	Status       string
	TotalAmount  decimal.Decimal
	Details      []*OrderDetail
	Notes        string
	CreatedBy    string // UserID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanTransitionTo consulta la tabla de transiciones.
func (o *PurchaseOrder) CanTransitionTo(next string) bool {
	for _, allowed := range orderTransitions[o.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal indica si la orden ya no admite mutaciones (COMPLETED o CANCELLED).
func (o *PurchaseOrder) IsTerminal() bool {
	return o.Status == OrderStatusCompleted || o.Status == OrderStatusCancelled
}

// TransitionTo cambia el estado validando la tabla. Al entrar a COMPLETED sin
// fecha de recepción, estampa la fecha actual.
func (o *PurchaseOrder) TransitionTo(next string, now time.Time) error {
	if !o.CanTransitionTo(next) {
		return &domain.InvalidTransitionError{From: o.Status, To: next}
	}
	o.Status = next
	if next == OrderStatusCompleted && o.ReceivedDate == nil {
		o.ReceivedDate = &now
	}
	o.UpdatedAt = now
	return nil
}

// AppendNotes concatena notas nuevas a las existentes, nunca las reemplaza.
func (o *PurchaseOrder) AppendNotes(extra string) {
	extra = strings.TrimSpace(extra)
	if extra == "" {
		return
	}
	if o.Notes == "" {
		o.Notes = extra
		return
	}
	o.Notes = o.Notes + "\n" + extra
}

// RecalculateTotal recalcula TotalAmount como Σ cantidad pedida × precio unitario.
func (o *PurchaseOrder) RecalculateTotal() {
	total := decimal.Zero
	for _, d := range o.Details {
		total = total.Add(d.LineTotal())
	}
	o.TotalAmount = total
}

// IsFullyReceived indica si todas las líneas están completas.
func (o *PurchaseOrder) IsFullyReceived() bool {
	if len(o.Details) == 0 {
		return false
	}
	for _, d := range o.Details {
		if !d.IsFullyReceived() {
			return false
		}
	}
	return true
}

// RecalculateStatusFromDetails deriva el estado tras una recepción:
// COMPLETED si todas las líneas están completas, PARTIAL si alguna tiene
// recepciones, sin cambio en otro caso.
func (o *PurchaseOrder) RecalculateStatusFromDetails(now time.Time) {
	if o.IsFullyReceived() {
		o.Status = OrderStatusCompleted
		if o.ReceivedDate == nil {
			o.ReceivedDate = &now
		}
		return
	}
	for _, d := range o.Details {
		if d.QuantityReceived > 0 {
			o.Status = OrderStatusPartial
			return
		}
	}
}
