package entity

import "time"

// Direcciones de movimiento. La cantidad siempre es positiva; el signo lo da la dirección.
const (
	MovementDirectionIN  = "IN"  // entrada
	MovementDirectionOUT = "OUT" // salida
)

// Clasificación del origen del movimiento.
const (
	ReferencePurchaseOrder = "PURCHASE_ORDER" // recepción de orden de compra
	ReferenceSale          = "SALE"           // venta / deducción externa
	ReferenceAdjustment    = "ADJUSTMENT"     // ajuste manual
	ReferenceTransfer      = "TRANSFER"       // traslado
	ReferenceReturn        = "RETURN"         // devolución
)

// ValidReferenceType indica si el tipo de referencia es uno de los conocidos.
func ValidReferenceType(t string) bool {
	switch t {
	case ReferencePurchaseOrder, ReferenceSale, ReferenceAdjustment, ReferenceTransfer, ReferenceReturn:
		return true
	}
	return false
}

// InventoryMovement es un registro inmutable del libro de movimientos: nunca se
// actualiza ni se borra después de creado. Se persiste en la misma transacción
// que la mutación de stock que lo origina.
type InventoryMovement struct {
	ID            string
	ProductID     string
	Direction     string // IN | OUT
	Quantity      int64  // siempre > 0
	ReferenceType string
	ReferenceID   string // opcional: id del pedido, factura externa, etc.
	SourceSystem  string // sistema origen (vacío = este API)
	Notes         string
	CreatedBy     string // UserID
	CreatedAt     time.Time
}
