package audit

import "context"

// Acciones reportadas al colector de auditoría.
const (
	ActionStockIncrease   = "stock.increase"
	ActionStockDecrease   = "stock.decrease"
	ActionStockAdjust     = "stock.adjust"
	ActionStockExternal   = "stock.external_deduction"
	ActionOrderCreate     = "order.create"
	ActionOrderStatus     = "order.update_status"
	ActionOrderReceive    = "order.receive"
	ActionProductCreate   = "product.create"
	ActionProductUpdate   = "product.update"
	ActionSupplierCreate  = "supplier.create"
)

// Recorder puerto hacia el colector de auditoría externo. El core reporta cada
// mutación como {acción, tipo de entidad, id, actor}; no persiste auditoría.
// Un fallo del Recorder nunca debe abortar la operación de negocio.
type Recorder interface {
	Record(ctx context.Context, action, entityType, entityID, actor string) error
}
