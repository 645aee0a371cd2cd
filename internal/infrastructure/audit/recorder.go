// Package audit implementa el registrador de auditoría sobre el logger
// estructurado. El registro es best-effort: nunca bloquea ni aborta la
// operación principal.
package audit

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/application/audit"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

var _ audit.Recorder = (*LogRecorder)(nil)

// LogRecorder emite eventos de auditoría como líneas de log estructuradas.
type LogRecorder struct {
	log *logger.Logger
}

// NewLogRecorder construye el registrador.
func NewLogRecorder(log *logger.Logger) *LogRecorder {
	return &LogRecorder{log: log}
}

// Record emite el evento. Siempre devuelve nil: una falla de auditoría no debe
// revertir la operación que la originó.
func (r *LogRecorder) Record(_ context.Context, action, entityType, entityID, actor string) error {
	r.log.Info().
		Str("action", action).
		Str("entity_type", entityType).
		Str("entity_id", entityID).
		Str("actor", actor).
		Msg("audit")
	return nil
}
