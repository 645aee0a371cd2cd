package repository

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// MovementFilter filtros de consulta del libro de movimientos (reportes).
// Campos vacíos / nil no filtran.
type MovementFilter struct {
	ProductID     string
	Direction     string
	ReferenceType string
	ReferenceID   string
	SourceSystem  string
	From          *time.Time
	To            *time.Time
	Limit         int
	Offset        int
}

// InventoryMovementRepository define el puerto de persistencia del libro de
// movimientos. Solo inserta y consulta: los movimientos nunca se actualizan ni borran.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	GetByID(id string) (*entity.InventoryMovement, error)
	List(filter MovementFilter) ([]*entity.InventoryMovement, error)
}
