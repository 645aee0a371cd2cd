package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidOperation   = errors.New("operación no permitida")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)

// InsufficientStockError lleva las cantidades exactas para que el caller
// pueda inspeccionarlas con errors.As. Unwrap apunta a ErrInsufficientStock.
type InsufficientStockError struct {
	ProductID string
	Code      string
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: disponible %d, solicitado %d", e.Code, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// OverReceiptError indica que la cantidad recibida excede la pendiente de una línea.
type OverReceiptError struct {
	OrderDetailID string
	Requested     int64
	Pending       int64
}

func (e *OverReceiptError) Error() string {
	return fmt.Sprintf("cantidad recibida %d excede la pendiente %d en la línea %s", e.Requested, e.Pending, e.OrderDetailID)
}

func (e *OverReceiptError) Unwrap() error { return ErrInvalidOperation }

// InvalidTransitionError indica una transición de estado de pedido fuera de la tabla permitida.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("transición de estado inválida: %s -> %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidOperation }
