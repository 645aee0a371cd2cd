package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/audit"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// StockUseCase es el motor de stock: cada operación pública corre en una
// transacción propia con bloqueo de fila (SELECT FOR UPDATE) sobre el producto,
// y hace Commit o Rollback completo — nunca queda un movimiento huérfano.
type StockUseCase struct {
	txRunner TxRunner
	auditor  audit.Recorder
}

// NewStockUseCase construye el motor de stock.
func NewStockUseCase(txRunner TxRunner, auditor audit.Recorder) *StockUseCase {
	return &StockUseCase{txRunner: txRunner, auditor: auditor}
}

// MovementInput entrada para una mutación directa de stock.
type MovementInput struct {
	ProductID     string
	Quantity      int64
	ReferenceType string
	ReferenceID   string
	Notes         string
	UserID        string
}

func (in MovementInput) validate() error {
	if in.ProductID == "" || in.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if !entity.ValidReferenceType(in.ReferenceType) {
		return domain.ErrInvalidInput
	}
	return nil
}

// IncreaseStock suma stock y registra el movimiento IN en una sola transacción.
func (uc *StockUseCase) IncreaseStock(ctx context.Context, in MovementInput) (*entity.InventoryMovement, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var mov *entity.InventoryMovement
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		m, err := uc.IncreaseInTx(productRepo, movRepo, in.ProductID, in.Quantity,
			in.ReferenceType, in.ReferenceID, "", in.Notes, in.UserID, time.Now())
		if err != nil {
			return err
		}
		mov = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.record(ctx, audit.ActionStockIncrease, in.ProductID, in.UserID)
	return mov, nil
}

// DecreaseStock resta stock y registra el movimiento OUT en una sola transacción.
// Falla con InsufficientStockError (cantidades incluidas) si no hay stock suficiente.
func (uc *StockUseCase) DecreaseStock(ctx context.Context, in MovementInput) (*entity.InventoryMovement, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var mov *entity.InventoryMovement
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		m, err := uc.decreaseInTx(productRepo, movRepo, in.ProductID, in.Quantity,
			in.ReferenceType, in.ReferenceID, "", in.Notes, in.UserID, time.Now())
		if err != nil {
			return err
		}
		mov = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.record(ctx, audit.ActionStockDecrease, in.ProductID, in.UserID)
	return mov, nil
}

// AdjustStock lleva el stock al valor objetivo. Si el delta es cero no crea
// movimiento y devuelve (nil, nil) — distinto de un error. Si no, registra un
// único movimiento ADJUSTMENT con |delta| y dirección según el signo.
func (uc *StockUseCase) AdjustStock(ctx context.Context, productID string, newStock int64, notes, userID string) (*entity.InventoryMovement, error) {
	if productID == "" || newStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	var mov *entity.InventoryMovement
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		delta := newStock - product.CurrentStock
		if delta == 0 {
			return nil // ajuste al valor actual: sin movimiento
		}
		direction := entity.MovementDirectionIN
		quantity := delta
		if delta < 0 {
			direction = entity.MovementDirectionOUT
			quantity = -delta
		}
		if direction == entity.MovementDirectionIN {
			if err := product.Increase(quantity); err != nil {
				return err
			}
		} else {
			if err := product.Decrease(quantity); err != nil {
				return err
			}
		}
		if err := productRepo.UpdateStock(product.ID, product.CurrentStock); err != nil {
			return err
		}
		mov = &entity.InventoryMovement{
			ID:            uuid.New().String(),
			ProductID:     product.ID,
			Direction:     direction,
			Quantity:      quantity,
			ReferenceType: entity.ReferenceAdjustment,
			Notes:         notes,
			CreatedBy:     userID,
			CreatedAt:     time.Now(),
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	if mov != nil {
		uc.record(ctx, audit.ActionStockAdjust, productID, userID)
	}
	return mov, nil
}

// IncreaseInTx ejecuta una entrada usando los repositorios de la transacción del
// caller (p. ej. la recepción de una orden de compra). Bloquea la fila del
// producto, suma stock y registra el movimiento.
func (uc *StockUseCase) IncreaseInTx(
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
	productID string,
	quantity int64,
	referenceType, referenceID, sourceSystem, notes, userID string,
	now time.Time,
) (*entity.InventoryMovement, error) {
	product, err := productRepo.GetForUpdate(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if err := product.Increase(quantity); err != nil {
		return nil, err
	}
	if err := productRepo.UpdateStock(product.ID, product.CurrentStock); err != nil {
		return nil, err
	}
	mov := &entity.InventoryMovement{
		ID:            uuid.New().String(),
		ProductID:     product.ID,
		Direction:     entity.MovementDirectionIN,
		Quantity:      quantity,
		ReferenceType: referenceType,
		ReferenceID:   referenceID,
		SourceSystem:  sourceSystem,
		Notes:         notes,
		CreatedBy:     userID,
		CreatedAt:     now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// decreaseInTx ejecuta una salida dentro de la transacción del caller.
// Verifica stock disponible antes de mutar (fail-fast, sin estado parcial).
func (uc *StockUseCase) decreaseInTx(
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
	productID string,
	quantity int64,
	referenceType, referenceID, sourceSystem, notes, userID string,
	now time.Time,
) (*entity.InventoryMovement, error) {
	product, err := productRepo.GetForUpdate(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if err := product.Decrease(quantity); err != nil {
		return nil, err
	}
	if err := productRepo.UpdateStock(product.ID, product.CurrentStock); err != nil {
		return nil, err
	}
	mov := &entity.InventoryMovement{
		ID:            uuid.New().String(),
		ProductID:     product.ID,
		Direction:     entity.MovementDirectionOUT,
		Quantity:      quantity,
		ReferenceType: referenceType,
		ReferenceID:   referenceID,
		SourceSystem:  sourceSystem,
		Notes:         notes,
		CreatedBy:     userID,
		CreatedAt:     now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// record reporta al colector de auditoría. Nunca aborta la operación principal.
func (uc *StockUseCase) record(ctx context.Context, action, entityID, actor string) {
	if uc.auditor == nil {
		return
	}
	_ = uc.auditor.Record(ctx, action, "product", entityID, actor)
}
