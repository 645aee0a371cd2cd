package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const orderColumns = `id, order_number, supplier_id, status, order_date, expected_date, received_date, total, notes, created_by, created_at, updated_at`

// PurchaseOrderRepo persistencia de órdenes de compra.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste la cabecera de la orden (los detalles van por OrderDetailRepository).
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.OrderNumber, order.SupplierID, order.Status,
		order.OrderDate, order.ExpectedDate, order.ReceivedDate,
		order.TotalAmount, order.Notes, order.CreatedBy, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera por ID (sin detalles).
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	return r.getOne(`SELECT `+orderColumns+` FROM purchase_orders WHERE id = $1`, id)
}

// GetByOrderNumber obtiene la cabecera por número de orden.
func (r *PurchaseOrderRepo) GetByOrderNumber(orderNumber string) (*entity.PurchaseOrder, error) {
	return r.getOne(`SELECT `+orderColumns+` FROM purchase_orders WHERE order_number = $1`, orderNumber)
}

// GetForUpdate bloquea la cabecera para recepciones y transiciones concurrentes.
func (r *PurchaseOrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.getOne(`SELECT `+orderColumns+` FROM purchase_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *PurchaseOrderRepo) getOne(query string, arg any) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&o.ID, &o.OrderNumber, &o.SupplierID, &o.Status,
		&o.OrderDate, &o.ExpectedDate, &o.ReceivedDate,
		&o.TotalAmount, &o.Notes, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return &o, nil
}

// Update actualiza la cabecera (estado, fechas, total, notas).
func (r *PurchaseOrderRepo) Update(order *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders
		SET status = $2, expected_date = $3, received_date = $4, total = $5, notes = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Status, order.ExpectedDate, order.ReceivedDate,
		order.TotalAmount, order.Notes, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	return nil
}

// List lista órdenes, opcionalmente por estado.
func (r *PurchaseOrderRepo) List(status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	var (
		query string
		args  []any
	)
	if status != "" {
		query = `SELECT ` + orderColumns + ` FROM purchase_orders WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = []any{status, limit, offset}
	} else {
		query = `SELECT ` + orderColumns + ` FROM purchase_orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		args = []any{limit, offset}
	}
	return r.list(query, args...)
}

// ListDueBefore lista órdenes en los estados dados cuya fecha esperada vence
// antes del límite. Usado por el escáner de órdenes por vencer.
func (r *PurchaseOrderRepo) ListDueBefore(deadline time.Time, statuses []string) ([]*entity.PurchaseOrder, error) {
	query := `
		SELECT ` + orderColumns + ` FROM purchase_orders
		WHERE expected_date <= $1 AND status = ANY($2)
		ORDER BY expected_date ASC`
	return r.list(query, deadline, statuses)
}

func (r *PurchaseOrderRepo) list(query string, args ...any) ([]*entity.PurchaseOrder, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		var o entity.PurchaseOrder
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.SupplierID, &o.Status,
			&o.OrderDate, &o.ExpectedDate, &o.ReceivedDate,
			&o.TotalAmount, &o.Notes, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
