package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.OrderDetailRepository = (*OrderDetailRepo)(nil)

const detailColumns = `id, order_id, product_id, quantity_ordered, quantity_received, unit_price, created_at`

// OrderDetailRepo persistencia de líneas de orden de compra.
type OrderDetailRepo struct {
	q Querier
}

// NewOrderDetailRepository pasar pool o tx (Querier).
func NewOrderDetailRepository(q Querier) *OrderDetailRepo {
	return &OrderDetailRepo{q: q}
}

// Create persiste una línea.
func (r *OrderDetailRepo) Create(detail *entity.OrderDetail) error {
	query := `
		INSERT INTO order_details (` + detailColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		detail.ID, detail.OrderID, detail.ProductID,
		detail.QuantityOrdered, detail.QuantityReceived, detail.UnitPrice, detail.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order detail: %w", err)
	}
	return nil
}

// GetByID obtiene una línea por ID.
func (r *OrderDetailRepo) GetByID(id string) (*entity.OrderDetail, error) {
	var d entity.OrderDetail
	err := r.q.QueryRow(context.Background(),
		`SELECT `+detailColumns+` FROM order_details WHERE id = $1`, id,
	).Scan(&d.ID, &d.OrderID, &d.ProductID, &d.QuantityOrdered, &d.QuantityReceived, &d.UnitPrice, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order detail: %w", err)
	}
	return &d, nil
}

// ListByOrder lista las líneas de una orden en orden de creación.
func (r *OrderDetailRepo) ListByOrder(orderID string) ([]*entity.OrderDetail, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+detailColumns+` FROM order_details WHERE order_id = $1 ORDER BY created_at ASC`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order details: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderDetail
	for rows.Next() {
		var d entity.OrderDetail
		if err := rows.Scan(&d.ID, &d.OrderID, &d.ProductID,
			&d.QuantityOrdered, &d.QuantityReceived, &d.UnitPrice, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// UpdateReceived actualiza la cantidad recibida acumulada de una línea.
func (r *OrderDetailRepo) UpdateReceived(detailID string, quantityReceived int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE order_details SET quantity_received = $2 WHERE id = $1`,
		detailID, quantityReceived,
	)
	if err != nil {
		return fmt.Errorf("update order detail received: %w", err)
	}
	return nil
}
