package orders_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/orders"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

func dueOrder(id, orderNumber, status string, expected time.Time) *entity.PurchaseOrder {
	return &entity.PurchaseOrder{
		ID:           id,
		OrderNumber:  orderNumber,
		SupplierID:   "s-1",
		Status:       status,
		ExpectedDate: expected,
		TotalAmount:  decimal.Zero,
	}
}

func TestDueOrderScanner_Scan(t *testing.T) {
	store := newMemStore()
	now := time.Now()
	// Vencida y por vencer: ambas dentro de la ventana
	store.addOrder(dueOrder("po-1", "OC-001", entity.OrderStatusConfirmed, now.Add(-24*time.Hour)))
	store.addOrder(dueOrder("po-2", "OC-002", entity.OrderStatusPartial, now.Add(48*time.Hour)))
	// Fuera de la ventana o en estado no abierto: se ignoran
	store.addOrder(dueOrder("po-3", "OC-003", entity.OrderStatusConfirmed, now.Add(30*24*time.Hour)))
	store.addOrder(dueOrder("po-4", "OC-004", entity.OrderStatusCancelled, now.Add(-24*time.Hour)))

	scanner := orders.NewDueOrderScanner(storeOrders{store}, testLogger(), 3)
	err := scanner.Scan(context.Background())
	assert.NoError(t, err)
}

func TestDueOrderScanner_VentanaFiltraOrdenes(t *testing.T) {
	store := newMemStore()
	now := time.Now()
	store.addOrder(dueOrder("po-1", "OC-001", entity.OrderStatusConfirmed, now.Add(-24*time.Hour)))
	store.addOrder(dueOrder("po-2", "OC-002", entity.OrderStatusPartial, now.Add(48*time.Hour)))
	store.addOrder(dueOrder("po-3", "OC-003", entity.OrderStatusConfirmed, now.Add(30*24*time.Hour)))
	store.addOrder(dueOrder("po-4", "OC-004", entity.OrderStatusCompleted, now.Add(-24*time.Hour)))

	list, err := storeOrders{store}.ListDueBefore(now.AddDate(0, 0, 3), []string{
		entity.OrderStatusConfirmed, entity.OrderStatusPartial,
	})
	require.NoError(t, err)
	ids := map[string]bool{}
	for _, o := range list {
		ids[o.ID] = true
	}
	assert.Equal(t, map[string]bool{"po-1": true, "po-2": true}, ids)
}

type failingOrders struct{ storeOrders }

func (failingOrders) ListDueBefore(time.Time, []string) ([]*entity.PurchaseOrder, error) {
	return nil, errors.New("conexión perdida")
}

func TestDueOrderScanner_PropagaErrorDelRepositorio(t *testing.T) {
	scanner := orders.NewDueOrderScanner(failingOrders{storeOrders{newMemStore()}}, testLogger(), 3)
	err := scanner.Scan(context.Background())
	assert.EqualError(t, err, "conexión perdida")
}
