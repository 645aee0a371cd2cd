package inventory_test

import (
	"context"
	"strings"
	"sync"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: repositorios + runner transaccional con rollback simulado
// ──────────────────────────────────────────────────────────────────────────────

type memProducts struct {
	mu    sync.Mutex
	items map[string]*entity.Product
}

func newMemProducts(products ...*entity.Product) *memProducts {
	m := &memProducts{items: map[string]*entity.Product{}}
	for _, p := range products {
		cp := *p
		m.items[p.ID] = &cp
	}
	return m
}

func (m *memProducts) clone() map[string]*entity.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]*entity.Product, len(m.items))
	for id, p := range m.items {
		cp := *p
		out[id] = &cp
	}
	return out
}

func (m *memProducts) restore(snapshot map[string]*entity.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = snapshot
}

func (m *memProducts) Create(p *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.items {
		if existing.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	m.items[p.ID] = &cp
	return nil
}

func (m *memProducts) GetByID(id string) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memProducts) GetByCode(code string) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.items {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

// Los fakes no bloquean filas; devuelven una copia como haría la tx real.
func (m *memProducts) GetForUpdate(id string) (*entity.Product, error)         { return m.GetByID(id) }
func (m *memProducts) GetByCodeForUpdate(code string) (*entity.Product, error) { return m.GetByCode(code) }

func (m *memProducts) Update(p *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.items[p.ID] = &cp
	return nil
}

func (m *memProducts) UpdateStock(productID string, currentStock int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.CurrentStock = currentStock
	return nil
}

func (m *memProducts) SetActive(id string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Active = active
	return nil
}

func (m *memProducts) List(limit, offset int) ([]*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Product
	for _, p := range m.items {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memProducts) ListLowStock() ([]*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Product
	for _, p := range m.items {
		if p.Active && p.IsLowStock() {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memProducts) ListOverStock() ([]*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Product
	for _, p := range m.items {
		if p.Active && p.IsOverStock() {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memMovements struct {
	mu    sync.Mutex
	items []*entity.InventoryMovement
}

func newMemMovements() *memMovements { return &memMovements{} }

func (m *memMovements) Create(mov *entity.InventoryMovement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *mov
	m.items = append(m.items, &cp)
	return nil
}

func (m *memMovements) GetByID(id string) (*entity.InventoryMovement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mov := range m.items {
		if mov.ID == id {
			cp := *mov
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memMovements) List(filter repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.InventoryMovement
	for _, mov := range m.items {
		if filter.ProductID != "" && mov.ProductID != filter.ProductID {
			continue
		}
		if filter.Direction != "" && mov.Direction != filter.Direction {
			continue
		}
		if filter.ReferenceType != "" && mov.ReferenceType != filter.ReferenceType {
			continue
		}
		if filter.ReferenceID != "" && mov.ReferenceID != filter.ReferenceID {
			continue
		}
		if filter.SourceSystem != "" && !strings.EqualFold(mov.SourceSystem, filter.SourceSystem) {
			continue
		}
		if filter.From != nil && mov.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && mov.CreatedAt.After(*filter.To) {
			continue
		}
		cp := *mov
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memMovements) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

func (m *memMovements) truncate(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = m.items[:n]
}

// fakeTxRunner ejecuta el callback contra los repos en memoria y simula el
// rollback: si fn falla, restaura el estado previo completo.
type fakeTxRunner struct {
	products  *memProducts
	movements *memMovements
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	snapshot := r.products.clone()
	movCount := r.movements.len()
	if err := fn(r.products, r.movements); err != nil {
		r.products.restore(snapshot)
		r.movements.truncate(movCount)
		return err
	}
	return nil
}

// fakeRecorder colecciona las acciones de auditoría; puede simular fallas.
type fakeRecorder struct {
	mu      sync.Mutex
	actions []string
	fail    error
}

func (r *fakeRecorder) Record(_ context.Context, action, entityType, entityID, actor string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, action)
	return r.fail
}

func (r *fakeRecorder) recorded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.actions...)
}
