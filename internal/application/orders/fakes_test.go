package orders_test

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: repositorios + runner transaccional con rollback simulado
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	suppliers map[string]*entity.Supplier
	orders    map[string]*entity.PurchaseOrder
	details   map[string]*entity.OrderDetail
	movements []*entity.InventoryMovement
}

func newMemStore() *memStore {
	return &memStore{
		products:  map[string]*entity.Product{},
		suppliers: map[string]*entity.Supplier{},
		orders:    map[string]*entity.PurchaseOrder{},
		details:   map[string]*entity.OrderDetail{},
	}
}

func (s *memStore) addProduct(p *entity.Product)    { cp := *p; s.products[p.ID] = &cp }
func (s *memStore) addSupplier(sp *entity.Supplier) { cp := *sp; s.suppliers[sp.ID] = &cp }
func (s *memStore) addOrder(o *entity.PurchaseOrder) {
	cp := *o
	cp.Details = nil
	s.orders[o.ID] = &cp
	for _, d := range o.Details {
		cd := *d
		s.details[d.ID] = &cd
	}
}

func (s *memStore) snapshot() *memStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := newMemStore()
	for id, p := range s.products {
		cp := *p
		out.products[id] = &cp
	}
	for id, sp := range s.suppliers {
		cp := *sp
		out.suppliers[id] = &cp
	}
	for id, o := range s.orders {
		cp := *o
		out.orders[id] = &cp
	}
	for id, d := range s.details {
		cp := *d
		out.details[id] = &cp
	}
	out.movements = append([]*entity.InventoryMovement(nil), s.movements...)
	return out
}

func (s *memStore) restore(snap *memStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = snap.products
	s.suppliers = snap.suppliers
	s.orders = snap.orders
	s.details = snap.details
	s.movements = snap.movements
}

// --- ProductRepository ---

type storeProducts struct{ s *memStore }

func (r storeProducts) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r storeProducts) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r storeProducts) GetByCode(code string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r storeProducts) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }
func (r storeProducts) GetByCodeForUpdate(code string) (*entity.Product, error) {
	return r.GetByCode(code)
}

func (r storeProducts) Update(p *entity.Product) error { return r.Create(p) }

func (r storeProducts) UpdateStock(productID string, currentStock int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.CurrentStock = currentStock
	return nil
}

func (r storeProducts) SetActive(id string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Active = active
	return nil
}

func (r storeProducts) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (r storeProducts) ListLowStock() ([]*entity.Product, error)          { return nil, nil }
func (r storeProducts) ListOverStock() ([]*entity.Product, error)         { return nil, nil }

// --- SupplierRepository ---

type storeSuppliers struct{ s *memStore }

func (r storeSuppliers) Create(sp *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *sp
	r.s.suppliers[sp.ID] = &cp
	return nil
}

func (r storeSuppliers) GetByID(id string) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *sp
	return &cp, nil
}

func (r storeSuppliers) List(limit, offset int) ([]*entity.Supplier, error) { return nil, nil }
func (r storeSuppliers) Update(sp *entity.Supplier) error                   { return r.Create(sp) }
func (r storeSuppliers) SetActive(id string, active bool) error             { return nil }

// --- PurchaseOrderRepository ---

type storeOrders struct{ s *memStore }

func (r storeOrders) Create(o *entity.PurchaseOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.orders {
		if existing.OrderNumber == o.OrderNumber {
			return domain.ErrDuplicate
		}
	}
	cp := *o
	cp.Details = nil
	r.s.orders[o.ID] = &cp
	return nil
}

func (r storeOrders) GetByID(id string) (*entity.PurchaseOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r storeOrders) GetByOrderNumber(orderNumber string) (*entity.PurchaseOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.orders {
		if o.OrderNumber == orderNumber {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (r storeOrders) GetForUpdate(id string) (*entity.PurchaseOrder, error) { return r.GetByID(id) }

func (r storeOrders) Update(o *entity.PurchaseOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *o
	cp.Details = nil
	r.s.orders[o.ID] = &cp
	return nil
}

func (r storeOrders) List(status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.PurchaseOrder
	for _, o := range r.s.orders {
		if status != "" && o.Status != status {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (r storeOrders) ListDueBefore(deadline time.Time, statuses []string) ([]*entity.PurchaseOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.PurchaseOrder
	for _, o := range r.s.orders {
		if o.ExpectedDate.After(deadline) {
			continue
		}
		for _, st := range statuses {
			if o.Status == st {
				cp := *o
				out = append(out, &cp)
				break
			}
		}
	}
	return out, nil
}

// --- OrderDetailRepository ---

type storeDetails struct{ s *memStore }

func (r storeDetails) Create(d *entity.OrderDetail) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *d
	r.s.details[d.ID] = &cp
	return nil
}

func (r storeDetails) GetByID(id string) (*entity.OrderDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.details[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r storeDetails) ListByOrder(orderID string) ([]*entity.OrderDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.OrderDetail
	for _, d := range r.s.details {
		if d.OrderID == orderID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r storeDetails) UpdateReceived(detailID string, quantityReceived int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.details[detailID]
	if !ok {
		return domain.ErrNotFound
	}
	d.QuantityReceived = quantityReceived
	return nil
}

// --- InventoryMovementRepository ---

type storeMovements struct{ s *memStore }

func (r storeMovements) Create(m *entity.InventoryMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r storeMovements) GetByID(id string) (*entity.InventoryMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r storeMovements) List(filter repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.InventoryMovement
	for _, m := range r.s.movements {
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		if filter.ReferenceType != "" && m.ReferenceType != filter.ReferenceType {
			continue
		}
		if filter.ReferenceID != "" && m.ReferenceID != filter.ReferenceID {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

// fakeTxRunner ejecuta el callback contra el store y simula el rollback
// restaurando el estado completo si fn falla.
type fakeTxRunner struct{ s *memStore }

func (r *fakeTxRunner) RunOrders(ctx context.Context, fn func(
	orderRepo repository.PurchaseOrderRepository,
	detailRepo repository.OrderDetailRepository,
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	snap := r.s.snapshot()
	err := fn(storeOrders{r.s}, storeDetails{r.s}, storeProducts{r.s}, storeMovements{r.s})
	if err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

// fakeRecorder colecciona las acciones de auditoría.
type fakeRecorder struct {
	mu      sync.Mutex
	actions []string
}

func (r *fakeRecorder) Record(_ context.Context, action, entityType, entityID, actor string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, action)
	return nil
}
