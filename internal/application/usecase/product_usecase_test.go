package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memProducts struct {
	mu    sync.Mutex
	items map[string]*entity.Product
}

func newMemProducts() *memProducts {
	return &memProducts{items: map[string]*entity.Product{}}
}

func (r *memProducts) Create(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *memProducts) GetByID(id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProducts) GetByCode(code string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.items {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProducts) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }
func (r *memProducts) GetByCodeForUpdate(code string) (*entity.Product, error) {
	return r.GetByCode(code)
}

func (r *memProducts) Update(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *memProducts) UpdateStock(productID string, currentStock int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.CurrentStock = currentStock
	return nil
}

func (r *memProducts) SetActive(id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Active = active
	return nil
}

func (r *memProducts) List(limit, offset int) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.items {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProducts) ListLowStock() ([]*entity.Product, error)  { return nil, nil }
func (r *memProducts) ListOverStock() ([]*entity.Product, error) { return nil, nil }

type memMovements struct {
	mu    sync.Mutex
	items []*entity.InventoryMovement
}

func (r *memMovements) Create(m *entity.InventoryMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.items = append(r.items, &cp)
	return nil
}

func (r *memMovements) GetByID(id string) (*entity.InventoryMovement, error) { return nil, nil }
func (r *memMovements) List(repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	return nil, nil
}

// fakeTxRunner pasa los repos tal cual; estas pruebas no ejercitan el rollback.
type fakeTxRunner struct {
	products  *memProducts
	movements *memMovements
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	return fn(r.products, r.movements)
}

type memSuppliers struct {
	mu    sync.Mutex
	items map[string]*entity.Supplier
}

func newMemSuppliers() *memSuppliers {
	return &memSuppliers{items: map[string]*entity.Supplier{}}
}

func (r *memSuppliers) Create(s *entity.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.items[s.ID] = &cp
	return nil
}

func (r *memSuppliers) GetByID(id string) (*entity.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *memSuppliers) List(limit, offset int) ([]*entity.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Supplier
	for _, s := range r.items {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memSuppliers) Update(s *entity.Supplier) error { return r.Create(s) }

func (r *memSuppliers) SetActive(id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Active = active
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func newProductUC() (*usecase.ProductUseCase, *memProducts, *memMovements) {
	products := newMemProducts()
	movements := &memMovements{}
	uc := usecase.NewProductUseCase(products, &fakeTxRunner{products, movements}, nil)
	return uc, products, movements
}

func validProductRequest() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Code:         "SKU1",
		Name:         "Tornillo 3mm",
		Description:  "caja x100",
		UnitPrice:    decimal.RequireFromString("12.50"),
		InitialStock: 40,
		MinStock:     5,
	}
}

func TestProductCreate_ConStockInicial(t *testing.T) {
	uc, _, movements := newProductUC()

	resp, err := uc.Create(context.Background(), "u-1", validProductRequest())
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, "SKU1", resp.Code)
	assert.Equal(t, int64(40), resp.CurrentStock)
	assert.True(t, resp.Active)

	// El stock inicial queda registrado como movimiento IN de ajuste
	require.Len(t, movements.items, 1)
	mov := movements.items[0]
	assert.Equal(t, entity.MovementDirectionIN, mov.Direction)
	assert.Equal(t, entity.ReferenceAdjustment, mov.ReferenceType)
	assert.Equal(t, int64(40), mov.Quantity)
	assert.Equal(t, "stock inicial", mov.Notes)
}

func TestProductCreate_SinStockInicialNoGeneraMovimiento(t *testing.T) {
	uc, _, movements := newProductUC()

	in := validProductRequest()
	in.InitialStock = 0
	resp, err := uc.Create(context.Background(), "u-1", in)
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.CurrentStock)
	assert.Empty(t, movements.items)
}

func TestProductCreate_CodigoDuplicado(t *testing.T) {
	uc, _, _ := newProductUC()
	ctx := context.Background()

	_, err := uc.Create(ctx, "u-1", validProductRequest())
	require.NoError(t, err)

	_, err = uc.Create(ctx, "u-1", validProductRequest())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_EntradaInvalida(t *testing.T) {
	uc, _, _ := newProductUC()
	maxBajo := int64(2)

	cases := []struct {
		name   string
		mutate func(in *dto.CreateProductRequest)
	}{
		{"sin código", func(in *dto.CreateProductRequest) { in.Code = "" }},
		{"sin nombre", func(in *dto.CreateProductRequest) { in.Name = "" }},
		{"precio cero", func(in *dto.CreateProductRequest) { in.UnitPrice = decimal.Zero }},
		{"stock inicial negativo", func(in *dto.CreateProductRequest) { in.InitialStock = -1 }},
		{"mínimo negativo", func(in *dto.CreateProductRequest) { in.MinStock = -1 }},
		{"máximo menor que mínimo", func(in *dto.CreateProductRequest) { in.MaxStock = &maxBajo }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validProductRequest()
			tc.mutate(&in)
			_, err := uc.Create(context.Background(), "u-1", in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestProductUpdate_SoloDatosMaestros(t *testing.T) {
	uc, products, _ := newProductUC()
	ctx := context.Background()

	created, err := uc.Create(ctx, "u-1", validProductRequest())
	require.NoError(t, err)

	nuevoNombre := "Tornillo 3mm inox"
	nuevoPrecio := decimal.RequireFromString("15")
	resp, err := uc.Update(ctx, created.ID, "u-1", dto.UpdateProductRequest{
		Name:      &nuevoNombre,
		UnitPrice: &nuevoPrecio,
	})
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, nuevoNombre, resp.Name)
	assert.True(t, resp.UnitPrice.Equal(nuevoPrecio))
	assert.Equal(t, int64(40), resp.CurrentStock, "el stock no se edita por CRUD")

	stored, err := products.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, nuevoNombre, stored.Name)
}

func TestProductUpdate_Inexistente(t *testing.T) {
	uc, _, _ := newProductUC()
	nombre := "x"
	resp, err := uc.Update(context.Background(), "p-fantasma", "u-1", dto.UpdateProductRequest{Name: &nombre})
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestProductDeactivate(t *testing.T) {
	uc, products, _ := newProductUC()
	ctx := context.Background()

	created, err := uc.Create(ctx, "u-1", validProductRequest())
	require.NoError(t, err)

	require.NoError(t, uc.Deactivate(ctx, created.ID))
	stored, err := products.GetByID(created.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)

	assert.ErrorIs(t, uc.Deactivate(ctx, "p-fantasma"), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Proveedores
// ──────────────────────────────────────────────────────────────────────────────

func TestSupplierCreate(t *testing.T) {
	suppliers := newMemSuppliers()
	uc := usecase.NewSupplierUseCase(suppliers, nil)

	resp, err := uc.Create(context.Background(), "u-1", dto.CreateSupplierRequest{
		Name:  "Ferretería El Tornillo",
		TaxID: "900123456-7",
		Email: "ventas@eltornillo.co",
	})
	require.NoError(t, err)
	assert.True(t, resp.Active)
	assert.Equal(t, "Ferretería El Tornillo", resp.Name)

	_, err = uc.Create(context.Background(), "u-1", dto.CreateSupplierRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSupplierDeactivate(t *testing.T) {
	suppliers := newMemSuppliers()
	uc := usecase.NewSupplierUseCase(suppliers, nil)
	ctx := context.Background()

	created, err := uc.Create(ctx, "u-1", dto.CreateSupplierRequest{Name: "Proveedor Norte"})
	require.NoError(t, err)

	require.NoError(t, uc.Deactivate(ctx, created.ID))
	stored, err := suppliers.GetByID(created.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)
}
