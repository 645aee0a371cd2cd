package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// El stock solo se escribe vía UpdateStock dentro de una transacción con la
// fila bloqueada (GetForUpdate / GetByCodeForUpdate).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	GetByCodeForUpdate(code string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(productID string, currentStock int64) error
	SetActive(id string, active bool) error
	List(limit, offset int) ([]*entity.Product, error)
	ListLowStock() ([]*entity.Product, error)
	ListOverStock() ([]*entity.Product, error)
}
