package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/orders"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC    *usecase.ProductUseCase
	SupplierUC   *usecase.SupplierUseCase
	StockUC      *inventory.StockUseCase
	StockQueryUC *inventory.StockQueryUseCase
	CreateOrder  *orders.CreateOrderUseCase
	UpdateStatus *orders.UpdateStatusUseCase
	ReceiveOrder *orders.ReceiveOrderUseCase
	OrderQueryUC *orders.OrderQueryUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido; creación y baja solo admin/bodeguero)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Deactivate)

	// Suppliers (protegido; escritura solo admin/comprador)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", RequireRole(entity.RoleAdmin, entity.RoleComprador), supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleComprador), supplierHandler.Update)
	suppliers.Delete("/:id", RequireRole(entity.RoleAdmin), supplierHandler.Deactivate)

	// Inventory: mutaciones de stock y libro de movimientos (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.StockUC, deps.StockQueryUC)
	invGroup.Post("/increase", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), inventoryHandler.Increase)
	invGroup.Post("/decrease", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), inventoryHandler.Decrease)
	invGroup.Post("/adjust", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), inventoryHandler.Adjust)
	invGroup.Post("/external-deduction", inventoryHandler.ExternalDeduction)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/alerts/low-stock", inventoryHandler.LowStock)
	invGroup.Get("/alerts/over-stock", inventoryHandler.OverStock)

	// Purchase orders (protegido; creación solo admin/comprador, recepción admin/bodeguero)
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.CreateOrder, deps.UpdateStatus, deps.ReceiveOrder, deps.OrderQueryUC)
	ordersGroup.Post("/", RequireRole(entity.RoleAdmin, entity.RoleComprador), orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Patch("/:id/status", RequireRole(entity.RoleAdmin, entity.RoleComprador), orderHandler.UpdateStatus)
	ordersGroup.Post("/:id/receive", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), orderHandler.Receive)
}
