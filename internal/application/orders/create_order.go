package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/audit"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// CreateOrderUseCase crea órdenes de compra: cabecera y líneas en una sola
// transacción; cualquier fallo aborta la creación completa.
type CreateOrderUseCase struct {
	txRunner     TxRunner
	orderRepo    repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	auditor      audit.Recorder
}

// NewCreateOrderUseCase construye el caso de uso.
func NewCreateOrderUseCase(
	txRunner TxRunner,
	orderRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	auditor audit.Recorder,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		auditor:      auditor,
	}
}

// CreateOrder valida número único, proveedor y productos activos, y persiste la
// orden en estado PENDING con el total recalculado desde las líneas persistidas.
// El precio unitario es el del request (precio pactado); si viene en cero se
// toma el precio vigente del producto como snapshot.
func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.OrderNumber == "" || in.SupplierID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	// Número de orden único
	existing, err := uc.orderRepo.GetByOrderNumber(in.OrderNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	// Proveedor debe existir y estar activo
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil || !supplier.Active {
		return nil, domain.ErrNotFound
	}

	// Validar líneas y productos (fuera de la tx, solo lectura)
	productsByID := make(map[string]*entity.Product)
	for i := range in.Lines {
		line := &in.Lines[i]
		if line.ProductID == "" || line.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if line.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || !product.Active {
			return nil, domain.ErrNotFound
		}
		productsByID[line.ProductID] = product
		if line.UnitPrice.IsZero() {
			in.Lines[i].UnitPrice = product.UnitPrice
		}
	}

	now := time.Now()
	orderDate := in.OrderDate
	if orderDate.IsZero() {
		orderDate = now
	}
	order := &entity.PurchaseOrder{
		ID:           uuid.New().String(),
		OrderNumber:  in.OrderNumber,
		SupplierID:   in.SupplierID,
		OrderDate:    orderDate,
		ExpectedDate: in.ExpectedDate,
		Status:       entity.OrderStatusPending,
		TotalAmount:  decimal.Zero,
		Notes:        in.Notes,
		CreatedBy:    userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txRunner.RunOrders(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		detailRepo repository.OrderDetailRepository,
		_ repository.ProductRepository,
		_ repository.InventoryMovementRepository,
	) error {
		// 1) Cabecera en PENDING con total en cero
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		// 2) Una línea por cada producto solicitado
		for _, line := range in.Lines {
			detail := &entity.OrderDetail{
				ID:              uuid.New().String(),
				OrderID:         order.ID,
				ProductID:       line.ProductID,
				QuantityOrdered: line.Quantity,
				UnitPrice:       line.UnitPrice,
				CreatedAt:       now,
			}
			if err := detailRepo.Create(detail); err != nil {
				return err
			}
			order.Details = append(order.Details, detail)
		}
		// 3) Total recalculado desde las líneas persistidas
		order.RecalculateTotal()
		return orderRepo.Update(order)
	})
	if err != nil {
		return nil, err
	}

	uc.record(ctx, audit.ActionOrderCreate, order.ID, userID)
	return toOrderResponse(order), nil
}

func (uc *CreateOrderUseCase) record(ctx context.Context, action, entityID, actor string) {
	if uc.auditor == nil {
		return
	}
	_ = uc.auditor.Record(ctx, action, "purchase_order", entityID, actor)
}

func toOrderResponse(o *entity.PurchaseOrder) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	details := make([]dto.OrderDetailResponse, 0, len(o.Details))
	for _, d := range o.Details {
		details = append(details, dto.OrderDetailResponse{
			ID:               d.ID,
			ProductID:        d.ProductID,
			QuantityOrdered:  d.QuantityOrdered,
			QuantityReceived: d.QuantityReceived,
			QuantityPending:  d.QuantityPending(),
			UnitPrice:        d.UnitPrice,
			LineTotal:        d.LineTotal(),
			FullyReceived:    d.IsFullyReceived(),
		})
	}
	return &dto.OrderResponse{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		SupplierID:   o.SupplierID,
		OrderDate:    o.OrderDate,
		ExpectedDate: o.ExpectedDate,
		ReceivedDate: o.ReceivedDate,
		Status:       o.Status,
		TotalAmount:  o.TotalAmount,
		Notes:        o.Notes,
		CreatedBy:    o.CreatedBy,
		Details:      details,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}
