package inventory

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// StockQueryUseCase consultas de solo lectura: libro de movimientos (reportes)
// y alertas de stock bajo/sobre los niveles configurados. Corre fuera de
// transacción, directo sobre el pool.
type StockQueryUseCase struct {
	productRepo repository.ProductRepository
	movRepo     repository.InventoryMovementRepository
}

// NewStockQueryUseCase construye el caso de uso de consultas.
func NewStockQueryUseCase(productRepo repository.ProductRepository, movRepo repository.InventoryMovementRepository) *StockQueryUseCase {
	return &StockQueryUseCase{productRepo: productRepo, movRepo: movRepo}
}

// ListMovements consulta el libro por rango de fechas, producto, dirección,
// tipo de referencia y sistema origen.
func (uc *StockQueryUseCase) ListMovements(ctx context.Context, filter repository.MovementFilter) (*dto.MovementListResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	list, err := uc.movRepo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// ListLowStock lista productos activos en o bajo su stock mínimo.
func (uc *StockQueryUseCase) ListLowStock(ctx context.Context) ([]dto.StockAlertResponse, error) {
	list, err := uc.productRepo.ListLowStock()
	if err != nil {
		return nil, err
	}
	return toStockAlerts(list), nil
}

// ListOverStock lista productos activos por encima de su stock máximo.
func (uc *StockQueryUseCase) ListOverStock(ctx context.Context) ([]dto.StockAlertResponse, error) {
	list, err := uc.productRepo.ListOverStock()
	if err != nil {
		return nil, err
	}
	return toStockAlerts(list), nil
}

func toStockAlerts(list []*entity.Product) []dto.StockAlertResponse {
	alerts := make([]dto.StockAlertResponse, 0, len(list))
	for _, p := range list {
		alerts = append(alerts, dto.StockAlertResponse{
			ProductID:    p.ID,
			Code:         p.Code,
			Name:         p.Name,
			CurrentStock: p.CurrentStock,
			MinStock:     p.MinStock,
			MaxStock:     p.MaxStock,
		})
	}
	return alerts
}

func toMovementResponse(m *entity.InventoryMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		Direction:     m.Direction,
		Quantity:      m.Quantity,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		SourceSystem:  m.SourceSystem,
		Notes:         m.Notes,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}
