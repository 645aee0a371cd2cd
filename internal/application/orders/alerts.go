package orders

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// DueOrderScanner revisa periódicamente las órdenes CONFIRMED/PARTIAL vencidas
// o próximas a vencer y emite notificaciones estructuradas. Solo lee estado de
// órdenes: nunca muta stock ni estados, así que no compite con el core.
type DueOrderScanner struct {
	orderRepo   repository.PurchaseOrderRepository
	log         *logger.Logger
	dueSoonDays int
}

// NewDueOrderScanner construye el escáner.
func NewDueOrderScanner(orderRepo repository.PurchaseOrderRepository, log *logger.Logger, dueSoonDays int) *DueOrderScanner {
	if dueSoonDays <= 0 {
		dueSoonDays = 3
	}
	return &DueOrderScanner{orderRepo: orderRepo, log: log, dueSoonDays: dueSoonDays}
}

// Scan hace una pasada: lista órdenes abiertas con fecha esperada dentro de la
// ventana y registra una alerta por cada una.
func (s *DueOrderScanner) Scan(ctx context.Context) error {
	now := time.Now()
	deadline := now.AddDate(0, 0, s.dueSoonDays)
	list, err := s.orderRepo.ListDueBefore(deadline, []string{
		entity.OrderStatusConfirmed, entity.OrderStatusPartial,
	})
	if err != nil {
		return err
	}
	for _, o := range list {
		evt := s.log.Info()
		kind := "por_vencer"
		if o.ExpectedDate.Before(now) {
			evt = s.log.Warn()
			kind = "vencida"
		}
		evt.
			Str("order_id", o.ID).
			Str("order_number", o.OrderNumber).
			Str("status", o.Status).
			Str("alerta", kind).
			Time("expected_date", o.ExpectedDate).
			Msg("orden de compra pendiente de recepción")
	}
	return nil
}

// Run ejecuta Scan en bucle hasta que el contexto se cancele.
func (s *DueOrderScanner) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Scan(ctx); err != nil {
				s.log.Error().Err(err).Msg("escáner de órdenes vencidas")
			}
		}
	}
}
