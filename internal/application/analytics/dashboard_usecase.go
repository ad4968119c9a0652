// Package analytics contiene el caso de uso del dashboard del POS:
// agregados read-only sobre ventas, inventario y cuentas.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-pro/internal/application/dto"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
	"github.com/tu-usuario/pos-pro/internal/domain/repository"
)

// DashboardUseCase calcula las estadísticas del día para la pantalla principal.
//
// Fuente de datos: AnalyticsRepository (consultas read-only). Cada agregado es
// independiente; no hay requisito de consistencia cruzada entre ellos.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetStats construye el DashboardStatsDTO.
//
// Cinco consultas en paralelo:
//  1. GetRevenue(hoy)            → TodayRevenue
//  2. CountProducts              → ProductCount
//  3. CountLowStockProducts(<10) → LowStockCount
//  4. CountUsersByStatus(active) → ActiveUsers
//  5. CountUsersByStatus(pending)→ PendingUsers
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	now := time.Now()

	// Hoy: 00:00:00.000 – 23:59:59.999
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)

	type revenueResult struct {
		revenue decimal.Decimal
		err     error
	}
	type countResult struct {
		n   int
		err error
	}

	revenueCh := make(chan revenueResult, 1)
	productsCh := make(chan countResult, 1)
	lowStockCh := make(chan countResult, 1)
	activeCh := make(chan countResult, 1)
	pendingCh := make(chan countResult, 1)

	go func() {
		rev, err := uc.analyticsRepo.GetRevenue(ctx, todayStart, todayEnd)
		revenueCh <- revenueResult{rev, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountProducts(ctx)
		productsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountLowStockProducts(ctx, entity.LowStockThreshold)
		lowStockCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountUsersByStatus(ctx, entity.StatusActive)
		activeCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountUsersByStatus(ctx, entity.StatusPending)
		pendingCh <- countResult{n, err}
	}()

	revenue := <-revenueCh
	products := <-productsCh
	lowStock := <-lowStockCh
	active := <-activeCh
	pending := <-pendingCh

	if revenue.err != nil {
		return nil, fmt.Errorf("dashboard: ingresos de hoy: %w", revenue.err)
	}
	if products.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de productos: %w", products.err)
	}
	if lowStock.err != nil {
		return nil, fmt.Errorf("dashboard: productos con stock bajo: %w", lowStock.err)
	}
	if active.err != nil {
		return nil, fmt.Errorf("dashboard: usuarios activos: %w", active.err)
	}
	if pending.err != nil {
		return nil, fmt.Errorf("dashboard: usuarios pendientes: %w", pending.err)
	}

	return &dto.DashboardStatsDTO{
		TodayRevenue:  revenue.revenue.Round(2),
		ProductCount:  products.n,
		LowStockCount: lowStock.n,
		ActiveUsers:   active.n,
		PendingUsers:  pending.n,
	}, nil
}
