package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-pro/internal/application/analytics"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
)

// fakeAnalyticsRepo devuelve agregados fijos y captura el rango de fechas pedido.
type fakeAnalyticsRepo struct {
	revenue      decimal.Decimal
	revenueErr   error
	products     int
	lowStock     int
	activeUsers  int
	pendingUsers int

	gotStart, gotEnd time.Time
	gotThreshold     int
}

func (r *fakeAnalyticsRepo) GetRevenue(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	r.gotStart, r.gotEnd = start, end
	return r.revenue, r.revenueErr
}

func (r *fakeAnalyticsRepo) CountProducts(ctx context.Context) (int, error) {
	return r.products, nil
}

func (r *fakeAnalyticsRepo) CountLowStockProducts(ctx context.Context, threshold int) (int, error) {
	r.gotThreshold = threshold
	return r.lowStock, nil
}

func (r *fakeAnalyticsRepo) CountUsersByStatus(ctx context.Context, status string) (int, error) {
	switch status {
	case entity.StatusActive:
		return r.activeUsers, nil
	case entity.StatusPending:
		return r.pendingUsers, nil
	}
	return 0, nil
}

func TestGetStats_AgregaLasCincoConsultas(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		revenue:      decimal.RequireFromString("152.405"),
		products:     30,
		lowStock:     4,
		activeUsers:  3,
		pendingUsers: 2,
	}
	uc := analytics.NewDashboardUseCase(repo)

	out, err := uc.GetStats(context.Background())
	require.NoError(t, err)

	// Los ingresos se redondean a 2 decimales para presentación.
	assert.True(t, out.TodayRevenue.Equal(decimal.RequireFromString("152.40")),
		"ingresos esperados 152.40, obtenidos %s", out.TodayRevenue)
	assert.Equal(t, 30, out.ProductCount)
	assert.Equal(t, 4, out.LowStockCount)
	assert.Equal(t, 3, out.ActiveUsers)
	assert.Equal(t, 2, out.PendingUsers)
}

func TestGetStats_RangoDeHoyCompleto(t *testing.T) {
	repo := &fakeAnalyticsRepo{revenue: decimal.Zero}
	uc := analytics.NewDashboardUseCase(repo)

	_, err := uc.GetStats(context.Background())
	require.NoError(t, err)

	now := time.Now()
	assert.Equal(t, now.Year(), repo.gotStart.Year())
	assert.Equal(t, now.YearDay(), repo.gotStart.YearDay())
	assert.Equal(t, 0, repo.gotStart.Hour(), "el rango empieza a medianoche")
	assert.Equal(t, 23, repo.gotEnd.Hour(), "el rango termina al final del día")
	assert.True(t, repo.gotEnd.After(repo.gotStart))
}

func TestGetStats_UsaElUmbralDeStockBajo(t *testing.T) {
	repo := &fakeAnalyticsRepo{revenue: decimal.Zero}
	uc := analytics.NewDashboardUseCase(repo)

	_, err := uc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.LowStockThreshold, repo.gotThreshold)
}

func TestGetStats_ErrorEnUnaConsulta_PropagaError(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		revenue:    decimal.Zero,
		revenueErr: errors.New("conexión perdida"),
	}
	uc := analytics.NewDashboardUseCase(repo)

	_, err := uc.GetStats(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ingresos de hoy")
}
