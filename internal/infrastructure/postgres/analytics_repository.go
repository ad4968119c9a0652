package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-pro/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetRevenue suma los totales de venta del período. COALESCE devuelve cero si
// no hubo ventas.
func (r *AnalyticsRepo) GetRevenue(ctx context.Context, startDate, endDate time.Time) (decimal.Decimal, error) {
	const query = `
		SELECT COALESCE(SUM(total), 0)
		FROM sales
		WHERE sale_date BETWEEN $1 AND $2`
	var revenue decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, startDate, endDate).Scan(&revenue); err != nil {
		return decimal.Zero, fmt.Errorf("analytics.GetRevenue: %w", err)
	}
	return revenue, nil
}

// CountProducts devuelve el total de productos registrados.
func (r *AnalyticsRepo) CountProducts(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics.CountProducts: %w", err)
	}
	return n, nil
}

// CountLowStockProducts cuenta productos con stock por debajo del umbral.
func (r *AnalyticsRepo) CountLowStockProducts(ctx context.Context, threshold int) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE stock < $1`, threshold).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics.CountLowStockProducts: %w", err)
	}
	return n, nil
}

// CountUsersByStatus cuenta cuentas en el estado dado.
func (r *AnalyticsRepo) CountUsersByStatus(ctx context.Context, status string) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE status = $1`, status).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics.CountUsersByStatus: %w", err)
	}
	return n, nil
}
