package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AnalyticsRepository define las consultas de lectura para el dashboard.
// Las implementaciones son read-only (no modifican datos). Cada agregado es una
// consulta independiente: el dashboard es una foto best-effort, no un snapshot
// consistente entre tablas.
type AnalyticsRepository interface {
	// GetRevenue devuelve la suma de totales de venta en el rango dado.
	// Usa COALESCE para devolver cero si no hay ventas en el período.
	GetRevenue(ctx context.Context, startDate, endDate time.Time) (decimal.Decimal, error)

	// CountProducts devuelve el total de productos registrados.
	CountProducts(ctx context.Context) (int, error)

	// CountLowStockProducts devuelve cuántos productos tienen stock por debajo
	// del umbral dado.
	CountLowStockProducts(ctx context.Context, threshold int) (int, error)

	// CountUsersByStatus devuelve cuántas cuentas hay en el estado dado.
	CountUsersByStatus(ctx context.Context, status string) (int, error)
}
