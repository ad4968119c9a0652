package dto

import "github.com/shopspring/decimal"

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
// Cada campo sale de una consulta independiente (foto best-effort).
type DashboardStatsDTO struct {
	TodayRevenue  decimal.Decimal `json:"today_revenue"`
	ProductCount  int             `json:"product_count"`
	LowStockCount int             `json:"low_stock_count"`
	ActiveUsers   int             `json:"active_users"`
	PendingUsers  int             `json:"pending_users"`
}
