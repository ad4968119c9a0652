package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockThreshold unidades por debajo de las cuales un producto se considera
// en stock bajo para el dashboard.
const LowStockThreshold = 10

// Product representa un producto del inventario de la tienda.
type Product struct {
	ID            string
	Name          string
	Category      string
	PurchasePrice decimal.Decimal // costo de compra
	SellingPrice  decimal.Decimal // precio de venta
	Stock         int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
