package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa la cabecera de una venta registrada en caja.
// Total siempre es la suma de los subtotales de sus líneas (calculado en servidor).
type Sale struct {
	ID           string
	SaleDate     time.Time
	CustomerName string
	Total        decimal.Decimal
	UserID       string // cajero que registró la venta
	CreatedAt    time.Time
}

// SaleItem representa una línea de venta. UnitPrice es un snapshot del precio
// al momento de la venta, no una referencia viva al producto.
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string // solo poblado en lecturas (JOIN a products)
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal // Quantity × UnitPrice
}
