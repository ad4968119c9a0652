package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest una línea de venta. UnitPrice llega del cliente pero el total
// de la venta siempre se recalcula en servidor.
type SaleItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"required"`
}

// CreateSaleRequest entrada para registrar una venta multi-línea.
type CreateSaleRequest struct {
	Customer string            `json:"customer"`
	Items    []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// SaleItemResponse una línea persistida, con el snapshot de precio.
type SaleItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta completa con líneas y el nombre del cajero.
type SaleResponse struct {
	ID        string             `json:"id"`
	SaleDate  time.Time          `json:"sale_date"`
	Customer  string             `json:"customer"`
	Total     decimal.Decimal    `json:"total"`
	UserID    string             `json:"user_id"`
	UserName  string             `json:"user_name,omitempty"`
	Items     []SaleItemResponse `json:"items"`
	CreatedAt time.Time          `json:"created_at"`
}
