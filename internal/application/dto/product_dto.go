package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Stock es opcional (default 0).
type CreateProductRequest struct {
	Name          string           `json:"name" validate:"required,min=1,max=200"`
	Category      string           `json:"category" validate:"required,min=1,max=100"`
	PurchasePrice *decimal.Decimal `json:"purchase_price" validate:"required"`
	SellingPrice  *decimal.Decimal `json:"selling_price" validate:"required"`
	Stock         *int             `json:"stock" validate:"omitempty,min=0"`
}

// AdjustStockRequest entrada para fijar el stock de un producto (set directo, no delta).
type AdjustStockRequest struct {
	Stock *int `json:"stock" validate:"required,min=0"`
}

// ProductEventDTO payload del evento realtime product_updated.
type ProductEventDTO struct {
	Action  string          `json:"action"` // "created" | "stock_updated"
	Product ProductResponse `json:"product"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	Stock         int             `json:"stock"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
