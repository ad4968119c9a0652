package pdf_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-pro/internal/domain/entity"
	"github.com/tu-usuario/pos-pro/internal/domain/repository"
	"github.com/tu-usuario/pos-pro/internal/infrastructure/pdf"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestGenerateReceipt_ProducePDFValido(t *testing.T) {
	gen := pdf.NewMarotoReceiptGenerator("Tienda Don Pepe")

	record := &repository.SaleRecord{
		Sale: entity.Sale{
			ID:           "aabbccdd-0000-0000-0000-000000000001",
			SaleDate:     time.Date(2026, 8, 27, 15, 30, 0, 0, time.UTC),
			CustomerName: "Cliente Mostrador",
			Total:        dec("37.00"),
			UserID:       "u1",
		},
		Items: []entity.SaleItem{
			{ProductName: "Café molido 500g", Quantity: 2, UnitPrice: dec("12.50"), Subtotal: dec("25.00")},
			{ProductName: "Azúcar 1kg", Quantity: 3, UnitPrice: dec("4.00"), Subtotal: dec("12.00")},
		},
		UserName: "Ana Cajera",
	}

	out, err := gen.GenerateReceipt(record)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]), "la salida debe ser un documento PDF")
}

// Una venta sin nombre de cliente se factura a consumidor final sin fallar.
func TestGenerateReceipt_SinCliente_NoFalla(t *testing.T) {
	gen := pdf.NewMarotoReceiptGenerator("Tienda Don Pepe")

	record := &repository.SaleRecord{
		Sale: entity.Sale{
			ID:       "aabbccdd-0000-0000-0000-000000000002",
			SaleDate: time.Now(),
			Total:    dec("4.00"),
		},
		Items: []entity.SaleItem{
			{ProductName: "Azúcar 1kg", Quantity: 1, UnitPrice: dec("4.00"), Subtotal: dec("4.00")},
		},
		UserName: "Ana Cajera",
	}

	out, err := gen.GenerateReceipt(record)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
