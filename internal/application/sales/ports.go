package sales

import (
	"context"

	"github.com/tu-usuario/pos-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad de la venta: o se
// persisten la cabecera, todas las líneas y todos los descuentos de stock,
// o no se persiste nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		saleRepo repository.TxSaleRepository,
		productRepo repository.TxProductRepository,
	) error) error
}

// Broadcaster puerto de publicación de eventos realtime (fire-and-forget).
type Broadcaster interface {
	Broadcast(event string, data interface{})
}

// ReceiptGenerator genera el PDF del recibo de una venta.
type ReceiptGenerator interface {
	GenerateReceipt(record *repository.SaleRecord) ([]byte, error)
}
