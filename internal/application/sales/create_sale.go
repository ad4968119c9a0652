package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-pro/internal/application/dto"
	"github.com/tu-usuario/pos-pro/internal/domain"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
	"github.com/tu-usuario/pos-pro/internal/domain/repository"
	"github.com/tu-usuario/pos-pro/internal/realtime"
)

// CreateSaleUseCase registra una venta multi-línea descontando inventario en
// una sola transacción. Es la única operación del sistema con consistencia
// multi-paso: un fallo a mitad del loop de líneas nunca puede dejar stock
// descontado sin venta registrada ni venta sin líneas.
type CreateSaleUseCase struct {
	txRunner    TxRunner
	broadcaster Broadcaster
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(txRunner TxRunner, broadcaster Broadcaster) *CreateSaleUseCase {
	return &CreateSaleUseCase{txRunner: txRunner, broadcaster: broadcaster}
}

// CreateSale valida las líneas, calcula el total en servidor (nunca confía en
// un total del cliente), persiste cabecera + líneas + descuentos de stock en
// una transacción y publica sale_created al confirmar.
//
// El descuento de stock es condicional: si alguna línea pide más unidades de
// las disponibles la venta completa se rechaza con ErrInsufficientStock y se
// hace rollback (el stock nunca queda negativo).
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, userID, userName string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 || item.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	// Total calculado en servidor: Σ quantity × unit_price.
	total := decimal.Zero
	for _, item := range in.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:           uuid.New().String(),
		SaleDate:     now,
		CustomerName: in.Customer,
		Total:        total,
		UserID:       userID,
		CreatedAt:    now,
	}
	items := make([]entity.SaleItem, 0, len(in.Items))

	err := uc.txRunner.Run(ctx, func(
		saleRepo repository.TxSaleRepository,
		productRepo repository.TxProductRepository,
	) error {
		if err := saleRepo.InsertSale(sale); err != nil {
			return err
		}
		// Por cada línea, en el orden recibido: primero el descuento de stock
		// (que distingue producto inexistente de stock insuficiente), después
		// la línea con su snapshot de precio. Cualquier error aborta la
		// transacción completa.
		for _, item := range in.Items {
			if err := productRepo.DecrementStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
			saleItem := entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    sale.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				Subtotal:  item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))),
			}
			if err := saleRepo.InsertItem(&saleItem); err != nil {
				return err
			}
			items = append(items, saleItem)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := toSaleResponse(&repository.SaleRecord{Sale: *sale, Items: items, UserName: userName})
	if uc.broadcaster != nil {
		uc.broadcaster.Broadcast(realtime.EventSaleCreated, out)
	}
	return out, nil
}

func toSaleResponse(r *repository.SaleRecord) *dto.SaleResponse {
	if r == nil {
		return nil
	}
	items := make([]dto.SaleItemResponse, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, dto.SaleItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	return &dto.SaleResponse{
		ID:        r.Sale.ID,
		SaleDate:  r.Sale.SaleDate,
		Customer:  r.Sale.CustomerName,
		Total:     r.Sale.Total,
		UserID:    r.Sale.UserID,
		UserName:  r.UserName,
		Items:     items,
		CreatedAt: r.Sale.CreatedAt,
	}
}
