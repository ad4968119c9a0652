package sales

import (
	"github.com/tu-usuario/pos-pro/internal/application/dto"
	"github.com/tu-usuario/pos-pro/internal/domain"
	"github.com/tu-usuario/pos-pro/internal/domain/repository"
)

// SaleQueryUseCase lecturas de ventas: listado con cajero atribuido y recibo PDF.
type SaleQueryUseCase struct {
	repo    repository.SaleRepository
	receipt ReceiptGenerator
}

// NewSaleQueryUseCase construye el caso de uso.
func NewSaleQueryUseCase(repo repository.SaleRepository, receipt ReceiptGenerator) *SaleQueryUseCase {
	return &SaleQueryUseCase{repo: repo, receipt: receipt}
}

// List devuelve todas las ventas con sus líneas y el nombre del cajero.
func (uc *SaleQueryUseCase) List() ([]dto.SaleResponse, error) {
	records, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(records))
	for i := range records {
		out = append(out, *toSaleResponse(&records[i]))
	}
	return out, nil
}

// Receipt genera el PDF del recibo de la venta indicada.
// Devuelve ErrNotFound si la venta no existe.
func (uc *SaleQueryUseCase) Receipt(id string) ([]byte, error) {
	record, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	return uc.receipt.GenerateReceipt(record)
}
