package repository

import "github.com/tu-usuario/pos-pro/internal/domain/entity"

// SaleRecord venta completa con sus líneas y el nombre del cajero que la registró.
// Lo produce la DB (JOIN a users); el use case lo convierte en DTO.
type SaleRecord struct {
	Sale     entity.Sale
	Items    []entity.SaleItem
	UserName string
}

// SaleRepository define el puerto de lectura para ventas.
type SaleRepository interface {
	GetByID(id string) (*SaleRecord, error)
	// List devuelve todas las ventas con sus líneas, más recientes primero.
	List() ([]SaleRecord, error)
}

// TxSaleRepository escrituras de venta dentro de una transacción.
type TxSaleRepository interface {
	InsertSale(sale *entity.Sale) error
	InsertItem(item *entity.SaleItem) error
}
