package repository

import "github.com/tu-usuario/pos-pro/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// List devuelve todos los productos ordenados por nombre.
	List() ([]*entity.Product, error)
}

// TxProductRepository operaciones de producto dentro de una transacción de venta.
type TxProductRepository interface {
	// DecrementStock descuenta qty unidades del stock de forma condicional:
	// falla con domain.ErrInsufficientStock si el stock es menor que qty y con
	// domain.ErrNotFound si el producto no existe. Refresca updated_at.
	DecrementStock(productID string, qty int) error
}
