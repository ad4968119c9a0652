package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/pos-pro/internal/domain"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
	"github.com/tu-usuario/pos-pro/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, category, purchase_price, selling_price, stock, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

// Create persiste un producto nuevo.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, category, purchase_price, selling_price, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(context.Background(), query,
		product.ID, product.Name, product.Category, product.PurchasePrice, product.SellingPrice,
		product.Stock, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve nil, nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	var p entity.Product
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.Category, &p.PurchasePrice, &p.SellingPrice, &p.Stock,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return &p, nil
}

// Update actualiza un producto (incluido el set directo de stock).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, category = $3, purchase_price = $4, selling_price = $5,
			stock = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		product.ID, product.Name, product.Category, product.PurchasePrice, product.SellingPrice,
		product.Stock, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// List lista todos los productos ordenados por nombre.
func (r *ProductRepo) List() ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name ASC`
	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.PurchasePrice, &p.SellingPrice, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

var _ repository.TxProductRepository = (*TxProductRepo)(nil)

// TxProductRepo operaciones de producto atadas a una transacción de venta.
type TxProductRepo struct {
	tx txExecutor
}

// NewTxProductRepository construye el adaptador atado a la tx.
func NewTxProductRepository(tx pgx.Tx) *TxProductRepo {
	return &TxProductRepo{tx: tx}
}

// DecrementStock descuenta qty unidades de forma condicional: el UPDATE solo
// aplica si hay stock suficiente, así el stock nunca queda negativo aunque dos
// ventas concurrentes compitan por las mismas unidades.
func (r *TxProductRepo) DecrementStock(productID string, qty int) error {
	tag, err := r.tx.Exec(context.Background(), `
		UPDATE products SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND stock >= $2`,
		productID, qty,
	)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguir producto inexistente de stock insuficiente.
		var exists bool
		if err := r.tx.QueryRow(context.Background(),
			`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("decrement stock: verificar producto: %w", err)
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrInsufficientStock
	}
	return nil
}
