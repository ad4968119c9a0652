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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo lecturas de ventas sobre PostgreSQL (cabecera + líneas + cajero).
type SaleRepo struct {
	pool *pgxpool.Pool
}

// NewSaleRepository construye el adaptador de lectura de ventas.
func NewSaleRepository(pool *pgxpool.Pool) *SaleRepo {
	return &SaleRepo{pool: pool}
}

// GetByID devuelve la venta con sus líneas y el nombre del cajero.
// Devuelve nil, nil si no existe.
func (r *SaleRepo) GetByID(id string) (*repository.SaleRecord, error) {
	query := `
		SELECT s.id, s.sale_date, s.customer_name, s.total, s.user_id, s.created_at, u.full_name
		FROM sales s
		JOIN users u ON u.id = s.user_id
		WHERE s.id = $1`
	var rec repository.SaleRecord
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&rec.Sale.ID, &rec.Sale.SaleDate, &rec.Sale.CustomerName, &rec.Sale.Total,
		&rec.Sale.UserID, &rec.Sale.CreatedAt, &rec.UserName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale by id: %w", err)
	}
	if err := r.itemsFor(map[string]*repository.SaleRecord{rec.Sale.ID: &rec}); err != nil {
		return nil, err
	}
	return &rec, nil
}

// List devuelve todas las ventas con sus líneas, más recientes primero.
func (r *SaleRepo) List() ([]repository.SaleRecord, error) {
	query := `
		SELECT s.id, s.sale_date, s.customer_name, s.total, s.user_id, s.created_at, u.full_name
		FROM sales s
		JOIN users u ON u.id = s.user_id
		ORDER BY s.created_at DESC`
	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var records []repository.SaleRecord
	byID := make(map[string]*repository.SaleRecord)
	for rows.Next() {
		var rec repository.SaleRecord
		if err := rows.Scan(
			&rec.Sale.ID, &rec.Sale.SaleDate, &rec.Sale.CustomerName, &rec.Sale.Total,
			&rec.Sale.UserID, &rec.Sale.CreatedAt, &rec.UserName,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range records {
		byID[records[i].Sale.ID] = &records[i]
	}
	if err := r.itemsFor(byID); err != nil {
		return nil, err
	}
	return records, nil
}

// itemsFor carga las líneas de las ventas dadas y las cuelga de cada record.
func (r *SaleRepo) itemsFor(byID map[string]*repository.SaleRecord) error {
	if len(byID) == 0 {
		return nil
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	query := `
		SELECT si.id, si.sale_id, si.product_id, p.name, si.quantity, si.unit_price, si.subtotal
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		WHERE si.sale_id = ANY($1)`
	rows, err := r.pool.Query(context.Background(), query, ids)
	if err != nil {
		return fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return fmt.Errorf("scan sale item: %w", err)
		}
		if rec, ok := byID[it.SaleID]; ok {
			rec.Items = append(rec.Items, it)
		}
	}
	return rows.Err()
}

var _ repository.TxSaleRepository = (*TxSaleRepo)(nil)

// TxSaleRepo escrituras de venta atadas a una transacción.
type TxSaleRepo struct {
	tx txExecutor
}

// NewTxSaleRepository construye el adaptador atado a la tx.
func NewTxSaleRepository(tx pgx.Tx) *TxSaleRepo {
	return &TxSaleRepo{tx: tx}
}

// InsertSale persiste la cabecera de la venta.
func (r *TxSaleRepo) InsertSale(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, sale_date, customer_name, total, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.tx.Exec(context.Background(), query,
		sale.ID, sale.SaleDate, sale.CustomerName, sale.Total, sale.UserID, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// InsertItem persiste una línea con el snapshot de precio.
// Una violación de FK aquí solo puede venir de product_id (la cabecera se
// insertó en esta misma tx), así que se mapea a ErrNotFound.
func (r *TxSaleRepo) InsertItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.tx.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}
