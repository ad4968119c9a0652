package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/pos-pro/internal/application/sales"
	"github.com/tu-usuario/pos-pro/internal/domain/repository"
)

// Ensure TxRunner implements sales.TxRunner.
var _ sales.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. El Rollback diferido es inocuo tras un Commit exitoso.
func (r *TxRunner) Run(ctx context.Context, fn func(
	saleRepo repository.TxSaleRepository,
	productRepo repository.TxProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	saleRepo := NewTxSaleRepository(tx)
	productRepo := NewTxProductRepository(tx)

	if err := fn(saleRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
