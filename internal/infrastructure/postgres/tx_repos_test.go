package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-pro/internal/domain"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de txExecutor
// ──────────────────────────────────────────────────────────────────────────────

type rowFunc func(dest ...any) error

func (f rowFunc) Scan(dest ...any) error { return f(dest...) }

// fakeTx responde Exec/QueryRow con resultados fijos y captura los argumentos.
type fakeTx struct {
	execTag  pgconn.CommandTag
	execErr  error
	execSQL  string
	execArgs []any
	row      rowFunc
}

func (f *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execSQL = sql
	f.execArgs = args
	return f.execTag, f.execErr
}

func (f *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return f.row
}

func itemFixture() *entity.SaleItem {
	return &entity.SaleItem{
		ID:        "i1",
		SaleID:    "s1",
		ProductID: "99999999-9999-9999-9999-999999999999",
		Quantity:  2,
		UnitPrice: decimal.RequireFromString("12.50"),
		Subtotal:  decimal.RequireFromString("25.00"),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// TxSaleRepo.InsertItem — clasificación de errores
// ──────────────────────────────────────────────────────────────────────────────

// Una línea que referencia un producto inexistente dispara la FK de
// sale_items.product_id (23503); el adaptador debe mapearla a ErrNotFound para
// que el handler responda 404 y no un 500 genérico.
func TestInsertItem_FKDeProductoInexistente_MapeaANotFound(t *testing.T) {
	tx := &fakeTx{execErr: &pgconn.PgError{
		Code:           "23503",
		ConstraintName: "sale_items_product_id_fkey",
	}}
	repo := &TxSaleRepo{tx: tx}

	err := repo.InsertItem(itemFixture())
	assert.ErrorIs(t, err, domain.ErrNotFound,
		"la violación de FK por producto inexistente debe clasificarse como not-found")
}

func TestInsertItem_ErrorGenerico_SeEnvuelveSinReclasificar(t *testing.T) {
	tx := &fakeTx{execErr: errors.New("conexión perdida")}
	repo := &TxSaleRepo{tx: tx}

	err := repo.InsertItem(itemFixture())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "insert sale item")
}

func TestInsertItem_Exito(t *testing.T) {
	tx := &fakeTx{execTag: pgconn.NewCommandTag("INSERT 0 1")}
	repo := &TxSaleRepo{tx: tx}

	require.NoError(t, repo.InsertItem(itemFixture()))
	assert.Len(t, tx.execArgs, 6, "debe insertar las seis columnas de la línea")
}

// ──────────────────────────────────────────────────────────────────────────────
// TxProductRepo.DecrementStock — descuento condicional
// ──────────────────────────────────────────────────────────────────────────────

func TestDecrementStock_ConStockSuficiente_Descuenta(t *testing.T) {
	tx := &fakeTx{execTag: pgconn.NewCommandTag("UPDATE 1")}
	repo := &TxProductRepo{tx: tx}

	require.NoError(t, repo.DecrementStock("p1", 2))
	assert.Contains(t, tx.execSQL, "stock >= $2", "el UPDATE debe ser condicional al stock disponible")
}

// 0 filas afectadas con producto existente = las unidades no alcanzan.
func TestDecrementStock_StockInsuficiente(t *testing.T) {
	tx := &fakeTx{
		execTag: pgconn.NewCommandTag("UPDATE 0"),
		row: func(dest ...any) error {
			*(dest[0].(*bool)) = true // el producto existe
			return nil
		},
	}
	repo := &TxProductRepo{tx: tx}

	err := repo.DecrementStock("p1", 99)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// 0 filas afectadas con producto inexistente = not-found, no conflicto de stock.
func TestDecrementStock_ProductoInexistente(t *testing.T) {
	tx := &fakeTx{
		execTag: pgconn.NewCommandTag("UPDATE 0"),
		row: func(dest ...any) error {
			*(dest[0].(*bool)) = false
			return nil
		},
	}
	repo := &TxProductRepo{tx: tx}

	err := repo.DecrementStock("no-existe", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de clasificación SQLSTATE
// ──────────────────────────────────────────────────────────────────────────────

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("create user: %w", &pgconn.PgError{Code: "23505"})),
		"debe detectar el código aunque el error venga envuelto")
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("otro error")))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, isForeignKeyViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"})))
	assert.False(t, isForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isForeignKeyViolation(errors.New("otro error")))
}
