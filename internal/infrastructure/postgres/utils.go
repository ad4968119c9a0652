package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// txExecutor es lo que los repositorios transaccionales necesitan de una tx.
// pgx.Tx lo satisface; los tests usan fakes.
type txExecutor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgErrCode extrae el código SQLSTATE de un error de pgx, o "" si no lo hay.
func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgErrCode(err) == "23505"
}

// isForeignKeyViolation verifica si un error es una violación de FK (23503),
// p. ej. una línea de venta que referencia un producto inexistente.
func isForeignKeyViolation(err error) bool {
	return pgErrCode(err) == "23503"
}
