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

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, full_name, email, password_hash, role, status, bio, created_at, last_login`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create persiste una cuenta nueva.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, full_name, email, password_hash, role, status, bio, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(context.Background(), query,
		user.ID, user.FullName, user.Email, user.PasswordHash, user.Role, user.Status,
		user.Bio, user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID. Devuelve nil, nil si no existe.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(query, id, "get user by id")
}

// GetByEmail obtiene un usuario por email. Devuelve nil, nil si no existe.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`
	return r.scanOne(query, email, "get user by email")
}

func (r *UserRepo) scanOne(query, arg, op string) (*entity.User, error) {
	var u entity.User
	err := r.pool.QueryRow(context.Background(), query, arg).Scan(
		&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Role, &u.Status, &u.Bio,
		&u.CreatedAt, &u.LastLogin,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}

// Update actualiza los campos mutables de una cuenta.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users SET full_name = $2, email = $3, password_hash = $4, role = $5, status = $6, bio = $7
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		user.ID, user.FullName, user.Email, user.PasswordHash, user.Role, user.Status, user.Bio,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Count devuelve el total de cuentas registradas.
func (r *UserRepo) Count() (int, error) {
	var n int
	err := r.pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM users`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// List lista todas las cuentas, más recientes primero.
func (r *UserRepo) List() ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	return r.scanMany(query, nil, "list users")
}

// ListByStatus lista las cuentas en el estado dado.
func (r *UserRepo) ListByStatus(status string) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE status = $1 ORDER BY created_at DESC`
	return r.scanMany(query, []interface{}{status}, "list users by status")
}

func (r *UserRepo) scanMany(query string, args []interface{}, op string) ([]*entity.User, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Role, &u.Status, &u.Bio, &u.CreatedAt, &u.LastLogin); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// UpdateLastLogin marca el timestamp del último login exitoso.
func (r *UserRepo) UpdateLastLogin(id string) error {
	_, err := r.pool.Exec(context.Background(), `UPDATE users SET last_login = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("update last_login: %w", err)
	}
	return nil
}
