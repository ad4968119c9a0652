package entity

import "time"

// Roles válidos para User. El primer usuario registrado en un sistema vacío
// es superadmin; todos los demás nacen como cashier.
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleCashier    = "cashier"
)

// Estados de la cuenta.
const (
	StatusActive  = "active"
	StatusPending = "pending"
	StatusBlocked = "blocked"
)

// User representa una cuenta del punto de venta.
type User struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // superadmin, admin, manager, cashier
	Status       string // active, pending, blocked
	Bio          string
	CreatedAt    time.Time
	LastLogin    *time.Time // nil hasta el primer login exitoso
}
