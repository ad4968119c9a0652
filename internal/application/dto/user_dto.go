package dto

import "time"

// RegisterRequest entrada para registro (password en texto, se hashea en el use case).
type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// UserResponse salida de un usuario (sin password hash).
type UserResponse struct {
	ID        string     `json:"id"`
	FullName  string     `json:"full_name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	Bio       string     `json:"bio,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// RegisterResponse salida del registro. RequiresApproval indica si la cuenta
// quedó pendiente de aprobación por un administrador.
type RegisterResponse struct {
	User             UserResponse `json:"user"`
	RequiresApproval bool         `json:"requires_approval"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT y el perfil del usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
