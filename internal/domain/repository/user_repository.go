package repository

import "github.com/tu-usuario/pos-pro/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	// Count devuelve el total de cuentas registradas. Se usa para detectar el
	// primer registro (que nace superadmin/active).
	Count() (int, error)
	List() ([]*entity.User, error)
	ListByStatus(status string) ([]*entity.User, error)
	// UpdateLastLogin marca el timestamp del último login exitoso.
	UpdateLastLogin(id string) error
}
