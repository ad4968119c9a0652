package usecase

import (
	"github.com/tu-usuario/pos-pro/internal/application/auth"
	"github.com/tu-usuario/pos-pro/internal/application/dto"
	"github.com/tu-usuario/pos-pro/internal/domain"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
	"github.com/tu-usuario/pos-pro/internal/domain/repository"
	"github.com/tu-usuario/pos-pro/internal/realtime"
)

// UserUseCase listado y aprobación de cuentas. La restricción de rol
// (superadmin/admin para pending/approve) la aplica el middleware RequireRole.
type UserUseCase struct {
	repo        repository.UserRepository
	broadcaster Broadcaster
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, broadcaster Broadcaster) *UserUseCase {
	return &UserUseCase{repo: repo, broadcaster: broadcaster}
}

// List devuelve todas las cuentas (sin hash).
func (uc *UserUseCase) List() ([]dto.UserResponse, error) {
	users, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	return toUserResponses(users), nil
}

// ListPending devuelve las cuentas pendientes de aprobación.
func (uc *UserUseCase) ListPending() ([]dto.UserResponse, error) {
	users, err := uc.repo.ListByStatus(entity.StatusPending)
	if err != nil {
		return nil, err
	}
	return toUserResponses(users), nil
}

// Approve transiciona una cuenta pending→active. Es idempotente: aprobar una
// cuenta ya activa es un no-op exitoso. Devuelve ErrUserNotFound si el id no existe.
func (uc *UserUseCase) Approve(id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.Status != entity.StatusActive {
		user.Status = entity.StatusActive
		if err := uc.repo.Update(user); err != nil {
			return nil, err
		}
		if uc.broadcaster != nil {
			uc.broadcaster.Broadcast(realtime.EventUserApproved, auth.ToUserResponse(user))
		}
	}
	return auth.ToUserResponse(user), nil
}

func toUserResponses(users []*entity.User) []dto.UserResponse {
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *auth.ToUserResponse(u))
	}
	return out
}
