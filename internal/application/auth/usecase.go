package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/pos-pro/internal/application/dto"
	"github.com/tu-usuario/pos-pro/internal/domain"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
	"github.com/tu-usuario/pos-pro/internal/domain/repository"
	"github.com/tu-usuario/pos-pro/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register crea una cuenta: hashea el password con bcrypt y persiste.
// El primer registro sobre una tabla vacía nace superadmin/active; todos los
// siguientes nacen cashier/pending y requieren aprobación de un administrador.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if in.FullName == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	count, err := uc.userRepo.Count()
	if err != nil {
		return nil, err
	}

	role := entity.RoleCashier
	status := entity.StatusPending
	if count == 0 {
		// Primera cuenta del sistema: dueño de la tienda.
		role = entity.RoleSuperAdmin
		status = entity.StatusActive
	}

	user := &entity.User{
		ID:           uuid.New().String(),
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       status,
		CreatedAt:    time.Now(),
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return &dto.RegisterResponse{
		User:             *ToUserResponse(user),
		RequiresApproval: status == entity.StatusPending,
	}, nil
}

// Login verifica email/password, actualiza last_login y genera el JWT.
// Email inexistente y password errónea devuelven el mismo error para no
// permitir enumeración de cuentas.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if user.Status != entity.StatusActive {
		return nil, domain.ErrPendingApproval
	}
	if err := uc.userRepo.UpdateLastLogin(user.ID); err != nil {
		return nil, err
	}
	now := time.Now()
	user.LastLogin = &now

	token, err := jwt.Generate(
		uc.jwtCfg.Secret,
		user.ID, user.Email, user.Role, user.FullName,
		uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes,
	)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

// ToUserResponse convierte la entidad a DTO público (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
		Bio:       u.Bio,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
}
