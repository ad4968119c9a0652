package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-pro/internal/application/usecase"
	"github.com/tu-usuario/pos-pro/internal/domain"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
	"github.com/tu-usuario/pos-pro/internal/realtime"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(seed ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range seed {
		cp := *u
		r.users[u.ID] = &cp
	}
	return r
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Count() (int, error) { return len(r.users), nil }

func (r *fakeUserRepo) List() ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeUserRepo) ListByStatus(status string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.Status == status {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateLastLogin(id string) error { return nil }

type capturedEvent struct {
	event string
	data  interface{}
}

type fakeBroadcaster struct {
	events []capturedEvent
}

func (b *fakeBroadcaster) Broadcast(event string, data interface{}) {
	b.events = append(b.events, capturedEvent{event, data})
}

func userFixture(id, role, status string) *entity.User {
	return &entity.User{
		ID:           id,
		FullName:     "Usuario " + id,
		Email:        id + "@tienda.com",
		PasswordHash: "$2a$10$hash",
		Role:         role,
		Status:       status,
		CreatedAt:    time.Now(),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Approve
// ──────────────────────────────────────────────────────────────────────────────

func TestApprove_PendienteTransicionaActivo(t *testing.T) {
	repo := newFakeUserRepo(userFixture("u1", entity.RoleCashier, entity.StatusPending))
	bc := &fakeBroadcaster{}
	uc := usecase.NewUserUseCase(repo, bc)

	out, err := uc.Approve("u1")
	require.NoError(t, err)

	assert.Equal(t, entity.StatusActive, out.Status)
	stored, _ := repo.GetByID("u1")
	assert.Equal(t, entity.StatusActive, stored.Status, "la transición debe persistirse")

	require.Len(t, bc.events, 1)
	assert.Equal(t, realtime.EventUserApproved, bc.events[0].event)
}

// Aprobar una cuenta ya activa es idempotente: 200 sin cambios y sin evento.
func TestApprove_CuentaYaActiva_NoOpSinEvento(t *testing.T) {
	repo := newFakeUserRepo(userFixture("u1", entity.RoleCashier, entity.StatusActive))
	bc := &fakeBroadcaster{}
	uc := usecase.NewUserUseCase(repo, bc)

	out, err := uc.Approve("u1")
	require.NoError(t, err)

	assert.Equal(t, entity.StatusActive, out.Status)
	assert.Empty(t, bc.events, "una aprobación no-op no debe publicar user_approved")
}

func TestApprove_UsuarioInexistente_RetornaNotFound(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo(), &fakeBroadcaster{})

	_, err := uc.Approve("no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// List / ListPending
// ──────────────────────────────────────────────────────────────────────────────

func TestListPending_SoloDevuelveCuentasPendientes(t *testing.T) {
	repo := newFakeUserRepo(
		userFixture("u1", entity.RoleSuperAdmin, entity.StatusActive),
		userFixture("u2", entity.RoleCashier, entity.StatusPending),
		userFixture("u3", entity.RoleCashier, entity.StatusPending),
	)
	uc := usecase.NewUserUseCase(repo, nil)

	out, err := uc.ListPending()
	require.NoError(t, err)
	require.Len(t, out, 2)
	for _, u := range out {
		assert.Equal(t, entity.StatusPending, u.Status)
	}
}

func TestList_NoExponePasswordHash(t *testing.T) {
	repo := newFakeUserRepo(userFixture("u1", entity.RoleSuperAdmin, entity.StatusActive))
	uc := usecase.NewUserUseCase(repo, nil)

	out, err := uc.List()
	require.NoError(t, err)
	require.Len(t, out, 1)
	// El DTO de usuario no tiene campo de hash; validamos que el perfil llega completo.
	assert.Equal(t, "u1@tienda.com", out[0].Email)
	assert.Equal(t, entity.RoleSuperAdmin, out[0].Role)
}
