package auth_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/pkg/jwt"
)

type memUsers struct {
	mu    sync.Mutex
	items map[string]*entity.User
}

func newMemUsers() *memUsers {
	return &memUsers{items: map[string]*entity.User{}}
}

func (r *memUsers) Create(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.items[u.ID] = &cp
	return nil
}

func (r *memUsers) GetByID(id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUsers) FindByEmail(email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.items {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUsers) Update(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.items[u.ID] = &cp
	return nil
}

func newAuthUC() (*auth.AuthUseCase, *memUsers) {
	users := newMemUsers()
	uc := auth.NewAuthUseCase(users, auth.JWTConfig{
		Secret:     "secreto-de-prueba",
		ExpMinutes: 60,
		Issuer:     "almacen-api-test",
	})
	return uc, users
}

func TestRegisterUser_HasheaPassword(t *testing.T) {
	uc, users := newAuthUC()

	resp, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "bodega@almacen.co",
		Password: "clave-segura-123",
		Name:     "Operario Bodega",
		Role:     entity.RoleBodeguero,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleBodeguero, resp.Role)
	assert.Equal(t, "active", resp.Status)

	stored, err := users.GetByID(resp.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "clave-segura-123", stored.PasswordHash, "el password nunca se guarda en claro")
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegisterUser_RolPorDefecto(t *testing.T) {
	uc, _ := newAuthUC()

	resp, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "nuevo@almacen.co",
		Password: "clave-segura-123",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleBodeguero, resp.Role)
	assert.Equal(t, "nuevo@almacen.co", resp.Name, "sin nombre se usa el email")
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc, _ := newAuthUC()

	in := dto.RegisterRequest{Email: "dup@almacen.co", Password: "clave-segura-123"}
	_, err := uc.RegisterUser(in)
	require.NoError(t, err)

	_, err = uc.RegisterUser(in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_TokenConRolDelUsuario(t *testing.T) {
	uc, _ := newAuthUC()

	registered, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "admin@almacen.co",
		Password: "clave-segura-123",
		Role:     entity.RoleAdmin,
	})
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Email: "admin@almacen.co", Password: "clave-segura-123"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, registered.ID, resp.User.ID)

	userID, role, err := jwt.Parse("secreto-de-prueba", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := newAuthUC()

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "user@almacen.co", Password: "clave-segura-123"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "user@almacen.co", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Email: "nadie@almacen.co", Password: "clave-segura-123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_CuentaInactiva(t *testing.T) {
	uc, users := newAuthUC()

	resp, err := uc.RegisterUser(dto.RegisterRequest{Email: "baja@almacen.co", Password: "clave-segura-123"})
	require.NoError(t, err)

	stored, err := users.GetByID(resp.ID)
	require.NoError(t, err)
	stored.Status = "inactive"
	require.NoError(t, users.Update(stored))

	_, err = uc.Login(dto.LoginRequest{Email: "baja@almacen.co", Password: "clave-segura-123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
