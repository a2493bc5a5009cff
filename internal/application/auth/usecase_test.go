package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/pkg/jwt"
)

type memUsers struct {
	byID map[string]*entity.User
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	c := *u
	m.byID[u.ID] = &c
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := m.byID[id]; ok {
		c := *u
		return &c, nil
	}
	return nil, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Update(ctx context.Context, u *entity.User) error {
	return m.Create(ctx, u)
}

const secret = "test-secret"

func newAuth() (*auth.AuthUseCase, *memUsers) {
	users := &memUsers{byID: map[string]*entity.User{}}
	return auth.NewAuthUseCase(users, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "almacen-api"}), users
}

func TestRegister_RolPorDefectoStaff(t *testing.T) {
	uc, users := newAuth()

	u, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: " Ana@Example.com ", Password: "password123", Name: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, "staff", u.Role)
	assert.Equal(t, "active", u.Status)
	assert.NotEqual(t, "password123", users.byID[u.ID].PasswordHash)

	_, err = uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "ana@example.com", Password: "password123", Name: "Otra"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_TokenConNombreYRol(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "jefe@example.com", Password: "password123", Name: "Jefe", Role: "manager"})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "jefe@example.com", Password: "password123"})
	require.NoError(t, err)
	userID, name, role, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, "Jefe", name)
	assert.Equal(t, "manager", role)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "jefe@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, users := newAuth()
	ctx := context.Background()
	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "x@example.com", Password: "password123", Name: "X"})
	require.NoError(t, err)
	users.byID[u.ID].Status = entity.UserStatusInactive

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "x@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestChangePassword(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()
	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "x@example.com", Password: "password123", Name: "X"})
	require.NoError(t, err)

	err = uc.ChangePassword(ctx, u.ID, dto.ChangePasswordRequest{CurrentPassword: "mal", NewPassword: "nueva12345"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, uc.ChangePassword(ctx, u.ID, dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "nueva12345"}))
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "x@example.com", Password: "nueva12345"})
	assert.NoError(t, err)
}

func TestUpdateProfile_EmailDuplicado(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()
	a, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@example.com", Password: "password123", Name: "A"})
	require.NoError(t, err)
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "b@example.com", Password: "password123", Name: "B"})
	require.NoError(t, err)

	email := "b@example.com"
	_, err = uc.UpdateProfile(ctx, a.ID, dto.UpdateProfileRequest{Email: &email})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	name := "Ana María"
	out, err := uc.UpdateProfile(ctx, a.ID, dto.UpdateProfileRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", out.Name)
}
