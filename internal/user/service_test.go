package user

import (
	"context"
	"testing"

	"github.com/NazarovEvgn/lets-app/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, name, email, phone, passwordHash string) (*User, error) {
	args := m.Called(ctx, name, email, phone, passwordHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id int) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByPhone(ctx context.Context, phone string) (*User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) CreateWithPhone(ctx context.Context, phone string) (*User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

const testSecret = "test-secret"

func strPtr(s string) *string { return &s }

func TestRegister(t *testing.T) {
	repo := new(MockRepository)
	repo.On("EmailExists", mock.Anything, "user@example.com").Return(false, nil)
	repo.On("Create", mock.Anything, "Ivan", "user@example.com", "", mock.AnythingOfType("string")).
		Return(&User{ID: 42, Name: "Ivan", Email: strPtr("user@example.com")}, nil)

	svc := NewService(repo, testSecret)

	u, access, refresh, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Ivan",
		Email:    "user@example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.Equal(t, 42, u.ID)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	repo.AssertExpectations(t)
}

func TestRegister_EmailTaken(t *testing.T) {
	repo := new(MockRepository)
	repo.On("EmailExists", mock.Anything, "user@example.com").Return(true, nil)

	svc := NewService(repo, testSecret)

	_, _, _, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Ivan",
		Email:    "user@example.com",
		Password: "password123",
	})

	assert.ErrorIs(t, err, ErrEmailExists)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	stored := &User{ID: 42, Name: "Ivan", Email: strPtr("user@example.com"), PasswordHash: &hash}

	t.Run("correct password", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", mock.Anything, "user@example.com").Return(stored, nil)
		svc := NewService(repo, testSecret)

		u, access, _, err := svc.Login(context.Background(), LoginRequest{
			Email:    "user@example.com",
			Password: "password123",
		})

		require.NoError(t, err)
		assert.Equal(t, 42, u.ID)

		claims, err := auth.ValidateToken(access, testSecret)
		require.NoError(t, err)
		assert.Equal(t, auth.RoleClient, claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", mock.Anything, "user@example.com").Return(stored, nil)
		svc := NewService(repo, testSecret)

		_, _, _, err := svc.Login(context.Background(), LoginRequest{
			Email:    "user@example.com",
			Password: "wrong",
		})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, ErrUserNotFound)
		svc := NewService(repo, testSecret)

		_, _, _, err := svc.Login(context.Background(), LoginRequest{
			Email:    "nobody@example.com",
			Password: "password123",
		})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("phone-only account has no password", func(t *testing.T) {
		// Аккаунт созданный через телефон не имеет пароля
		repo := new(MockRepository)
		repo.On("FindByEmail", mock.Anything, "user@example.com").
			Return(&User{ID: 43, Phone: strPtr("+70000000001")}, nil)
		svc := NewService(repo, testSecret)

		_, _, _, err := svc.Login(context.Background(), LoginRequest{
			Email:    "user@example.com",
			Password: "password123",
		})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestLoginWithPhone(t *testing.T) {
	t.Run("existing account", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByPhone", mock.Anything, "+70000000001").
			Return(&User{ID: 43, Phone: strPtr("+70000000001")}, nil)
		svc := NewService(repo, testSecret)

		u, access, _, err := svc.LoginWithPhone(context.Background(), "+70000000001")

		require.NoError(t, err)
		assert.Equal(t, 43, u.ID)
		assert.NotEmpty(t, access)
		repo.AssertNotCalled(t, "CreateWithPhone", mock.Anything, mock.Anything)
	})

	t.Run("first login registers account", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByPhone", mock.Anything, "+70000000002").Return(nil, ErrUserNotFound)
		repo.On("CreateWithPhone", mock.Anything, "+70000000002").
			Return(&User{ID: 44, Phone: strPtr("+70000000002")}, nil)
		svc := NewService(repo, testSecret)

		u, _, _, err := svc.LoginWithPhone(context.Background(), "+70000000002")

		require.NoError(t, err)
		assert.Equal(t, 44, u.ID)
		repo.AssertExpectations(t)
	})
}

func TestRefreshToken(t *testing.T) {
	t.Run("client token", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByID", mock.Anything, 42).
			Return(&User{ID: 42, Email: strPtr("user@example.com")}, nil)
		svc := NewService(repo, testSecret)

		_, refresh, err := auth.GenerateTokens(42, 0, "user@example.com", auth.RoleClient, testSecret)
		require.NoError(t, err)

		access, u, err := svc.RefreshToken(context.Background(), refresh)

		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, 42, u.ID)

		claims, err := auth.ValidateToken(access, testSecret)
		require.NoError(t, err)
		assert.Equal(t, "access", claims.TokenType)
	})

	t.Run("deleted client account", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByID", mock.Anything, 42).Return(nil, ErrUserNotFound)
		svc := NewService(repo, testSecret)

		_, refresh, err := auth.GenerateTokens(42, 0, "user@example.com", auth.RoleClient, testSecret)
		require.NoError(t, err)

		_, _, err = svc.RefreshToken(context.Background(), refresh)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("business admin token skips user lookup", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testSecret)

		_, refresh, err := auth.GenerateTokens(5, 17, "owner@example.com", auth.RoleBusinessAdmin, testSecret)
		require.NoError(t, err)

		access, u, err := svc.RefreshToken(context.Background(), refresh)

		require.NoError(t, err)
		assert.Nil(t, u)

		claims, err := auth.ValidateToken(access, testSecret)
		require.NoError(t, err)
		assert.Equal(t, 17, claims.BusinessID)
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("access token rejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testSecret)

		access, _, err := auth.GenerateTokens(42, 0, "user@example.com", auth.RoleClient, testSecret)
		require.NoError(t, err)

		_, _, err = svc.RefreshToken(context.Background(), access)
		assert.ErrorIs(t, err, auth.ErrInvalidTokenType)
	})
}
