package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tuneslot/internal/auth"
)

const testSecret = "test-secret-key-12345"

type MockRepo struct{ mock.Mock }

func (m *MockRepo) Create(ctx context.Context, name, email, passwordHash, role, phone string) (*User, error) {
	args := m.Called(ctx, name, email, passwordHash, role, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepo) FindByID(ctx context.Context, id int) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func TestService_Register(t *testing.T) {
	t.Run("new user is created as a student", func(t *testing.T) {
		repo := new(MockRepo)
		repo.On("EmailExists", mock.Anything, "new@example.com").Return(false, nil)
		repo.On("Create", mock.Anything, "New Student", "new@example.com", mock.Anything, auth.RoleStudent, "+123456").
			Return(&User{ID: 1, Name: "New Student", Email: "new@example.com", Role: auth.RoleStudent}, nil)

		svc := NewService(repo, testSecret)
		user, accessToken, refreshToken, err := svc.Register(context.Background(), RegisterRequest{
			Name:     "New Student",
			Email:    "new@example.com",
			Password: "secret123",
			Phone:    "+123456",
		})

		require.NoError(t, err)
		assert.Equal(t, auth.RoleStudent, user.Role)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)
		repo.AssertExpectations(t)

		// The stored hash must verify against the plaintext password.
		createCall := repo.Calls[1]
		hash := createCall.Arguments.String(3)
		assert.True(t, auth.CheckPassword(hash, "secret123"))
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(MockRepo)
		repo.On("EmailExists", mock.Anything, "taken@example.com").Return(true, nil)

		svc := NewService(repo, testSecret)
		_, _, _, err := svc.Register(context.Background(), RegisterRequest{
			Name:     "X",
			Email:    "taken@example.com",
			Password: "secret123",
		})

		assert.ErrorIs(t, err, ErrEmailExists)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_Login(t *testing.T) {
	hash, _ := auth.HashPassword("rightPassword")
	stored := &User{ID: 1, Email: "user@example.com", PasswordHash: hash, Role: auth.RoleStudent}

	t.Run("valid credentials", func(t *testing.T) {
		repo := new(MockRepo)
		repo.On("FindByEmail", mock.Anything, "user@example.com").Return(stored, nil)

		svc := NewService(repo, testSecret)
		user, accessToken, _, err := svc.Login(context.Background(), LoginRequest{
			Email:    "user@example.com",
			Password: "rightPassword",
		})

		require.NoError(t, err)
		assert.Equal(t, 1, user.ID)

		claims, err := auth.ValidateToken(accessToken, testSecret)
		require.NoError(t, err)
		assert.Equal(t, 1, claims.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockRepo)
		repo.On("FindByEmail", mock.Anything, "user@example.com").Return(stored, nil)

		svc := NewService(repo, testSecret)
		_, _, _, err := svc.Login(context.Background(), LoginRequest{
			Email:    "user@example.com",
			Password: "wrongPassword",
		})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email maps to the same error", func(t *testing.T) {
		repo := new(MockRepo)
		repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, errors.New("no rows"))

		svc := NewService(repo, testSecret)
		_, _, _, err := svc.Login(context.Background(), LoginRequest{
			Email:    "ghost@example.com",
			Password: "whatever",
		})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_RefreshToken(t *testing.T) {
	repo := new(MockRepo)
	repo.On("FindByID", mock.Anything, 1).Return(&User{ID: 1, Email: "user@example.com", Role: auth.RoleStudent}, nil)

	svc := NewService(repo, testSecret)
	_, refreshToken, err := auth.GenerateTokens(1, "user@example.com", auth.RoleStudent, testSecret)
	require.NoError(t, err)

	accessToken, user, err := svc.RefreshToken(context.Background(), refreshToken)

	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)

	claims, err := auth.ValidateToken(accessToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "access", claims.TokenType)
}
