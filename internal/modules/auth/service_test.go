package auth

import (
	"context"
	"testing"

	"petmarket/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = 1
	}
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, id int64, name, phone string) error {
	args := m.Called(ctx, id, name, phone)
	return args.Error(0)
}

type stubJWT struct{}

func (stubJWT) GenerateToken(userID int64, role string) (string, error) { return "token", nil }

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pet owner with hashed password", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("GetByEmail", ctx, "anna@example.com").Return(nil, gorm.ErrRecordNotFound)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
			u := args.Get(1).(*domain.User)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123")))
			assert.Equal(t, domain.RolePetOwner, u.Role)
		}).Return(nil)

		svc := NewService(repo, stubJWT{})
		res, err := svc.Register(ctx, RegisterRequest{
			Name:     "Anna",
			Email:    "Anna@Example.com",
			Password: "secret123",
			Role:     "pet_owner",
		})

		assert.NoError(t, err)
		assert.Equal(t, "token", res.Token)
		assert.Equal(t, "anna@example.com", res.User.Email)
		assert.Empty(t, res.User.PasswordHash)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("GetByEmail", ctx, "anna@example.com").Return(&domain.User{ID: 1}, nil)

		svc := NewService(repo, stubJWT{})
		_, err := svc.Register(ctx, RegisterRequest{Email: "anna@example.com", Password: "secret123", Role: "provider"})
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("admin role cannot self-register", func(t *testing.T) {
		svc := NewService(new(mockUserRepo), stubJWT{})
		_, err := svc.Register(ctx, RegisterRequest{Email: "x@example.com", Password: "secret123", Role: "admin"})
		assert.ErrorIs(t, err, ErrInvalidRole)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)

	stored := func() *domain.User {
		return &domain.User{
			ID:           1,
			Email:        "anna@example.com",
			PasswordHash: string(hash),
			Role:         domain.RolePetOwner,
		}
	}

	t.Run("valid credentials", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("GetByEmail", ctx, "anna@example.com").Return(stored(), nil)

		svc := NewService(repo, stubJWT{})
		res, err := svc.Login(ctx, LoginRequest{Email: "anna@example.com", Password: "secret123"})
		assert.NoError(t, err)
		assert.Equal(t, "token", res.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("GetByEmail", ctx, "anna@example.com").Return(stored(), nil)

		svc := NewService(repo, stubJWT{})
		_, err := svc.Login(ctx, LoginRequest{Email: "anna@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email looks identical to wrong password", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

		svc := NewService(repo, stubJWT{})
		_, err := svc.Login(ctx, LoginRequest{Email: "ghost@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("blocked account", func(t *testing.T) {
		repo := new(mockUserRepo)
		u := stored()
		u.Blocked = true
		repo.On("GetByEmail", ctx, "anna@example.com").Return(u, nil)

		svc := NewService(repo, stubJWT{})
		_, err := svc.Login(ctx, LoginRequest{Email: "anna@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
