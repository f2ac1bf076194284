package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"marketplace/internal/common"
	"marketplace/internal/common/security"
	"marketplace/internal/domain/model"
	"marketplace/internal/domain/repository"
)

// failingUserRepository wraps a memory repository and injects errors.
type failingUserRepository struct {
	*repository.MemoryUserRepository
	findErr   error
	createErr error
	creates   int
}

func (r *failingUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.MemoryUserRepository.FindByEmail(ctx, email)
}

func (r *failingUserRepository) Create(ctx context.Context, user *model.User) error {
	r.creates++
	if r.createErr != nil {
		return r.createErr
	}
	return r.MemoryUserRepository.Create(ctx, user)
}

func newTestAuthService(repo repository.UserRepository) *AuthService {
	return NewAuthService(repo, security.NewPasswordHasher(bcrypt.MinCost), zap.NewNop())
}

func TestAuthService_SignupThenLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(repository.NewMemoryUserRepository())

	user, err := svc.Signup(ctx, SignupRequest{Name: "Ann", Email: "ann@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Ann", user.Name)
	assert.Equal(t, "ann@x.com", user.Email)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")))

	loggedIn, err := svc.Login(ctx, LoginRequest{Email: "ann@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestAuthService_SignupNormalizesEmail(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(repository.NewMemoryUserRepository())

	user, err := svc.Signup(ctx, SignupRequest{Name: "  Ann ", Email: "  Ann@X.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", user.Email)
	assert.Equal(t, "Ann", user.Name)

	_, err = svc.Login(ctx, LoginRequest{Email: "ANN@x.com", Password: "secret1"})
	assert.NoError(t, err)
}

func TestAuthService_SignupValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     SignupRequest
		message string
	}{
		{"missing name", SignupRequest{Email: "a@x.com", Password: "secret1"}, "name is required"},
		{"blank name", SignupRequest{Name: "   ", Email: "a@x.com", Password: "secret1"}, "name is required"},
		{"missing email", SignupRequest{Name: "A", Password: "secret1"}, "email is required"},
		{"bad email", SignupRequest{Name: "A", Email: "not-an-email", Password: "secret1"}, "email must be a valid email address"},
		{"missing password", SignupRequest{Name: "A", Email: "a@x.com"}, "password is required"},
		{"short password", SignupRequest{Name: "A", Email: "a@x.com", Password: "abc"}, "password must be at least 6 characters"},
		{"long password", SignupRequest{Name: "A", Email: "a@x.com", Password: strings.Repeat("p", 73)}, "password must be at most 72 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &failingUserRepository{MemoryUserRepository: repository.NewMemoryUserRepository()}
			svc := newTestAuthService(repo)

			_, err := svc.Signup(context.Background(), tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrValidation)
			assert.Equal(t, tt.message, common.PublicMessage(err))
			assert.Zero(t, repo.creates)
		})
	}
}

func TestAuthService_SignupDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := &failingUserRepository{MemoryUserRepository: repository.NewMemoryUserRepository()}
	svc := newTestAuthService(repo)

	_, err := svc.Signup(ctx, SignupRequest{Name: "Ann", Email: "ann@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, SignupRequest{Name: "Other", Email: "ann@x.com", Password: "secret2"})
	assert.ErrorIs(t, err, common.ErrConflict)
	assert.Equal(t, "user already exists", common.PublicMessage(err))
	assert.Equal(t, 1, repo.creates)
}

func TestAuthService_SignupLosesRaceOnCreate(t *testing.T) {
	repo := &failingUserRepository{
		MemoryUserRepository: repository.NewMemoryUserRepository(),
		createErr:            repository.ErrUserExists,
	}
	svc := newTestAuthService(repo)

	_, err := svc.Signup(context.Background(), SignupRequest{Name: "Ann", Email: "ann@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, common.ErrConflict)
	assert.Equal(t, common.HTTPStatusFromError(repository.ErrUserExists), common.HTTPStatusFromError(err))
}

func TestAuthService_SignupStorageFailure(t *testing.T) {
	repo := &failingUserRepository{
		MemoryUserRepository: repository.NewMemoryUserRepository(),
		findErr:              errors.New("connection refused"),
	}
	svc := newTestAuthService(repo)

	_, err := svc.Signup(context.Background(), SignupRequest{Name: "Ann", Email: "ann@x.com", Password: "secret1"})
	require.Error(t, err)
	assert.Equal(t, "Internal server error", common.PublicMessage(err))
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(repository.NewMemoryUserRepository())
	_, err := svc.Signup(ctx, SignupRequest{Name: "Ann", Email: "ann@x.com", Password: "secret1"})
	require.NoError(t, err)

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{Email: "ann@x.com", Password: "wrong-pass"})
		assert.ErrorIs(t, err, common.ErrAuthentication)
		assert.ErrorIs(t, err, ErrInvalidPassword)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{Email: "bob@x.com", Password: "secret1"})
		assert.ErrorIs(t, err, common.ErrAuthentication)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{Email: "ann@x.com"})
		assert.ErrorIs(t, err, common.ErrValidation)

		_, err = svc.Login(ctx, LoginRequest{Password: "secret1"})
		assert.ErrorIs(t, err, common.ErrValidation)
	})
}

func TestAuthService_LoginRejectsPasswordPastBcryptLimit(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(repository.NewMemoryUserRepository())
	password := strings.Repeat("a", 72)
	_, err := svc.Signup(ctx, SignupRequest{Name: "Ann", Email: "ann@x.com", Password: password})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Email: "ann@x.com", Password: password + "EXTRA"})
	assert.ErrorIs(t, err, common.ErrAuthentication)
	assert.ErrorIs(t, err, ErrInvalidPassword)

	_, err = svc.Login(ctx, LoginRequest{Email: "ann@x.com", Password: password})
	assert.NoError(t, err)
}

func TestAuthService_GetUserByID(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(repository.NewMemoryUserRepository())
	created, err := svc.Signup(ctx, SignupRequest{Name: "Ann", Email: "ann@x.com", Password: "secret1"})
	require.NoError(t, err)

	got, err := svc.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, got.Email)

	_, err = svc.GetUserByID(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Equal(t, "user not found", common.PublicMessage(err))

	_, err = svc.GetUserByID(ctx, " ")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
