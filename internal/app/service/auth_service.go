package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"marketplace/internal/common"
	"marketplace/internal/common/security"
	"marketplace/internal/domain/model"
	"marketplace/internal/domain/repository"
)

var (
	ErrUserNotFound    = common.New(common.ErrAuthentication, "user not found")
	ErrInvalidPassword = common.New(common.ErrAuthentication, "invalid password")
)

type AuthService struct {
	userRepo repository.UserRepository
	hasher   *security.PasswordHasher
	logger   *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, hasher *security.PasswordHasher, logger *zap.Logger) *AuthService {
	return &AuthService{userRepo: userRepo, hasher: hasher, logger: logger}
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup registers a new user. The returned user still carries the password
// hash; model.User never serializes it.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*model.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, repository.ErrUserExists
	}

	hashedPassword, err := s.hasher.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
	}

	// The unique constraint on email is the real guard: a concurrent signup
	// can pass the check above and still lose here.
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user signed up", zap.String("user_id", user.ID))
	return user, nil
}

// Login checks the credentials and returns the matching user.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*model.User, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, ErrInvalidPassword
	}
	return user, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, common.New(common.ErrNotFound, "user not found")
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.New(common.ErrNotFound, "user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
