package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"marketplace/internal/common"
)

// bcrypt ignores everything past this many bytes.
const maxPasswordBytes = 72

type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	return &PasswordHasher{cost: cost}
}

// HashPassword returns a salted bcrypt hash of password.
func (h *PasswordHasher) HashPassword(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", common.New(common.ErrValidation, fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes))
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPasswordHash reports whether password matches hash. Passwords that
// HashPassword would refuse never match.
func (h *PasswordHasher) CheckPasswordHash(password, hash string) bool {
	if len(password) > maxPasswordBytes {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
