package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed lifetime of a session token.
const TokenTTL = 7 * 24 * time.Hour

// TokenManager issues and verifies HS256 session tokens whose subject is a user id.
type TokenManager struct {
	auth *jwtauth.JWTAuth
	now  func() time.Time
}

func NewTokenManager(secret []byte) *TokenManager {
	return &TokenManager{
		auth: jwtauth.New("HS256", secret, nil),
		now:  time.Now,
	}
}

// JWTAuth exposes the underlying jwtauth instance for jwtauth.Verify and
// jwtauth.VerifyToken.
func (m *TokenManager) JWTAuth() *jwtauth.JWTAuth {
	return m.auth
}

// Issue mints a token for userID. The returned time is the token expiry.
func (m *TokenManager) Issue(userID string) (string, time.Time, error) {
	if userID == "" {
		return "", time.Time{}, errors.New("cannot issue token without a subject")
	}
	now := m.now()
	expiresAt := now.Add(TokenTTL)

	claims := jwt.MapClaims{"sub": userID}
	jwtauth.SetIssuedAt(claims, now)
	jwtauth.SetExpiry(claims, expiresAt)

	_, tokenString, err := m.auth.Encode(claims)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// GetUserIDFromClaims extracts the subject claim placed by Issue.
func GetUserIDFromClaims(claims jwt.MapClaims) (string, error) {
	id, ok := claims["sub"].(string)
	if !ok || id == "" {
		return "", errors.New("sub claim is missing or not a string")
	}
	return id, nil
}
