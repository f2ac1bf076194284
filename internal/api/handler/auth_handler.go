package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"marketplace/internal/app/service"
	"marketplace/internal/common"
	"marketplace/internal/common/security"
)

type AuthHandler struct {
	authService  *service.AuthService
	tokens       *security.TokenManager
	cookieSecure bool
	logger       *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, tokens *security.TokenManager, cookieSecure bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, tokens: tokens, cookieSecure: cookieSecure, logger: logger}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/signup", h.signup) // POST /api/auth/signup
	r.Post("/login", h.login)   // POST /api/auth/login
	r.Post("/logout", h.logout) // POST /api/auth/logout
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	user, err := h.authService.Signup(r.Context(), req)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			common.RespondWithError(w, http.StatusBadRequest, "User already exists")
			return
		}
		respondError(w, r, h.logger, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, user, "User created successfully")
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	user, err := h.authService.Login(r.Context(), req)
	if err != nil {
		// Unknown email and wrong password look the same to the client.
		if errors.Is(err, common.ErrAuthentication) {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		respondError(w, r, h.logger, err)
		return
	}

	token, expiresAt, err := h.tokens.Issue(user.ID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	http.SetCookie(w, security.SessionCookie(token, expiresAt, h.cookieSecure))
	common.RespondWithJSON(w, http.StatusOK, user, "Login successful")
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, security.ClearedSessionCookie(h.cookieSecure))
	common.RespondWithJSON(w, http.StatusOK, nil, "Logout successful")
}
