package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"marketplace/internal/app/service"
)

type UserHandler struct {
	authService *service.AuthService
	logger      *zap.Logger
}

func NewUserHandler(authService *service.AuthService, logger *zap.Logger) *UserHandler {
	return &UserHandler{authService: authService, logger: logger}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{id}", h.getUser) // GET /api/user/{id}
}

func (h *UserHandler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.GetUserByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondOK(w, user, "User retrieved successfully")
}
