package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"marketplace/internal/api/handler"
	"marketplace/internal/api/middleware"
	"marketplace/internal/app/service"
	"marketplace/internal/common/security"
)

type Options struct {
	AllowedOrigins []string
	CookieSecure   bool
}

func NewRouter(
	opts Options,
	tokens *security.TokenManager,
	authService *service.AuthService,
	productService *service.ProductService,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	// The web client sends the session cookie cross-origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	authHandler := handler.NewAuthHandler(authService, tokens, opts.CookieSecure, logger)
	userHandler := handler.NewUserHandler(authService, logger)
	productHandler := handler.NewProductHandler(productService, logger)

	r.Route("/api", func(api chi.Router) {
		// Auth routes (public)
		api.Route("/auth", authHandler.RegisterRoutes)

		// Everything else requires a valid session cookie.
		api.Group(func(protected chi.Router) {
			protected.Use(middleware.Verifier(tokens))
			protected.Use(middleware.Authenticator)

			protected.Route("/user", userHandler.RegisterRoutes)
			protected.Route("/product", productHandler.RegisterRoutes)
		})
	})

	return r
}
