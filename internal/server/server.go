// Package server wires the database, services, handlers and routes into
// one HTTP server. It is the composition root: every dependency is
// constructed here and handed down, so the layers below stay free of
// global state.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/ecofinds/internal/auth"
	"github.com/sakif/ecofinds/internal/handler"
	"github.com/sakif/ecofinds/internal/middleware"
	sqliteRepo "github.com/sakif/ecofinds/internal/repository/sqlite"
	"github.com/sakif/ecofinds/internal/service"
)

// Config holds server configuration.
type Config struct {
	Port   int
	DBPath string
	// BcryptCost overrides the default hashing cost. Leave zero for the
	// production default; tests lower it to keep hashing fast.
	BcryptCost int
}

// Server owns the router and the resources behind it. The database
// connection is closed during graceful shutdown; sessions live in memory
// and simply vanish with the process.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain: sqlite.DB at the bottom, the
// services on top of the repository interfaces, the handlers on top of
// the services. Handlers never touch the database; services never touch
// HTTP.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}
	s.setupRoutes()

	return s, nil
}

// Handler returns the root handler, mainly for tests that drive the
// full stack through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the server's resources. Start does this itself; Close
// is for callers that never reach Start, such as tests.
func (s *Server) Close() error {
	return s.db.Close()
}

func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	sessions := auth.NewSessionRegistry()
	passwords := auth.NewPasswordServiceWithCost(s.config.BcryptCost)

	authService := service.NewAuthService(s.db, sessions, passwords, s.logger)
	productService := service.NewProductService(s.db, s.logger)
	commerceService := service.NewCommerceService(s.db, s.db, s.db, s.db, s.logger)
	advisor := service.NewPriceAdvisor()

	authHandler := handler.NewAuthHandler(authService, s.logger)
	productHandler := handler.NewProductHandler(productService, s.logger)
	commerceHandler := handler.NewCommerceHandler(commerceService, s.logger)
	advisorHandler := handler.NewAdvisorHandler(advisor)

	s.router.Route("/api", func(r chi.Router) {
		// Public routes. Logout stays public so a client with an expired
		// or missing session can still clear its cookie.
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)
		r.Get("/users/{id}", authHandler.HandleGetUser)
		r.Get("/products", productHandler.HandleList)
		r.Get("/products/{id}", productHandler.HandleGet)
		r.Get("/leaderboard", commerceHandler.HandleLeaderboard)
		r.Post("/ai/price-suggest", advisorHandler.HandleSuggest)

		// Everything below requires a valid session.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(sessions))

			r.Get("/auth/me", authHandler.HandleMe)
			r.Put("/auth/me", authHandler.HandleUpdateMe)

			r.Post("/products", productHandler.HandleCreate)
			r.Put("/products/{id}", productHandler.HandleUpdate)
			r.Delete("/products/{id}", productHandler.HandleDelete)

			r.Get("/cart", commerceHandler.HandleCart)
			r.Post("/cart", commerceHandler.HandleAddToCart)
			r.Delete("/cart/{productId}", commerceHandler.HandleRemoveFromCart)

			r.Post("/checkout", commerceHandler.HandleCheckout)
			r.Get("/purchases", commerceHandler.HandlePurchases)
		})
	})
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests for
// up to 30 seconds, close the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
