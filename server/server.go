package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/saloncartapp/saloncart/internal/config"
	"github.com/saloncartapp/saloncart/internal/handlers"
	"github.com/saloncartapp/saloncart/internal/observability"
)

type Server struct {
	cfg        *config.Config
	logger     *slog.Logger
	handlers   *handlers.Handlers
	metrics    *observability.Metrics
	httpServer *http.Server
}

func New(cfg *config.Config, logger *slog.Logger, h *handlers.Handlers, metrics *observability.Metrics) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if h == nil {
		return nil, fmt.Errorf("handlers are required")
	}

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		handlers: h,
		metrics:  metrics,
	}

	router := s.buildRouter()
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return s, nil
}

func (s *Server) Run() error {
	s.logger.Info("server starting", "port", s.cfg.Port)

	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Close(ctx context.Context) error {
	if s == nil || s.httpServer == nil {
		return nil
	}

	s.logger.Info("server shutting down")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) buildRouter() *mux.Router {
	h := s.handlers

	r := mux.NewRouter()
	r.Use(h.RequestLogger)
	r.Use(h.SecurityHeaders)
	r.Use(h.CORS)

	r.HandleFunc("/health", h.Health).Methods("GET").Name("health")
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler()).Methods("GET").Name("metrics")
	}

	api := r.PathPrefix("/api").Subrouter()

	// Customer order flow plus the gateway's server-to-server callback.
	api.HandleFunc("/orders/draft", h.CreateDraftOrder).Methods("POST").Name("orders.draft")
	api.HandleFunc("/orders/finalize", h.FinalizeOrder).Methods("POST").Name("orders.finalize")
	api.HandleFunc("/orders/notify", h.PaymentNotify).Methods("POST").Name("orders.notify")
	api.HandleFunc("/customers/{phone}", h.CustomerByPhone).Methods("GET").Name("customers.by_phone")
	api.HandleFunc("/salons/{id}", h.GetSalon).Methods("GET").Name("salons.get")
	api.HandleFunc("/products", h.ListProducts).Methods("GET").Name("products.list")
	api.HandleFunc("/salons/login", h.SalonLogin).Methods("POST").Name("salons.login")

	api.HandleFunc("/auth/login", h.AdminLogin).Methods("POST").Name("auth.login")
	api.HandleFunc("/auth/forgot-password", h.ForgotPassword).Methods("POST").Name("auth.forgot_password")
	api.HandleFunc("/auth/reset-password", h.ResetPassword).Methods("POST").Name("auth.reset_password")

	// Admin surface, token-gated.
	admin := api.PathPrefix("").Subrouter()
	admin.Use(h.RequireAuth)
	admin.HandleFunc("/orders", h.ListOrders).Methods("GET").Name("orders.list")
	admin.HandleFunc("/orders/{id}/status", h.UpdateOrderStatus).Methods("PATCH").Name("orders.status")
	admin.HandleFunc("/salons", h.CreateSalon).Methods("POST").Name("salons.create")
	admin.HandleFunc("/salons", h.ListSalons).Methods("GET").Name("salons.list")
	admin.HandleFunc("/salons/{id}", h.UpdateSalon).Methods("PUT").Name("salons.update")
	admin.HandleFunc("/salons/{id}", h.DeleteSalon).Methods("DELETE").Name("salons.delete")
	admin.HandleFunc("/salons/{id}/password", h.RevealSalonPassword).Methods("GET").Name("salons.password")
	admin.HandleFunc("/products", h.CreateProduct).Methods("POST").Name("products.create")
	admin.HandleFunc("/products/{id}", h.UpdateProduct).Methods("PUT").Name("products.update")
	admin.HandleFunc("/analytics/salons", h.SalonPerformance).Methods("GET").Name("analytics.salons")
	admin.HandleFunc("/analytics/items", h.ItemPerformance).Methods("GET").Name("analytics.items")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	})

	return r
}
