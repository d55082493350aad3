package handlers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saloncartapp/saloncart/internal/config"
	"github.com/saloncartapp/saloncart/internal/logging"
	"github.com/saloncartapp/saloncart/internal/observability"
	"github.com/saloncartapp/saloncart/internal/services"
)

const maxBodyBytes = 1 << 20 // 1 MB

// Handlers provides the HTTP request handlers for the SalonCart API.
type Handlers struct {
	config           *config.Config
	db               *pgxpool.Pool
	orderService     *services.OrderService
	salonService     *services.SalonService
	productService   *services.ProductService
	analyticsService *services.AnalyticsService
	authService      *services.AuthService
	metrics          *observability.Metrics
	logger           *slog.Logger
}

type Dependencies struct {
	Config           *config.Config
	DB               *pgxpool.Pool
	OrderService     *services.OrderService
	SalonService     *services.SalonService
	ProductService   *services.ProductService
	AnalyticsService *services.AnalyticsService
	AuthService      *services.AuthService
	Metrics          *observability.Metrics
	Logger           *slog.Logger
}

func New(deps Dependencies) (*Handlers, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if deps.Config == nil {
		return nil, fmt.Errorf("handlers dependencies: config is required")
	}
	if deps.DB == nil {
		return nil, fmt.Errorf("handlers dependencies: db is required")
	}
	if deps.OrderService == nil {
		return nil, fmt.Errorf("handlers dependencies: orderService is required")
	}
	if deps.SalonService == nil {
		return nil, fmt.Errorf("handlers dependencies: salonService is required")
	}
	if deps.ProductService == nil {
		return nil, fmt.Errorf("handlers dependencies: productService is required")
	}
	if deps.AnalyticsService == nil {
		return nil, fmt.Errorf("handlers dependencies: analyticsService is required")
	}
	if deps.AuthService == nil {
		return nil, fmt.Errorf("handlers dependencies: authService is required")
	}

	return &Handlers{
		config:           deps.Config,
		db:               deps.DB,
		orderService:     deps.OrderService,
		salonService:     deps.SalonService,
		productService:   deps.ProductService,
		analyticsService: deps.AnalyticsService,
		authService:      deps.AuthService,
		metrics:          deps.Metrics,
		logger:           logger,
	}, nil
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.loggerFromContext(ctx)

	if err := h.db.Ping(ctx); err != nil {
		logger.Error("database health check failed", "error", err)
		http.Error(w, "Database unhealthy", http.StatusServiceUnavailable)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *Handlers) loggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, h.logger)
}
