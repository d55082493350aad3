package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saloncartapp/saloncart/internal/cache"
	"github.com/saloncartapp/saloncart/internal/config"
	"github.com/saloncartapp/saloncart/internal/crypto"
	"github.com/saloncartapp/saloncart/internal/db"
	"github.com/saloncartapp/saloncart/internal/email"
	"github.com/saloncartapp/saloncart/internal/handlers"
	"github.com/saloncartapp/saloncart/internal/logging"
	"github.com/saloncartapp/saloncart/internal/notify"
	"github.com/saloncartapp/saloncart/internal/observability"
	"github.com/saloncartapp/saloncart/internal/payhere"
	"github.com/saloncartapp/saloncart/internal/services"
)

type App struct {
	Config        *config.Config
	Logger        *slog.Logger
	DB            *pgxpool.Pool
	CacheProvider cache.Provider
	Metrics       *observability.Metrics
	Handlers      *handlers.Handlers
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	database, err := db.Connect(startupCtx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(startupCtx, database); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	cacheProvider, err := cache.NewProvider(cache.Config{
		Provider:              cfg.CacheProvider,
		RedisConnectionString: cfg.RedisConnectionString,
	})
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize cache provider: %w", err)
	}

	encryptor, err := crypto.NewEncryptor(cfg.EncryptionKey)
	if err != nil {
		closeCacheProvider(logger, cacheProvider)
		database.Close()
		return nil, fmt.Errorf("failed to initialize encryptor: %w", err)
	}

	emailProvider, err := email.NewProvider(email.Config{
		Provider: cfg.EmailProvider,
		APIKey:   cfg.EmailAPIKey,
		From:     cfg.EmailFrom,
		Domain:   cfg.MailgunDomain,
	})
	if err != nil {
		closeCacheProvider(logger, cacheProvider)
		database.Close()
		return nil, fmt.Errorf("failed to initialize email provider: %w", err)
	}

	metrics := observability.NewMetrics()

	salonStore := db.NewSalonStore(database)
	orderStore := db.NewOrderStore(database)
	productStore := db.NewProductStore(database)
	adminStore := db.NewAdminStore(database)
	counterStore := db.NewCounterStore(database)
	analyticsStore := db.NewAnalyticsStore(database)

	dispatcher, err := newDispatcher(startupCtx, cfg, metrics, logger)
	if err != nil {
		closeCacheProvider(logger, cacheProvider)
		database.Close()
		return nil, err
	}

	gateway := payhere.Config{
		MerchantID:     cfg.PayHereMerchantID,
		MerchantSecret: cfg.PayHereMerchantSecret,
		ReturnURL:      strings.TrimRight(cfg.FrontendURL, "/") + "/payment/return",
		CancelURL:      strings.TrimRight(cfg.FrontendURL, "/") + "/payment/cancel",
		NotifyURL:      strings.TrimRight(cfg.BaseURL, "/") + "/api/orders/notify",
		Currency:       cfg.Currency,
		Sandbox:        cfg.PayHereSandbox,
	}

	orderService := services.NewOrderService(
		salonStore,
		orderStore,
		counterStore,
		dispatcher,
		cacheProvider,
		gateway,
		metrics,
		logger.With("component", "order_service"),
	)
	salonService := services.NewSalonService(
		salonStore, encryptor, cfg.FrontendURL,
		logger.With("component", "salon_service"),
	)
	productService := services.NewProductService(productStore)
	analyticsService := services.NewAnalyticsService(analyticsStore)
	authService := services.NewAuthService(
		adminStore, emailProvider, cfg.JWTSecret,
		time.Duration(cfg.JWTExpiryDays)*24*time.Hour,
		cfg.FrontendURL,
		logger.With("component", "auth_service"),
	)

	h, err := handlers.New(handlers.Dependencies{
		Config:           cfg,
		DB:               database,
		OrderService:     orderService,
		SalonService:     salonService,
		ProductService:   productService,
		AnalyticsService: analyticsService,
		AuthService:      authService,
		Metrics:          metrics,
		Logger:           logger,
	})
	if err != nil {
		closeCacheProvider(logger, cacheProvider)
		database.Close()
		return nil, fmt.Errorf("failed to initialize handlers: %w", err)
	}

	return &App{
		Config:        cfg,
		Logger:        logger,
		DB:            database,
		CacheProvider: cacheProvider,
		Metrics:       metrics,
		Handlers:      h,
	}, nil
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.CacheProvider != nil {
		closeCacheProvider(a.Logger, a.CacheProvider)
	}
	if a.DB != nil {
		a.DB.Close()
	}
}

// newDispatcher wires the configured best-effort notification hooks. Both
// hooks are optional; an empty dispatcher is valid and dispatches nothing.
func newDispatcher(ctx context.Context, cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) (*notify.Dispatcher, error) {
	var hooks []notify.Hook

	if cfg.SheetsEnabled() {
		appender, err := notify.NewSheetAppender(ctx, cfg.SheetsCredentialsFile, cfg.SheetsSpreadsheetID, cfg.SheetsRange)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sheets hook: %w", err)
		}
		hooks = append(hooks, appender)
	}
	if cfg.WhatsAppEnabled() {
		hooks = append(hooks, notify.NewWhatsAppSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppFrom))
	}

	dispatcher := notify.NewDispatcher(metrics, logger.With("component", "notify"), hooks...)
	logger.Info("notification dispatcher configured", "hooks", dispatcher.HookCount())
	return dispatcher, nil
}

func newLogger(cfg *config.Config) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(cfg.LogFormat)) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default:
		handler = tint.NewHandler(os.Stdout, &tint.Options{Level: cfg.LogLevel})
	}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		handler = logging.MultiHandler(handler, slog.NewJSONHandler(f, opts))
	}

	return slog.New(handler), nil
}

func closeCacheProvider(logger *slog.Logger, provider cache.Provider) {
	if provider == nil {
		return
	}
	if err := provider.Close(); err != nil && logger != nil {
		logger.Warn("failed to close cache provider", "error", err)
	}
}
