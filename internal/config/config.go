package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`

	// BaseURL is the public address of this backend, used to build the
	// payment gateway notify URL.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080" validate:"required,url"`
	// FrontendURL is where QR codes and payment redirects point.
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:5173" validate:"required,url"`

	PayHereMerchantID     string `env:"PAYHERE_MERCHANT_ID,required" validate:"required"`
	PayHereMerchantSecret string `env:"PAYHERE_MERCHANT_SECRET,required" validate:"required"`
	PayHereSandbox        bool   `env:"PAYHERE_SANDBOX" envDefault:"true"`
	Currency              string `env:"CURRENCY" envDefault:"LKR" validate:"required,len=3"`

	JWTSecret     string `env:"JWT_SECRET,required" validate:"required,min=16"`
	JWTExpiryDays int    `env:"JWT_EXPIRY_DAYS" envDefault:"30" validate:"min=1"`

	EncryptionKey string `env:"ENCRYPTION_KEY,required" validate:"required,len=32"`

	CacheProvider         string `env:"CACHE_PROVIDER" envDefault:"memory" validate:"omitempty,oneof=memory redis"`
	RedisConnectionString string `env:"REDIS_CONNECTION_STRING" envDefault:"redis://localhost:6379/0" validate:"required_if=CacheProvider redis"`

	EmailProvider string `env:"EMAIL_PROVIDER" envDefault:"resend" validate:"omitempty,oneof=resend postmark mailgun"`
	EmailAPIKey   string `env:"EMAIL_API_KEY"`
	EmailFrom     string `env:"EMAIL_FROM" envDefault:"noreply@saloncart.app" validate:"omitempty,email"`
	MailgunDomain string `env:"MAILGUN_DOMAIN"`

	SheetsCredentialsFile string `env:"SHEETS_CREDENTIALS_FILE"`
	SheetsSpreadsheetID   string `env:"SHEETS_SPREADSHEET_ID"`
	SheetsRange           string `env:"SHEETS_RANGE" envDefault:"Orders!A:J"`

	TwilioAccountSID   string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken    string `env:"TWILIO_AUTH_TOKEN"`
	TwilioWhatsAppFrom string `env:"TWILIO_WHATSAPP_NUMBER"`

	LogLevel  slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	LogFormat string     `env:"LOG_FORMAT" envDefault:"text" validate:"omitempty,oneof=text json"`
	LogFile   string     `env:"LOG_FILE"`
	Port      string     `env:"PORT" envDefault:"8080"`
}

var configValidator = validator.New()

func Load() (*Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if err := configValidator.Struct(c); err != nil {
		return err
	}

	hasTwilioSID := strings.TrimSpace(c.TwilioAccountSID) != ""
	hasTwilioToken := strings.TrimSpace(c.TwilioAuthToken) != ""
	if hasTwilioSID != hasTwilioToken {
		return fmt.Errorf("TWILIO_ACCOUNT_SID and TWILIO_AUTH_TOKEN must be set together")
	}
	if hasTwilioSID && strings.TrimSpace(c.TwilioWhatsAppFrom) == "" {
		return fmt.Errorf("TWILIO_WHATSAPP_NUMBER is required when Twilio is configured")
	}

	if strings.TrimSpace(c.SheetsCredentialsFile) != "" && strings.TrimSpace(c.SheetsSpreadsheetID) == "" {
		return fmt.Errorf("SHEETS_SPREADSHEET_ID is required when SHEETS_CREDENTIALS_FILE is set")
	}

	for _, raw := range []string{c.BaseURL, c.FrontendURL} {
		parsed, err := url.Parse(strings.TrimSpace(raw))
		if err != nil || parsed.Hostname() == "" {
			return fmt.Errorf("base and frontend URLs must be valid absolute URLs")
		}
		if !isLocalHost(parsed.Hostname()) && !strings.EqualFold(parsed.Scheme, "https") {
			return fmt.Errorf("%s must use https outside local development", raw)
		}
	}

	return nil
}

// SheetsEnabled reports whether the spreadsheet hook is configured.
func (c *Config) SheetsEnabled() bool {
	return strings.TrimSpace(c.SheetsCredentialsFile) != "" && strings.TrimSpace(c.SheetsSpreadsheetID) != ""
}

// WhatsAppEnabled reports whether the messaging hook is configured.
func (c *Config) WhatsAppEnabled() bool {
	return strings.TrimSpace(c.TwilioAccountSID) != "" &&
		strings.TrimSpace(c.TwilioAuthToken) != "" &&
		strings.TrimSpace(c.TwilioWhatsAppFrom) != ""
}

func isLocalHost(host string) bool {
	switch strings.ToLower(strings.TrimSpace(host)) {
	case "localhost", "127.0.0.1", "::1":
		return true
	default:
		return false
	}
}
