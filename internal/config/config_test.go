package config

import (
	"strings"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/saloncart")
	t.Setenv("PAYHERE_MERCHANT_ID", "1211149")
	t.Setenv("PAYHERE_MERCHANT_SECRET", "secret")
	t.Setenv("JWT_SECRET", "0123456789abcdef")
	t.Setenv("ENCRYPTION_KEY", strings.Repeat("k", 32))
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("unexpected port: %q", cfg.Port)
	}
	if cfg.Currency != "LKR" {
		t.Fatalf("unexpected currency: %q", cfg.Currency)
	}
	if !cfg.PayHereSandbox {
		t.Fatal("sandbox must default to true")
	}
	if cfg.JWTExpiryDays != 30 {
		t.Fatalf("unexpected JWT expiry: %d", cfg.JWTExpiryDays)
	}
	if cfg.CacheProvider != "memory" {
		t.Fatalf("unexpected cache provider: %q", cfg.CacheProvider)
	}
	if cfg.SheetsEnabled() {
		t.Fatal("sheets must be disabled without credentials")
	}
	if cfg.WhatsAppEnabled() {
		t.Fatal("whatsapp must be disabled without twilio credentials")
	}
}

func TestLoadMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}
}

func TestLoadEncryptionKeyLength(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ENCRYPTION_KEY", "too short")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for short encryption key")
	}
}

func TestLoadTwilioPairValidation(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TWILIO_ACCOUNT_SID", "ACxxxx")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when twilio sid is set without token")
	}

	t.Setenv("TWILIO_AUTH_TOKEN", "token")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when twilio is configured without a from number")
	}

	t.Setenv("TWILIO_WHATSAPP_NUMBER", "whatsapp:+14155238886")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.WhatsAppEnabled() {
		t.Fatal("whatsapp must be enabled with full twilio config")
	}
}

func TestLoadSheetsValidation(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SHEETS_CREDENTIALS_FILE", "/etc/saloncart/sheets.json")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when credentials are set without a spreadsheet id")
	}

	t.Setenv("SHEETS_SPREADSHEET_ID", "sheet-id")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.SheetsEnabled() {
		t.Fatal("sheets must be enabled with credentials and spreadsheet id")
	}
	if cfg.SheetsRange != "Orders!A:J" {
		t.Fatalf("unexpected default range: %q", cfg.SheetsRange)
	}
}

func TestLoadRequiresHTTPSOutsideLocalhost(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BASE_URL", "http://api.saloncart.app")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for plain http on a public host")
	}

	t.Setenv("BASE_URL", "https://api.saloncart.app")
	if _, err := Load(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
