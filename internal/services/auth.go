package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/saloncartapp/saloncart/internal/email"
	"github.com/saloncartapp/saloncart/internal/logging"
	"github.com/saloncartapp/saloncart/internal/models"
)

const resetTokenTTL = 10 * time.Minute

type adminStore interface {
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
	GetByEmail(ctx context.Context, emailAddr string) (*models.Admin, error)
	GetByResetTokenHash(ctx context.Context, tokenHash string) (*models.Admin, error)
	SetResetToken(ctx context.Context, id uuid.UUID, tokenHash string, expiry time.Time) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// Claims is the JWT payload for authenticated admin sessions.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService handles admin login, token verification and password resets.
type AuthService struct {
	admins      adminStore
	email       email.Provider
	jwtSecret   []byte
	jwtExpiry   time.Duration
	frontendURL string
	logger      *slog.Logger
	now         func() time.Time
}

func NewAuthService(admins adminStore, emailProvider email.Provider, jwtSecret string, jwtExpiry time.Duration, frontendURL string, logger *slog.Logger) *AuthService {
	return &AuthService{
		admins:      admins,
		email:       emailProvider,
		jwtSecret:   []byte(jwtSecret),
		jwtExpiry:   jwtExpiry,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		logger:      logger,
		now:         time.Now,
	}
}

// Login verifies admin credentials and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.Admin, error) {
	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to look up admin: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.issueToken(admin.Username)
	if err != nil {
		return "", nil, err
	}
	return token, admin, nil
}

func (s *AuthService) issueToken(username string) (string, error) {
	now := s.now()
	claims := Claims{
		Username: username,
		Role:     "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates a session token.
func (s *AuthService) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidCredentials
	}
	return claims, nil
}

// RequestPasswordReset emails the admin a single-use reset link. To avoid
// account enumeration it reports success even when the email is unknown.
func (s *AuthService) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	logger := logging.FromContext(ctx, s.logger)

	admin, err := s.admins.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Info("password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("failed to look up admin: %w", err)
	}

	token, err := randomToken(20)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	expiry := s.now().Add(resetTokenTTL)
	if err := s.admins.SetResetToken(ctx, admin.ID, hashToken(token), expiry); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/admin/reset-password/%s", s.frontendURL, token)
	msg, err := email.ResetPasswordEmail(admin.Email, resetURL, int(resetTokenTTL.Minutes()))
	if err != nil {
		return err
	}
	if err := s.email.SendEmail(ctx, msg); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	logger.Info("password reset email sent", "admin", admin.Username)
	return nil
}

// ResetPassword consumes a reset token and sets a new password.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	admin, err := s.admins.GetByResetTokenHash(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}
	if !admin.CanResetWith(hashToken(token), s.now()) {
		return ErrInvalidResetToken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.admins.UpdatePassword(ctx, admin.ID, string(passwordHash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	logging.FromContext(ctx, s.logger).Info("admin password reset", "admin", admin.Username)
	return nil
}

func randomToken(bytes int) (string, error) {
	buf := make([]byte, bytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
