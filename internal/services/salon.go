package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/saloncartapp/saloncart/internal/crypto"
	"github.com/saloncartapp/saloncart/internal/logging"
	"github.com/saloncartapp/saloncart/internal/models"
	"github.com/saloncartapp/saloncart/internal/qr"
)

type salonStore interface {
	Create(ctx context.Context, salon *models.Salon) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Salon, error)
	GetByCode(ctx context.Context, code string) (*models.Salon, error)
	GetByUsername(ctx context.Context, username string) (*models.Salon, error)
	List(ctx context.Context) ([]*models.Salon, error)
	Update(ctx context.Context, id uuid.UUID, name, location, contactNumber string) (*models.Salon, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SalonService manages salon registration, credentials and QR codes.
type SalonService struct {
	salons      salonStore
	encryptor   crypto.Encryptor
	frontendURL string
	logger      *slog.Logger
}

func NewSalonService(salons salonStore, encryptor crypto.Encryptor, frontendURL string, logger *slog.Logger) *SalonService {
	return &SalonService{
		salons:      salons,
		encryptor:   encryptor,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		logger:      logger,
	}
}

func (s *SalonService) loggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, s.logger)
}

type CreateSalonInput struct {
	Name          string
	Location      string
	ContactNumber string
}

// CreateSalonResult carries the one-time plaintext credentials alongside the
// persisted salon and its QR code.
type CreateSalonResult struct {
	Salon    *models.Salon
	QRCode   string
	QRURL    string
	Username string
	Password string
}

// CreateSalon registers a salon with generated credentials and returns the
// plaintext password exactly once. Only the bcrypt hash and an encrypted
// copy for admin re-display are stored.
func (s *SalonService) CreateSalon(ctx context.Context, input CreateSalonInput) (*CreateSalonResult, error) {
	username, err := generateUsername(input.Name)
	if err != nil {
		return nil, err
	}
	password, err := randomHex(4)
	if err != nil {
		return nil, fmt.Errorf("failed to generate password: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	encryptedPassword, err := s.encryptor.Encrypt(password)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt credential copy: %w", err)
	}

	salonCode, err := generateSalonCode()
	if err != nil {
		return nil, err
	}

	salon := &models.Salon{
		Name:              input.Name,
		Location:          input.Location,
		ContactNumber:     input.ContactNumber,
		SalonCode:         salonCode,
		Username:          username,
		PasswordHash:      string(passwordHash),
		EncryptedPassword: encryptedPassword,
	}
	if err := s.salons.Create(ctx, salon); err != nil {
		return nil, fmt.Errorf("failed to create salon: %w", err)
	}

	qrURL := fmt.Sprintf("%s/order/%s", s.frontendURL, salon.ID)
	qrCode, err := qr.DataURL(qrURL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	s.loggerFromContext(ctx).Info("salon created",
		"salon_id", salon.ID, "salon_code", salon.SalonCode, "username", username)

	return &CreateSalonResult{
		Salon:    salon,
		QRCode:   qrCode,
		QRURL:    qrURL,
		Username: username,
		Password: password,
	}, nil
}

// GetSalon resolves a salon by internal id, falling back to the short salon
// code printed on QR material when the reference is not a UUID.
func (s *SalonService) GetSalon(ctx context.Context, ref string) (*models.Salon, error) {
	var (
		salon *models.Salon
		err   error
	)
	if id, parseErr := uuid.Parse(ref); parseErr == nil {
		salon, err = s.salons.GetByID(ctx, id)
	} else {
		salon, err = s.salons.GetByCode(ctx, ref)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSalonNotFound
		}
		return nil, fmt.Errorf("failed to get salon: %w", err)
	}
	return salon, nil
}

func (s *SalonService) ListSalons(ctx context.Context) ([]*models.Salon, error) {
	salons, err := s.salons.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list salons: %w", err)
	}
	return salons, nil
}

func (s *SalonService) UpdateSalon(ctx context.Context, id uuid.UUID, input CreateSalonInput) (*models.Salon, error) {
	salon, err := s.salons.Update(ctx, id, input.Name, input.Location, input.ContactNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSalonNotFound
		}
		return nil, fmt.Errorf("failed to update salon: %w", err)
	}
	return salon, nil
}

func (s *SalonService) DeleteSalon(ctx context.Context, id uuid.UUID) error {
	if err := s.salons.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSalonNotFound
		}
		return fmt.Errorf("failed to delete salon: %w", err)
	}
	return nil
}

// Login authenticates a salon dashboard user.
func (s *SalonService) Login(ctx context.Context, username, password string) (*models.Salon, error) {
	salon, err := s.salons.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up salon: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(salon.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return salon, nil
}

// RevealPassword decrypts the stored credential copy for admin display.
func (s *SalonService) RevealPassword(ctx context.Context, id uuid.UUID) (string, error) {
	salon, err := s.GetSalon(ctx, id.String())
	if err != nil {
		return "", err
	}
	if salon.EncryptedPassword == "" {
		return "", fmt.Errorf("no stored credential for salon %s", id)
	}
	password, err := s.encryptor.Decrypt(salon.EncryptedPassword)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt credential: %w", err)
	}
	return password, nil
}

func generateUsername(salonName string) (string, error) {
	base := strings.ToLower(strings.Join(strings.Fields(salonName), ""))
	if base == "" {
		base = "salon"
	}
	suffix, err := randomHex(2)
	if err != nil {
		return "", fmt.Errorf("failed to generate username: %w", err)
	}
	return base + "_" + suffix, nil
}

// generateSalonCode produces a short human-quotable code: three hex chars
// uppercased plus three digits.
func generateSalonCode() (string, error) {
	chars, err := randomHex(2)
	if err != nil {
		return "", fmt.Errorf("failed to generate salon code: %w", err)
	}
	n, err := rand.Int(rand.Reader, big.NewInt(900))
	if err != nil {
		return "", fmt.Errorf("failed to generate salon code: %w", err)
	}
	return strings.ToUpper(chars[:3]) + fmt.Sprintf("%03d", n.Int64()+100), nil
}

func randomHex(bytes int) (string, error) {
	buf := make([]byte, bytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
