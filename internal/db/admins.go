package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminStore struct {
	pool *pgxpool.Pool
}

func NewAdminStore(pool *pgxpool.Pool) *AdminStore {
	return &AdminStore{pool: pool}
}

const adminColumns = `
	id, username, email, password_hash, reset_token_hash, reset_token_expiry, created_at
`

func (s *AdminStore) Create(ctx context.Context, admin *Admin) error {
	const query = `
		INSERT INTO admins (username, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO UPDATE SET email = EXCLUDED.email, password_hash = EXCLUDED.password_hash
		RETURNING id, created_at
	`
	return s.pool.QueryRow(ctx, query, admin.Username, admin.Email, admin.PasswordHash).
		Scan(&admin.ID, &admin.CreatedAt)
}

func (s *AdminStore) GetByUsername(ctx context.Context, username string) (*Admin, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+adminColumns+` FROM admins WHERE username = $1`, username)
	return scanAdmin(row)
}

func (s *AdminStore) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+adminColumns+` FROM admins WHERE email = $1`, email)
	return scanAdmin(row)
}

func (s *AdminStore) GetByResetTokenHash(ctx context.Context, tokenHash string) (*Admin, error) {
	const query = `
		SELECT ` + adminColumns + `
		FROM admins
		WHERE reset_token_hash = $1 AND reset_token_expiry > NOW()
	`
	row := s.pool.QueryRow(ctx, query, tokenHash)
	return scanAdmin(row)
}

func (s *AdminStore) SetResetToken(ctx context.Context, id uuid.UUID, tokenHash string, expiry time.Time) error {
	const query = `UPDATE admins SET reset_token_hash = $1, reset_token_expiry = $2 WHERE id = $3`
	_, err := s.pool.Exec(ctx, query, tokenHash, expiry, id)
	return err
}

// UpdatePassword replaces the password hash and clears any pending reset token.
func (s *AdminStore) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	const query = `
		UPDATE admins
		SET password_hash = $1, reset_token_hash = '', reset_token_expiry = NULL
		WHERE id = $2
	`
	_, err := s.pool.Exec(ctx, query, passwordHash, id)
	return err
}

func scanAdmin(row pgx.Row) (*Admin, error) {
	var (
		admin  Admin
		expiry pgtype.Timestamptz
	)
	err := row.Scan(
		&admin.ID, &admin.Username, &admin.Email, &admin.PasswordHash,
		&admin.ResetTokenHash, &expiry, &admin.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if expiry.Valid {
		admin.ResetTokenExpiry = expiry.Time
	}
	return &admin, nil
}
