package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SalonStore struct {
	pool *pgxpool.Pool
}

func NewSalonStore(pool *pgxpool.Pool) *SalonStore {
	return &SalonStore{pool: pool}
}

const salonColumns = `
	id, name, location, contact_number, salon_code, username,
	password_hash, encrypted_password, created_at
`

func (s *SalonStore) Create(ctx context.Context, salon *Salon) error {
	const query = `
		INSERT INTO salons (name, location, contact_number, salon_code, username, password_hash, encrypted_password)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	return s.pool.QueryRow(ctx, query,
		salon.Name, salon.Location, salon.ContactNumber, salon.SalonCode,
		salon.Username, salon.PasswordHash, salon.EncryptedPassword,
	).Scan(&salon.ID, &salon.CreatedAt)
}

func (s *SalonStore) GetByID(ctx context.Context, id uuid.UUID) (*Salon, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+salonColumns+` FROM salons WHERE id = $1`, id)
	return scanSalon(row)
}

func (s *SalonStore) GetByCode(ctx context.Context, code string) (*Salon, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+salonColumns+` FROM salons WHERE salon_code = $1`, code)
	return scanSalon(row)
}

func (s *SalonStore) GetByUsername(ctx context.Context, username string) (*Salon, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+salonColumns+` FROM salons WHERE username = $1`, username)
	return scanSalon(row)
}

func (s *SalonStore) List(ctx context.Context) ([]*Salon, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+salonColumns+` FROM salons ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var salons []*Salon
	for rows.Next() {
		salon, err := scanSalon(rows)
		if err != nil {
			return nil, err
		}
		salons = append(salons, salon)
	}
	return salons, rows.Err()
}

func (s *SalonStore) Update(ctx context.Context, id uuid.UUID, name, location, contactNumber string) (*Salon, error) {
	const query = `
		UPDATE salons SET name = $1, location = $2, contact_number = $3
		WHERE id = $4
		RETURNING ` + salonColumns
	row := s.pool.QueryRow(ctx, query, name, location, contactNumber, id)
	return scanSalon(row)
}

func (s *SalonStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM salons WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanSalon(row pgx.Row) (*Salon, error) {
	var salon Salon
	err := row.Scan(
		&salon.ID, &salon.Name, &salon.Location, &salon.ContactNumber,
		&salon.SalonCode, &salon.Username, &salon.PasswordHash,
		&salon.EncryptedPassword, &salon.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &salon, nil
}
