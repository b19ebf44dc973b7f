package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ninhub/internal/platform/postgres"
	"ninhub/internal/registry/models"
	"ninhub/pkg/domain"
	"ninhub/pkg/platform/sentinel"
	txcontext "ninhub/pkg/platform/tx"
)

// PostgresStore persists citizens in PostgreSQL. Every method joins the
// transaction carried in context when present.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

const citizenColumns = `nin, first_name, middle_name, last_name, date_of_birth, gender,
	height, address, photo_ref, expiry_date, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, c *models.Citizen) error {
	query := `
		INSERT INTO citizens (` + citizenColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		c.NIN.String(), c.FirstName, c.MiddleName, c.LastName, c.DateOfBirth, c.Gender,
		c.Height, c.Address, c.PhotoRef, c.ExpiryDate, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert citizen: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByNIN(ctx context.Context, nin domain.NIN) (*models.Citizen, error) {
	query := `SELECT ` + citizenColumns + ` FROM citizens WHERE nin = $1`
	c, err := scanCitizen(s.execer(ctx).QueryRowContext(ctx, query, nin.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find citizen: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) Update(ctx context.Context, c *models.Citizen) error {
	query := `
		UPDATE citizens
		SET first_name = $2, middle_name = $3, last_name = $4, date_of_birth = $5,
			gender = $6, height = $7, address = $8, photo_ref = $9, expiry_date = $10,
			updated_at = $11
		WHERE nin = $1
	`
	res, err := s.execer(ctx).ExecContext(ctx, query,
		c.NIN.String(), c.FirstName, c.MiddleName, c.LastName, c.DateOfBirth,
		c.Gender, c.Height, c.Address, c.PhotoRef, c.ExpiryDate, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update citizen: %w", err)
	}
	return requireOneRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, nin domain.NIN) error {
	res, err := s.execer(ctx).ExecContext(ctx, `DELETE FROM citizens WHERE nin = $1`, nin.String())
	if err != nil {
		return fmt.Errorf("delete citizen: %w", err)
	}
	return requireOneRow(res)
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Citizen, error) {
	query := `SELECT ` + citizenColumns + ` FROM citizens ORDER BY created_at DESC, nin`
	rows, err := s.execer(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list citizens: %w", err)
	}
	defer rows.Close()

	var out []*models.Citizen
	for rows.Next() {
		c, err := scanCitizen(rows)
		if err != nil {
			return nil, fmt.Errorf("scan citizen: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate citizens: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.execer(ctx).QueryRowContext(ctx, `SELECT COUNT(*) FROM citizens`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count citizens: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCitizen(row rowScanner) (*models.Citizen, error) {
	var (
		c      models.Citizen
		nin    string
		dob    time.Time
		expiry sql.NullTime
	)
	err := row.Scan(&nin, &c.FirstName, &c.MiddleName, &c.LastName, &dob, &c.Gender,
		&c.Height, &c.Address, &c.PhotoRef, &expiry, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.NIN = domain.NIN(nin)
	c.DateOfBirth = dob.Format(models.DateLayout)
	if expiry.Valid {
		e := expiry.Time.Format(models.DateLayout)
		c.ExpiryDate = &e
	}
	return &c, nil
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
