package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ninhub/internal/blacklist/models"
	"ninhub/internal/platform/postgres"
	"ninhub/pkg/domain"
	"ninhub/pkg/platform/sentinel"
	txcontext "ninhub/pkg/platform/tx"
)

// PostgresStore persists blacklist entries. The partial unique index
// blacklist_active_nin_idx enforces one ACTIVE entry per NIN.
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

const entryColumns = `id, nin, reason, added_by, status, added_at, updated_at, removed_at, removed_by`

func (s *PostgresStore) FindActive(ctx context.Context, nin domain.NIN) (*models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM blacklist WHERE nin = $1 AND status = 'ACTIVE'`
	e, err := scanEntry(s.execer(ctx).QueryRowContext(ctx, query, nin.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find active blacklist entry: %w", err)
	}
	return e, nil
}

func (s *PostgresStore) Insert(ctx context.Context, e *models.Entry) error {
	query := `
		INSERT INTO blacklist (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		e.ID, e.NIN.String(), e.Reason, string(e.AddedBy), string(e.Status),
		e.AddedAt, e.UpdatedAt, e.RemovedAt, string(e.RemovedBy),
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert blacklist entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.Status, actor domain.ActorID, now time.Time) error {
	query := `
		UPDATE blacklist
		SET status = $3,
			updated_at = $4,
			removed_at = CASE WHEN $3 = 'REMOVED' THEN $4 ELSE removed_at END,
			removed_by = CASE WHEN $3 = 'REMOVED' THEN $5 ELSE removed_by END
		WHERE id = $1 AND status = $2
	`
	res, err := s.execer(ctx).ExecContext(ctx, query, id, string(from), string(to), now, string(actor))
	if err != nil {
		return fmt.Errorf("update blacklist status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListActive(ctx context.Context) ([]*models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM blacklist WHERE status = 'ACTIVE' ORDER BY added_at DESC`
	return s.list(ctx, query)
}

func (s *PostgresStore) ListByNIN(ctx context.Context, nin domain.NIN) ([]*models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM blacklist WHERE nin = $1 ORDER BY added_at DESC`
	return s.list(ctx, query, nin.String())
}

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]*models.Entry, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list blacklist entries: %w", err)
	}
	defer rows.Close()

	var out []*models.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blacklist entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blacklist entries: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*models.Entry, error) {
	var (
		e                             models.Entry
		nin, addedBy, status, removed string
		removedAt                     sql.NullTime
	)
	if err := row.Scan(&e.ID, &nin, &e.Reason, &addedBy, &status, &e.AddedAt, &e.UpdatedAt, &removedAt, &removed); err != nil {
		return nil, err
	}
	e.NIN = domain.NIN(nin)
	e.AddedBy = domain.ActorID(addedBy)
	e.Status = models.Status(status)
	e.RemovedBy = domain.ActorID(removed)
	if removedAt.Valid {
		t := removedAt.Time
		e.RemovedAt = &t
	}
	return &e, nil
}
