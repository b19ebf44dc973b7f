package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"ninhub/internal/linkage/models"
	"ninhub/internal/platform/postgres"
	"ninhub/pkg/domain"
	"ninhub/pkg/platform/sentinel"
	txcontext "ninhub/pkg/platform/tx"
)

// PostgresStore persists linkages in one table keyed by (domain, key).
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

const recordColumns = `domain, key, nin, status, account_type, balance, created_at, updated_at`

func (s *PostgresStore) CountByNIN(ctx context.Context, d models.Domain, nin domain.NIN) (int, error) {
	var n int
	err := s.execer(ctx).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM linkages WHERE domain = $1 AND nin = $2`, string(d), nin.String(),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count linkages: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) FindByKey(ctx context.Context, d models.Domain, key string) (*models.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM linkages WHERE domain = $1 AND key = $2`
	r, err := scanRecord(s.execer(ctx).QueryRowContext(ctx, query, string(d), key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find linkage: %w", err)
	}
	return r, nil
}

// Insert adds a record; the (domain, key) primary key turns a concurrent
// duplicate into sentinel.ErrConflict.
func (s *PostgresStore) Insert(ctx context.Context, r *models.Record) error {
	query := `
		INSERT INTO linkages (` + recordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		string(r.Domain), r.Key, r.NIN.String(), string(r.Status),
		string(r.AccountType), r.Balance, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert linkage: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, d models.Domain, key string, status models.Status, now time.Time) error {
	res, err := s.execer(ctx).ExecContext(ctx,
		`UPDATE linkages SET status = $3, updated_at = $4 WHERE domain = $1 AND key = $2`,
		string(d), key, string(status), now,
	)
	if err != nil {
		return fmt.Errorf("update linkage status: %w", err)
	}
	return requireOneRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, d models.Domain, key string) error {
	res, err := s.execer(ctx).ExecContext(ctx,
		`DELETE FROM linkages WHERE domain = $1 AND key = $2`, string(d), key,
	)
	if err != nil {
		return fmt.Errorf("delete linkage: %w", err)
	}
	return requireOneRow(res)
}

func (s *PostgresStore) List(ctx context.Context, d models.Domain) ([]*models.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM linkages WHERE domain = $1 ORDER BY created_at DESC, key`
	return s.list(ctx, query, string(d))
}

func (s *PostgresStore) Search(ctx context.Context, d models.Domain, q string) ([]*models.Record, error) {
	pattern := "%" + escapeLike(strings.ToUpper(strings.TrimSpace(q))) + "%"
	query := `
		SELECT ` + recordColumns + `
		FROM linkages
		WHERE domain = $1 AND (UPPER(key) LIKE $2 OR nin LIKE $2)
		ORDER BY created_at DESC, key
	`
	return s.list(ctx, query, string(d), pattern)
}

// Summaries aggregates per NIN with array_agg so a single round trip feeds
// the anomaly scan.
func (s *PostgresStore) Summaries(ctx context.Context, d models.Domain, since time.Time) ([]models.Summary, error) {
	query := `
		SELECT nin,
			COUNT(*),
			array_agg(key ORDER BY created_at, key),
			COUNT(*) FILTER (WHERE created_at >= $2),
			COALESCE(array_agg(key ORDER BY created_at, key) FILTER (WHERE created_at >= $2), '{}')
		FROM linkages
		WHERE domain = $1
		GROUP BY nin
		ORDER BY nin
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query, string(d), since)
	if err != nil {
		return nil, fmt.Errorf("summarize linkages: %w", err)
	}
	defer rows.Close()

	var out []models.Summary
	for rows.Next() {
		var (
			sum        models.Summary
			nin        string
			keys       pq.StringArray
			recentKeys pq.StringArray
		)
		if err := rows.Scan(&nin, &sum.Total, &keys, &sum.Recent, &recentKeys); err != nil {
			return nil, fmt.Errorf("scan linkage summary: %w", err)
		}
		sum.NIN = domain.NIN(nin)
		sum.Keys = []string(keys)
		if len(recentKeys) > 0 {
			sum.RecentKeys = []string(recentKeys)
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate linkage summaries: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Stats(ctx context.Context, d models.Domain, now time.Time) (*models.Stats, error) {
	dayStart, weekStart := statsWindows(now)
	stats := &models.Stats{ByStatus: make(map[models.Status]int)}

	err := s.execer(ctx).QueryRowContext(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE created_at >= $2),
			COUNT(*) FILTER (WHERE created_at >= $3)
		FROM linkages WHERE domain = $1
	`, string(d), dayStart, weekStart).Scan(&stats.Total, &stats.Today, &stats.LastSevenDays)
	if err != nil {
		return nil, fmt.Errorf("linkage totals: %w", err)
	}

	if err := s.groupCount(ctx, `SELECT status, COUNT(*) FROM linkages WHERE domain = $1 GROUP BY status`, d,
		func(k string, n int) { stats.ByStatus[models.Status(k)] = n }); err != nil {
		return nil, err
	}

	if d == models.DomainBank {
		stats.ByAccountType = make(map[models.AccountType]int)
		if err := s.groupCount(ctx, `SELECT account_type, COUNT(*) FROM linkages WHERE domain = $1 AND account_type <> '' GROUP BY account_type`, d,
			func(k string, n int) { stats.ByAccountType[models.AccountType(k)] = n }); err != nil {
			return nil, err
		}
	}
	return stats, nil
}

func (s *PostgresStore) groupCount(ctx context.Context, query string, d models.Domain, put func(string, int)) error {
	rows, err := s.execer(ctx).QueryContext(ctx, query, string(d))
	if err != nil {
		return fmt.Errorf("linkage group count: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			k string
			n int
		)
		if err := rows.Scan(&k, &n); err != nil {
			return fmt.Errorf("scan group count: %w", err)
		}
		put(k, n)
	}
	return rows.Err()
}

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]*models.Record, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list linkages: %w", err)
	}
	defer rows.Close()

	var out []*models.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan linkage: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate linkages: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.Record, error) {
	var (
		r                             models.Record
		dom, nin, status, accountType string
	)
	if err := row.Scan(&dom, &r.Key, &nin, &status, &accountType, &r.Balance, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	r.Domain = models.Domain(dom)
	r.NIN = domain.NIN(nin)
	r.Status = models.Status(status)
	r.AccountType = models.AccountType(accountType)
	return &r, nil
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

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
