// Package journal implements the daily journal repository using PostgreSQL.
// Entries are keyed by (user_id, entry_date); writing an existing day
// overwrites it.
package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/kotoba-app/kotoba-backend/internal/adapter/postgres"
	"github.com/kotoba-app/kotoba-backend/internal/domain"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides journal persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new journal repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Upsert writes the entry for its day, replacing any previous content.
func (r *Repo) Upsert(ctx context.Context, e domain.JournalEntry) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	date, err := domain.ParseJournalDate(e.Date)
	if err != nil {
		return fmt.Errorf("journal entry: %w", err)
	}

	sql, args, err := psql.Insert("journal_entries").
		Columns("user_id", "entry_date", "content", "updated_at").
		Values(e.UserID, date, e.Content, e.UpdatedAt).
		Suffix("ON CONFLICT (user_id, entry_date) DO UPDATE SET content = EXCLUDED.content, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert query: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return mapError(err, "journal entry", e.UserID)
	}
	return nil
}

// GetByDate returns the entry for one day.
func (r *Repo) GetByDate(ctx context.Context, userID uuid.UUID, date string) (domain.JournalEntry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	day, err := domain.ParseJournalDate(date)
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("journal entry: %w", err)
	}

	sql, args, err := psql.Select("user_id", "entry_date", "content", "updated_at").
		From("journal_entries").
		Where(squirrel.Eq{"user_id": userID, "entry_date": day}).
		ToSql()
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("build get query: %w", err)
	}

	var (
		e         domain.JournalEntry
		entryDate time.Time
	)
	row := q.QueryRow(ctx, sql, args...)
	if err := row.Scan(&e.UserID, &entryDate, &e.Content, &e.UpdatedAt); err != nil {
		return domain.JournalEntry{}, mapError(err, "journal entry", userID)
	}
	e.Date = entryDate.Format("2006-01-02")
	return e, nil
}

// ListDates returns the days that have an entry, newest first.
func (r *Repo) ListDates(ctx context.Context, userID uuid.UUID) ([]string, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select("entry_date").
		From("journal_entries").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("entry_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(err, "journal entry", userID)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, mapError(err, "journal entry", userID)
		}
		dates = append(dates, d.Format("2006-01-02"))
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "journal entry", userID)
	}
	return dates, nil
}

// Delete removes the entry for one day.
func (r *Repo) Delete(ctx context.Context, userID uuid.UUID, date string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	day, err := domain.ParseJournalDate(date)
	if err != nil {
		return fmt.Errorf("journal entry: %w", err)
	}

	sql, args, err := psql.Delete("journal_entries").
		Where(squirrel.Eq{"user_id": userID, "entry_date": day}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return mapError(err, "journal entry", userID)
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "journal entry", userID)
	}
	return nil
}

// mapError converts pgx/pgconn errors to domain errors.
func mapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
