// Package settings implements the user settings repository using PostgreSQL.
package settings

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

// Repo provides user settings persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new settings repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Get returns the user's settings.
func (r *Repo) Get(ctx context.Context, userID uuid.UUID) (domain.UserSettings, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select("user_id", "language", "generation_api_key", "generation_model", "storage_dsn").
		From("user_settings").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return domain.UserSettings{}, fmt.Errorf("build get query: %w", err)
	}

	var s domain.UserSettings
	row := q.QueryRow(ctx, sql, args...)
	if err := row.Scan(&s.UserID, &s.Language, &s.GenerationAPIKey, &s.GenerationModel, &s.StorageDSN); err != nil {
		return domain.UserSettings{}, mapError(err, "settings", userID)
	}
	return s, nil
}

// Save writes the user's settings, creating the row on first save.
func (r *Repo) Save(ctx context.Context, s domain.UserSettings) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Insert("user_settings").
		Columns("user_id", "language", "generation_api_key", "generation_model", "storage_dsn", "updated_at").
		Values(s.UserID, s.Language, s.GenerationAPIKey, s.GenerationModel, s.StorageDSN, time.Now().UTC()).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			language = EXCLUDED.language,
			generation_api_key = EXCLUDED.generation_api_key,
			generation_model = EXCLUDED.generation_model,
			storage_dsn = EXCLUDED.storage_dsn,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build save query: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return mapError(err, "settings", s.UserID)
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
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
