// Package word implements the vocabulary repository using PostgreSQL.
// Queries are built with squirrel; rows carry part-of-speech tags as a text
// array and examples as a jsonb document.
package word

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/kotoba-app/kotoba-backend/internal/adapter/postgres"
	"github.com/kotoba-app/kotoba-backend/internal/domain"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var wordColumns = []string{
	"id", "user_id", "english", "meaning", "core_image", "category",
	"part_of_speech", "toeic_level", "status", "examples", "comment", "created_at",
}

// Repo provides word persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new word repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ListByUser returns every word the user owns, newest first. Filtering,
// sorting, and range selection happen in memory above this layer.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Word, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(wordColumns...).
		From("words").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(err, "word", userID)
	}
	defer rows.Close()

	words := make([]domain.Word, 0, 64)
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, mapError(err, "word", userID)
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "word", userID)
	}
	return words, nil
}

// GetByID returns a word by primary key filtered by user_id.
func (r *Repo) GetByID(ctx context.Context, userID, wordID uuid.UUID) (domain.Word, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(wordColumns...).
		From("words").
		Where(squirrel.Eq{"id": wordID, "user_id": userID}).
		ToSql()
	if err != nil {
		return domain.Word{}, fmt.Errorf("build get query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return domain.Word{}, mapError(err, "word", wordID)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return domain.Word{}, mapError(err, "word", wordID)
		}
		return domain.Word{}, mapError(pgx.ErrNoRows, "word", wordID)
	}
	w, err := scanWord(rows)
	if err != nil {
		return domain.Word{}, mapError(err, "word", wordID)
	}
	return w, nil
}

// Create inserts a word.
func (r *Repo) Create(ctx context.Context, w domain.Word) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	examples, err := marshalExamples(w.Examples)
	if err != nil {
		return fmt.Errorf("word %s: %w", w.ID, err)
	}

	sql, args, err := psql.Insert("words").
		Columns(wordColumns...).
		Values(w.ID, w.UserID, w.English, w.Meaning, w.CoreImage, w.Category.String(),
			posToStrings(w.PartOfSpeech), toeicToDB(w.ToeicLevel), w.Status.String(),
			examples, w.Comment, w.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return mapError(err, "word", w.ID)
	}
	return nil
}

// Update replaces the mutable fields of a word, keyed by id and user_id.
func (r *Repo) Update(ctx context.Context, w domain.Word) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	examples, err := marshalExamples(w.Examples)
	if err != nil {
		return fmt.Errorf("word %s: %w", w.ID, err)
	}

	sql, args, err := psql.Update("words").
		Set("english", w.English).
		Set("meaning", w.Meaning).
		Set("core_image", w.CoreImage).
		Set("category", w.Category.String()).
		Set("part_of_speech", posToStrings(w.PartOfSpeech)).
		Set("toeic_level", toeicToDB(w.ToeicLevel)).
		Set("status", w.Status.String()).
		Set("examples", examples).
		Set("comment", w.Comment).
		Where(squirrel.Eq{"id": w.ID, "user_id": w.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return mapError(err, "word", w.ID)
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "word", w.ID)
	}
	return nil
}

// UpdateStatus sets only the learning status of a word.
func (r *Repo) UpdateStatus(ctx context.Context, userID, wordID uuid.UUID, status domain.Status) error {
	return r.updateColumn(ctx, userID, wordID, "status", status.String())
}

// UpdateComment sets only the free-form comment of a word.
func (r *Repo) UpdateComment(ctx context.Context, userID, wordID uuid.UUID, comment string) error {
	return r.updateColumn(ctx, userID, wordID, "comment", comment)
}

func (r *Repo) updateColumn(ctx context.Context, userID, wordID uuid.UUID, column string, value any) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Update("words").
		Set(column, value).
		Where(squirrel.Eq{"id": wordID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return mapError(err, "word", wordID)
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "word", wordID)
	}
	return nil
}

// Delete removes a word, keyed by id and user_id.
func (r *Repo) Delete(ctx context.Context, userID, wordID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Delete("words").
		Where(squirrel.Eq{"id": wordID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return mapError(err, "word", wordID)
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "word", wordID)
	}
	return nil
}

// CreateBatch inserts many words in one round trip using a pgx batch.
// Used by the bulk generation flow; the caller wraps it in a transaction.
func (r *Repo) CreateBatch(ctx context.Context, words []domain.Word) error {
	if len(words) == 0 {
		return nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for _, w := range words {
		examples, err := marshalExamples(w.Examples)
		if err != nil {
			return fmt.Errorf("word %s: %w", w.ID, err)
		}
		sql, args, err := psql.Insert("words").
			Columns(wordColumns...).
			Values(w.ID, w.UserID, w.English, w.Meaning, w.CoreImage, w.Category.String(),
				posToStrings(w.PartOfSpeech), toeicToDB(w.ToeicLevel), w.Status.String(),
				examples, w.Comment, w.CreatedAt).
			ToSql()
		if err != nil {
			return fmt.Errorf("build batch insert: %w", err)
		}
		batch.Queue(sql, args...)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	for i := range words {
		if _, err := results.Exec(); err != nil {
			return mapError(err, "word", words[i].ID)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

type exampleRow struct {
	Sentence    string `json:"sentence"`
	Translation string `json:"translation"`
}

func scanWord(rows pgx.Rows) (domain.Word, error) {
	var (
		w        domain.Word
		category string
		pos      []string
		toeic    *int
		status   string
		examples []byte
	)

	err := rows.Scan(&w.ID, &w.UserID, &w.English, &w.Meaning, &w.CoreImage, &category,
		&pos, &toeic, &status, &examples, &w.Comment, &w.CreatedAt)
	if err != nil {
		return domain.Word{}, fmt.Errorf("scan word row: %w", err)
	}

	w.Category = domain.Category(category)
	w.Status = domain.Status(status)
	w.PartOfSpeech = make([]domain.PartOfSpeech, len(pos))
	for i, p := range pos {
		w.PartOfSpeech[i] = domain.PartOfSpeech(p)
	}
	if toeic != nil {
		lvl := domain.ToeicLevel(*toeic)
		w.ToeicLevel = &lvl
	}

	var exRows []exampleRow
	if err := json.Unmarshal(examples, &exRows); err != nil {
		return domain.Word{}, fmt.Errorf("decode examples: %w", err)
	}
	w.Examples = make([]domain.Example, len(exRows))
	for i, ex := range exRows {
		w.Examples[i] = domain.Example{Sentence: ex.Sentence, Translation: ex.Translation}
	}

	return w, nil
}

func marshalExamples(examples []domain.Example) ([]byte, error) {
	exRows := make([]exampleRow, len(examples))
	for i, ex := range examples {
		exRows[i] = exampleRow{Sentence: ex.Sentence, Translation: ex.Translation}
	}
	data, err := json.Marshal(exRows)
	if err != nil {
		return nil, fmt.Errorf("encode examples: %w", err)
	}
	return data, nil
}

func posToStrings(pos []domain.PartOfSpeech) []string {
	out := make([]string, len(pos))
	for i, p := range pos {
		out[i] = p.String()
	}
	return out
}

func toeicToDB(lvl *domain.ToeicLevel) *int {
	if lvl == nil {
		return nil
	}
	v := int(*lvl)
	return &v
}

// mapError converts pgx/pgconn errors to domain errors.
// context.DeadlineExceeded and context.Canceled are NOT mapped — they pass through.
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
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
