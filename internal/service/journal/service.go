// Package journal implements the daily study journal: one free-form entry
// per calendar day, saved whole.
package journal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kotoba-app/kotoba-backend/internal/domain"
	"github.com/kotoba-app/kotoba-backend/pkg/ctxutil"
)

const maxContentLen = 20000

type journalRepo interface {
	Upsert(ctx context.Context, e domain.JournalEntry) error
	GetByDate(ctx context.Context, userID uuid.UUID, date string) (domain.JournalEntry, error)
	ListDates(ctx context.Context, userID uuid.UUID) ([]string, error)
	Delete(ctx context.Context, userID uuid.UUID, date string) error
}

// Service implements the journal business logic.
type Service struct {
	log     *slog.Logger
	entries journalRepo
}

// New creates the journal service.
func New(logger *slog.Logger, entries journalRepo) *Service {
	return &Service{
		log:     logger.With("service", "journal"),
		entries: entries,
	}
}

// Save writes the entry for a day, replacing any previous content.
func (s *Service) Save(ctx context.Context, date, content string) (domain.JournalEntry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.JournalEntry{}, domain.ErrUnauthorized
	}

	if _, err := domain.ParseJournalDate(date); err != nil {
		return domain.JournalEntry{}, domain.NewValidationError("date", "must be YYYY-MM-DD")
	}
	if len(content) > maxContentLen {
		return domain.JournalEntry{}, domain.NewValidationError("content", "too long")
	}

	e := domain.JournalEntry{
		UserID:    userID,
		Date:      date,
		Content:   content,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.entries.Upsert(ctx, e); err != nil {
		return domain.JournalEntry{}, fmt.Errorf("save journal entry: %w", err)
	}

	s.log.InfoContext(ctx, "journal entry saved", slog.String("date", date))
	return e, nil
}

// Get returns the entry for a day. A day without an entry returns an empty
// entry rather than an error: every day has a page, written or not.
func (s *Service) Get(ctx context.Context, date string) (domain.JournalEntry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.JournalEntry{}, domain.ErrUnauthorized
	}

	if _, err := domain.ParseJournalDate(date); err != nil {
		return domain.JournalEntry{}, domain.NewValidationError("date", "must be YYYY-MM-DD")
	}

	e, err := s.entries.GetByDate(ctx, userID, date)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.JournalEntry{UserID: userID, Date: date}, nil
	}
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("get journal entry: %w", err)
	}
	return e, nil
}

// ListDates returns the days that have an entry, newest first.
func (s *Service) ListDates(ctx context.Context) ([]string, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	dates, err := s.entries.ListDates(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list journal dates: %w", err)
	}
	return dates, nil
}

// Delete removes the entry for a day.
func (s *Service) Delete(ctx context.Context, date string) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if _, err := domain.ParseJournalDate(date); err != nil {
		return domain.NewValidationError("date", "must be YYYY-MM-DD")
	}

	if err := s.entries.Delete(ctx, userID, date); err != nil {
		return fmt.Errorf("delete journal entry: %w", err)
	}
	return nil
}
