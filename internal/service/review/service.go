// Package review moves words along the learning-status ladder in response
// to review outcomes.
package review

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kotoba-app/kotoba-backend/internal/domain"
	"github.com/kotoba-app/kotoba-backend/pkg/ctxutil"
)

type wordRepo interface {
	GetByID(ctx context.Context, userID, wordID uuid.UUID) (domain.Word, error)
	UpdateStatus(ctx context.Context, userID, wordID uuid.UUID, status domain.Status) error
}

// Service applies review outcomes to word statuses.
type Service struct {
	log   *slog.Logger
	words wordRepo
}

// New creates the review service.
func New(logger *slog.Logger, words wordRepo) *Service {
	return &Service{
		log:   logger.With("service", "review"),
		words: words,
	}
}

// Apply records one review outcome: remembered promotes the word one step
// toward Mastered, forgot demotes it one step toward Beginner. Both ends of
// the ladder clamp. Returns the resulting status.
func (s *Service) Apply(ctx context.Context, id string, action domain.ReviewAction) (domain.Status, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return "", domain.ErrUnauthorized
	}

	if !action.IsValid() {
		return "", domain.NewValidationError("action", "unknown value")
	}
	wordID, err := uuid.Parse(id)
	if err != nil {
		return "", domain.NewValidationError("id", "not a valid UUID")
	}

	w, err := s.words.GetByID(ctx, userID, wordID)
	if err != nil {
		return "", fmt.Errorf("review word: %w", err)
	}

	next := w.Status
	switch action {
	case domain.ReviewActionRemembered:
		next = w.Status.Promote()
	case domain.ReviewActionForgot:
		next = w.Status.Demote()
	}

	if next != w.Status {
		if err := s.words.UpdateStatus(ctx, userID, wordID, next); err != nil {
			return "", fmt.Errorf("review word: %w", err)
		}
	}

	s.log.InfoContext(ctx, "review applied",
		slog.String("word_id", wordID.String()),
		slog.String("action", action.String()),
		slog.String("status", next.String()),
	)
	return next, nil
}
