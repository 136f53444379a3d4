package vocabulary

import (
	"context"
	"fmt"

	"github.com/kotoba-app/kotoba-backend/internal/domain"
	"github.com/kotoba-app/kotoba-backend/internal/listproc"
	"github.com/kotoba-app/kotoba-backend/pkg/ctxutil"
)

// List runs the user's full word collection through the filter/sort/range
// pipeline. The query is the complete UI state; the only state kept between
// calls is the frozen range order, held by the user's processor.
func (s *Service) List(ctx context.Context, q listproc.Query) ([]domain.Word, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	words, err := s.words.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}

	return s.processorFor(userID).Apply(words, q), nil
}

// Get returns a single word.
func (s *Service) Get(ctx context.Context, id string) (domain.Word, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Word{}, domain.ErrUnauthorized
	}

	wordID, err := parseID(id)
	if err != nil {
		return domain.Word{}, err
	}

	w, err := s.words.GetByID(ctx, userID, wordID)
	if err != nil {
		return domain.Word{}, fmt.Errorf("get word: %w", err)
	}
	return w, nil
}
