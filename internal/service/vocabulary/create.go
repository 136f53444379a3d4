package vocabulary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kotoba-app/kotoba-backend/internal/domain"
	"github.com/kotoba-app/kotoba-backend/pkg/ctxutil"
)

// Create registers a new word. Creation-time defaults are applied here:
// status starts at Beginner, multi-word English forms get the idiom tag,
// and an empty part-of-speech set falls back to Other.
func (s *Service) Create(ctx context.Context, input CreateWordInput) (domain.Word, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Word{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return domain.Word{}, err
	}

	w := buildWord(userID, input)
	w.ApplyDefaults()

	if err := s.words.Create(ctx, w); err != nil {
		return domain.Word{}, fmt.Errorf("create word: %w", err)
	}

	s.log.InfoContext(ctx, "word created",
		slog.String("word_id", w.ID.String()),
		slog.String("english", w.English),
	)
	return w, nil
}

func buildWord(userID uuid.UUID, input CreateWordInput) domain.Word {
	w := domain.Word{
		ID:           uuid.New(),
		UserID:       userID,
		English:      input.English,
		Meaning:      input.Meaning,
		CoreImage:    input.CoreImage,
		Category:     input.Category,
		PartOfSpeech: input.PartOfSpeech,
		Comment:      input.Comment,
		CreatedAt:    time.Now().UTC(),
	}
	if w.Category == "" {
		w.Category = domain.CategoryOther
	}
	if input.ToeicLevel != nil {
		lvl := domain.ToeicLevel(*input.ToeicLevel)
		w.ToeicLevel = &lvl
	}
	w.Examples = make([]domain.Example, len(input.Examples))
	for i, ex := range input.Examples {
		w.Examples[i] = domain.Example{Sentence: ex.Sentence, Translation: ex.Translation}
	}
	return w
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, domain.NewValidationError("id", "not a valid UUID")
	}
	return parsed, nil
}
