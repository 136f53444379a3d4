package vocabulary

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kotoba-app/kotoba-backend/internal/domain"
	"github.com/kotoba-app/kotoba-backend/pkg/ctxutil"
)

// Update replaces a word's editable fields. Status and creation time are
// preserved; status changes only through review actions.
func (s *Service) Update(ctx context.Context, input UpdateWordInput) (domain.Word, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Word{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return domain.Word{}, err
	}

	existing, err := s.words.GetByID(ctx, userID, input.ID)
	if err != nil {
		return domain.Word{}, fmt.Errorf("update word: %w", err)
	}

	w := existing
	w.English = input.English
	w.Meaning = input.Meaning
	w.CoreImage = input.CoreImage
	w.Category = input.Category
	if w.Category == "" {
		w.Category = domain.CategoryOther
	}
	w.PartOfSpeech = input.PartOfSpeech
	w.ToeicLevel = nil
	if input.ToeicLevel != nil {
		lvl := domain.ToeicLevel(*input.ToeicLevel)
		w.ToeicLevel = &lvl
	}
	w.Examples = make([]domain.Example, len(input.Examples))
	for i, ex := range input.Examples {
		w.Examples[i] = domain.Example{Sentence: ex.Sentence, Translation: ex.Translation}
	}
	w.Comment = input.Comment
	w.ApplyDefaults()

	if err := s.words.Update(ctx, w); err != nil {
		return domain.Word{}, fmt.Errorf("update word: %w", err)
	}

	s.log.InfoContext(ctx, "word updated", slog.String("word_id", w.ID.String()))
	return w, nil
}

// UpdateComment sets only the free-form comment of a word.
func (s *Service) UpdateComment(ctx context.Context, id string, comment string) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	wordID, err := parseID(id)
	if err != nil {
		return err
	}
	if len(comment) > maxTextLen {
		return domain.NewValidationError("comment", "too long")
	}

	if err := s.words.UpdateComment(ctx, userID, wordID, comment); err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	return nil
}

// Delete removes a word permanently.
func (s *Service) Delete(ctx context.Context, id string) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	wordID, err := parseID(id)
	if err != nil {
		return err
	}

	if err := s.words.Delete(ctx, userID, wordID); err != nil {
		return fmt.Errorf("delete word: %w", err)
	}

	s.log.InfoContext(ctx, "word deleted", slog.String("word_id", wordID.String()))
	return nil
}
