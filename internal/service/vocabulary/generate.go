package vocabulary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kotoba-app/kotoba-backend/internal/domain"
	"github.com/kotoba-app/kotoba-backend/pkg/ctxutil"
)

// Generate produces full word records for a list of raw English forms via
// the generative-language collaborator and stores them in one transaction.
// Draft fields that fail domain validation degrade to safe defaults rather
// than rejecting the whole batch.
func (s *Service) Generate(ctx context.Context, input GenerateInput) ([]domain.Word, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if s.generator == nil {
		return nil, fmt.Errorf("generate words: %w", domain.ErrUnavailable)
	}
	if err := input.Validate(s.genCfg.MaxWordsPerJob); err != nil {
		return nil, err
	}

	requested := make([]string, 0, len(input.Words))
	for _, w := range input.Words {
		if t := strings.TrimSpace(w); t != "" {
			requested = append(requested, t)
		}
	}

	genCtx, cancel := context.WithTimeout(ctx, s.genCfg.RequestTimeout)
	defer cancel()

	drafts, err := s.generator.GenerateWords(genCtx, requested, s.genCfg.TargetLanguage)
	if err != nil {
		return nil, fmt.Errorf("generate words: %w: %v", domain.ErrUnavailable, err)
	}

	now := time.Now().UTC()
	words := make([]domain.Word, 0, len(drafts))
	for _, d := range drafts {
		if strings.TrimSpace(d.English) == "" {
			continue
		}
		w := domain.Word{
			ID:        uuid.New(),
			UserID:    userID,
			English:   d.English,
			Meaning:   d.Meaning,
			CoreImage: d.CoreImage,
			Category:  domain.Category(d.Category),
			Comment:   "",
			CreatedAt: now,
		}
		if !w.Category.IsValid() {
			w.Category = domain.CategoryOther
		}
		for _, p := range d.PartOfSpeech {
			pos := domain.PartOfSpeech(p)
			if pos.IsValid() {
				w.PartOfSpeech = append(w.PartOfSpeech, pos)
			}
		}
		if lvl := domain.ToeicLevel(d.ToeicLevel); lvl.IsValid() {
			w.ToeicLevel = &lvl
		}
		for _, ex := range d.Examples {
			w.Examples = append(w.Examples, domain.Example{Sentence: ex.Sentence, Translation: ex.Translation})
		}
		w.ApplyDefaults()
		words = append(words, w)
	}

	if len(words) == 0 {
		return nil, fmt.Errorf("generate words: %w: no usable drafts", domain.ErrUnavailable)
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.words.CreateBatch(ctx, words)
	})
	if err != nil {
		return nil, fmt.Errorf("store generated words: %w", err)
	}

	s.log.InfoContext(ctx, "words generated",
		slog.Int("requested", len(requested)),
		slog.Int("stored", len(words)),
	)
	return words, nil
}
