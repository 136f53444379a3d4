// Package vocabulary implements the word list business logic: CRUD, the
// filter/sort/range list pipeline, and bulk generation.
package vocabulary

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/kotoba-app/kotoba-backend/internal/config"
	"github.com/kotoba-app/kotoba-backend/internal/domain"
	"github.com/kotoba-app/kotoba-backend/internal/generation"
	"github.com/kotoba-app/kotoba-backend/internal/listproc"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type wordRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Word, error)
	GetByID(ctx context.Context, userID, wordID uuid.UUID) (domain.Word, error)
	Create(ctx context.Context, w domain.Word) error
	CreateBatch(ctx context.Context, words []domain.Word) error
	Update(ctx context.Context, w domain.Word) error
	UpdateStatus(ctx context.Context, userID, wordID uuid.UUID, status domain.Status) error
	UpdateComment(ctx context.Context, userID, wordID uuid.UUID, comment string) error
	Delete(ctx context.Context, userID, wordID uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type wordGenerator interface {
	GenerateWords(ctx context.Context, words []string, language string) ([]generation.WordDraft, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the vocabulary business logic. List state (the frozen
// range order) lives here, one processor per user.
type Service struct {
	log       *slog.Logger
	words     wordRepo
	tx        txManager
	generator wordGenerator
	genCfg    config.GenerationConfig

	mu    sync.Mutex
	procs map[uuid.UUID]*listproc.Processor
}

// New creates the vocabulary service. generator may be nil when no API key
// is configured; Generate then reports the collaborator as unavailable.
func New(logger *slog.Logger, words wordRepo, tx txManager, generator wordGenerator, genCfg config.GenerationConfig) *Service {
	return &Service{
		log:       logger.With("service", "vocabulary"),
		words:     words,
		tx:        tx,
		generator: generator,
		genCfg:    genCfg,
		procs:     make(map[uuid.UUID]*listproc.Processor),
	}
}

// processorFor returns the user's list processor, creating it on first use.
func (s *Service) processorFor(userID uuid.UUID) *listproc.Processor {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.procs[userID]
	if !ok {
		p = listproc.New()
		s.procs[userID] = p
	}
	return p
}
