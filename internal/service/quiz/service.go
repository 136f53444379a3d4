// Package quiz runs the conversational vocabulary quiz. The assistant asks
// for words in the user's native language; graded replies carry a verdict
// marker and name the target word in brackets, and correct answers promote
// the word's learning status.
package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/kotoba-app/kotoba-backend/internal/domain"
	"github.com/kotoba-app/kotoba-backend/internal/generation"
	"github.com/kotoba-app/kotoba-backend/pkg/ctxutil"
)

// maxHistoryTurns bounds the conversation sent back to the API.
const maxHistoryTurns = 40

type wordRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Word, error)
	UpdateStatus(ctx context.Context, userID, wordID uuid.UUID, status domain.Status) error
}

type converser interface {
	Converse(ctx context.Context, history []generation.Turn, utterance string, language string) (string, error)
}

// Reply is the outcome of one quiz turn.
type Reply struct {
	Text    string
	Verdict generation.Verdict
	// Word is the graded word when the reply named one that exists in the
	// user's collection. Nil otherwise.
	Word *domain.Word
	// Status is the word's learning status after grading, when Word is set.
	Status domain.Status
}

// Service holds per-user quiz conversations in memory. Conversations do not
// survive a restart; the graded statuses do.
type Service struct {
	log      *slog.Logger
	words    wordRepo
	llm      converser
	language string

	mu       sync.Mutex
	sessions map[uuid.UUID][]generation.Turn
}

// New creates the quiz service. llm may be nil when no API key is
// configured; Turn then reports the collaborator as unavailable.
func New(logger *slog.Logger, words wordRepo, llm converser, language string) *Service {
	return &Service{
		log:      logger.With("service", "quiz"),
		words:    words,
		llm:      llm,
		language: language,
		sessions: make(map[uuid.UUID][]generation.Turn),
	}
}

// Turn sends the user's utterance into their quiz conversation and grades
// the assistant's reply. A correct verdict promotes the named word one step;
// an incorrect verdict demotes it. Replies without a recognizable verdict,
// or naming a word the user does not have, change nothing.
func (s *Service) Turn(ctx context.Context, utterance string) (Reply, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return Reply{}, domain.ErrUnauthorized
	}
	if s.llm == nil {
		return Reply{}, fmt.Errorf("quiz turn: %w", domain.ErrUnavailable)
	}
	if utterance == "" {
		return Reply{}, domain.NewValidationError("utterance", "required")
	}

	history := s.history(userID)

	text, err := s.llm.Converse(ctx, history, utterance, s.language)
	if err != nil {
		return Reply{}, fmt.Errorf("quiz turn: %w: %v", domain.ErrUnavailable, err)
	}

	s.appendTurns(userID,
		generation.Turn{Role: "user", Text: utterance},
		generation.Turn{Role: "assistant", Text: text},
	)

	reply := Reply{Text: text}
	reply.Verdict, reply.Word, reply.Status = s.grade(ctx, userID, text)
	return reply, nil
}

// Reset discards the user's quiz conversation.
func (s *Service) Reset(ctx context.Context) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()
	return nil
}

// grade parses the verdict convention out of the reply and applies it.
// Grading failures are logged, never surfaced: the conversation itself is
// the primary result of a turn.
func (s *Service) grade(ctx context.Context, userID uuid.UUID, text string) (generation.Verdict, *domain.Word, domain.Status) {
	verdict, name := generation.ParseVerdict(text)
	if verdict == generation.VerdictNone || name == "" {
		return verdict, nil, ""
	}

	words, err := s.words.ListByUser(ctx, userID)
	if err != nil {
		s.log.WarnContext(ctx, "grading skipped, word list unavailable", slog.Any("error", err))
		return verdict, nil, ""
	}

	w := generation.MatchWord(words, name)
	if w == nil {
		s.log.DebugContext(ctx, "graded word not in collection", slog.String("word", name))
		return verdict, nil, ""
	}

	next := w.Status
	if verdict == generation.VerdictCorrect {
		next = w.Status.Promote()
	} else {
		next = w.Status.Demote()
	}

	if next != w.Status {
		if err := s.words.UpdateStatus(ctx, userID, w.ID, next); err != nil {
			s.log.WarnContext(ctx, "grading status write failed",
				slog.String("word_id", w.ID.String()),
				slog.Any("error", err),
			)
			return verdict, w, w.Status
		}
	}

	s.log.InfoContext(ctx, "quiz answer graded",
		slog.String("word", w.English),
		slog.String("status", next.String()),
	)
	return verdict, w, next
}

func (s *Service) history(userID uuid.UUID) []generation.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]generation.Turn(nil), s.sessions[userID]...)
}

func (s *Service) appendTurns(userID uuid.UUID, turns ...generation.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session := append(s.sessions[userID], turns...)
	if len(session) > maxHistoryTurns {
		session = session[len(session)-maxHistoryTurns:]
	}
	s.sessions[userID] = session
}
