package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/kotoba-app/kotoba-backend/internal/generation"
	"github.com/kotoba-app/kotoba-backend/internal/service/quiz"
)

// quizService defines the minimal interface needed by QuizHandler.
type quizService interface {
	Turn(ctx context.Context, utterance string) (quiz.Reply, error)
	Reset(ctx context.Context) error
}

// QuizHandler serves the conversational quiz REST endpoints.
type QuizHandler struct {
	svc quizService
	log *slog.Logger
}

// NewQuizHandler creates a QuizHandler.
func NewQuizHandler(svc quizService, logger *slog.Logger) *QuizHandler {
	return &QuizHandler{svc: svc, log: logger.With("handler", "quiz")}
}

type quizTurnRequest struct {
	Utterance string `json:"utterance"`
}

type quizTurnResponse struct {
	Text    string `json:"text"`
	Verdict string `json:"verdict"`
	Word    string `json:"word,omitempty"`
	Status  string `json:"status,omitempty"`
}

// Turn handles POST /v1/quiz/turn.
func (h *QuizHandler) Turn(w http.ResponseWriter, r *http.Request) {
	var req quizTurnRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	reply, err := h.svc.Turn(r.Context(), req.Utterance)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := quizTurnResponse{Text: reply.Text, Verdict: verdictString(reply.Verdict)}
	if reply.Word != nil {
		resp.Word = reply.Word.English
		resp.Status = reply.Status.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

// Reset handles POST /v1/quiz/reset.
func (h *QuizHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Reset(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func verdictString(v generation.Verdict) string {
	switch v {
	case generation.VerdictCorrect:
		return "correct"
	case generation.VerdictIncorrect:
		return "incorrect"
	}
	return "none"
}
