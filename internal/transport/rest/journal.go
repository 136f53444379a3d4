package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/kotoba-app/kotoba-backend/internal/domain"
)

// journalService defines the minimal interface needed by JournalHandler.
type journalService interface {
	Save(ctx context.Context, date, content string) (domain.JournalEntry, error)
	Get(ctx context.Context, date string) (domain.JournalEntry, error)
	ListDates(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, date string) error
}

// JournalHandler serves the daily journal REST endpoints.
type JournalHandler struct {
	svc journalService
	log *slog.Logger
}

// NewJournalHandler creates a JournalHandler.
func NewJournalHandler(svc journalService, logger *slog.Logger) *JournalHandler {
	return &JournalHandler{svc: svc, log: logger.With("handler", "journal")}
}

type journalEntryPayload struct {
	Date      string     `json:"date"`
	Content   string     `json:"content"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func toJournalPayload(e domain.JournalEntry) journalEntryPayload {
	p := journalEntryPayload{Date: e.Date, Content: e.Content}
	if !e.UpdatedAt.IsZero() {
		updated := e.UpdatedAt
		p.UpdatedAt = &updated
	}
	return p
}

// ListDates handles GET /v1/journal.
func (h *JournalHandler) ListDates(w http.ResponseWriter, r *http.Request) {
	dates, err := h.svc.ListDates(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if dates == nil {
		dates = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"dates": dates})
}

// Get handles GET /v1/journal/{date}.
func (h *JournalHandler) Get(w http.ResponseWriter, r *http.Request) {
	entry, err := h.svc.Get(r.Context(), r.PathValue("date"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toJournalPayload(entry))
}

type journalSaveRequest struct {
	Content string `json:"content"`
}

// Save handles PUT /v1/journal/{date}.
func (h *JournalHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req journalSaveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	entry, err := h.svc.Save(r.Context(), r.PathValue("date"), req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toJournalPayload(entry))
}

// Delete handles DELETE /v1/journal/{date}.
func (h *JournalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("date")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
