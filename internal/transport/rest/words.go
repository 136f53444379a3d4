package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/kotoba-app/kotoba-backend/internal/domain"
	"github.com/kotoba-app/kotoba-backend/internal/listproc"
	"github.com/kotoba-app/kotoba-backend/internal/service/vocabulary"
)

// vocabularyService defines the minimal interface needed by WordsHandler.
type vocabularyService interface {
	List(ctx context.Context, q listproc.Query) ([]domain.Word, error)
	Get(ctx context.Context, id string) (domain.Word, error)
	Create(ctx context.Context, input vocabulary.CreateWordInput) (domain.Word, error)
	Update(ctx context.Context, input vocabulary.UpdateWordInput) (domain.Word, error)
	UpdateComment(ctx context.Context, id, comment string) error
	Delete(ctx context.Context, id string) error
	Generate(ctx context.Context, input vocabulary.GenerateInput) ([]domain.Word, error)
}

// reviewService applies review outcomes.
type reviewService interface {
	Apply(ctx context.Context, id string, action domain.ReviewAction) (domain.Status, error)
}

// WordsHandler serves the word list REST endpoints.
type WordsHandler struct {
	vocab  vocabularyService
	review reviewService
	log    *slog.Logger
}

// NewWordsHandler creates a WordsHandler.
func NewWordsHandler(vocab vocabularyService, review reviewService, logger *slog.Logger) *WordsHandler {
	return &WordsHandler{vocab: vocab, review: review, log: logger.With("handler", "words")}
}

// wordPayload is the wire shape of a word in requests and responses.
type wordPayload struct {
	ID               string           `json:"id,omitempty"`
	English          string           `json:"english"`
	Meaning          string           `json:"meaning,omitempty"`
	CoreImage        string           `json:"coreImage,omitempty"`
	Category         string           `json:"category,omitempty"`
	PartOfSpeech     []string         `json:"partOfSpeech,omitempty"`
	ToeicLevel       *int             `json:"toeicLevel,omitempty"`
	Status           string           `json:"status,omitempty"`
	Examples         []examplePayload `json:"examples,omitempty"`
	Comment          string           `json:"comment,omitempty"`
	CreatedAt        *time.Time       `json:"createdAt,omitempty"`
	PronunciationURL string           `json:"pronunciationUrl,omitempty"`
}

type examplePayload struct {
	Sentence    string `json:"sentence"`
	Translation string `json:"translation,omitempty"`
}

func toWordPayload(w domain.Word) wordPayload {
	p := wordPayload{
		ID:               w.ID.String(),
		English:          w.English,
		Meaning:          w.Meaning,
		CoreImage:        w.CoreImage,
		Category:         w.Category.String(),
		Status:           w.Status.String(),
		Comment:          w.Comment,
		PronunciationURL: w.PronunciationURL(),
	}
	for _, pos := range w.PartOfSpeech {
		p.PartOfSpeech = append(p.PartOfSpeech, pos.String())
	}
	if w.ToeicLevel != nil {
		lvl := int(*w.ToeicLevel)
		p.ToeicLevel = &lvl
	}
	for _, ex := range w.Examples {
		p.Examples = append(p.Examples, examplePayload{Sentence: ex.Sentence, Translation: ex.Translation})
	}
	if !w.CreatedAt.IsZero() {
		created := w.CreatedAt
		p.CreatedAt = &created
	}
	return p
}

// List handles GET /v1/words. Every list parameter arrives as a query
// string value; malformed numeric and date values mean "unset", matching
// how the UI state treats them.
func (h *WordsHandler) List(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	q := listproc.Query{
		Search:       params.Get("search"),
		Category:     domain.Category(params.Get("category")),
		Status:       domain.Status(params.Get("status")),
		PartOfSpeech: domain.PartOfSpeech(params.Get("partOfSpeech")),
		ToeicMin:     listproc.ParseOptionalInt(params.Get("toeicMin")),
		DateFrom:     listproc.ParseOptionalDate(params.Get("dateFrom")),
		DateTo:       listproc.ParseOptionalDate(params.Get("dateTo")),
		IndexFrom:    listproc.ParseOptionalInt(params.Get("indexFrom")),
		IndexTo:      listproc.ParseOptionalInt(params.Get("indexTo")),
		Sort:         listproc.ParseSortOrder(params.Get("sort")),
	}

	words, err := h.vocab.List(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}

	payload := make([]wordPayload, len(words))
	for i, word := range words {
		payload[i] = toWordPayload(word)
	}
	writeJSON(w, http.StatusOK, map[string]any{"words": payload, "total": len(payload)})
}

// Get handles GET /v1/words/{id}.
func (h *WordsHandler) Get(w http.ResponseWriter, r *http.Request) {
	word, err := h.vocab.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWordPayload(word))
}

// Create handles POST /v1/words.
func (h *WordsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req wordPayload
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	word, err := h.vocab.Create(r.Context(), vocabulary.CreateWordInput{
		English:      req.English,
		Meaning:      req.Meaning,
		CoreImage:    req.CoreImage,
		Category:     domain.Category(req.Category),
		PartOfSpeech: toPartsOfSpeech(req.PartOfSpeech),
		ToeicLevel:   req.ToeicLevel,
		Examples:     toExampleInputs(req.Examples),
		Comment:      req.Comment,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toWordPayload(word))
}

// Update handles PUT /v1/words/{id}.
func (h *WordsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req wordPayload
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	wordID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	word, err := h.vocab.Update(r.Context(), vocabulary.UpdateWordInput{
		ID:           wordID,
		English:      req.English,
		Meaning:      req.Meaning,
		CoreImage:    req.CoreImage,
		Category:     domain.Category(req.Category),
		PartOfSpeech: toPartsOfSpeech(req.PartOfSpeech),
		ToeicLevel:   req.ToeicLevel,
		Examples:     toExampleInputs(req.Examples),
		Comment:      req.Comment,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWordPayload(word))
}

type commentRequest struct {
	Comment string `json:"comment"`
}

// UpdateComment handles PATCH /v1/words/{id}/comment.
func (h *WordsHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.vocab.UpdateComment(r.Context(), r.PathValue("id"), req.Comment); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /v1/words/{id}.
func (h *WordsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.vocab.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type reviewRequest struct {
	Action string `json:"action"`
}

type reviewResponse struct {
	Status string `json:"status"`
}

// Review handles POST /v1/words/{id}/review.
func (h *WordsHandler) Review(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	status, err := h.review.Apply(r.Context(), r.PathValue("id"), domain.ReviewAction(req.Action))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviewResponse{Status: status.String()})
}

type generateRequest struct {
	Words []string `json:"words"`
}

// Generate handles POST /v1/words/generate.
func (h *WordsHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	words, err := h.vocab.Generate(r.Context(), vocabulary.GenerateInput{Words: req.Words})
	if err != nil {
		writeError(w, err)
		return
	}

	payload := make([]wordPayload, len(words))
	for i, word := range words {
		payload[i] = toWordPayload(word)
	}
	writeJSON(w, http.StatusCreated, map[string]any{"words": payload, "total": len(payload)})
}

func toPartsOfSpeech(raw []string) []domain.PartOfSpeech {
	out := make([]domain.PartOfSpeech, len(raw))
	for i, p := range raw {
		out[i] = domain.PartOfSpeech(p)
	}
	return out
}

func toExampleInputs(raw []examplePayload) []vocabulary.ExampleInput {
	out := make([]vocabulary.ExampleInput, len(raw))
	for i, ex := range raw {
		out[i] = vocabulary.ExampleInput{Sentence: ex.Sentence, Translation: ex.Translation}
	}
	return out
}
