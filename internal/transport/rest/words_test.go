package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/kotoba-app/kotoba-backend/internal/domain"
	"github.com/kotoba-app/kotoba-backend/internal/listproc"
	"github.com/kotoba-app/kotoba-backend/internal/service/vocabulary"
)

type vocabStub struct {
	listQuery listproc.Query
	listWords []domain.Word
	listErr   error
	created   *vocabulary.CreateWordInput
}

func (s *vocabStub) List(ctx context.Context, q listproc.Query) ([]domain.Word, error) {
	s.listQuery = q
	return s.listWords, s.listErr
}

func (s *vocabStub) Get(ctx context.Context, id string) (domain.Word, error) {
	return domain.Word{}, domain.ErrNotFound
}

func (s *vocabStub) Create(ctx context.Context, input vocabulary.CreateWordInput) (domain.Word, error) {
	s.created = &input
	if input.English == "" {
		return domain.Word{}, domain.NewValidationError("english", "required")
	}
	return domain.Word{ID: uuid.New(), English: input.English, Status: domain.StatusBeginner}, nil
}

func (s *vocabStub) Update(ctx context.Context, input vocabulary.UpdateWordInput) (domain.Word, error) {
	return domain.Word{}, domain.ErrNotFound
}

func (s *vocabStub) UpdateComment(ctx context.Context, id, comment string) error { return nil }
func (s *vocabStub) Delete(ctx context.Context, id string) error                 { return nil }

func (s *vocabStub) Generate(ctx context.Context, input vocabulary.GenerateInput) ([]domain.Word, error) {
	return nil, domain.ErrUnavailable
}

type reviewStub struct{}

func (reviewStub) Apply(ctx context.Context, id string, action domain.ReviewAction) (domain.Status, error) {
	return domain.StatusTraining, nil
}

func newWordsHandler(stub *vocabStub) *WordsHandler {
	return NewWordsHandler(stub, reviewStub{}, slog.Default())
}

func TestWordsList_QueryParamMapping(t *testing.T) {
	stub := &vocabStub{}
	h := newWordsHandler(stub)

	req := httptest.NewRequest(http.MethodGet,
		"/v1/words?search=run&category=DAILY&toeicMin=600&indexFrom=1&indexTo=abc&dateFrom=2025-03-01&sort=z-a", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	q := stub.listQuery
	if q.Search != "run" || q.Category != domain.CategoryDaily {
		t.Errorf("search/category not mapped: %+v", q)
	}
	if q.ToeicMin == nil || *q.ToeicMin != 600 {
		t.Errorf("toeicMin not mapped: %v", q.ToeicMin)
	}
	if q.IndexFrom == nil || *q.IndexFrom != 1 {
		t.Errorf("indexFrom not mapped: %v", q.IndexFrom)
	}
	if q.IndexTo != nil {
		t.Errorf("malformed indexTo should be unset, got %v", *q.IndexTo)
	}
	if q.DateFrom == nil {
		t.Error("dateFrom not mapped")
	}
	if q.Sort != listproc.SortAlphaDesc {
		t.Errorf("sort = %q, want z-a", q.Sort)
	}
}

func TestWordsList_DefaultSortOnGarbage(t *testing.T) {
	stub := &vocabStub{}
	h := newWordsHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/words?sort=by-vibes", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if stub.listQuery.Sort != listproc.SortNewest {
		t.Errorf("sort = %q, want fallback newest", stub.listQuery.Sort)
	}
}

func TestWordsCreate_StatusCodes(t *testing.T) {
	stub := &vocabStub{}
	h := newWordsHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/v1/words", strings.NewReader(`{"english":"run"}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/words", strings.NewReader(`{"english":""}`))
	rec = httptest.NewRecorder()
	h.Create(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if len(resp.Fields) != 1 || resp.Fields[0].Field != "english" {
		t.Errorf("validation fields = %+v", resp.Fields)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/words", strings.NewReader(`{not json`))
	rec = httptest.NewRecorder()
	h.Create(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for malformed JSON", rec.Code)
	}
}

func TestWordsGenerate_UnavailableMapsToBadGateway(t *testing.T) {
	h := newWordsHandler(&vocabStub{})

	req := httptest.NewRequest(http.MethodPost, "/v1/words/generate", strings.NewReader(`{"words":["run"]}`))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}
