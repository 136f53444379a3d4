package rest

import "net/http"

// Handlers groups everything the router mounts.
type Handlers struct {
	Words    *WordsHandler
	Journal  *JournalHandler
	Settings *SettingsHandler
	Quiz     *QuizHandler
	Health   *HealthHandler
}

// NewRouter builds the API route table. Method-qualified patterns make the
// mux reject wrong methods with 405 on its own.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/words", h.Words.List)
	mux.HandleFunc("POST /v1/words", h.Words.Create)
	mux.HandleFunc("POST /v1/words/generate", h.Words.Generate)
	mux.HandleFunc("GET /v1/words/{id}", h.Words.Get)
	mux.HandleFunc("PUT /v1/words/{id}", h.Words.Update)
	mux.HandleFunc("DELETE /v1/words/{id}", h.Words.Delete)
	mux.HandleFunc("PATCH /v1/words/{id}/comment", h.Words.UpdateComment)
	mux.HandleFunc("POST /v1/words/{id}/review", h.Words.Review)

	mux.HandleFunc("GET /v1/journal", h.Journal.ListDates)
	mux.HandleFunc("GET /v1/journal/{date}", h.Journal.Get)
	mux.HandleFunc("PUT /v1/journal/{date}", h.Journal.Save)
	mux.HandleFunc("DELETE /v1/journal/{date}", h.Journal.Delete)

	mux.HandleFunc("GET /v1/settings", h.Settings.Get)
	mux.HandleFunc("PUT /v1/settings", h.Settings.Save)

	mux.HandleFunc("POST /v1/quiz/turn", h.Quiz.Turn)
	mux.HandleFunc("POST /v1/quiz/reset", h.Quiz.Reset)

	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /health/live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)

	return mux
}
