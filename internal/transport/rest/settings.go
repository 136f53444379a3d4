package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/kotoba-app/kotoba-backend/internal/domain"
	"github.com/kotoba-app/kotoba-backend/internal/service/settings"
)

// settingsService defines the minimal interface needed by SettingsHandler.
type settingsService interface {
	Get(ctx context.Context) (domain.UserSettings, error)
	Save(ctx context.Context, input domain.UserSettings) (settings.SaveReport, error)
}

// SettingsHandler serves the user settings REST endpoints.
type SettingsHandler struct {
	svc settingsService
	log *slog.Logger
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(svc settingsService, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{svc: svc, log: logger.With("handler", "settings")}
}

type settingsPayload struct {
	Language         string `json:"language"`
	GenerationAPIKey string `json:"generationApiKey,omitempty"`
	GenerationModel  string `json:"generationModel,omitempty"`
	StorageDSN       string `json:"storageDsn,omitempty"`
}

type settingsSaveResponse struct {
	Settings settingsPayload `json:"settings"`
	// StorageRebind tells the client the storage descriptor changed and its
	// storage connection must be rebuilt to take effect.
	StorageRebind bool `json:"storageRebind"`
}

// Get handles GET /v1/settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Get(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsPayload(s))
}

// Save handles PUT /v1/settings.
func (h *SettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req settingsPayload
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	report, err := h.svc.Save(r.Context(), domain.UserSettings{
		Language:         req.Language,
		GenerationAPIKey: req.GenerationAPIKey,
		GenerationModel:  req.GenerationModel,
		StorageDSN:       req.StorageDSN,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, settingsSaveResponse{
		Settings:      toSettingsPayload(report.Settings),
		StorageRebind: report.StorageRebind,
	})
}

func toSettingsPayload(s domain.UserSettings) settingsPayload {
	return settingsPayload{
		Language:         s.Language,
		GenerationAPIKey: s.GenerationAPIKey,
		GenerationModel:  s.GenerationModel,
		StorageDSN:       s.StorageDSN,
	}
}
