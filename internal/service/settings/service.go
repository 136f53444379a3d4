// Package settings implements per-user configuration management.
package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kotoba-app/kotoba-backend/internal/domain"
	"github.com/kotoba-app/kotoba-backend/pkg/ctxutil"
)

type settingsRepo interface {
	Get(ctx context.Context, userID uuid.UUID) (domain.UserSettings, error)
	Save(ctx context.Context, s domain.UserSettings) error
}

// SaveReport tells the caller what a settings change implies beyond the
// write itself.
type SaveReport struct {
	Settings domain.UserSettings
	// StorageRebind is set when the storage descriptor changed. The running
	// storage client keeps its old binding; the client application must
	// reconnect to pick up the new one.
	StorageRebind bool
}

// Service implements the settings business logic.
type Service struct {
	log             *slog.Logger
	repo            settingsRepo
	defaultLanguage string
}

// New creates the settings service.
func New(logger *slog.Logger, repo settingsRepo, defaultLanguage string) *Service {
	return &Service{
		log:             logger.With("service", "settings"),
		repo:            repo,
		defaultLanguage: defaultLanguage,
	}
}

// Get returns the user's settings, falling back to defaults before the
// first save.
func (s *Service) Get(ctx context.Context) (domain.UserSettings, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.UserSettings{}, domain.ErrUnauthorized
	}

	settings, err := s.repo.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.UserSettings{UserID: userID, Language: s.defaultLanguage}, nil
	}
	if err != nil {
		return domain.UserSettings{}, fmt.Errorf("get settings: %w", err)
	}
	if settings.Language == "" {
		settings.Language = s.defaultLanguage
	}
	return settings, nil
}

// Save writes the user's settings and reports whether the storage
// descriptor changed.
func (s *Service) Save(ctx context.Context, input domain.UserSettings) (SaveReport, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return SaveReport{}, domain.ErrUnauthorized
	}

	previous, err := s.Get(ctx)
	if err != nil {
		return SaveReport{}, err
	}

	input.UserID = userID
	if input.Language == "" {
		input.Language = s.defaultLanguage
	}

	if err := s.repo.Save(ctx, input); err != nil {
		return SaveReport{}, fmt.Errorf("save settings: %w", err)
	}

	report := SaveReport{
		Settings:      input,
		StorageRebind: input.StorageDSN != previous.StorageDSN,
	}
	if report.StorageRebind {
		s.log.InfoContext(ctx, "storage descriptor changed, client rebind required")
	}
	return report, nil
}
