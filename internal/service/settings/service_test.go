package settings

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kotoba-app/kotoba-backend/internal/domain"
	"github.com/kotoba-app/kotoba-backend/pkg/ctxutil"
)

type mockSettingsRepo struct {
	stored map[uuid.UUID]domain.UserSettings
}

func newMockSettingsRepo() *mockSettingsRepo {
	return &mockSettingsRepo{stored: make(map[uuid.UUID]domain.UserSettings)}
}

func (m *mockSettingsRepo) Get(ctx context.Context, userID uuid.UUID) (domain.UserSettings, error) {
	s, ok := m.stored[userID]
	if !ok {
		return domain.UserSettings{}, domain.ErrNotFound
	}
	return s, nil
}

func (m *mockSettingsRepo) Save(ctx context.Context, s domain.UserSettings) error {
	m.stored[s.UserID] = s
	return nil
}

func TestGet_DefaultsBeforeFirstSave(t *testing.T) {
	t.Parallel()

	svc := New(slog.Default(), newMockSettingsRepo(), "Japanese")
	userID := uuid.New()
	ctx := ctxutil.WithUserID(context.Background(), userID)

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, "Japanese", got.Language)
	assert.Empty(t, got.StorageDSN)
}

func TestSave_ReportsStorageRebind(t *testing.T) {
	t.Parallel()

	svc := New(slog.Default(), newMockSettingsRepo(), "Japanese")
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())

	report, err := svc.Save(ctx, domain.UserSettings{Language: "Korean"})
	require.NoError(t, err)
	assert.False(t, report.StorageRebind)
	assert.Equal(t, "Korean", report.Settings.Language)

	report, err = svc.Save(ctx, domain.UserSettings{Language: "Korean", StorageDSN: "postgres://elsewhere/db"})
	require.NoError(t, err)
	assert.True(t, report.StorageRebind, "changing the storage descriptor must be reported")

	report, err = svc.Save(ctx, domain.UserSettings{Language: "Korean", StorageDSN: "postgres://elsewhere/db"})
	require.NoError(t, err)
	assert.False(t, report.StorageRebind, "an unchanged descriptor is not a rebind")
}

func TestSave_OwnerComesFromContext(t *testing.T) {
	t.Parallel()

	repo := newMockSettingsRepo()
	svc := New(slog.Default(), repo, "Japanese")
	userID := uuid.New()
	ctx := ctxutil.WithUserID(context.Background(), userID)

	_, err := svc.Save(ctx, domain.UserSettings{UserID: uuid.New(), Language: "Korean"})
	require.NoError(t, err)

	stored, ok := repo.stored[userID]
	require.True(t, ok, "settings must be keyed by the authenticated user")
	assert.Equal(t, userID, stored.UserID)

	_, err = svc.Save(context.Background(), domain.UserSettings{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
