package review

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

type mockWordRepo struct {
	GetByIDFunc      func(ctx context.Context, userID, wordID uuid.UUID) (domain.Word, error)
	UpdateStatusFunc func(ctx context.Context, userID, wordID uuid.UUID, status domain.Status) error
}

func (m *mockWordRepo) GetByID(ctx context.Context, userID, wordID uuid.UUID) (domain.Word, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, wordID)
	}
	return domain.Word{}, domain.ErrNotFound
}

func (m *mockWordRepo) UpdateStatus(ctx context.Context, userID, wordID uuid.UUID, status domain.Status) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, userID, wordID, status)
	}
	return nil
}

func TestApply_Progression(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		current domain.Status
		action  domain.ReviewAction
		want    domain.Status
		writes  bool
	}{
		{"remembered promotes beginner", domain.StatusBeginner, domain.ReviewActionRemembered, domain.StatusTraining, true},
		{"remembered promotes training", domain.StatusTraining, domain.ReviewActionRemembered, domain.StatusMastered, true},
		{"remembered clamps at mastered", domain.StatusMastered, domain.ReviewActionRemembered, domain.StatusMastered, false},
		{"forgot demotes mastered", domain.StatusMastered, domain.ReviewActionForgot, domain.StatusTraining, true},
		{"forgot demotes training", domain.StatusTraining, domain.ReviewActionForgot, domain.StatusBeginner, true},
		{"forgot clamps at beginner", domain.StatusBeginner, domain.ReviewActionForgot, domain.StatusBeginner, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			userID := uuid.New()
			wordID := uuid.New()
			wrote := false
			repo := &mockWordRepo{
				GetByIDFunc: func(ctx context.Context, _, _ uuid.UUID) (domain.Word, error) {
					return domain.Word{ID: wordID, UserID: userID, Status: tt.current}, nil
				},
				UpdateStatusFunc: func(ctx context.Context, _, _ uuid.UUID, status domain.Status) error {
					wrote = true
					assert.Equal(t, tt.want, status)
					return nil
				},
			}
			svc := New(slog.Default(), repo)

			ctx := ctxutil.WithUserID(context.Background(), userID)
			got, err := svc.Apply(ctx, wordID.String(), tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.writes, wrote, "status write should only happen on change")
		})
	}
}

func TestApply_Errors(t *testing.T) {
	t.Parallel()

	svc := New(slog.Default(), &mockWordRepo{})
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())

	_, err := svc.Apply(context.Background(), uuid.New().String(), domain.ReviewActionForgot)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.Apply(ctx, uuid.New().String(), domain.ReviewAction("MAYBE"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Apply(ctx, "not-a-uuid", domain.ReviewActionForgot)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Apply(ctx, uuid.New().String(), domain.ReviewActionForgot)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
