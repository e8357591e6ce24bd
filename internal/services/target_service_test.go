package services

import (
	"context"
	"errors"
	"testing"

	"github.com/meallog/meal-logger-bot/internal/apperrors"
	"github.com/meallog/meal-logger-bot/internal/nutrition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertProfileRejectsNegative(t *testing.T) {
	// Validation runs before any DB access, so no connection is needed
	svc := NewTargetService(nil)

	for _, targets := range []nutrition.Targets{
		{Calories: -2000, Protein: 150, Fat: 70, Carbs: 200},
		{Calories: 2000, Protein: -150, Fat: 70, Carbs: 200},
		{Calories: 2000, Protein: 150, Fat: -70, Carbs: 200},
		{Calories: 2000, Protein: 150, Fat: 70, Carbs: -200},
	} {
		err := svc.UpsertProfile(context.Background(), 1, targets)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	}
}

type stubTargetSource struct {
	targets *nutrition.Targets
	err     error
}

func (s *stubTargetSource) GetProfile(ctx context.Context, userID uint) (*nutrition.Targets, error) {
	return s.targets, s.err
}

func TestWeeklyReportWithoutTargets(t *testing.T) {
	svc := &ReportService{targets: &stubTargetSource{}}

	_, err := svc.WeeklyReport(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNoTargets))
}

func TestWeeklyReportPropagatesTargetError(t *testing.T) {
	dbErr := apperrors.NewDatabaseError(errors.New("connection refused"))
	svc := &ReportService{targets: &stubTargetSource{err: dbErr}}

	_, err := svc.WeeklyReport(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrDatabase))
}
