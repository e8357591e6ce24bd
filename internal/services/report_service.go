package services

import (
	"context"

	"github.com/meallog/meal-logger-bot/internal/apperrors"
	"github.com/meallog/meal-logger-bot/internal/database"
	"github.com/meallog/meal-logger-bot/internal/nutrition"
	"gorm.io/gorm"
)

// targetSource is the slice of TargetService the report needs.
type targetSource interface {
	GetProfile(ctx context.Context, userID uint) (*nutrition.Targets, error)
}

// ReportService derives weekly adherence summaries. Nothing here is
// persisted; every report is recomputed from the day rows.
type ReportService struct {
	db      *gorm.DB
	targets targetSource
}

func NewReportService(db *gorm.DB, targets *TargetService) *ReportService {
	return &ReportService{db: db, targets: targets}
}

// WeeklyReport rolls the user's logged days up into ISO weeks and
// classifies each against the target profile. Without a configured profile
// it returns apperrors.ErrNoTargets; callers prompt for setup.
func (s *ReportService) WeeklyReport(ctx context.Context, userID uint) ([]nutrition.WeeklySummary, error) {
	t, err := s.targets.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperrors.ErrNoTargets
	}

	var days []database.Day
	if err := s.db.WithContext(ctx).Preload("Meals").
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&days).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	dayTotals := make([]nutrition.DayTotals, 0, len(days))
	for _, day := range days {
		dayTotals = append(dayTotals, nutrition.DayTotals{
			Date:   day.Date,
			Totals: nutrition.Totals(mealNutrients(day.Meals)),
		})
	}

	return nutrition.Rollup(dayTotals, *t), nil
}
