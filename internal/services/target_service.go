package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/meallog/meal-logger-bot/internal/apperrors"
	"github.com/meallog/meal-logger-bot/internal/database"
	"github.com/meallog/meal-logger-bot/internal/nutrition"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TargetService stores and retrieves the per-user daily macro targets. It
// does not interpret the values beyond rejecting negatives.
type TargetService struct {
	db *gorm.DB
}

func NewTargetService(db *gorm.DB) *TargetService {
	return &TargetService{db: db}
}

// GetProfile returns the user's targets, or nil when none are configured.
func (s *TargetService) GetProfile(ctx context.Context, userID uint) (*nutrition.Targets, error) {
	var profile database.TargetProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return &nutrition.Targets{
		Calories: profile.Calories,
		Protein:  profile.Protein,
		Fat:      profile.Fat,
		Carbs:    profile.Carbs,
	}, nil
}

// UpsertProfile stores the targets, replacing any existing profile for the
// user. Repeating the same call leaves the stored state unchanged.
func (s *TargetService) UpsertProfile(ctx context.Context, userID uint, t nutrition.Targets) error {
	if t.Calories < 0 || t.Protein < 0 || t.Fat < 0 || t.Carbs < 0 {
		return apperrors.NewValidationError("targets must be non-negative")
	}

	profile := database.TargetProfile{
		UserID:   userID,
		Calories: t.Calories,
		Protein:  t.Protein,
		Fat:      t.Fat,
		Carbs:    t.Carbs,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"calories", "protein", "fat", "carbs", "updated_at"}),
	}).Create(&profile).Error
	if err != nil {
		return fmt.Errorf("failed to upsert target profile: %w", apperrors.NewDatabaseError(err))
	}
	return nil
}
