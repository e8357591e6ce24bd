package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/meallog/meal-logger-bot/internal/apperrors"
	"github.com/meallog/meal-logger-bot/internal/database"
	"github.com/meallog/meal-logger-bot/internal/nutrition"
	"gorm.io/gorm"
)

// MealService owns the multi-meal model: days of structured meal records
// with totals recomputed from the rows on every read.
type MealService struct {
	db *gorm.DB
}

func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

// DayHistory is one day of meals with its recomputed totals.
type DayHistory struct {
	Day    database.Day
	Totals nutrition.Nutrients
}

// normalizeDate truncates to midnight UTC so one calendar date maps to
// exactly one stored value.
func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SaveMeals stores finalized meal records under the day row for date,
// creating the day on first submission and attaching to it afterwards.
func (s *MealService) SaveMeals(ctx context.Context, userID uint, date time.Time, meals []MealRecord) (*database.Day, error) {
	if len(meals) == 0 {
		return nil, apperrors.NewValidationError("no meals to save")
	}

	day := database.Day{UserID: userID, Date: normalizeDate(date)}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(database.Day{UserID: userID, Date: day.Date}).FirstOrCreate(&day).Error; err != nil {
			return apperrors.NewDatabaseError(err)
		}

		rows := make([]database.Meal, 0, len(meals))
		for _, m := range meals {
			protein, fat, carbs := m.Protein, m.Fat, m.Carbs
			rows = append(rows, database.Meal{
				DayID:    day.ID,
				Name:     m.Name,
				Servings: m.Servings,
				Calories: m.Calories,
				Protein:  &protein,
				Fat:      &fat,
				Carbs:    &carbs,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return apperrors.NewDatabaseError(err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save meals: %w", err)
	}

	return &day, nil
}

// History returns the most recent days, newest first, each with meals
// sorted by calories descending and totals recomputed from the rows.
func (s *MealService) History(ctx context.Context, userID uint, limit int) ([]DayHistory, error) {
	var days []database.Day
	q := s.db.WithContext(ctx).Preload("Meals").
		Where("user_id = ?", userID).
		Order("date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&days).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	history := make([]DayHistory, 0, len(days))
	for _, day := range days {
		sort.Slice(day.Meals, func(i, j int) bool {
			return day.Meals[i].Calories > day.Meals[j].Calories
		})
		history = append(history, DayHistory{
			Day:    day,
			Totals: nutrition.Totals(mealNutrients(day.Meals)),
		})
	}
	return history, nil
}

// DeleteMeal removes one meal record, scoped to the owning user.
func (s *MealService) DeleteMeal(ctx context.Context, userID, mealID uint) error {
	var meal database.Meal
	err := s.db.WithContext(ctx).
		Joins("JOIN days ON days.id = meals.day_id").
		Where("meals.id = ? AND days.user_id = ?", mealID, userID).
		First(&meal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewValidationError("meal not found")
	}
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}

	if err := s.db.WithContext(ctx).Delete(&meal).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

// DeleteDay removes a day and all of its meals, scoped to the owning user.
func (s *MealService) DeleteDay(ctx context.Context, userID, dayID uint) error {
	var day database.Day
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", dayID, userID).
		First(&day).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewValidationError("day not found")
	}
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("day_id = ?", day.ID).Delete(&database.Meal{}).Error; err != nil {
			return apperrors.NewDatabaseError(err)
		}
		if err := tx.Delete(&day).Error; err != nil {
			return apperrors.NewDatabaseError(err)
		}
		return nil
	})
}

// mealNutrients adapts stored meal rows into the aggregation input; nil
// macro columns on legacy rows pass through and count as zero.
func mealNutrients(meals []database.Meal) []nutrition.MealNutrients {
	out := make([]nutrition.MealNutrients, 0, len(meals))
	for _, m := range meals {
		out = append(out, nutrition.MealNutrients{
			Calories: float64(m.Calories),
			Protein:  m.Protein,
			Fat:      m.Fat,
			Carbs:    m.Carbs,
		})
	}
	return out
}
