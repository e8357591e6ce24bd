package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/meallog/meal-logger-bot/internal/apperrors"
	"github.com/meallog/meal-logger-bot/internal/database"
	"github.com/meallog/meal-logger-bot/internal/nutrition"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// JournalService owns the single-entry-per-day model. Merging is a
// read-then-write sequence, so it runs in a transaction with a row lock on
// the (user, date) entry; two concurrent submissions for the same date
// serialize instead of losing one update.
type JournalService struct {
	db *gorm.DB
}

func NewJournalService(db *gorm.DB) *JournalService {
	return &JournalService{db: db}
}

// LogEntry merges an incoming entry into the stored entry for date,
// creating it on first submission. A concurrent first-submission race
// surfaces as a unique violation on the (user_id, entry_date) index and is
// retried once against the row the other writer created.
func (s *JournalService) LogEntry(ctx context.Context, userID uint, date time.Time, incoming nutrition.Entry) (*database.NutritionEntry, error) {
	entryDate := normalizeDate(date)

	row, err := s.mergeOnce(ctx, userID, entryDate, incoming)
	if errors.Is(err, apperrors.ErrUpdateConflict) {
		row, err = s.mergeOnce(ctx, userID, entryDate, incoming)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to log journal entry: %w", err)
	}
	return row, nil
}

func (s *JournalService) mergeOnce(ctx context.Context, userID uint, entryDate time.Time, incoming nutrition.Entry) (*database.NutritionEntry, error) {
	var saved *database.NutritionEntry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row database.NutritionEntry
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND entry_date = ?", userID, entryDate).
			First(&row).Error

		switch {
		case err == nil:
			merged := nutrition.MergeEntries(entryFromRow(&row), incoming, entryDate)
			applyEntry(&row, merged)
			if err := tx.Save(&row).Error; err != nil {
				return apperrors.NewDatabaseError(err)
			}
			saved = &row
			return nil

		case errors.Is(err, gorm.ErrRecordNotFound):
			merged := nutrition.MergeEntries(nil, incoming, entryDate)
			row = database.NutritionEntry{UserID: userID, EntryDate: entryDate}
			applyEntry(&row, merged)
			if err := tx.Create(&row).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return apperrors.NewConflictError(err)
				}
				return apperrors.NewDatabaseError(err)
			}
			saved = &row
			return nil

		default:
			return apperrors.NewDatabaseError(err)
		}
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// GetEntry returns the stored entry for a date, or nil when none exists.
func (s *JournalService) GetEntry(ctx context.Context, userID uint, date time.Time) (*database.NutritionEntry, error) {
	var row database.NutritionEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND entry_date = ?", userID, normalizeDate(date)).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return &row, nil
}

// EntryFromExtraction builds the core journal entry from a model
// extraction, normalizing any reported weight to pounds.
func EntryFromExtraction(logText string, x *JournalExtraction) nutrition.Entry {
	entry := nutrition.Entry{
		Log:      logText,
		Calories: x.Calories,
		Protein:  x.Protein,
		Carbs:    x.Carbs,
		Fats:     x.Fats,
		Fiber:    x.Fiber,
		Sugar:    x.Sugar,
		BMI:      x.BMI,
		Sleep:    x.SleepHours,
	}
	if x.Weight != nil {
		pounds := nutrition.ToPounds(*x.Weight, x.WeightUnit)
		entry.Weight = &pounds
	}
	return entry
}

func entryFromRow(row *database.NutritionEntry) *nutrition.Entry {
	return &nutrition.Entry{
		Date:     row.EntryDate,
		Log:      row.Log,
		Calories: row.Calories,
		Protein:  row.Protein,
		Carbs:    row.Carbs,
		Fats:     row.Fats,
		Fiber:    row.Fiber,
		Sugar:    row.Sugar,
		Weight:   row.Weight,
		BMI:      row.BMI,
		Sleep:    row.Sleep,
	}
}

func applyEntry(row *database.NutritionEntry, e nutrition.Entry) {
	row.EntryDate = e.Date
	row.Log = e.Log
	row.Calories = e.Calories
	row.Protein = e.Protein
	row.Carbs = e.Carbs
	row.Fats = e.Fats
	row.Fiber = e.Fiber
	row.Sugar = e.Sugar
	row.Weight = e.Weight
	row.BMI = e.BMI
	row.Sleep = e.Sleep
}
