package handlers

import (
	"testing"
	"time"

	"github.com/meallog/meal-logger-bot/internal/database"
	"github.com/meallog/meal-logger-bot/internal/nutrition"
	"github.com/meallog/meal-logger-bot/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestSplitDatePrefix(t *testing.T) {
	today := time.Now().UTC().Format(entryDateLayout)

	text, date := splitDatePrefix("2025-08-30 two eggs and toast")
	assert.Equal(t, "two eggs and toast", text)
	assert.Equal(t, "2025-08-30", date)

	text, date = splitDatePrefix("two eggs and toast")
	assert.Equal(t, "two eggs and toast", text)
	assert.Equal(t, today, date)

	// A bad date token stays part of the text
	text, date = splitDatePrefix("2025-13-45 two eggs")
	assert.Equal(t, "2025-13-45 two eggs", text)
	assert.Equal(t, today, date)

	// Date only
	text, date = splitDatePrefix("2025-08-30")
	assert.Equal(t, "", text)
	assert.Equal(t, "2025-08-30", date)
}

func TestDayContexts(t *testing.T) {
	protein := 20.5
	history := []services.DayHistory{
		{
			Day: database.Day{
				Date: time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC),
				Meals: []database.Meal{
					{Name: "oatmeal", Servings: 1, Calories: 350, Protein: &protein},
				},
			},
			Totals: nutrition.Nutrients{Calories: 350, Protein: 20.5},
		},
	}

	contexts := dayContexts(history)
	assert.Len(t, contexts, 1)
	assert.Equal(t, "2025-08-30", contexts[0].Date)
	assert.Equal(t, 350.0, contexts[0].Totals.Calories)
	assert.Len(t, contexts[0].Meals, 1)
	assert.Equal(t, "oatmeal", contexts[0].Meals[0].Name)
	assert.Equal(t, 20.5, contexts[0].Meals[0].Protein)
	// Absent macros come through as zero
	assert.Equal(t, 0.0, contexts[0].Meals[0].Fat)
}
