package menus

import (
	"testing"
	"time"

	"github.com/meallog/meal-logger-bot/internal/database"
	"github.com/meallog/meal-logger-bot/internal/nutrition"
	"github.com/meallog/meal-logger-bot/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestHistoryKeyboardHasPerMealAndPerDayDeletes(t *testing.T) {
	history := []services.DayHistory{
		{
			Day: database.Day{
				Model: gorm.Model{ID: 7},
				Date:  time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC),
				Meals: []database.Meal{
					{Model: gorm.Model{ID: 41}, Name: "oatmeal", Servings: 1, Calories: 350},
					{Model: gorm.Model{ID: 42}, Name: "orange juice", Servings: 1, Calories: 110},
				},
			},
			Totals: nutrition.Nutrients{Calories: 460},
		},
	}

	keyboard := historyKeyboard(history)

	var callbacks []string
	for _, row := range keyboard.InlineKeyboard {
		for _, button := range row {
			require.NotNil(t, button.CallbackData)
			callbacks = append(callbacks, *button.CallbackData)
		}
	}

	assert.Contains(t, callbacks, "delete_meal_41")
	assert.Contains(t, callbacks, "delete_meal_42")
	assert.Contains(t, callbacks, "delete_day_7")
	assert.Contains(t, callbacks, "main_menu")
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, "mac \\_n\\_ cheese", escapeMarkdown("mac _n_ cheese"))
	assert.Equal(t, "5\\* burger \\[large\\]", escapeMarkdown("5* burger [large]"))
	assert.Equal(t, "plain toast", escapeMarkdown("plain toast"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 24))
	assert.Equal(t, "a very long meal name t…", truncate("a very long meal name that keeps going", 24))
}
