package services

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/meallog/meal-logger-bot/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func TestFinalizeMeals(t *testing.T) {
	meals := []wireMeal{
		{Meal: "chicken salad", Count: 1, Calories: iptr(420), Protein: fptr(35), Fat: fptr(18), Carbohydrates: fptr(22)},
		{Meal: "apple", Count: 2, Calories: iptr(95), Protein: fptr(0.5), Fat: fptr(0.3), Carbohydrates: fptr(25)},
	}

	records, err := finalizeMeals(meals)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "chicken salad", records[0].Name)
	assert.Equal(t, 420, records[0].Calories)
	assert.Equal(t, 35.0, records[0].Protein)
	assert.Equal(t, 2.0, records[1].Servings)
}

func TestFinalizeMealsRejectsMissingField(t *testing.T) {
	meals := []wireMeal{
		{Meal: "mystery soup", Count: 1, Calories: iptr(300), Fat: fptr(10), Carbohydrates: fptr(30)},
	}

	_, err := finalizeMeals(meals)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestFinalizeMealsRejectsNegativeValue(t *testing.T) {
	meals := []wireMeal{
		{Meal: "bad row", Count: 1, Calories: iptr(-10), Protein: fptr(5), Fat: fptr(5), Carbohydrates: fptr(5)},
	}

	_, err := finalizeMeals(meals)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestFinalizeMealsRejectsEmptyExtraction(t *testing.T) {
	_, err := finalizeMeals(nil)
	assert.Error(t, err)
}

func TestExtractJSON(t *testing.T) {
	wrapped := "```json\n{\"meals\": [], \"totalCalories\": 0}\n```"
	assert.Equal(t, `{"meals": [], "totalCalories": 0}`, extractJSON(wrapped))

	assert.Empty(t, extractJSON("no json here"))
	assert.Empty(t, extractJSON("} backwards {"))
}

func TestWireMealListDecoding(t *testing.T) {
	payload := `{"meals":[{"meal":"toast","count":1,"calories":180,"protein":6,"fat":3,"carbohydrates":30}],"totalCalories":180}`

	var list wireMealList
	require.NoError(t, json.Unmarshal([]byte(payload), &list))

	records, err := finalizeMeals(list.Meals)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, MealRecord{Name: "toast", Servings: 1, Calories: 180, Protein: 6, Fat: 3, Carbs: 30}, records[0])
}
