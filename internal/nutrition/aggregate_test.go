package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestTotalsEmpty(t *testing.T) {
	assert.Equal(t, Nutrients{}, Totals(nil))
	assert.Equal(t, Nutrients{}, Totals([]MealNutrients{}))
}

func TestTotalsSumsAllFields(t *testing.T) {
	meals := []MealNutrients{
		{Calories: 400, Protein: ptr(30), Fat: ptr(12), Carbs: ptr(45)},
		{Calories: 250, Protein: ptr(10), Fat: ptr(20), Carbs: ptr(20)},
	}

	got := Totals(meals)

	assert.Equal(t, Nutrients{Calories: 650, Protein: 40, Fat: 32, Carbs: 65}, got)
}

func TestTotalsTreatsMissingMacrosAsZero(t *testing.T) {
	meals := []MealNutrients{
		{Calories: 300, Protein: ptr(25)},
		{Calories: 150},
	}

	got := Totals(meals)

	assert.Equal(t, Nutrients{Calories: 450, Protein: 25}, got)
}

func TestTotalsOrderIndependent(t *testing.T) {
	a := MealNutrients{Calories: 400, Protein: ptr(30), Fat: ptr(12), Carbs: ptr(45)}
	b := MealNutrients{Calories: 250, Protein: ptr(10), Fat: ptr(20), Carbs: ptr(20)}
	c := MealNutrients{Calories: 120, Fat: ptr(3)}

	assert.Equal(t, Totals([]MealNutrients{a, b, c}), Totals([]MealNutrients{c, b, a}))
}
