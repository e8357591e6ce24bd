package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func standardTargets() *Targets {
	return &Targets{Calories: 2000, Protein: 150, Fat: 70, Carbs: 250}
}

func TestEvaluateMealNoTargets(t *testing.T) {
	meal := Nutrients{Calories: 600, Protein: 40, Fat: 20, Carbs: 60}

	result := EvaluateMeal(meal, nil)

	neutral := MacroAssessment{Rating: RatingWarning, Direction: DirectionNone}
	assert.Equal(t, neutral, result.Calories)
	assert.Equal(t, neutral, result.Protein)
	assert.Equal(t, neutral, result.Fat)
	assert.Equal(t, neutral, result.Carbs)
}

func TestEvaluateMealZeroTargetCalories(t *testing.T) {
	result := EvaluateMeal(Nutrients{Calories: 500}, &Targets{})

	assert.Equal(t, RatingWarning, result.Calories.Rating)
	assert.Equal(t, DirectionNone, result.Calories.Direction)
}

func TestEvaluateMealLightLowProteinMeal(t *testing.T) {
	// 250 kcal is 12.5% of a 2000 kcal day; 10g protein is 16% of the
	// meal's calories against a 30% target share.
	meal := Nutrients{Calories: 250, Protein: 10, Fat: 20, Carbs: 20}

	result := EvaluateMeal(meal, standardTargets())

	assert.InDelta(t, 12.5, result.Calories.Percent, 1e-9)
	assert.Equal(t, RatingGood, result.Calories.Rating)
	assert.Equal(t, DirectionDown, result.Calories.Direction)

	assert.InDelta(t, 16.0, result.Protein.Percent, 1e-9)
	assert.Equal(t, RatingAlert, result.Protein.Rating)
	assert.Equal(t, DirectionDown, result.Protein.Direction)
}

func TestEvaluateMealCalorieBands(t *testing.T) {
	targets := standardTargets()

	heavy := EvaluateMeal(Nutrients{Calories: 720}, targets) // 36%
	assert.Equal(t, RatingAlert, heavy.Calories.Rating)
	assert.Equal(t, DirectionUp, heavy.Calories.Direction)

	moderate := EvaluateMeal(Nutrients{Calories: 500}, targets) // 25%
	assert.Equal(t, RatingWarning, moderate.Calories.Rating)
	assert.Equal(t, DirectionNone, moderate.Calories.Direction)

	boundary := EvaluateMeal(Nutrients{Calories: 400}, targets) // exactly 20%
	assert.Equal(t, RatingWarning, boundary.Calories.Rating)
	assert.Equal(t, DirectionNone, boundary.Calories.Direction)
}

func TestEvaluateMealZeroCalorieMealHasZeroRatios(t *testing.T) {
	meal := Nutrients{Calories: 0, Protein: 10, Fat: 5, Carbs: 3}

	result := EvaluateMeal(meal, standardTargets())

	assert.Zero(t, result.Protein.Percent)
	assert.Zero(t, result.Fat.Percent)
	assert.Zero(t, result.Carbs.Percent)
}

func TestEvaluateMealFatExcess(t *testing.T) {
	// Target fat share: 70*9/2000 = 31.5%. 25g fat in a 450 kcal meal is
	// 50% of the meal's calories, beyond 1.4x the target share.
	meal := Nutrients{Calories: 450, Protein: 30, Fat: 25, Carbs: 20}

	result := EvaluateMeal(meal, standardTargets())

	assert.Equal(t, RatingAlert, result.Fat.Rating)
	assert.Equal(t, DirectionUp, result.Fat.Direction)
}

func TestEvaluateMealCarbsModerateExcess(t *testing.T) {
	// Target carb share: 250*4/2000 = 50%. 60g carbs in a 400 kcal meal is
	// 60% of the meal - above target but under the 1.4x alert line.
	meal := Nutrients{Calories: 400, Protein: 20, Fat: 5, Carbs: 60}

	result := EvaluateMeal(meal, standardTargets())

	assert.Equal(t, RatingWarning, result.Carbs.Rating)
	assert.Equal(t, DirectionNone, result.Carbs.Direction)
}

func TestEvaluateMealOnTargetMacros(t *testing.T) {
	// A meal mirroring the target split: 30% protein, 31.5% fat, 50% carbs
	// of the meal's own calories would need >100%, so use a meal whose
	// shares all land at or below their target shares.
	meal := Nutrients{Calories: 500, Protein: 38, Fat: 17, Carbs: 62}

	result := EvaluateMeal(meal, standardTargets())

	assert.Equal(t, RatingGood, result.Protein.Rating)
	assert.Equal(t, DirectionNone, result.Protein.Direction)
	assert.Equal(t, RatingGood, result.Fat.Rating)
	assert.Equal(t, RatingGood, result.Carbs.Rating)
}
