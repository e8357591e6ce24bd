package nutrition

// Calories contributed by one gram of each macronutrient.
const (
	KcalPerGramProtein = 4.0
	KcalPerGramFat     = 9.0
	KcalPerGramCarbs   = 4.0
)

// Rating classifies how far a value sits from its target.
type Rating string

const (
	RatingGood    Rating = "good"
	RatingWarning Rating = "warning"
	RatingAlert   Rating = "alert"
)

// Direction indicates which way a value deviates from its target.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionNone Direction = "none"
)

// Targets holds a user's daily nutrition goals. Calories are kcal, the
// three macros are grams.
type Targets struct {
	Calories float64
	Protein  float64
	Fat      float64
	Carbs    float64
}

// Nutrients holds macro totals for a single meal or a whole day.
type Nutrients struct {
	Calories float64
	Protein  float64
	Fat      float64
	Carbs    float64
}

// MacroAssessment is the evaluation of one macro row.
type MacroAssessment struct {
	Percent   float64
	Rating    Rating
	Direction Direction
}

// MealAssessment is the per-macro evaluation of a single meal.
type MealAssessment struct {
	Calories MacroAssessment
	Protein  MacroAssessment
	Fat      MacroAssessment
	Carbs    MacroAssessment
}

// Calorie share of the daily target: above 35% a meal is too heavy,
// under 20% it leaves room.
const (
	caloriePercentHigh = 35.0
	caloriePercentLow  = 20.0
)

// Macro ratio multipliers relative to the target diet's macro split.
const (
	proteinShortfallFactor = 0.67
	excessFactor           = 1.4
)

// EvaluateMeal rates one meal against the daily targets. The calorie row
// compares the meal's calories to the whole daily budget; protein, fat and
// carbs compare the macro's share of the meal's own calories to the same
// macro's share of the target diet. With no targets configured every row
// comes back neutral (warning rating, no direction) instead of an error.
func EvaluateMeal(meal Nutrients, targets *Targets) MealAssessment {
	if targets == nil || targets.Calories <= 0 {
		neutral := MacroAssessment{Rating: RatingWarning, Direction: DirectionNone}
		return MealAssessment{Calories: neutral, Protein: neutral, Fat: neutral, Carbs: neutral}
	}

	calPercent := meal.Calories / targets.Calories * 100

	var calRow MacroAssessment
	calRow.Percent = calPercent
	switch {
	case calPercent > caloriePercentHigh:
		calRow.Rating = RatingAlert
		calRow.Direction = DirectionUp
	case calPercent >= caloriePercentLow:
		calRow.Rating = RatingWarning
		calRow.Direction = DirectionNone
	default:
		calRow.Rating = RatingGood
		calRow.Direction = DirectionDown
	}

	proteinRatio := mealCalorieShare(meal.Protein, KcalPerGramProtein, meal.Calories)
	fatRatio := mealCalorieShare(meal.Fat, KcalPerGramFat, meal.Calories)
	carbRatio := mealCalorieShare(meal.Carbs, KcalPerGramCarbs, meal.Calories)

	targetProteinRatio := targets.Protein * KcalPerGramProtein / targets.Calories * 100
	targetFatRatio := targets.Fat * KcalPerGramFat / targets.Calories * 100
	targetCarbRatio := targets.Carbs * KcalPerGramCarbs / targets.Calories * 100

	return MealAssessment{
		Calories: calRow,
		Protein:  assessShortfall(proteinRatio, targetProteinRatio),
		Fat:      assessExcess(fatRatio, targetFatRatio),
		Carbs:    assessExcess(carbRatio, targetCarbRatio),
	}
}

// mealCalorieShare is the percentage of the meal's calories contributed by
// one macro. A zero-calorie meal yields 0 rather than dividing by zero.
func mealCalorieShare(grams, kcalPerGram, mealCalories float64) float64 {
	if mealCalories <= 0 {
		return 0
	}
	return grams * kcalPerGram / mealCalories * 100
}

// assessShortfall rates a macro the meal should carry enough of (protein).
func assessShortfall(ratio, targetRatio float64) MacroAssessment {
	row := MacroAssessment{Percent: ratio, Direction: DirectionNone}
	switch {
	case ratio < targetRatio*proteinShortfallFactor:
		row.Rating = RatingAlert
		row.Direction = DirectionDown
	case ratio < targetRatio:
		row.Rating = RatingWarning
	default:
		row.Rating = RatingGood
	}
	return row
}

// assessExcess rates a macro the meal should not overload (fat, carbs).
func assessExcess(ratio, targetRatio float64) MacroAssessment {
	row := MacroAssessment{Percent: ratio, Direction: DirectionNone}
	switch {
	case ratio > targetRatio*excessFactor:
		row.Rating = RatingAlert
		row.Direction = DirectionUp
	case ratio > targetRatio:
		row.Rating = RatingWarning
	default:
		row.Rating = RatingGood
	}
	return row
}
