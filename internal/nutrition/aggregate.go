package nutrition

// MealNutrients is one stored meal row as fed into daily aggregation.
// Macro grams are pointers because legacy rows may carry no value; a nil
// field counts as zero when summing. New extractions are validated before
// they ever reach storage, so nil only shows up on historical data.
type MealNutrients struct {
	Calories float64
	Protein  *float64
	Fat      *float64
	Carbs    *float64
}

// Totals sums a day's meals into macro totals. An empty slice yields all
// zeros and the result does not depend on meal order.
func Totals(meals []MealNutrients) Nutrients {
	var t Nutrients
	for _, m := range meals {
		t.Calories += m.Calories
		t.Protein += orZero(m.Protein)
		t.Fat += orZero(m.Fat)
		t.Carbs += orZero(m.Carbs)
	}
	return t
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
