package nutrition

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// WeekKey identifies an ISO-8601 calendar week. Weeks start on Monday and
// the year is the one owning the week's Thursday, so a key can differ from
// the Gregorian year of the dates inside it.
type WeekKey struct {
	Year int
	Week int
}

// String renders the key in ISO notation, e.g. "2025-W01".
func (k WeekKey) String() string {
	return fmt.Sprintf("%04d-W%02d", k.Year, k.Week)
}

// WeekStatus is the adherence verdict for one week.
type WeekStatus string

const (
	WeekSuccess    WeekStatus = "success"
	WeekNotInRange WeekStatus = "not_in_range"
)

// Tolerance bands around the weekly goal: calories are held tighter than
// the individual macros.
const (
	calorieTolerance = 0.10
	macroTolerance   = 0.20
)

// DayTotals is one day's aggregated nutrition, the rollup input.
type DayTotals struct {
	Date   time.Time
	Totals Nutrients
}

// WeeklySummary is one week's totals compared against seven times the
// daily targets. It is derived on every view and never persisted.
type WeeklySummary struct {
	Week   WeekKey
	Totals Nutrients
	Goal   Nutrients
	Diff   Nutrients
	Status WeekStatus
}

// Rollup groups daily totals by ISO week and classifies each week. A week
// succeeds when calories land within ±10% of the weekly goal and each macro
// within ±20% of its own. Summaries come back ordered by week ascending.
// Callers must have a configured target profile before invoking rollup.
func Rollup(days []DayTotals, targets Targets) []WeeklySummary {
	buckets := make(map[WeekKey]Nutrients)
	for _, d := range days {
		year, week := d.Date.ISOWeek()
		key := WeekKey{Year: year, Week: week}
		b := buckets[key]
		b.Calories += d.Totals.Calories
		b.Protein += d.Totals.Protein
		b.Fat += d.Totals.Fat
		b.Carbs += d.Totals.Carbs
		buckets[key] = b
	}

	keys := make([]WeekKey, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Year != keys[j].Year {
			return keys[i].Year < keys[j].Year
		}
		return keys[i].Week < keys[j].Week
	})

	goal := Nutrients{
		Calories: 7 * targets.Calories,
		Protein:  7 * targets.Protein,
		Fat:      7 * targets.Fat,
		Carbs:    7 * targets.Carbs,
	}

	summaries := make([]WeeklySummary, 0, len(keys))
	for _, k := range keys {
		totals := buckets[k]
		diff := Nutrients{
			Calories: totals.Calories - goal.Calories,
			Protein:  totals.Protein - goal.Protein,
			Fat:      totals.Fat - goal.Fat,
			Carbs:    totals.Carbs - goal.Carbs,
		}

		status := WeekNotInRange
		if withinBand(totals.Calories, goal.Calories, calorieTolerance) &&
			withinBand(totals.Protein, goal.Protein, macroTolerance) &&
			withinBand(totals.Fat, goal.Fat, macroTolerance) &&
			withinBand(totals.Carbs, goal.Carbs, macroTolerance) {
			status = WeekSuccess
		}

		summaries = append(summaries, WeeklySummary{
			Week:   k,
			Totals: totals,
			Goal:   goal,
			Diff:   diff,
			Status: status,
		})
	}
	return summaries
}

func withinBand(total, goal, tolerance float64) bool {
	return math.Abs(total-goal) <= tolerance*goal
}
