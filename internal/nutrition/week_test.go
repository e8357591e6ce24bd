package nutrition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int, n Nutrients) DayTotals {
	return DayTotals{Date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Totals: n}
}

func TestRollupGroupsAcrossYearBoundary(t *testing.T) {
	// 2024-12-30 (Monday) and 2025-01-01 (Wednesday) both sit in ISO week
	// 2025-W01 even though the Gregorian years differ.
	days := []DayTotals{
		day(2024, time.December, 30, Nutrients{Calories: 2000}),
		day(2025, time.January, 1, Nutrients{Calories: 1800}),
	}

	weeks := Rollup(days, Targets{Calories: 2000, Protein: 150, Fat: 70, Carbs: 250})

	require.Len(t, weeks, 1)
	assert.Equal(t, WeekKey{Year: 2025, Week: 1}, weeks[0].Week)
	assert.Equal(t, "2025-W01", weeks[0].Week.String())
	assert.Equal(t, 3800.0, weeks[0].Totals.Calories)
}

func TestRollupCaloriesWithinTenPercent(t *testing.T) {
	targets := Targets{Calories: 2000, Protein: 150, Fat: 70, Carbs: 250}

	// One week of days summing to 15000 kcal against a 14000 goal: +1000 is
	// 7.1%, inside the calorie band. Macros land exactly on goal.
	days := make([]DayTotals, 0, 7)
	for d := 7; d <= 13; d++ {
		n := Nutrients{Calories: 15000.0 / 7, Protein: 150, Fat: 70, Carbs: 250}
		days = append(days, day(2025, time.April, d, n))
	}

	weeks := Rollup(days, targets)

	require.Len(t, weeks, 1)
	assert.InDelta(t, 1000, weeks[0].Diff.Calories, 1e-9)
	assert.Equal(t, WeekSuccess, weeks[0].Status)
}

func TestRollupMacroOutOfBand(t *testing.T) {
	targets := Targets{Calories: 2000, Protein: 150, Fat: 70, Carbs: 250}

	// Calories on goal but protein at 70% of goal: outside the ±20% band.
	days := make([]DayTotals, 0, 7)
	for d := 7; d <= 13; d++ {
		n := Nutrients{Calories: 2000, Protein: 105, Fat: 70, Carbs: 250}
		days = append(days, day(2025, time.April, d, n))
	}

	weeks := Rollup(days, targets)

	require.Len(t, weeks, 1)
	assert.Equal(t, WeekNotInRange, weeks[0].Status)
	assert.InDelta(t, -315, weeks[0].Diff.Protein, 1e-9)
}

func TestRollupOrdersWeeksAscending(t *testing.T) {
	targets := Targets{Calories: 2000, Protein: 150, Fat: 70, Carbs: 250}
	days := []DayTotals{
		day(2025, time.February, 10, Nutrients{Calories: 2000}),
		day(2024, time.December, 20, Nutrients{Calories: 2000}),
		day(2025, time.January, 6, Nutrients{Calories: 2000}),
	}

	weeks := Rollup(days, targets)

	require.Len(t, weeks, 3)
	assert.Equal(t, WeekKey{Year: 2024, Week: 51}, weeks[0].Week)
	assert.Equal(t, WeekKey{Year: 2025, Week: 2}, weeks[1].Week)
	assert.Equal(t, WeekKey{Year: 2025, Week: 7}, weeks[2].Week)
}

func TestRollupEmptyInput(t *testing.T) {
	weeks := Rollup(nil, Targets{Calories: 2000})
	assert.Empty(t, weeks)
}
