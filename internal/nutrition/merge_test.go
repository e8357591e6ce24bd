package nutrition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mergeDate = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

func TestMergeEntriesNoExisting(t *testing.T) {
	incoming := Entry{
		Log:      "oatmeal with berries",
		Calories: 420,
		Protein:  12,
		Weight:   ptr(180),
	}

	merged := MergeEntries(nil, incoming, mergeDate)

	assert.Equal(t, mergeDate, merged.Date)
	assert.Equal(t, "oatmeal with berries", merged.Log)
	assert.Equal(t, 420.0, merged.Calories)
	require.NotNil(t, merged.Weight)
	assert.Equal(t, 180.0, *merged.Weight)
}

func TestMergeEntriesAccumulatesAndAppends(t *testing.T) {
	existing := &Entry{
		Date:     mergeDate,
		Log:      "breakfast: eggs and toast",
		Calories: 500,
		Protein:  28.4,
		Carbs:    40,
		Fats:     22,
		Fiber:    4.2,
		Sugar:    6,
		Weight:   ptr(180),
	}
	incoming := Entry{
		Log:      "lunch: chicken wrap",
		Calories: 300,
		Protein:  25.3,
		Carbs:    30,
		Fats:     10,
		Fiber:    3.1,
		Sugar:    4,
	}

	merged := MergeEntries(existing, incoming, mergeDate)

	assert.Equal(t, "breakfast: eggs and toast\n\nAdditional entry: lunch: chicken wrap", merged.Log)
	assert.Equal(t, 800.0, merged.Calories)
	assert.Equal(t, 53.7, merged.Protein)
	assert.Equal(t, 70.0, merged.Carbs)
	assert.Equal(t, 32.0, merged.Fats)
	assert.Equal(t, 7.3, merged.Fiber)
	assert.Equal(t, 10.0, merged.Sugar)

	// Point-in-time fields survive an entry that does not report them.
	require.NotNil(t, merged.Weight)
	assert.Equal(t, 180.0, *merged.Weight)
	assert.Nil(t, merged.BMI)
}

func TestMergeEntriesLatestMeasurementWins(t *testing.T) {
	existing := &Entry{Date: mergeDate, Log: "a", Weight: ptr(180), Sleep: ptr(7)}
	incoming := Entry{Log: "b", Weight: ptr(178.5)}

	merged := MergeEntries(existing, incoming, mergeDate)

	require.NotNil(t, merged.Weight)
	assert.Equal(t, 178.5, *merged.Weight)
	require.NotNil(t, merged.Sleep)
	assert.Equal(t, 7.0, *merged.Sleep)
}

func TestMergeEntriesNumericSumsCommute(t *testing.T) {
	a := Entry{Log: "first", Calories: 512.34, Protein: 20.06, Carbs: 55.5, Fats: 18.18, Fiber: 2.2, Sugar: 9.9}
	b := Entry{Log: "second", Calories: 387.2, Protein: 31.4, Carbs: 12.3, Fats: 7.07, Fiber: 1.1, Sugar: 3.3}

	ab := MergeEntries(&a, b, mergeDate)
	ba := MergeEntries(&b, a, mergeDate)

	assert.Equal(t, ab.Calories, ba.Calories)
	assert.Equal(t, ab.Protein, ba.Protein)
	assert.Equal(t, ab.Carbs, ba.Carbs)
	assert.Equal(t, ab.Fats, ba.Fats)
	assert.Equal(t, ab.Fiber, ba.Fiber)
	assert.Equal(t, ab.Sugar, ba.Sugar)

	// The log reflects submission order, so the texts differ.
	assert.NotEqual(t, ab.Log, ba.Log)
}

func TestToPounds(t *testing.T) {
	assert.Equal(t, 180.0, ToPounds(180, "lb"))
	assert.Equal(t, 180.0, ToPounds(180, ""))
	assert.InDelta(t, 176.37, ToPounds(80, "kg"), 0.01)
	assert.InDelta(t, 176.37, ToPounds(80, "Kilograms"), 0.01)
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 1.3, Round1(1.25))
	assert.Equal(t, 1.2, Round1(1.24))
	assert.Equal(t, -1.3, Round1(-1.25))
}
