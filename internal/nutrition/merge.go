package nutrition

import (
	"math"
	"strings"
	"time"
)

// Entry is one day's nutrition journal record in the single-entry-per-day
// model. Macro fields accumulate across merges; weight, BMI and sleep are
// point-in-time measurements where the latest reported value wins. Weight
// is always stored in pounds.
type Entry struct {
	Date     time.Time
	Log      string
	Calories float64
	Protein  float64
	Carbs    float64
	Fats     float64
	Fiber    float64
	Sugar    float64
	Weight   *float64
	BMI      *float64
	Sleep    *float64
}

const additionalEntryPrefix = "Additional entry: "

// MergeEntries folds an incoming journal entry into the existing entry for
// the same date. With no existing entry the incoming one is returned
// date-stamped as-is. Otherwise the log text is appended (never truncated),
// macro fields are summed and rounded to one decimal, and point-in-time
// fields keep the stored value unless the incoming entry reports a new one.
func MergeEntries(existing *Entry, incoming Entry, date time.Time) Entry {
	if existing == nil {
		incoming.Date = date
		return incoming
	}

	return Entry{
		Date:     date,
		Log:      existing.Log + "\n\n" + additionalEntryPrefix + incoming.Log,
		Calories: Round1(existing.Calories + incoming.Calories),
		Protein:  Round1(existing.Protein + incoming.Protein),
		Carbs:    Round1(existing.Carbs + incoming.Carbs),
		Fats:     Round1(existing.Fats + incoming.Fats),
		Fiber:    Round1(existing.Fiber + incoming.Fiber),
		Sugar:    Round1(existing.Sugar + incoming.Sugar),
		Weight:   latest(existing.Weight, incoming.Weight),
		BMI:      latest(existing.BMI, incoming.BMI),
		Sleep:    latest(existing.Sleep, incoming.Sleep),
	}
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// latest prefers the incoming value; an absent incoming value never clears
// a previously known one.
func latest(stored, incoming *float64) *float64 {
	if incoming != nil {
		return incoming
	}
	return stored
}

const poundsPerKilogram = 2.20462

// ToPounds normalizes a weight to pounds. Unrecognized units are treated
// as pounds, which is the storage unit.
func ToPounds(value float64, unit string) float64 {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "kg", "kgs", "kilogram", "kilograms":
		return value * poundsPerKilogram
	default:
		return value
	}
}
