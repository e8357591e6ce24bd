package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryFromExtraction(t *testing.T) {
	x := &JournalExtraction{
		Calories: 1850,
		Protein:  120,
		Carbs:    200,
		Fats:     60,
		Fiber:    25,
		Sugar:    40,
	}

	entry := EntryFromExtraction("eggs, rice, chicken", x)

	assert.Equal(t, "eggs, rice, chicken", entry.Log)
	assert.Equal(t, 1850.0, entry.Calories)
	assert.Equal(t, 120.0, entry.Protein)
	assert.Nil(t, entry.Weight)
	assert.Nil(t, entry.Sleep)
}

func TestEntryFromExtractionConvertsWeightToPounds(t *testing.T) {
	x := &JournalExtraction{Weight: fptr(80), WeightUnit: "kg"}

	entry := EntryFromExtraction("weighed in at 80kg", x)

	require.NotNil(t, entry.Weight)
	assert.InDelta(t, 176.37, *entry.Weight, 0.01)
}

func TestEntryFromExtractionKeepsPounds(t *testing.T) {
	x := &JournalExtraction{Weight: fptr(181.5), WeightUnit: "lb"}

	entry := EntryFromExtraction("181.5 lbs this morning", x)

	require.NotNil(t, entry.Weight)
	assert.Equal(t, 181.5, *entry.Weight)
}
