package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManagerStates(t *testing.T) {
	m := NewManager()

	assert.Equal(t, None, m.GetUserState(1))

	m.SetUserState(1, WaitingForMealLog)
	assert.Equal(t, WaitingForMealLog, m.GetUserState(1))
	assert.Equal(t, None, m.GetUserState(2))

	m.ClearUserState(1)
	assert.Equal(t, None, m.GetUserState(1))
}

func TestManagerTempData(t *testing.T) {
	m := NewManager()

	_, ok := m.GetTempData(1, KeyLogText)
	assert.False(t, ok)

	m.SetTempData(1, KeyLogText, "two eggs and toast")
	m.SetTempData(1, KeyEntryDate, "2025-08-30")

	got, ok := m.GetTempData(1, KeyLogText)
	assert.True(t, ok)
	assert.Equal(t, "two eggs and toast", got)

	// Other users are isolated
	_, ok = m.GetTempData(2, KeyLogText)
	assert.False(t, ok)

	m.ClearTempData(1)
	_, ok = m.GetTempData(1, KeyLogText)
	assert.False(t, ok)
	_, ok = m.GetTempData(1, KeyEntryDate)
	assert.False(t, ok)
}
