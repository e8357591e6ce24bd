package handlers

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/meallog/meal-logger-bot/internal/bot/state"
	"github.com/meallog/meal-logger-bot/internal/database"
	"github.com/stretchr/testify/assert"
)

func TestCallbackHandlerIgnoresStaleQuery(t *testing.T) {
	h := NewCallbackHandler(nil, Dependencies{}, state.NewManager())

	// Telegram drops the message from old callback queries; the handler
	// must bail out instead of dereferencing it.
	query := &tgbotapi.CallbackQuery{ID: "stale", Data: "history"}
	err := h.Handle(context.Background(), query, &database.User{TelegramID: 1})
	assert.NoError(t, err)
}
