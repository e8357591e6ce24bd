package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/meallog/meal-logger-bot/internal/bot/menus"
	"github.com/meallog/meal-logger-bot/internal/bot/state"
	"github.com/meallog/meal-logger-bot/internal/database"
)

// CommandHandler handles bot commands
type CommandHandler struct {
	api          *tgbotapi.BotAPI
	stateManager state.StateManager
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(api *tgbotapi.BotAPI, stateManager state.StateManager) *CommandHandler {
	return &CommandHandler{api: api, stateManager: stateManager}
}

// Handle processes a command message
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message, user *database.User) error {
	switch message.Command() {
	case "start":
		h.stateManager.ClearUserState(user.TelegramID)
		h.stateManager.ClearTempData(user.TelegramID)
		return menus.SendMainMenu(h.api, message.Chat.ID)
	case "help":
		return h.sendHelp(message.Chat.ID)
	default:
		msg := tgbotapi.NewMessage(message.Chat.ID, "Unknown command. Try /start.")
		_, err := h.api.Send(msg)
		return err
	}
}

func (h *CommandHandler) sendHelp(chatID int64) error {
	text := `How to use this bot:

📝 *Log meals* — describe what you ate in plain language ("two eggs and a slice of toast"). Start the message with a date like 2025-08-30 to log for a past day, otherwise it goes to today. You can also just send a photo of your food.

📒 *Daily journal* — dump whole-day numbers (calories, macros, weight, sleep) in one message. Logging the same day twice merges the entries instead of overwriting.

📊 *History* — recent days with per-meal color markers against your targets.

📅 *Weekly report* — ISO-week totals vs 7× your daily targets. Calories must land within ±10% and each macro within ±20% for a week to count as a success.

🎯 *Targets* — set daily calories, protein, fat and carbs.

You can also just ask me a nutrition question — I answer using your targets and your recent history.`

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	_, err := h.api.Send(msg)
	return err
}
