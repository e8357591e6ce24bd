package handlers

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/meallog/meal-logger-bot/internal/bot/state"
	"github.com/meallog/meal-logger-bot/internal/database"
	"github.com/meallog/meal-logger-bot/internal/logger"
)

// PhotoHandler handles photo messages
type PhotoHandler struct {
	api          *tgbotapi.BotAPI
	deps         Dependencies
	stateManager state.StateManager
	textHandler  *TextHandler
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *PhotoHandler {
	return &PhotoHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
		textHandler:  NewTextHandler(api, deps, stateManager),
	}
}

// Handle processes a photo message. The photo goes through vision-based
// meal extraction and then joins the same preview flow as a text log.
func (h *PhotoHandler) Handle(ctx context.Context, message *tgbotapi.Message, user *database.User) error {
	// Largest size is last
	photo := message.Photo[len(message.Photo)-1]
	file, err := h.api.GetFile(tgbotapi.FileConfig{FileID: photo.FileID})
	if err != nil {
		return fmt.Errorf("failed to get file: %w", err)
	}

	processingMsg := tgbotapi.NewMessage(message.Chat.ID, "Looking at your plate...")
	sentMsg, err := h.api.Send(processingMsg)
	if err != nil {
		return fmt.Errorf("failed to send processing message: %w", err)
	}

	logger.Infof("Starting photo meal extraction for user %d", user.ID)
	meals, err := h.deps.AISvc.ParseMealPhoto(ctx, file.Link(h.api.Token))

	deleteMsg := tgbotapi.NewDeleteMessage(message.Chat.ID, sentMsg.MessageID)
	h.api.Send(deleteMsg)

	if err != nil {
		logger.Errorf("Photo meal extraction failed for user %d: %v", user.ID, err)
		msg := tgbotapi.NewMessage(message.Chat.ID, "I couldn't recognize any food in that photo. Try a clearer shot, or describe the meal in text.")
		_, err := h.api.Send(msg)
		return err
	}
	logger.Infof("Photo meal extraction completed for user %d, %d meals", user.ID, len(meals))

	logText := message.Caption
	if logText == "" {
		logText = "meal photo"
	}
	entryDate := time.Now().UTC().Format(entryDateLayout)
	return h.textHandler.showPreview(message.Chat.ID, user, logText, entryDate, meals)
}
