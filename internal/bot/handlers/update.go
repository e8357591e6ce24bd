package handlers

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/meallog/meal-logger-bot/internal/bot/state"
	"github.com/meallog/meal-logger-bot/internal/interfaces"
	"github.com/meallog/meal-logger-bot/internal/logger"
)

// UpdateHandler handles telegram updates and coordinates other handlers
type UpdateHandler struct {
	api             *tgbotapi.BotAPI
	userService     interfaces.UserServiceInterface
	stateManager    state.StateManager
	callbackHandler *CallbackHandler
	commandHandler  *CommandHandler
	textHandler     *TextHandler
	photoHandler    *PhotoHandler
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(
	api *tgbotapi.BotAPI,
	deps Dependencies,
	stateManager state.StateManager,
) *UpdateHandler {
	return &UpdateHandler{
		api:             api,
		userService:     deps.UserService,
		stateManager:    stateManager,
		callbackHandler: NewCallbackHandler(api, deps, stateManager),
		commandHandler:  NewCommandHandler(api, stateManager),
		textHandler:     NewTextHandler(api, deps, stateManager),
		photoHandler:    NewPhotoHandler(api, deps, stateManager),
	}
}

// Handle processes a telegram update
func (h *UpdateHandler) Handle(ctx context.Context, update tgbotapi.Update) error {
	if update.Message == nil && update.CallbackQuery == nil {
		return nil
	}

	var from *tgbotapi.User
	if update.Message != nil {
		from = update.Message.From
	} else {
		from = update.CallbackQuery.From
	}
	if from == nil {
		return nil
	}

	user, err := h.userService.RegisterUser(ctx, from.ID, from.UserName, from.FirstName, from.LastName)
	if err != nil {
		logger.Errorf("Failed to register user %d: %v", from.ID, err)
		return fmt.Errorf("failed to register user: %w", err)
	}

	if update.CallbackQuery != nil {
		return h.callbackHandler.Handle(ctx, update.CallbackQuery, user)
	}

	if update.Message.IsCommand() {
		return h.commandHandler.Handle(ctx, update.Message, user)
	}

	if len(update.Message.Photo) > 0 {
		return h.photoHandler.Handle(ctx, update.Message, user)
	}

	if update.Message.Text != "" {
		return h.textHandler.Handle(ctx, update.Message, user)
	}

	return nil
}
