package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/meallog/meal-logger-bot/internal/bot/handlers"
	"github.com/meallog/meal-logger-bot/internal/bot/state"
	"github.com/meallog/meal-logger-bot/internal/logger"
)

// Bot wraps the Telegram API connection and the update router.
type Bot struct {
	api     *tgbotapi.BotAPI
	handler *handlers.UpdateHandler
}

// NewBot connects to Telegram and wires the handler chain.
func NewBot(token string, deps handlers.Dependencies, stateManager state.StateManager) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	logger.Infof("Bot authorized on account %s", api.Self.UserName)
	return &Bot{
		api:     api,
		handler: handlers.NewUpdateHandler(api, deps, stateManager),
	}, nil
}

// Start runs the long-polling loop until the context is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	logger.Info("Bot is now listening for updates...")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Bot is shutting down...")
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			if err := b.handler.Handle(ctx, update); err != nil {
				logger.Errorf("Error handling update: %v", err)
			}
		}
	}
}
