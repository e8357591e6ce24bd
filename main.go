package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/meallog/meal-logger-bot/internal/bot"
	"github.com/meallog/meal-logger-bot/internal/bot/handlers"
	"github.com/meallog/meal-logger-bot/internal/bot/state"
	"github.com/meallog/meal-logger-bot/internal/config"
	"github.com/meallog/meal-logger-bot/internal/database"
	"github.com/meallog/meal-logger-bot/internal/logger"
	"github.com/meallog/meal-logger-bot/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Warnf(".env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		logger.Fatalf("Failed to initialize logger: %v", err)
	}
	logger.Info("Starting Meal Logger Bot...")

	db, err := database.NewPostgresDB(cfg.DB)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	logger.Info("Database connection established and migrations completed")

	targetService := services.NewTargetService(db)
	deps := handlers.Dependencies{
		UserService: services.NewUserService(db),
		AISvc:       services.NewAIService(cfg.OpenAIAPIKey, cfg.GeminiAPIKey),
		MealSvc:     services.NewMealService(db),
		JournalSvc:  services.NewJournalService(db),
		TargetSvc:   targetService,
		ReportSvc:   services.NewReportService(db, targetService),
	}
	logger.Info("Services initialized successfully")

	var stateManager state.StateManager
	if cfg.Redis.Host != "" {
		redisManager, err := state.NewRedisManager(cfg.Redis.Host, cfg.Redis.Port)
		if err != nil {
			logger.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisManager.Close()
		stateManager = redisManager
		logger.Info("Using Redis-backed conversation state")
	} else {
		stateManager = state.NewManager()
		logger.Info("Using in-memory conversation state")
	}

	telegramBot, err := bot.NewBot(cfg.TelegramToken, deps, stateManager)
	if err != nil {
		logger.Fatalf("Failed to create bot: %v", err)
	}
	logger.Info("Bot initialized successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Errorf("Bot stopped with error: %v", err)
		}
	}()

	logger.Info("Bot is running. Press Ctrl+C to stop.")
	wg.Wait()
	logger.Info("Shutdown complete")
}
