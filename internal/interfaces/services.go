package interfaces

import (
	"context"
	"time"

	"github.com/meallog/meal-logger-bot/internal/database"
	"github.com/meallog/meal-logger-bot/internal/nutrition"
	"github.com/meallog/meal-logger-bot/internal/services"
)

// UserServiceInterface defines the contract for user operations
type UserServiceInterface interface {
	RegisterUser(ctx context.Context, telegramID int64, username, firstName, lastName string) (*database.User, error)
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*database.User, error)
}

// AIServiceInterface defines the contract for meal extraction and chat
type AIServiceInterface interface {
	ParseMealLog(ctx context.Context, logText string) ([]services.MealRecord, error)
	ParseMealPhoto(ctx context.Context, imageURL string) ([]services.MealRecord, error)
	EditMealLog(ctx context.Context, originalLog string, current []services.MealRecord, editRequest string) ([]services.MealRecord, error)
	ParseJournalEntry(ctx context.Context, text string) (*services.JournalExtraction, error)
	ClassifyIntent(ctx context.Context, text string) (services.Intent, error)
	AnswerQuestion(ctx context.Context, question string, targets *nutrition.Targets, history []services.DayContext) (string, error)
}

// MealServiceInterface defines the contract for meal day operations
type MealServiceInterface interface {
	SaveMeals(ctx context.Context, userID uint, date time.Time, meals []services.MealRecord) (*database.Day, error)
	History(ctx context.Context, userID uint, limit int) ([]services.DayHistory, error)
	DeleteMeal(ctx context.Context, userID, mealID uint) error
	DeleteDay(ctx context.Context, userID, dayID uint) error
}

// JournalServiceInterface defines the contract for the daily journal
type JournalServiceInterface interface {
	LogEntry(ctx context.Context, userID uint, date time.Time, incoming nutrition.Entry) (*database.NutritionEntry, error)
	GetEntry(ctx context.Context, userID uint, date time.Time) (*database.NutritionEntry, error)
}

// TargetServiceInterface defines the contract for target profiles
type TargetServiceInterface interface {
	GetProfile(ctx context.Context, userID uint) (*nutrition.Targets, error)
	UpsertProfile(ctx context.Context, userID uint, t nutrition.Targets) error
}

// ReportServiceInterface defines the contract for weekly reports
type ReportServiceInterface interface {
	WeeklyReport(ctx context.Context, userID uint) ([]nutrition.WeeklySummary, error)
}
