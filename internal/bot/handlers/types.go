package handlers

import (
	"github.com/meallog/meal-logger-bot/internal/interfaces"
)

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	UserService interfaces.UserServiceInterface
	AISvc       interfaces.AIServiceInterface
	MealSvc     interfaces.MealServiceInterface
	JournalSvc  interfaces.JournalServiceInterface
	TargetSvc   interfaces.TargetServiceInterface
	ReportSvc   interfaces.ReportServiceInterface
}
