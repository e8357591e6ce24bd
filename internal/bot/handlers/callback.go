package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/meallog/meal-logger-bot/internal/apperrors"
	"github.com/meallog/meal-logger-bot/internal/bot/keyboards"
	"github.com/meallog/meal-logger-bot/internal/bot/menus"
	"github.com/meallog/meal-logger-bot/internal/bot/state"
	"github.com/meallog/meal-logger-bot/internal/database"
	"github.com/meallog/meal-logger-bot/internal/logger"
)

// CallbackHandler handles callback queries
type CallbackHandler struct {
	api          *tgbotapi.BotAPI
	deps         Dependencies
	stateManager state.StateManager
	textHandler  *TextHandler
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *CallbackHandler {
	return &CallbackHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
		textHandler:  NewTextHandler(api, deps, stateManager),
	}
}

// Handle processes a callback query
func (h *CallbackHandler) Handle(ctx context.Context, query *tgbotapi.CallbackQuery, user *database.User) error {
	// Stale queries can arrive without a message to reply into
	if query.Message == nil {
		return nil
	}

	// Stop the button spinner
	callback := tgbotapi.NewCallback(query.ID, "")
	if _, err := h.api.Request(callback); err != nil {
		logger.Errorf("Failed to answer callback query: %v", err)
	}

	chatID := query.Message.Chat.ID

	switch {
	case query.Data == "main_menu":
		h.stateManager.ClearUserState(user.TelegramID)
		return menus.SendMainMenu(h.api, chatID)
	case query.Data == "log_meals":
		return h.promptMealLog(chatID, user)
	case query.Data == "journal":
		return h.promptJournal(ctx, chatID, user)
	case query.Data == "history":
		return h.sendHistory(ctx, chatID, user)
	case query.Data == "weekly_report":
		return h.sendWeeklyReport(ctx, chatID, user)
	case query.Data == "targets":
		return h.sendTargets(ctx, chatID, user)
	case query.Data == "set_targets":
		return h.promptTargets(chatID, user)
	case query.Data == "meals_save":
		return h.savePendingMeals(ctx, chatID, user)
	case query.Data == "meals_modify":
		return h.promptMealEdit(chatID, user)
	case query.Data == "meals_discard":
		return h.discardPendingMeals(chatID, user)
	case strings.HasPrefix(query.Data, "delete_day_"):
		return h.deleteDay(ctx, chatID, user, strings.TrimPrefix(query.Data, "delete_day_"))
	case strings.HasPrefix(query.Data, "delete_meal_"):
		return h.deleteMeal(ctx, chatID, user, strings.TrimPrefix(query.Data, "delete_meal_"))
	default:
		logger.Warnf("Unknown callback data %q from user %d", query.Data, user.ID)
		return menus.SendMainMenu(h.api, chatID)
	}
}

func (h *CallbackHandler) promptMealLog(chatID int64, user *database.User) error {
	h.stateManager.SetUserState(user.TelegramID, state.WaitingForMealLog)
	msg := tgbotapi.NewMessage(chatID, "Tell me what you ate, in your own words. Start with a date like 2025-08-30 to log for a past day, or just send a photo of your plate.")
	msg.ReplyMarkup = keyboards.BackToMain()
	_, err := h.api.Send(msg)
	return err
}

func (h *CallbackHandler) promptJournal(ctx context.Context, chatID int64, user *database.User) error {
	h.stateManager.SetUserState(user.TelegramID, state.WaitingForJournalText)

	text := "Send the whole day in one message: calories, protein, fat, carbs, plus anything else you track (fiber, sugar, weight, sleep). Logging the same day twice merges the numbers."
	if entry, err := h.deps.JournalSvc.GetEntry(ctx, user.ID, time.Now().UTC()); err == nil && entry != nil {
		text += "\n\nToday so far: " +
			strconv.FormatFloat(entry.Calories, 'f', 0, 64) + " cal, " +
			strconv.FormatFloat(entry.Protein, 'f', 1, 64) + "g protein, " +
			strconv.FormatFloat(entry.Fats, 'f', 1, 64) + "g fat, " +
			strconv.FormatFloat(entry.Carbs, 'f', 1, 64) + "g carbs."
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboards.BackToMain()
	_, err := h.api.Send(msg)
	return err
}

func (h *CallbackHandler) sendHistory(ctx context.Context, chatID int64, user *database.User) error {
	history, err := h.deps.MealSvc.History(ctx, user.ID, 7)
	if err != nil {
		logger.Errorf("History query failed for user %d: %v", user.ID, err)
		msg := tgbotapi.NewMessage(chatID, "Couldn't load your history. Please try again.")
		_, err := h.api.Send(msg)
		return err
	}

	targets, err := h.deps.TargetSvc.GetProfile(ctx, user.ID)
	if err != nil {
		logger.Errorf("Target lookup failed for user %d: %v", user.ID, err)
	}

	return menus.SendHistory(h.api, chatID, history, targets)
}

func (h *CallbackHandler) sendWeeklyReport(ctx context.Context, chatID int64, user *database.User) error {
	weeks, err := h.deps.ReportSvc.WeeklyReport(ctx, user.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoTargets) {
			msg := tgbotapi.NewMessage(chatID, "Weekly reports compare your totals against daily targets, and you haven't set any yet.")
			msg.ReplyMarkup = keyboards.SetTargets()
			_, err := h.api.Send(msg)
			return err
		}
		logger.Errorf("Weekly report failed for user %d: %v", user.ID, err)
		msg := tgbotapi.NewMessage(chatID, "Couldn't build the weekly report. Please try again.")
		_, err := h.api.Send(msg)
		return err
	}

	return menus.SendWeeklyReport(h.api, chatID, weeks)
}

func (h *CallbackHandler) sendTargets(ctx context.Context, chatID int64, user *database.User) error {
	targets, err := h.deps.TargetSvc.GetProfile(ctx, user.ID)
	if err != nil {
		logger.Errorf("Target lookup failed for user %d: %v", user.ID, err)
		msg := tgbotapi.NewMessage(chatID, "Couldn't load your targets. Please try again.")
		_, err := h.api.Send(msg)
		return err
	}
	return menus.SendTargetsMenu(h.api, chatID, targets)
}

func (h *CallbackHandler) promptTargets(chatID int64, user *database.User) error {
	h.stateManager.SetUserState(user.TelegramID, state.WaitingForTargets)
	msg := tgbotapi.NewMessage(chatID, "Send four numbers: daily calories, protein (g), fat (g), carbs (g). Example: 2000 150 70 200")
	msg.ReplyMarkup = keyboards.BackToMain()
	_, err := h.api.Send(msg)
	return err
}

func (h *CallbackHandler) savePendingMeals(ctx context.Context, chatID int64, user *database.User) error {
	meals, ok := h.textHandler.loadPendingMeals(user.TelegramID)
	if !ok {
		msg := tgbotapi.NewMessage(chatID, "Nothing to save, the preview has expired. Log the meals again.")
		_, err := h.api.Send(msg)
		if err != nil {
			return err
		}
		return menus.SendMainMenu(h.api, chatID)
	}

	entryDate := time.Now().UTC()
	if raw, ok := h.stateManager.GetTempData(user.TelegramID, state.KeyEntryDate); ok {
		if parsed, err := time.Parse(entryDateLayout, raw); err == nil {
			entryDate = parsed
		}
	}

	day, err := h.deps.MealSvc.SaveMeals(ctx, user.ID, entryDate, meals)
	if err != nil {
		logger.Errorf("Saving meals failed for user %d: %v", user.ID, err)
		msg := tgbotapi.NewMessage(chatID, "Couldn't save the meals. Please try again.")
		_, err := h.api.Send(msg)
		return err
	}

	h.stateManager.ClearTempData(user.TelegramID)
	h.stateManager.ClearUserState(user.TelegramID)

	msg := tgbotapi.NewMessage(chatID, "✅ Saved "+strconv.Itoa(len(meals))+" meal(s) for "+day.Date.Format(entryDateLayout)+".")
	if _, err := h.api.Send(msg); err != nil {
		return err
	}
	return menus.SendMainMenu(h.api, chatID)
}

func (h *CallbackHandler) promptMealEdit(chatID int64, user *database.User) error {
	if _, ok := h.textHandler.loadPendingMeals(user.TelegramID); !ok {
		msg := tgbotapi.NewMessage(chatID, "Nothing to modify, the preview has expired. Log the meals again.")
		_, err := h.api.Send(msg)
		return err
	}
	h.stateManager.SetUserState(user.TelegramID, state.WaitingForMealEdit)
	msg := tgbotapi.NewMessage(chatID, "What should I change? E.g. \"the toast was two slices\" or \"remove the juice\".")
	_, err := h.api.Send(msg)
	return err
}

func (h *CallbackHandler) discardPendingMeals(chatID int64, user *database.User) error {
	h.stateManager.ClearTempData(user.TelegramID)
	h.stateManager.ClearUserState(user.TelegramID)
	msg := tgbotapi.NewMessage(chatID, "Discarded, nothing was saved.")
	if _, err := h.api.Send(msg); err != nil {
		return err
	}
	return menus.SendMainMenu(h.api, chatID)
}

func (h *CallbackHandler) deleteDay(ctx context.Context, chatID int64, user *database.User, rawID string) error {
	dayID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		logger.Warnf("Bad day id %q from user %d", rawID, user.ID)
		return nil
	}

	if err := h.deps.MealSvc.DeleteDay(ctx, user.ID, uint(dayID)); err != nil {
		logger.Errorf("Deleting day %d failed for user %d: %v", dayID, user.ID, err)
		msg := tgbotapi.NewMessage(chatID, "Couldn't delete that day. Please try again.")
		_, err := h.api.Send(msg)
		return err
	}

	return h.sendHistory(ctx, chatID, user)
}

func (h *CallbackHandler) deleteMeal(ctx context.Context, chatID int64, user *database.User, rawID string) error {
	mealID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		logger.Warnf("Bad meal id %q from user %d", rawID, user.ID)
		return nil
	}

	if err := h.deps.MealSvc.DeleteMeal(ctx, user.ID, uint(mealID)); err != nil {
		logger.Errorf("Deleting meal %d failed for user %d: %v", mealID, user.ID, err)
		msg := tgbotapi.NewMessage(chatID, "Couldn't delete that meal. Please try again.")
		_, err := h.api.Send(msg)
		return err
	}

	return h.sendHistory(ctx, chatID, user)
}
