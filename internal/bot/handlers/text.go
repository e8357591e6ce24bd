package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/meallog/meal-logger-bot/internal/bot/keyboards"
	"github.com/meallog/meal-logger-bot/internal/bot/menus"
	"github.com/meallog/meal-logger-bot/internal/bot/state"
	"github.com/meallog/meal-logger-bot/internal/database"
	"github.com/meallog/meal-logger-bot/internal/logger"
	"github.com/meallog/meal-logger-bot/internal/nutrition"
	"github.com/meallog/meal-logger-bot/internal/services"
)

const entryDateLayout = "2006-01-02"

// TextHandler handles text messages
type TextHandler struct {
	api          *tgbotapi.BotAPI
	deps         Dependencies
	stateManager state.StateManager
}

// NewTextHandler creates a new text handler
func NewTextHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *TextHandler {
	return &TextHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a text message
func (h *TextHandler) Handle(ctx context.Context, message *tgbotapi.Message, user *database.User) error {
	userState := h.stateManager.GetUserState(user.TelegramID)

	switch userState {
	case state.WaitingForMealLog:
		return h.handleMealLog(ctx, message.Chat.ID, user, message.Text)
	case state.WaitingForMealEdit:
		return h.handleMealEdit(ctx, message, user)
	case state.WaitingForJournalText:
		return h.handleJournalText(ctx, message, user)
	case state.WaitingForTargets:
		return h.handleTargets(ctx, message, user)
	default:
		return h.handleFreeText(ctx, message, user)
	}
}

// handleMealLog parses a free-form meal description into structured meals
// and shows a preview for confirmation. An optional leading YYYY-MM-DD
// token logs the meals for that day instead of today.
func (h *TextHandler) handleMealLog(ctx context.Context, chatID int64, user *database.User, text string) error {
	logText, entryDate := splitDatePrefix(text)
	if strings.TrimSpace(logText) == "" {
		msg := tgbotapi.NewMessage(chatID, "The message only contained a date. Tell me what you ate as well.")
		_, err := h.api.Send(msg)
		return err
	}

	meals, err := h.deps.AISvc.ParseMealLog(ctx, logText)
	if err != nil {
		logger.Errorf("Meal log parsing failed for user %d: %v", user.ID, err)
		msg := tgbotapi.NewMessage(chatID, "I couldn't break that down into meals. Try rephrasing, e.g. \"2 scrambled eggs and a glass of orange juice\".")
		_, err := h.api.Send(msg)
		return err
	}

	return h.showPreview(chatID, user, logText, entryDate, meals)
}

// handleMealEdit applies a correction request to the pending meal preview.
func (h *TextHandler) handleMealEdit(ctx context.Context, message *tgbotapi.Message, user *database.User) error {
	logText, _ := h.stateManager.GetTempData(user.TelegramID, state.KeyLogText)
	current, ok := h.loadPendingMeals(user.TelegramID)
	if !ok {
		h.stateManager.ClearUserState(user.TelegramID)
		msg := tgbotapi.NewMessage(message.Chat.ID, "The preview has expired. Log the meals again.")
		_, err := h.api.Send(msg)
		if err != nil {
			return err
		}
		return menus.SendMainMenu(h.api, message.Chat.ID)
	}

	meals, err := h.deps.AISvc.EditMealLog(ctx, logText, current, message.Text)
	if err != nil {
		logger.Errorf("Meal edit failed for user %d: %v", user.ID, err)
		msg := tgbotapi.NewMessage(message.Chat.ID, "I couldn't apply that change. Try describing it differently.")
		_, err := h.api.Send(msg)
		return err
	}

	entryDate, _ := h.stateManager.GetTempData(user.TelegramID, state.KeyEntryDate)
	if entryDate == "" {
		entryDate = time.Now().UTC().Format(entryDateLayout)
	}
	return h.showPreview(message.Chat.ID, user, logText, entryDate, meals)
}

// handleJournalText extracts a whole-day journal entry and merges it into
// the day's existing entry, if any.
func (h *TextHandler) handleJournalText(ctx context.Context, message *tgbotapi.Message, user *database.User) error {
	text, entryDate := splitDatePrefix(message.Text)
	if strings.TrimSpace(text) == "" {
		msg := tgbotapi.NewMessage(message.Chat.ID, "The message only contained a date. Add the numbers for that day as well.")
		_, err := h.api.Send(msg)
		return err
	}

	extraction, err := h.deps.AISvc.ParseJournalEntry(ctx, text)
	if err != nil {
		logger.Errorf("Journal parsing failed for user %d: %v", user.ID, err)
		msg := tgbotapi.NewMessage(message.Chat.ID, "I couldn't read any nutrition numbers from that. List calories and macros, e.g. \"1850 cal, 120g protein, 60g fat, 180g carbs\".")
		_, err := h.api.Send(msg)
		return err
	}

	date, err := time.Parse(entryDateLayout, entryDate)
	if err != nil {
		date = time.Now().UTC()
	}

	saved, err := h.deps.JournalSvc.LogEntry(ctx, user.ID, date, services.EntryFromExtraction(text, extraction))
	if err != nil {
		logger.Errorf("Journal save failed for user %d: %v", user.ID, err)
		msg := tgbotapi.NewMessage(message.Chat.ID, "Couldn't save the journal entry. Please try again.")
		_, err := h.api.Send(msg)
		return err
	}

	h.stateManager.ClearUserState(user.TelegramID)

	confirmation := fmt.Sprintf(
		"✅ Journal for %s now reads:\n%.0f cal | %.1fg protein | %.1fg fat | %.1fg carbs | %.1fg fiber | %.1fg sugar",
		saved.EntryDate.Format(entryDateLayout),
		saved.Calories, saved.Protein, saved.Fats, saved.Carbs, saved.Fiber, saved.Sugar,
	)
	msg := tgbotapi.NewMessage(message.Chat.ID, confirmation)
	if _, err := h.api.Send(msg); err != nil {
		return err
	}
	return menus.SendMainMenu(h.api, message.Chat.ID)
}

// handleTargets parses four numbers (calories, protein, fat, carbs) and
// stores them as the user's daily targets.
func (h *TextHandler) handleTargets(ctx context.Context, message *tgbotapi.Message, user *database.User) error {
	fields := strings.FieldsFunc(message.Text, func(r rune) bool {
		return r == ' ' || r == ',' || r == '/' || r == '\n'
	})
	if len(fields) != 4 {
		msg := tgbotapi.NewMessage(message.Chat.ID, "Send exactly four numbers: calories, protein, fat, carbs. Example: 2000 150 70 200")
		_, err := h.api.Send(msg)
		return err
	}

	values := make([]float64, 4)
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			msg := tgbotapi.NewMessage(message.Chat.ID, fmt.Sprintf("%q is not a number. Example: 2000 150 70 200", f))
			_, err := h.api.Send(msg)
			return err
		}
		values[i] = v
	}

	targets := nutrition.Targets{
		Calories: values[0],
		Protein:  values[1],
		Fat:      values[2],
		Carbs:    values[3],
	}
	if err := h.deps.TargetSvc.UpsertProfile(ctx, user.ID, targets); err != nil {
		logger.Errorf("Target update failed for user %d: %v", user.ID, err)
		msg := tgbotapi.NewMessage(message.Chat.ID, "Couldn't save the targets. All four values must be non-negative numbers.")
		_, err := h.api.Send(msg)
		return err
	}

	h.stateManager.ClearUserState(user.TelegramID)
	return menus.SendTargetsMenu(h.api, message.Chat.ID, &targets)
}

// handleFreeText routes a message sent outside any flow: meal descriptions
// go to the logging pipeline, questions go to the assistant.
func (h *TextHandler) handleFreeText(ctx context.Context, message *tgbotapi.Message, user *database.User) error {
	intent, err := h.deps.AISvc.ClassifyIntent(ctx, message.Text)
	if err != nil {
		logger.Errorf("Intent classification failed for user %d: %v", user.ID, err)
		intent = services.IntentQuestion
	}

	if intent == services.IntentLogMeal {
		return h.handleMealLog(ctx, message.Chat.ID, user, message.Text)
	}

	targets, err := h.deps.TargetSvc.GetProfile(ctx, user.ID)
	if err != nil {
		logger.Errorf("Target lookup failed for user %d: %v", user.ID, err)
	}
	history, err := h.deps.MealSvc.History(ctx, user.ID, 7)
	if err != nil {
		logger.Errorf("History lookup failed for user %d: %v", user.ID, err)
	}

	answer, err := h.deps.AISvc.AnswerQuestion(ctx, message.Text, targets, dayContexts(history))
	if err != nil {
		logger.Errorf("Question answering failed for user %d: %v", user.ID, err)
		msg := tgbotapi.NewMessage(message.Chat.ID, "I couldn't answer that right now. Please try again.")
		_, err := h.api.Send(msg)
		return err
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, answer)
	msg.ReplyMarkup = keyboards.BackToMain()
	_, err = h.api.Send(msg)
	return err
}

// showPreview stores the parsed meals as pending temp data and renders the
// save/modify/discard preview.
func (h *TextHandler) showPreview(chatID int64, user *database.User, logText, entryDate string, meals []services.MealRecord) error {
	encoded, err := json.Marshal(meals)
	if err != nil {
		return fmt.Errorf("failed to encode pending meals: %w", err)
	}

	h.stateManager.SetTempData(user.TelegramID, state.KeyLogText, logText)
	h.stateManager.SetTempData(user.TelegramID, state.KeyPendingMeals, string(encoded))
	h.stateManager.SetTempData(user.TelegramID, state.KeyEntryDate, entryDate)
	h.stateManager.SetUserState(user.TelegramID, state.None)

	return menus.SendMealPreview(h.api, chatID, entryDate, meals)
}

func (h *TextHandler) loadPendingMeals(telegramID int64) ([]services.MealRecord, bool) {
	raw, ok := h.stateManager.GetTempData(telegramID, state.KeyPendingMeals)
	if !ok || raw == "" {
		return nil, false
	}
	var meals []services.MealRecord
	if err := json.Unmarshal([]byte(raw), &meals); err != nil {
		return nil, false
	}
	return meals, true
}

// splitDatePrefix strips an optional leading YYYY-MM-DD token and returns
// the remaining text plus the entry date (today when absent or invalid).
func splitDatePrefix(text string) (string, string) {
	today := time.Now().UTC().Format(entryDateLayout)
	trimmed := strings.TrimSpace(text)

	token, rest, found := strings.Cut(trimmed, " ")
	if !found {
		token, rest = trimmed, ""
	}
	if _, err := time.Parse(entryDateLayout, token); err != nil {
		return trimmed, today
	}
	return strings.TrimSpace(rest), token
}

func dayContexts(history []services.DayHistory) []services.DayContext {
	out := make([]services.DayContext, 0, len(history))
	for _, dh := range history {
		meals := make([]services.MealRecord, 0, len(dh.Day.Meals))
		for _, m := range dh.Day.Meals {
			record := services.MealRecord{
				Name:     m.Name,
				Servings: m.Servings,
				Calories: m.Calories,
			}
			if m.Protein != nil {
				record.Protein = *m.Protein
			}
			if m.Fat != nil {
				record.Fat = *m.Fat
			}
			if m.Carbs != nil {
				record.Carbs = *m.Carbs
			}
			meals = append(meals, record)
		}
		out = append(out, services.DayContext{
			Date:   dh.Day.Date.Format(entryDateLayout),
			Totals: dh.Totals,
			Meals:  meals,
		})
	}
	return out
}
