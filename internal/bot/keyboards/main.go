package keyboards

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MainMenu creates the main menu keyboard
func MainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 Log meals", "log_meals"),
			tgbotapi.NewInlineKeyboardButtonData("📒 Daily journal", "journal"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 History", "history"),
			tgbotapi.NewInlineKeyboardButtonData("📅 Weekly report", "weekly_report"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Targets", "targets"),
		),
	)
}

// MealPreview creates the keyboard under a parsed meal preview
func MealPreview() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💾 Save", "meals_save"),
			tgbotapi.NewInlineKeyboardButtonData("✏️ Modify", "meals_modify"),
			tgbotapi.NewInlineKeyboardButtonData("🗑 Discard", "meals_discard"),
		),
	)
}

// Targets creates the target profile keyboard
func Targets(hasProfile bool) tgbotapi.InlineKeyboardMarkup {
	label := "✏️ Set targets"
	if hasProfile {
		label = "✏️ Update targets"
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "set_targets"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main_menu"),
		),
	)
}

// BackToMain creates a single back button
func BackToMain() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main_menu"),
		),
	)
}

// SetTargets points at target setup from a report that has none
func SetTargets() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Set targets", "set_targets"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main_menu"),
		),
	)
}
