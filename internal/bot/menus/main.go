package menus

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/meallog/meal-logger-bot/internal/bot/keyboards"
	"github.com/meallog/meal-logger-bot/internal/nutrition"
	"github.com/meallog/meal-logger-bot/internal/services"
)

// SendMainMenu sends the main menu to a chat
func SendMainMenu(api *tgbotapi.BotAPI, chatID int64) error {
	text := `🥗 *Meal Logger* — your nutrition tracking assistant

📝 Tell me what you ate like you're speaking to a friend, or send a photo of your plate, and I will:
• Break it down into meals with calories and macros
• Track your daily totals against your targets
• Roll your days up into weekly adherence reports

Pick an action:`

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboards.MainMenu()
	_, err := api.Send(msg)
	return err
}

// SendMealPreview shows parsed meals for confirmation before saving.
func SendMealPreview(api *tgbotapi.BotAPI, chatID int64, date string, meals []services.MealRecord) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Here's what I understood for %s:\n\n", date)
	for _, m := range meals {
		fmt.Fprintf(&b, "• %s (x%.1f)\n  %d cal | %.1fg protein | %.1fg fat | %.1fg carbs\n",
			m.Name, m.Servings, m.Calories, m.Protein, m.Fat, m.Carbs)
	}

	totals := mealRecordTotals(meals)
	fmt.Fprintf(&b, "\nTotals: %.0f cal | %.1fg protein | %.1fg fat | %.1fg carbs",
		totals.Calories, totals.Protein, totals.Fat, totals.Carbs)

	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ReplyMarkup = keyboards.MealPreview()
	_, err := api.Send(msg)
	return err
}

// SendHistory renders recent days, newest first, with per-meal evaluation
// markers and daily totals compared to the targets.
func SendHistory(api *tgbotapi.BotAPI, chatID int64, history []services.DayHistory, targets *nutrition.Targets) error {
	if len(history) == 0 {
		msg := tgbotapi.NewMessage(chatID, "No meals logged yet. Use 📝 Log meals to get started.")
		msg.ReplyMarkup = keyboards.BackToMain()
		_, err := api.Send(msg)
		return err
	}

	var b strings.Builder
	for _, dh := range history {
		date := dh.Day.Date.Format("Mon Jan 2")
		fmt.Fprintf(&b, "📆 *%s* — %.0f cal | %.1fg protein | %.1fg fat | %.1fg carbs\n",
			date, dh.Totals.Calories, dh.Totals.Protein, dh.Totals.Fat, dh.Totals.Carbs)
		if targets != nil {
			fmt.Fprintf(&b, "vs targets: %+.0f cal | %+.1fg protein | %+.1fg fat | %+.1fg carbs\n",
				dh.Totals.Calories-targets.Calories,
				dh.Totals.Protein-targets.Protein,
				dh.Totals.Fat-targets.Fat,
				dh.Totals.Carbs-targets.Carbs)
		}

		for _, meal := range dh.Day.Meals {
			assessment := nutrition.EvaluateMeal(nutrition.Totals(
				[]nutrition.MealNutrients{{
					Calories: float64(meal.Calories),
					Protein:  meal.Protein,
					Fat:      meal.Fat,
					Carbs:    meal.Carbs,
				}}), targets)
			fmt.Fprintf(&b, "  • %s (x%.1f): %s%d cal%s",
				escapeMarkdown(meal.Name), meal.Servings,
				marker(assessment.Calories.Rating), meal.Calories, arrow(assessment.Calories.Direction))
			if meal.Protein != nil {
				fmt.Fprintf(&b, " | %s%.1fg P%s", marker(assessment.Protein.Rating), *meal.Protein, arrow(assessment.Protein.Direction))
			}
			if meal.Fat != nil {
				fmt.Fprintf(&b, " | %s%.1fg F%s", marker(assessment.Fat.Rating), *meal.Fat, arrow(assessment.Fat.Direction))
			}
			if meal.Carbs != nil {
				fmt.Fprintf(&b, " | %s%.1fg C%s", marker(assessment.Carbs.Rating), *meal.Carbs, arrow(assessment.Carbs.Direction))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = historyKeyboard(history)
	_, err := api.Send(msg)
	return err
}

// historyKeyboard builds one delete button per meal plus one per day.
func historyKeyboard(history []services.DayHistory) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(history)+1)
	for _, dh := range history {
		for _, meal := range dh.Day.Meals {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(
					fmt.Sprintf("🗑 %s · %s", dh.Day.Date.Format("Jan 2"), truncate(meal.Name, 24)),
					fmt.Sprintf("delete_meal_%d", meal.ID),
				),
			))
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("🗑 %s (whole day)", dh.Day.Date.Format("Jan 2")),
				fmt.Sprintf("delete_day_%d", dh.Day.ID),
			),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main_menu"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// escapeMarkdown neutralizes the characters Telegram's legacy Markdown
// parser treats as formatting; unbalanced markers in a meal name would
// make the whole message fail to send.
func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"]", "\\]",
		"`", "\\`",
	)
	return replacer.Replace(s)
}

// SendWeeklyReport renders weekly adherence summaries, oldest week first.
func SendWeeklyReport(api *tgbotapi.BotAPI, chatID int64, weeks []nutrition.WeeklySummary) error {
	if len(weeks) == 0 {
		msg := tgbotapi.NewMessage(chatID, "No logged days yet, so there is nothing to roll up.")
		msg.ReplyMarkup = keyboards.BackToMain()
		_, err := api.Send(msg)
		return err
	}

	var b strings.Builder
	for _, w := range weeks {
		verdict := "⚠️ Not in range"
		if w.Status == nutrition.WeekSuccess {
			verdict = "✅ Success"
		}
		fmt.Fprintf(&b, "📅 *%s* — %s\n", w.Week, verdict)
		fmt.Fprintf(&b, "Calories: %.0f / %.0f (%+.0f)\n", w.Totals.Calories, w.Goal.Calories, w.Diff.Calories)
		fmt.Fprintf(&b, "Protein: %.0fg / %.0fg (%+.0f)\n", w.Totals.Protein, w.Goal.Protein, w.Diff.Protein)
		fmt.Fprintf(&b, "Fat: %.0fg / %.0fg (%+.0f)\n", w.Totals.Fat, w.Goal.Fat, w.Diff.Fat)
		fmt.Fprintf(&b, "Carbs: %.0fg / %.0fg (%+.0f)\n\n", w.Totals.Carbs, w.Goal.Carbs, w.Diff.Carbs)
	}

	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboards.BackToMain()
	_, err := api.Send(msg)
	return err
}

// SendTargetsMenu shows the current target profile, if any.
func SendTargetsMenu(api *tgbotapi.BotAPI, chatID int64, targets *nutrition.Targets) error {
	var text string
	if targets == nil {
		text = "No targets configured yet. Set daily goals for calories, protein, fat and carbs to unlock evaluations and weekly reports."
	} else {
		text = fmt.Sprintf(`Your daily targets:

🔥 Calories: %.0f
🥩 Protein: %.0fg
🧈 Fat: %.0fg
🍞 Carbs: %.0fg`, targets.Calories, targets.Protein, targets.Fat, targets.Carbs)
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboards.Targets(targets != nil)
	_, err := api.Send(msg)
	return err
}

func marker(r nutrition.Rating) string {
	switch r {
	case nutrition.RatingGood:
		return "🟢"
	case nutrition.RatingAlert:
		return "🔴"
	default:
		return "⚪"
	}
}

func arrow(d nutrition.Direction) string {
	switch d {
	case nutrition.DirectionUp:
		return "↑"
	case nutrition.DirectionDown:
		return "↓"
	default:
		return ""
	}
}

func mealRecordTotals(meals []services.MealRecord) nutrition.Nutrients {
	in := make([]nutrition.MealNutrients, 0, len(meals))
	for i := range meals {
		m := meals[i]
		in = append(in, nutrition.MealNutrients{
			Calories: float64(m.Calories),
			Protein:  &m.Protein,
			Fat:      &m.Fat,
			Carbs:    &m.Carbs,
		})
	}
	return nutrition.Totals(in)
}
