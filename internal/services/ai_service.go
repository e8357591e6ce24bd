package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/meallog/meal-logger-bot/internal/apperrors"
	"github.com/meallog/meal-logger-bot/internal/nutrition"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
	"google.golang.org/api/option"
)

// MealRecord is one finalized structured meal. All nutrition fields are
// resolved to numeric estimates before a record leaves the AI service.
type MealRecord struct {
	Name     string  `json:"meal"`
	Servings float64 `json:"count"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbohydrates"`
}

// JournalExtraction is a whole-day journal entry as extracted by the model.
type JournalExtraction struct {
	Calories   float64  `json:"calories"`
	Protein    float64  `json:"protein"`
	Carbs      float64  `json:"carbohydrates"`
	Fats       float64  `json:"fats"`
	Fiber      float64  `json:"fiber"`
	Sugar      float64  `json:"sugar"`
	Weight     *float64 `json:"weight,omitempty"`
	WeightUnit string   `json:"weight_unit,omitempty"`
	BMI        *float64 `json:"bmi,omitempty"`
	SleepHours *float64 `json:"sleep_hours,omitempty"`
}

// Intent is the classified purpose of a free-form chat message.
type Intent string

const (
	IntentLogMeal  Intent = "log_meal"
	IntentQuestion Intent = "question"
)

// DayContext is one day of history handed to the assistant as grounding
// for nutrition questions.
type DayContext struct {
	Date   string              `json:"date"`
	Totals nutrition.Nutrients `json:"totals"`
	Meals  []MealRecord        `json:"meals"`
}

type AIService struct {
	openaiClient *openai.Client
	geminiClient *genai.Client
}

func NewAIService(openaiAPIKey, geminiAPIKey string) *AIService {
	geminiClient, err := genai.NewClient(context.Background(), option.WithAPIKey(geminiAPIKey))
	if err != nil {
		panic(fmt.Sprintf("Failed to create Gemini client: %v", err))
	}

	return &AIService{
		openaiClient: openai.NewClient(openaiAPIKey),
		geminiClient: geminiClient,
	}
}

// Wire types use pointers so a field the model omitted is distinguishable
// from zero. Omissions are rejected, never zero-filled.
type wireMeal struct {
	Meal          string   `json:"meal"`
	Count         float64  `json:"count"`
	Calories      *int     `json:"calories"`
	Protein       *float64 `json:"protein"`
	Fat           *float64 `json:"fat"`
	Carbohydrates *float64 `json:"carbohydrates"`
}

type wireMealList struct {
	Meals         []wireMeal `json:"meals"`
	TotalCalories int        `json:"totalCalories"`
}

var mealListSchema = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"meals": {
			Type: jsonschema.Array,
			Items: &jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"meal":          {Type: jsonschema.String, Description: "Description of the meal"},
					"count":         {Type: jsonschema.Number, Description: "Number of servings"},
					"calories":      {Type: jsonschema.Integer},
					"protein":       {Type: jsonschema.Number, Description: "Grams of protein"},
					"fat":           {Type: jsonschema.Number, Description: "Grams of fat"},
					"carbohydrates": {Type: jsonschema.Number, Description: "Grams of carbohydrates"},
				},
				Required: []string{"meal", "count", "calories", "protein", "fat", "carbohydrates"},
			},
		},
		"totalCalories": {Type: jsonschema.Integer, Description: "Sum of calories across all meals"},
	},
	Required: []string{"meals", "totalCalories"},
}

const parseMealsSystemPrompt = `You are a helpful assistant. A user will provide you a list of foods they ate for the day.
You will take this and break down everything they ate into meals. For each meal:
1. If calories were provided, use those
2. If not, estimate calories based on typical portions
3. Estimate grams of protein, fat, and carbohydrates
4. Include reasonable calorie/macronutrient count guesses
5. Calculate totalCalories as the sum of all meals`

// ParseMealLog converts a free-text food log into structured meal records.
func (s *AIService) ParseMealLog(ctx context.Context, logText string) ([]MealRecord, error) {
	resp, err := s.openaiClient.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4o,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: parseMealsSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Parse the following daily food intake into structured meal data: %s", logText)},
		},
		Functions: []openai.FunctionDefinition{
			{Name: "parse_meals", Description: "Parse meals from the given text", Parameters: mealListSchema},
		},
		FunctionCall: openai.FunctionCall{Name: "parse_meals"},
	})
	if err != nil {
		return nil, apperrors.NewExternalAPIError(err, "openai")
	}

	call := resp.Choices[0].Message.FunctionCall
	if call == nil {
		return nil, apperrors.NewExternalAPIError(fmt.Errorf("no function call in response"), "openai")
	}

	var list wireMealList
	if err := json.Unmarshal([]byte(call.Arguments), &list); err != nil {
		return nil, apperrors.NewExternalAPIError(fmt.Errorf("failed to parse response: %w", err), "openai")
	}

	return finalizeMeals(list.Meals)
}

// EditMealLog re-runs extraction with the current meal list and the user's
// requested edits folded into the query.
func (s *AIService) EditMealLog(ctx context.Context, originalLog string, current []MealRecord, editRequest string) ([]MealRecord, error) {
	currentJSON, err := json.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal current meals: %w", err)
	}

	combined := fmt.Sprintf("%s\n\nHere's the current meal list:\n%s\nEdit this meal list with the user requested edits from this query:\n%s",
		originalLog, currentJSON, editRequest)
	return s.ParseMealLog(ctx, combined)
}

const parsePhotoPrompt = `You are a nutrition analysis expert. Identify the meals in the image and estimate their nutrition.

TASK:
1. Break everything visible into separate meals
2. For each meal estimate calories, grams of protein, fat and carbohydrates
3. Estimate the serving count (1 unless clearly multiple servings)
4. Calculate totalCalories as the sum of all meals
5. If the image contains nutrition labels or packaging, prioritize that data

CRITICAL JSON FORMAT REQUIREMENTS:
- Your response MUST be a valid JSON object
- Do not include any markdown formatting or explanatory text before or after the JSON
- The JSON must have these exact fields:
  {
    "meals": [{"meal": "name", "count": 1.0, "calories": 450, "protein": 20.0, "fat": 15.0, "carbohydrates": 55.0}],
    "totalCalories": 450
  }
- Every meal must include calories, protein, fat and carbohydrates`

// ParseMealPhoto extracts structured meal records from a photo of food.
func (s *AIService) ParseMealPhoto(ctx context.Context, imageURL string) ([]MealRecord, error) {
	model := s.geminiClient.GenerativeModel("gemini-1.5-flash")

	resp, err := http.Get(imageURL)
	if err != nil {
		return nil, apperrors.NewExternalAPIError(fmt.Errorf("failed to download image: %w", err), "telegram")
	}
	defer resp.Body.Close()

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	img := genai.ImageData("image/jpeg", imageData)
	geminiResp, err := model.GenerateContent(ctx, img, genai.Text(parsePhotoPrompt))
	if err != nil {
		return nil, apperrors.NewExternalAPIError(err, "gemini")
	}

	responseText, ok := geminiResp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, apperrors.NewExternalAPIError(fmt.Errorf("unexpected response part type"), "gemini")
	}

	jsonStr := extractJSON(string(responseText))
	if jsonStr == "" {
		return nil, apperrors.NewExternalAPIError(fmt.Errorf("no valid JSON found in response"), "gemini")
	}

	var list wireMealList
	if err := json.Unmarshal([]byte(jsonStr), &list); err != nil {
		return nil, apperrors.NewExternalAPIError(fmt.Errorf("failed to parse response: %w", err), "gemini")
	}

	return finalizeMeals(list.Meals)
}

var journalSchema = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"calories":      {Type: jsonschema.Number, Description: "Total calories for the entry"},
		"protein":       {Type: jsonschema.Number, Description: "Grams of protein"},
		"carbohydrates": {Type: jsonschema.Number, Description: "Grams of carbohydrates"},
		"fats":          {Type: jsonschema.Number, Description: "Grams of fat"},
		"fiber":         {Type: jsonschema.Number, Description: "Grams of fiber"},
		"sugar":         {Type: jsonschema.Number, Description: "Grams of sugar"},
		"weight":        {Type: jsonschema.Number, Description: "Body weight if mentioned"},
		"weight_unit":   {Type: jsonschema.String, Enum: []string{"lb", "kg"}},
		"bmi":           {Type: jsonschema.Number, Description: "BMI if mentioned"},
		"sleep_hours":   {Type: jsonschema.Number, Description: "Hours of sleep if mentioned"},
	},
	Required: []string{"calories", "protein", "carbohydrates", "fats", "fiber", "sugar"},
}

const parseJournalSystemPrompt = `You are a nutrition journal assistant. The user describes a meal or their whole day:
food eaten and optionally body weight, BMI or hours slept.
Estimate total calories, grams of protein, carbohydrates, fat, fiber and sugar for the food described.
Report weight, bmi and sleep_hours only when the user actually mentions them; never guess them.
When weight is mentioned, report the unit the user used as weight_unit.`

// ParseJournalEntry extracts a whole-day journal entry from free text.
func (s *AIService) ParseJournalEntry(ctx context.Context, text string) (*JournalExtraction, error) {
	resp, err := s.openaiClient.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4o,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: parseJournalSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Functions: []openai.FunctionDefinition{
			{Name: "parse_journal_entry", Description: "Parse a daily journal entry", Parameters: journalSchema},
		},
		FunctionCall: openai.FunctionCall{Name: "parse_journal_entry"},
	})
	if err != nil {
		return nil, apperrors.NewExternalAPIError(err, "openai")
	}

	call := resp.Choices[0].Message.FunctionCall
	if call == nil {
		return nil, apperrors.NewExternalAPIError(fmt.Errorf("no function call in response"), "openai")
	}

	var entry JournalExtraction
	if err := json.Unmarshal([]byte(call.Arguments), &entry); err != nil {
		return nil, apperrors.NewExternalAPIError(fmt.Errorf("failed to parse response: %w", err), "openai")
	}

	return &entry, nil
}

var intentSchema = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"intent": {Type: jsonschema.String, Enum: []string{string(IntentLogMeal), string(IntentQuestion)}},
	},
	Required: []string{"intent"},
}

// ClassifyIntent decides whether a chat message logs food or asks a
// question about nutrition or history.
func (s *AIService) ClassifyIntent(ctx context.Context, text string) (Intent, error) {
	resp, err := s.openaiClient.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4o,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "Classify if this is a meal logging action or a question about nutrition/history."},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Functions: []openai.FunctionDefinition{
			{Name: "classify_intent", Parameters: intentSchema},
		},
		FunctionCall: openai.FunctionCall{Name: "classify_intent"},
	})
	if err != nil {
		return "", apperrors.NewExternalAPIError(err, "openai")
	}

	call := resp.Choices[0].Message.FunctionCall
	if call == nil {
		return "", apperrors.NewExternalAPIError(fmt.Errorf("no function call in response"), "openai")
	}

	var payload struct {
		Intent Intent `json:"intent"`
	}
	if err := json.Unmarshal([]byte(call.Arguments), &payload); err != nil {
		return "", apperrors.NewExternalAPIError(fmt.Errorf("failed to parse response: %w", err), "openai")
	}

	if payload.Intent != IntentLogMeal && payload.Intent != IntentQuestion {
		return IntentQuestion, nil
	}
	return payload.Intent, nil
}

// AnswerQuestion answers a nutrition question grounded in the user's
// targets and recent history.
func (s *AIService) AnswerQuestion(ctx context.Context, question string, targets *nutrition.Targets, history []DayContext) (string, error) {
	targetsJSON, err := json.Marshal(targets)
	if err != nil {
		return "", fmt.Errorf("failed to marshal targets: %w", err)
	}
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return "", fmt.Errorf("failed to marshal history: %w", err)
	}

	system := fmt.Sprintf(`You are a nutrition assistant. Answer questions using this context:
Daily Targets: %s
Recent meals: %s`, targetsJSON, historyJSON)

	resp, err := s.openaiClient.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4o,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: question},
		},
	})
	if err != nil {
		return "", apperrors.NewExternalAPIError(err, "openai")
	}

	return resp.Choices[0].Message.Content, nil
}

// finalizeMeals validates extracted meals into finalized records. A meal
// with any nutrition field missing or negative is a fatal input error for
// the whole submission; nothing gets zero-filled at this boundary.
func finalizeMeals(meals []wireMeal) ([]MealRecord, error) {
	if len(meals) == 0 {
		return nil, apperrors.NewValidationError("extraction produced no meals")
	}

	records := make([]MealRecord, 0, len(meals))
	for _, m := range meals {
		if m.Calories == nil || m.Protein == nil || m.Fat == nil || m.Carbohydrates == nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("meal %q is missing a nutrition field", m.Meal)).
				WithContext("meal", m.Meal)
		}
		if *m.Calories < 0 || *m.Protein < 0 || *m.Fat < 0 || *m.Carbohydrates < 0 || m.Count < 0 {
			return nil, apperrors.NewValidationError(fmt.Sprintf("meal %q has a negative nutrition value", m.Meal)).
				WithContext("meal", m.Meal)
		}
		records = append(records, MealRecord{
			Name:     m.Meal,
			Servings: m.Count,
			Calories: *m.Calories,
			Protein:  *m.Protein,
			Fat:      *m.Fat,
			Carbs:    *m.Carbohydrates,
		})
	}
	return records, nil
}

// extractJSON pulls a JSON object out of a response that may wrap it in
// code fences or surrounding text.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(s, "}")
	if end == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}
