package database

import (
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/meallog/meal-logger-bot/internal/config"
	"github.com/meallog/meal-logger-bot/internal/database/migrations"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	TelegramID int64 `gorm:"uniqueIndex"`
	Username   string
	FirstName  string
	LastName   string
}

// Day is one calendar day of logged meals. At most one row exists per
// (user, date); resubmissions for an existing date attach meals to it.
// Totals are never stored here, they are recomputed from the meals.
type Day struct {
	gorm.Model
	UserID uint `gorm:"index"`
	User   User
	Date   time.Time `gorm:"index"`
	Meals  []Meal    `gorm:"constraint:OnDelete:CASCADE"`
}

// Meal is a structured meal record as extracted by the model or edited by
// the user. Macro grams are nullable because rows saved before macro
// estimation was added carry no values; finalized new rows always do.
type Meal struct {
	gorm.Model
	DayID    uint `gorm:"index"`
	Day      Day
	Name     string
	Servings float64
	Calories int
	Protein  *float64
	Fat      *float64
	Carbs    *float64
}

// NutritionEntry is the single-entry-per-day journal row. Macro fields
// accumulate across merges; Weight (pounds), BMI and Sleep keep the latest
// reported value. Uniqueness per (user_id, entry_date) is enforced by a
// partial index in the SQL migrations.
type NutritionEntry struct {
	gorm.Model
	UserID    uint `gorm:"index"`
	User      User
	EntryDate time.Time `gorm:"index"`
	Log       string
	Calories  float64
	Protein   float64
	Carbs     float64
	Fats      float64
	Fiber     float64
	Sugar     float64
	Weight    *float64
	BMI       *float64
	Sleep     *float64
}

// TargetProfile holds a user's daily macro targets. One row per user.
type TargetProfile struct {
	gorm.Model
	UserID   uint `gorm:"uniqueIndex"`
	User     User
	Calories float64
	Protein  float64
	Fat      float64
	Carbs    float64
}

func NewPostgresDB(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)

	// TranslateError maps driver unique violations onto gorm.ErrDuplicatedKey,
	// which the journal merge path relies on for conflict detection.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Tables first, then SQL migrations: the index migrations reference
	// tables AutoMigrate creates.
	if err := db.AutoMigrate(&User{}, &Day{}, &Meal{}, &NutritionEntry{}, &TargetProfile{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return nil, fmt.Errorf("failed to get current file path")
	}
	migrationsDir := filepath.Join(filepath.Dir(filename), "migrations")

	if err := migrations.LoadSQLMigrations(db, migrationsDir); err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}
	if err := migrations.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}
