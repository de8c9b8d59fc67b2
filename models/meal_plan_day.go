package models

import "time"

// MealStatus tags a DayMeal as planned or consumed.
type MealStatus string

const (
	StatusExpected MealStatus = "expected"
	StatusActual   MealStatus = "actual"
)

// Valid reports whether s is one of the known statuses.
func (s MealStatus) Valid() bool {
	return s == StatusExpected || s == StatusActual
}

// MealPlanDay is one calendar day (UTC midnight) with its meals and goals.
type MealPlanDay struct {
	Base
	Date  time.Time `json:"date" gorm:"uniqueIndex;not null"`
	Meals []DayMeal `json:"meals"`
	Goals DayGoals  `json:"goals" gorm:"foreignKey:MealPlanDayID"`
}

// DayMeal associates a Meal with a day and a status.
type DayMeal struct {
	Base
	MealPlanDayID uint       `json:"meal_plan_day_id" gorm:"not null;index"`
	MealID        uint       `json:"meal_id" gorm:"not null;index"`
	Meal          Meal       `json:"meal"`
	Status        MealStatus `json:"status" gorm:"type:varchar(16);not null;default:'expected'"`
}

// DayGoals holds the per-day nutrition targets.
type DayGoals struct {
	Base
	MealPlanDayID uint    `json:"meal_plan_day_id" gorm:"uniqueIndex"`
	Calories      float64 `json:"calories"` // e.g. 2000 kcal
	Protein       float64 `json:"protein"`  // e.g. 150 g
	Fiber         float64 `json:"fiber"`    // e.g. 40 g
}
