package models

// A named, reusable collection of foods
type Meal struct {
	Base
	Name  string     `json:"name" gorm:"not null"`
	Items []MealItem `json:"items"`
}

// MealItem references a Food by id and carries an amount in that food's unit.
// Food is nil when the reference could not be resolved.
type MealItem struct {
	Base
	MealID uint    `json:"meal_id" gorm:"not null;index"`
	FoodID uint    `json:"food_id" gorm:"not null;index"`
	Food   *Food   `json:"food,omitempty"`
	Amount float64 `json:"amount"`
}
