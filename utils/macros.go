package utils

import (
	"math"

	"github.com/jackgraver/simple-track/models"
)

// Totals is the calories/protein/fiber sum for a set of meals.
type Totals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fiber    float64 `json:"fiber"`
}

type metric func(f *models.Food) float64

func caloriesOf(f *models.Food) float64 { return f.Calories }
func proteinOf(f *models.Food) float64 { return f.Protein }
func fiberOf(f *models.Food) float64 { return f.Fiber }

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func sumMeal(meal models.Meal, m metric) float64 {
	var sum float64
	for _, it := range meal.Items {
		if it.Food == nil {
			continue // unresolved food contributes nothing
		}
		sum += it.Amount * m(it.Food)
	}
	return sum
}

func sumDay(meals []models.DayMeal, status models.MealStatus, m metric) float64 {
	var sum float64
	for _, dm := range meals {
		if dm.Status != status {
			continue
		}
		sum += sumMeal(dm.Meal, m)
	}
	return Round2(sum)
}

func TotalCalories(meals []models.DayMeal, status models.MealStatus) float64 {
	return sumDay(meals, status, caloriesOf)
}

func TotalProtein(meals []models.DayMeal, status models.MealStatus) float64 {
	return sumDay(meals, status, proteinOf)
}

func TotalFiber(meals []models.DayMeal, status models.MealStatus) float64 {
	return sumDay(meals, status, fiberOf)
}

// DayTotals sums a day's meals with the given status. A nil day has zero totals.
func DayTotals(day *models.MealPlanDay, status models.MealStatus) Totals {
	if day == nil {
		return Totals{}
	}
	return Totals{
		Calories: TotalCalories(day.Meals, status),
		Protein:  TotalProtein(day.Meals, status),
		Fiber:    TotalFiber(day.Meals, status),
	}
}

// MealTotals sums a single meal regardless of status.
func MealTotals(meal models.Meal) Totals {
	return Totals{
		Calories: Round2(sumMeal(meal, caloriesOf)),
		Protein:  Round2(sumMeal(meal, proteinOf)),
		Fiber:    Round2(sumMeal(meal, fiberOf)),
	}
}

// GoalRatio is consumed/goal clamped to [0, 1]. A goal of zero or less yields 0.
func GoalRatio(consumed, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	p := consumed / goal
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}

type MetricProgress struct {
	Consumed float64 `json:"consumed"`
	Goal     float64 `json:"goal"`
	Percent  float64 `json:"percent"`
}

type Progress struct {
	Calories MetricProgress `json:"calories"`
	Protein  MetricProgress `json:"protein"`
	Fiber    MetricProgress `json:"fiber"`
}

// DayProgress compares a day's actual totals against its goals.
func DayProgress(day *models.MealPlanDay) Progress {
	if day == nil {
		return Progress{}
	}
	t := DayTotals(day, models.StatusActual)
	g := day.Goals
	mp := func(consumed, goal float64) MetricProgress {
		return MetricProgress{Consumed: consumed, Goal: goal, Percent: GoalRatio(consumed, goal)}
	}
	return Progress{
		Calories: mp(t.Calories, g.Calories),
		Protein:  mp(t.Protein, g.Protein),
		Fiber:    mp(t.Fiber, g.Fiber),
	}
}
