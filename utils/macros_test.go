package utils

import (
	"testing"

	"github.com/jackgraver/simple-track/models"
	"github.com/stretchr/testify/assert"
)

func food(cal, prot, fib float64) *models.Food {
	return &models.Food{Name: "f", Unit: "g", Calories: cal, Protein: prot, Fiber: fib}
}

func dayMeal(status models.MealStatus, items ...models.MealItem) models.DayMeal {
	return models.DayMeal{Status: status, Meal: models.Meal{Name: "m", Items: items}}
}

func item(amount float64, f *models.Food) models.MealItem {
	return models.MealItem{Amount: amount, Food: f}
}

func TestTotalCaloriesSumsActualMeals(t *testing.T) {
	meals := []models.DayMeal{
		dayMeal(models.StatusActual,
			item(2, food(100, 0, 0)),
			item(1, food(50, 0, 0)),
		),
	}
	assert.Equal(t, 250.00, TotalCalories(meals, models.StatusActual))
	assert.Equal(t, 0.0, TotalCalories(meals, models.StatusExpected))
}

func TestOnlyExpectedMealsGiveZeroActual(t *testing.T) {
	meals := []models.DayMeal{
		dayMeal(models.StatusExpected, item(3, food(100, 10, 2))),
		dayMeal(models.StatusExpected, item(1, food(40, 1, 1))),
	}
	assert.Equal(t, 0.0, TotalCalories(meals, models.StatusActual))
	assert.Equal(t, 0.0, TotalProtein(meals, models.StatusActual))
	assert.Equal(t, 0.0, TotalFiber(meals, models.StatusActual))
	assert.Equal(t, 340.0, TotalCalories(meals, models.StatusExpected))
	assert.Equal(t, 31.0, TotalProtein(meals, models.StatusExpected))
	assert.Equal(t, 7.0, TotalFiber(meals, models.StatusExpected))
}

func TestMissingFoodContributesZero(t *testing.T) {
	meals := []models.DayMeal{
		dayMeal(models.StatusActual,
			item(5, nil),
			item(2, food(10, 3, 1)),
		),
	}
	assert.NotPanics(t, func() {
		assert.Equal(t, 20.0, TotalCalories(meals, models.StatusActual))
		assert.Equal(t, 6.0, TotalProtein(meals, models.StatusActual))
		assert.Equal(t, 2.0, TotalFiber(meals, models.StatusActual))
	})

	onlyMissing := []models.DayMeal{dayMeal(models.StatusActual, item(5, nil))}
	assert.Equal(t, Totals{}, DayTotals(&models.MealPlanDay{Meals: onlyMissing}, models.StatusActual))
}

func TestTotalsRoundToTwoDecimals(t *testing.T) {
	meals := []models.DayMeal{
		dayMeal(models.StatusActual,
			item(200, food(1.65, 0.31, 0)),
			item(100, food(1.30, 0.02, 0.01)),
		),
	}
	assert.Equal(t, 460.0, TotalCalories(meals, models.StatusActual))
	assert.Equal(t, 64.0, TotalProtein(meals, models.StatusActual))
	assert.Equal(t, 1.0, TotalFiber(meals, models.StatusActual))

	third := []models.DayMeal{dayMeal(models.StatusActual, item(1, food(1.0/3.0, 2.0/3.0, 0.005)))}
	assert.Equal(t, 0.33, TotalCalories(third, models.StatusActual))
	assert.Equal(t, 0.67, TotalProtein(third, models.StatusActual))
	assert.Equal(t, 0.01, TotalFiber(third, models.StatusActual))
}

func TestTotalsNonNegativeForNonNegativeAmounts(t *testing.T) {
	var meals []models.DayMeal
	for i := 0; i < 40; i++ {
		status := models.StatusActual
		if i%3 == 0 {
			status = models.StatusExpected
		}
		var f *models.Food
		if i%5 != 0 {
			f = food(float64(i%7)*1.1, float64(i%4)*0.3, float64(i%2)*0.05)
		}
		meals = append(meals, dayMeal(status, item(float64(i%9)*12.5, f)))
	}
	for _, s := range []models.MealStatus{models.StatusActual, models.StatusExpected} {
		assert.GreaterOrEqual(t, TotalCalories(meals, s), 0.0)
		assert.GreaterOrEqual(t, TotalProtein(meals, s), 0.0)
		assert.GreaterOrEqual(t, TotalFiber(meals, s), 0.0)
	}
}

func TestDayTotalsNilDay(t *testing.T) {
	assert.Equal(t, Totals{}, DayTotals(nil, models.StatusActual))
	assert.Equal(t, Totals{}, DayTotals(&models.MealPlanDay{}, models.StatusActual))
	assert.Equal(t, Progress{}, DayProgress(nil))
}

func TestMealTotals(t *testing.T) {
	meal := models.Meal{Items: []models.MealItem{
		item(2, food(100, 20, 5)),
		item(1, nil),
	}}
	assert.Equal(t, Totals{Calories: 200, Protein: 40, Fiber: 10}, MealTotals(meal))
}

func TestGoalRatio(t *testing.T) {
	tests := []struct {
		name           string
		consumed, goal float64
		expected       float64
	}{
		{"half", 1000, 2000, 0.5},
		{"clamped", 3000, 2000, 1},
		{"no goal", 500, 0, 0},
		{"negative goal", 500, -1, 0},
		{"nothing eaten", 0, 2000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GoalRatio(tt.consumed, tt.goal))
		})
	}
}

func TestDayProgress(t *testing.T) {
	day := &models.MealPlanDay{
		Meals: []models.DayMeal{
			dayMeal(models.StatusActual, item(10, food(100, 5, 1))),
			dayMeal(models.StatusExpected, item(10, food(100, 5, 1))),
		},
		Goals: models.DayGoals{Calories: 2000, Protein: 100, Fiber: 0},
	}
	p := DayProgress(day)
	assert.Equal(t, MetricProgress{Consumed: 1000, Goal: 2000, Percent: 0.5}, p.Calories)
	assert.Equal(t, MetricProgress{Consumed: 50, Goal: 100, Percent: 0.5}, p.Protein)
	assert.Equal(t, MetricProgress{Consumed: 10, Goal: 0, Percent: 0}, p.Fiber)
}

func TestTotalsIgnoreOrder(t *testing.T) {
	meals := []models.DayMeal{
		dayMeal(models.StatusActual, item(0.1, food(3.3, 0.7, 0.01)), item(7, food(0.2, 0.05, 0.3))),
		dayMeal(models.StatusActual, item(123.4, food(1.11, 0.09, 0.002))),
		dayMeal(models.StatusActual, item(2, food(99.99, 1, 1))),
	}
	reversed := []models.DayMeal{meals[2], meals[1], meals[0]}

	assert.Equal(t, TotalCalories(meals, models.StatusActual), TotalCalories(reversed, models.StatusActual))
	assert.Equal(t, TotalProtein(meals, models.StatusActual), TotalProtein(reversed, models.StatusActual))
	assert.Equal(t, TotalFiber(meals, models.StatusActual), TotalFiber(reversed, models.StatusActual))
}
