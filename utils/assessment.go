package utils

import (
	"fmt"

	"github.com/jackgraver/simple-track/models"
)

// WarningSeverity categorizes how serious a finding is.
type WarningSeverity string

const (
	Info    WarningSeverity = "info"
	Caution WarningSeverity = "caution"
	High    WarningSeverity = "high"
)

// Warning is a structured finding about a day's intake against its goals.
type Warning struct {
	Code           string          `json:"code"`
	Severity       WarningSeverity `json:"severity"`
	Message        string          `json:"message"`
	Metric         string          `json:"metric,omitempty"`
	Value          float64         `json:"value,omitempty"`
	Limit          float64         `json:"limit,omitempty"`
	PercentOfLimit float64         `json:"percent_of_limit,omitempty"`
}

// share above which going over the calorie goal is reported as high
const calorieHighShare = 1.2

// AssessDay compares actual and planned totals against the day's goals.
// Metrics whose goal is zero are not assessed.
func AssessDay(actual, planned Totals, goals models.DayGoals) []Warning {
	warnings := []Warning{}

	if goals.Calories > 0 {
		share := actual.Calories / goals.Calories
		switch {
		case share > calorieHighShare:
			warnings = append(warnings, Warning{
				Code:           "calories_well_over_goal",
				Severity:       High,
				Message:        fmt.Sprintf("Calories eaten are %.0f%% of today's goal.", share*100),
				Metric:         "calories",
				Value:          actual.Calories,
				Limit:          goals.Calories,
				PercentOfLimit: Round2(share * 100),
			})
		case share > 1:
			warnings = append(warnings, Warning{
				Code:           "calories_over_goal",
				Severity:       Caution,
				Message:        fmt.Sprintf("Over today's calorie goal by %.0f kcal.", actual.Calories-goals.Calories),
				Metric:         "calories",
				Value:          actual.Calories,
				Limit:          goals.Calories,
				PercentOfLimit: Round2(share * 100),
			})
		}

		if planned.Calories > goals.Calories {
			warnings = append(warnings, Warning{
				Code:           "plan_over_goal",
				Severity:       Info,
				Message:        fmt.Sprintf("Planned meals add up to %.0f kcal, above the %.0f kcal goal.", planned.Calories, goals.Calories),
				Metric:         "calories",
				Value:          planned.Calories,
				Limit:          goals.Calories,
				PercentOfLimit: Round2(planned.Calories / goals.Calories * 100),
			})
		}
	}

	// protein and fiber are targets to reach, so only report reaching them
	for _, m := range []struct {
		name     string
		consumed float64
		goal     float64
	}{
		{"protein", actual.Protein, goals.Protein},
		{"fiber", actual.Fiber, goals.Fiber},
	} {
		if m.goal <= 0 || m.consumed < m.goal {
			continue
		}
		warnings = append(warnings, Warning{
			Code:           m.name + "_goal_met",
			Severity:       Info,
			Message:        fmt.Sprintf("Reached today's %s goal (%.0f of %.0f g).", m.name, m.consumed, m.goal),
			Metric:         m.name,
			Value:          m.consumed,
			Limit:          m.goal,
			PercentOfLimit: Round2(m.consumed / m.goal * 100),
		})
	}

	return warnings
}

// AlertType maps a warning severity onto the alert type stored for users.
func AlertType(sev WarningSeverity) string {
	if sev == Info {
		return "info"
	}
	return "warning"
}
