package main

import (
	"fmt"
	"io"
	"time"

	colour "github.com/fatih/color"
	"github.com/jackgraver/simple-track/services"
	"github.com/jackgraver/simple-track/utils"
	"github.com/spf13/cobra"
)

var totalsDate string

var (
	green  = colour.New(colour.FgGreen, colour.Bold)
	yellow = colour.New(colour.FgYellow, colour.Bold)
	red    = colour.New(colour.FgRed, colour.Bold)
	cyan   = colour.New(colour.FgCyan)
	grey   = colour.New(colour.FgHiBlack)
)

var totalsCmd = &cobra.Command{
	Use:   "totals",
	Short: "Print a day's nutrition totals against its goals",
	Example: `  # Today
  simpletrack totals

  # A specific day
  simpletrack totals --date 2025-09-21`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date := time.Now()
		if totalsDate != "" {
			d, err := time.Parse("2006-01-02", totalsDate)
			if err != nil {
				return fmt.Errorf("invalid --date %q, use YYYY-MM-DD", totalsDate)
			}
			date = d
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		day, err := a.days.ByDate(cmd.Context(), date)
		if err != nil {
			return err
		}
		renderTotals(cmd.OutOrStdout(), services.Summarize(day))
		return nil
	},
}

func init() {
	totalsCmd.Flags().StringVarP(&totalsDate, "date", "d", "", "day to report (YYYY-MM-DD, default today)")
}

// ratioColour is green under 90% of the goal, yellow up to the goal and red past it.
func ratioColour(consumed, goal float64) *colour.Color {
	if goal <= 0 {
		return grey
	}
	switch r := consumed / goal; {
	case r > 1:
		return red
	case r >= 0.9:
		return yellow
	default:
		return green
	}
}

func renderTotals(w io.Writer, s services.DaySummary) {
	iso := s.Day.Date.UTC().Format(time.RFC3339)
	cyan.Fprintln(w, utils.FormatLong(iso))
	grey.Fprintf(w, "%d meals logged\n", len(s.Day.Meals))

	rows := []struct {
		name     string
		unit     string
		actual   float64
		expected float64
		goal     float64
	}{
		{"Calories", "kcal", s.Actual.Calories, s.Expected.Calories, s.Day.Goals.Calories},
		{"Protein", "g", s.Actual.Protein, s.Expected.Protein, s.Day.Goals.Protein},
		{"Fiber", "g", s.Actual.Fiber, s.Expected.Fiber, s.Day.Goals.Fiber},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %-9s ", r.name)
		ratioColour(r.actual, r.goal).Fprintf(w, "%8.2f", r.actual)
		fmt.Fprintf(w, " / %.2f %s (planned %.2f, %3.0f%%)\n",
			r.goal, r.unit, r.expected, utils.GoalRatio(r.actual, r.goal)*100)
	}
}
