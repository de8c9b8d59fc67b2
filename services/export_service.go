package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackgraver/simple-track/models"
	"github.com/jackgraver/simple-track/utils"
)

// ObjectUploader stores a blob under key and returns where it can be fetched.
type ObjectUploader interface {
	Upload(ctx context.Context, key, contentType string, body []byte) (string, error)
}

type ExportService struct {
	days     *DayService
	uploader ObjectUploader
}

// NewExportService returns an export service. A nil uploader disables uploads
// but still allows building reports.
func NewExportService(days *DayService, uploader ObjectUploader) *ExportService {
	return &ExportService{days: days, uploader: uploader}
}

type DayReport struct {
	Date     string       `json:"date"`
	Label    string       `json:"label"`
	Actual   utils.Totals `json:"actual"`
	Expected utils.Totals `json:"expected"`
	Goals    utils.Totals `json:"goals"`
}

type MonthReport struct {
	Month    string       `json:"month"`
	From     string       `json:"from"`
	To       string       `json:"to"`
	Days     []DayReport  `json:"days"`
	Averages utils.Totals `json:"averages"`
	// days with at least one actual meal
	DaysLogged int `json:"days_logged"`
}

// BuildMonth summarises every stored day of the month offset months from now.
func (s *ExportService) BuildMonth(ctx context.Context, offset int) (*MonthReport, error) {
	days, first, last, err := s.days.Month(ctx, offset)
	if err != nil {
		return nil, err
	}
	return buildMonthReport(days, first, last), nil
}

func buildMonthReport(days []models.MealPlanDay, first, last time.Time) *MonthReport {
	r := &MonthReport{
		Month: first.Format("2006-01"),
		From:  first.Format("2006-01-02"),
		To:    last.Format("2006-01-02"),
		Days:  make([]DayReport, 0, len(days)),
	}

	var sum utils.Totals
	for i := range days {
		d := &days[i]
		iso := d.Date.UTC().Format(time.RFC3339)
		dr := DayReport{
			Date:     d.Date.UTC().Format("2006-01-02"),
			Label:    utils.FormatLong(iso),
			Actual:   utils.DayTotals(d, models.StatusActual),
			Expected: utils.DayTotals(d, models.StatusExpected),
			Goals:    utils.Totals{Calories: d.Goals.Calories, Protein: d.Goals.Protein, Fiber: d.Goals.Fiber},
		}
		r.Days = append(r.Days, dr)

		if hasStatus(d, models.StatusActual) {
			r.DaysLogged++
			sum.Calories += dr.Actual.Calories
			sum.Protein += dr.Actual.Protein
			sum.Fiber += dr.Actual.Fiber
		}
	}
	if r.DaysLogged > 0 {
		n := float64(r.DaysLogged)
		r.Averages = utils.Totals{
			Calories: utils.Round2(sum.Calories / n),
			Protein:  utils.Round2(sum.Protein / n),
			Fiber:    utils.Round2(sum.Fiber / n),
		}
	}
	return r
}

func hasStatus(day *models.MealPlanDay, status models.MealStatus) bool {
	for _, dm := range day.Meals {
		if dm.Status == status {
			return true
		}
	}
	return false
}

// ExportMonth builds the month report and uploads it as JSON.
func (s *ExportService) ExportMonth(ctx context.Context, offset int) (string, *MonthReport, error) {
	if s.uploader == nil {
		return "", nil, ErrExportDisabled
	}
	report, err := s.BuildMonth(ctx, offset)
	if err != nil {
		return "", nil, err
	}
	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("marshal month report: %w", err)
	}
	key := fmt.Sprintf("exports/%s.json", report.Month)
	url, err := s.uploader.Upload(ctx, key, "application/json", body)
	if err != nil {
		return "", nil, err
	}
	return url, report, nil
}
