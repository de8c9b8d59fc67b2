package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackgraver/simple-track/logger"
	"github.com/jackgraver/simple-track/models"
	"github.com/jackgraver/simple-track/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GoalDefaults are the targets given to a day created on first access.
type GoalDefaults struct {
	Calories float64
	Protein  float64
	Fiber    float64
}

type DayService struct {
	db       *gorm.DB
	meals    *MealService
	alerts   *AlertService
	defaults GoalDefaults
	now      func() time.Time
}

// NewDayService wires the day service. alerts may be nil.
func NewDayService(db *gorm.DB, meals *MealService, alerts *AlertService, defaults GoalDefaults) *DayService {
	return &DayService{
		db:       db,
		meals:    meals,
		alerts:   alerts,
		defaults: defaults,
		now:      time.Now,
	}
}

// DaySummary is a day with its totals computed for both statuses.
type DaySummary struct {
	Day      *models.MealPlanDay `json:"day"`
	Actual   utils.Totals        `json:"actual"`
	Expected utils.Totals        `json:"expected"`
	Progress utils.Progress      `json:"progress"`
}

func Summarize(day *models.MealPlanDay) DaySummary {
	return DaySummary{
		Day:      day,
		Actual:   utils.DayTotals(day, models.StatusActual),
		Expected: utils.DayTotals(day, models.StatusExpected),
		Progress: utils.DayProgress(day),
	}
}

type GoalsInput struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fiber    float64 `json:"fiber"`
}

type LogMealRequest struct {
	MealID uint              `json:"meal_id"`
	Name   string            `json:"name"`
	Items  []MealItemRequest `json:"items"`
	Status models.MealStatus `json:"status"`
	Date   string            `json:"date"` // YYYY-MM-DD, today when empty
}

func (s *DayService) preloaded(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Meals", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Meals.Meal.Items.Food").
		Preload("Goals")
}

func (s *DayService) Get(ctx context.Context, id uint) (*models.MealPlanDay, error) {
	var day models.MealPlanDay
	if err := s.preloaded(ctx).First(&day, id).Error; err != nil {
		return nil, notFound("day", id, err)
	}
	return &day, nil
}

// ByDate returns the day containing date (UTC), creating it with the default
// goals when it does not exist yet.
func (s *DayService) ByDate(ctx context.Context, date time.Time) (*models.MealPlanDay, error) {
	start := utils.StartOfDayUTC(date)

	var day models.MealPlanDay
	err := s.db.WithContext(ctx).Where("date = ?", start).First(&day).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		day = models.MealPlanDay{
			Date: start,
			Goals: models.DayGoals{
				Calories: s.defaults.Calories,
				Protein:  s.defaults.Protein,
				Fiber:    s.defaults.Fiber,
			},
		}
		if cerr := s.db.WithContext(ctx).Create(&day).Error; cerr != nil {
			// lost a race with another request creating the same day
			if ferr := s.db.WithContext(ctx).Where("date = ?", start).First(&day).Error; ferr != nil {
				return nil, cerr
			}
		} else {
			logger.Debug("created meal plan day", zap.Time("date", start))
		}
	} else if err != nil {
		return nil, err
	}
	return s.Get(ctx, day.ID)
}

// Today returns the current day shifted by offset days.
func (s *DayService) Today(ctx context.Context, offset int) (*models.MealPlanDay, error) {
	return s.ByDate(ctx, s.now().AddDate(0, 0, offset))
}

// Range returns the existing days between start and end, inclusive, by date.
func (s *DayService) Range(ctx context.Context, start, end time.Time) ([]models.MealPlanDay, error) {
	var days []models.MealPlanDay
	err := s.preloaded(ctx).
		Where("date BETWEEN ? AND ?", utils.StartOfDayUTC(start), utils.StartOfDayUTC(end)).
		Order("date").
		Find(&days).Error
	return days, err
}

// Week is today with three days either side.
func (s *DayService) Week(ctx context.Context) ([]models.MealPlanDay, error) {
	today := s.now()
	return s.Range(ctx, today.AddDate(0, 0, -3), today.AddDate(0, 0, 3))
}

// MonthBounds gives the first and last day of the month offset months from now.
func (s *DayService) MonthBounds(offset int) (time.Time, time.Time) {
	today := utils.StartOfDayUTC(s.now())
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, offset, 0)
	return first, first.AddDate(0, 1, -1)
}

func (s *DayService) Month(ctx context.Context, offset int) ([]models.MealPlanDay, time.Time, time.Time, error) {
	first, last := s.MonthBounds(offset)
	days, err := s.Range(ctx, first, last)
	return days, first, last, err
}

func (s *DayService) AddDayMeal(ctx context.Context, dayID, mealID uint, status models.MealStatus) (*models.DayMeal, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if _, err := s.Get(ctx, dayID); err != nil {
		return nil, err
	}
	if _, err := s.meals.Get(ctx, mealID); err != nil {
		return nil, err
	}

	dm := &models.DayMeal{MealPlanDayID: dayID, MealID: mealID, Status: status}
	if err := s.db.WithContext(ctx).Create(dm).Error; err != nil {
		return nil, err
	}
	if status == models.StatusActual {
		s.assess(ctx, dayID)
	}
	return s.getDayMeal(ctx, dm.ID)
}

// LogMeal records a meal on a day. An existing meal is referenced by id;
// otherwise a new meal is created from name and items. Status defaults to actual.
func (s *DayService) LogMeal(ctx context.Context, req LogMealRequest) (*models.DayMeal, error) {
	date := s.now()
	if req.Date != "" {
		d, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, invalid("date must be YYYY-MM-DD")
		}
		date = d
	}
	status := req.Status
	if status == "" {
		status = models.StatusActual
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	day, err := s.ByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	if req.MealID != 0 {
		return s.AddDayMeal(ctx, day.ID, req.MealID, status)
	}

	if req.Name == "" {
		return nil, invalid("meal name is required for new meal")
	}
	meal, err := s.meals.Create(ctx, req.Name, req.Items)
	if err != nil {
		return nil, err
	}
	dm, err := s.AddDayMeal(ctx, day.ID, meal.ID, status)
	if err != nil {
		// drop the meal created for this entry so it is not left unused
		if derr := s.meals.Delete(ctx, meal.ID); derr != nil {
			logger.Warn("remove meal after failed log", zap.Uint("meal_id", meal.ID), zap.Error(derr))
		}
		return nil, err
	}
	return dm, nil
}

// SetStatus moves a day meal between expected and actual.
func (s *DayService) SetStatus(ctx context.Context, dayMealID uint, status models.MealStatus) (*models.DayMeal, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	dm, err := s.getDayMeal(ctx, dayMealID)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.DayMeal{}).
		Where("id = ?", dayMealID).
		Update("status", status).Error; err != nil {
		return nil, err
	}
	s.assess(ctx, dm.MealPlanDayID)
	return s.getDayMeal(ctx, dayMealID)
}

func (s *DayService) RemoveDayMeal(ctx context.Context, dayMealID uint) error {
	dm, err := s.getDayMeal(ctx, dayMealID)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Delete(&models.DayMeal{}, dayMealID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("day meal", dayMealID, gorm.ErrRecordNotFound)
	}
	s.assess(ctx, dm.MealPlanDayID)
	return nil
}

func (s *DayService) UpsertGoals(ctx context.Context, dayID uint, in GoalsInput) (*models.DayGoals, error) {
	if in.Calories < 0 || in.Protein < 0 || in.Fiber < 0 {
		return nil, invalid("goals must not be negative")
	}
	if _, err := s.Get(ctx, dayID); err != nil {
		return nil, err
	}

	goals := models.DayGoals{MealPlanDayID: dayID}
	err := s.db.WithContext(ctx).
		Where("meal_plan_day_id = ?", dayID).
		Assign(map[string]any{"calories": in.Calories, "protein": in.Protein, "fiber": in.Fiber}).
		FirstOrCreate(&goals).Error
	if err != nil {
		return nil, err
	}
	s.assess(ctx, dayID)
	return &goals, nil
}

func (s *DayService) getDayMeal(ctx context.Context, id uint) (*models.DayMeal, error) {
	var dm models.DayMeal
	if err := s.db.WithContext(ctx).Preload("Meal.Items.Food").First(&dm, id).Error; err != nil {
		return nil, notFound("day meal", id, err)
	}
	return &dm, nil
}

// assess hands the refreshed day to the alert service. Failures are logged
// and never fail the request that changed the day.
func (s *DayService) assess(ctx context.Context, dayID uint) {
	if s.alerts == nil {
		return
	}
	day, err := s.Get(ctx, dayID)
	if err != nil {
		logger.Warn("load day for assessment", zap.Uint("day_id", dayID), zap.Error(err))
		return
	}
	if _, err := s.alerts.AssessDay(ctx, day); err != nil {
		logger.Warn("assess day", zap.Uint("day_id", dayID), zap.Error(err))
	}
}
