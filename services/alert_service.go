package services

import (
	"context"

	"github.com/jackgraver/simple-track/logger"
	"github.com/jackgraver/simple-track/models"
	"github.com/jackgraver/simple-track/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AlertService stores findings about a day and pushes them to connected
// clients. hub may be nil.
type AlertService struct {
	db  *gorm.DB
	hub *RealtimeHub
}

func NewAlertService(db *gorm.DB, hub *RealtimeHub) *AlertService {
	return &AlertService{db: db, hub: hub}
}

// AlertEvent is the websocket payload for a new alert.
type AlertEvent struct {
	Kind  string        `json:"kind"`
	Alert *models.Alert `json:"alert"`
}

func (s *AlertService) List(ctx context.Context, limit int) ([]models.Alert, error) {
	if limit <= 0 {
		limit = 50
	}
	var alerts []models.Alert
	err := s.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&alerts).Error
	return alerts, err
}

// AssessDay raises an alert for every finding on day not already raised for it.
// It returns the newly created alerts.
func (s *AlertService) AssessDay(ctx context.Context, day *models.MealPlanDay) ([]models.Alert, error) {
	warnings := utils.AssessDay(
		utils.DayTotals(day, models.StatusActual),
		utils.DayTotals(day, models.StatusExpected),
		day.Goals,
	)

	var created []models.Alert
	for _, w := range warnings {
		var n int64
		if err := s.db.WithContext(ctx).Model(&models.Alert{}).
			Where("day_id = ? AND code = ?", day.ID, w.Code).
			Count(&n).Error; err != nil {
			return created, err
		}
		if n > 0 {
			continue
		}
		a, err := s.Emit(ctx, day.ID, w.Code, utils.AlertType(w.Severity), w.Message)
		if err != nil {
			return created, err
		}
		created = append(created, *a)
	}
	return created, nil
}

// Emit persists an alert and broadcasts it.
func (s *AlertService) Emit(ctx context.Context, dayID uint, code, typ, message string) (*models.Alert, error) {
	a := &models.Alert{DayID: dayID, Code: code, Type: typ, Message: message}
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	logger.Info("alert raised",
		zap.Uint("day_id", dayID), zap.String("code", code), zap.String("type", typ))

	if s.hub != nil {
		s.hub.BroadcastAll(AlertEvent{Kind: "alert.created", Alert: a})
	}
	return a, nil
}
