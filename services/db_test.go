package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jackgraver/simple-track/config"
	"github.com/jackgraver/simple-track/models"
)

var dbSeq atomic.Int64

// newTestDB opens a private in-memory database with the schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared", dbSeq.Add(1))
	cfg := config.GormConfig()
	cfg.Logger = gormlogger.Default.LogMode(gormlogger.Silent)

	db, err := gorm.Open(sqlite.Open(dsn), cfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	return db
}

var testDefaults = GoalDefaults{Calories: 2000, Protein: 150, Fiber: 40}

type testServices struct {
	db     *gorm.DB
	foods  *FoodService
	meals  *MealService
	alerts *AlertService
	days   *DayService
}

func newTestServices(t *testing.T, now time.Time) *testServices {
	db := newTestDB(t)
	foods := NewFoodService(db)
	meals := NewMealService(db)
	alerts := NewAlertService(db, NewRealtimeHub())
	days := NewDayService(db, meals, alerts, testDefaults)
	days.now = func() time.Time { return now }
	return &testServices{db: db, foods: foods, meals: meals, alerts: alerts, days: days}
}

func (ts *testServices) food(t *testing.T, name string, cal, prot, fib float64) *models.Food {
	t.Helper()
	f, err := ts.foods.Create(context.Background(), FoodInput{Name: name, Unit: "g", Calories: cal, Protein: prot, Fiber: fib})
	require.NoError(t, err)
	return f
}
