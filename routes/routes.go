package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackgraver/simple-track/controllers"
	"github.com/jackgraver/simple-track/middlewares"
	"github.com/jackgraver/simple-track/services"
	"go.uber.org/zap"
)

// Deps holds everything the router needs.
type Deps struct {
	Log         *zap.Logger
	CORSOrigins []string

	Auth    *services.AuthService
	Foods   *services.FoodService
	Meals   *services.MealService
	Days    *services.DayService
	Alerts  *services.AlertService
	Exports *services.ExportService
	Hub     *services.RealtimeHub
}

func SetupRouter(d Deps) *gin.Engine {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestID(), middlewares.RequestLogger(d.Log))
	if len(d.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middlewares.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	_ = r.SetTrustedProxies(nil)

	authCtl := controllers.NewAuthController(d.Auth)
	foodCtl := controllers.NewFoodController(d.Foods)
	mealCtl := controllers.NewMealController(d.Meals)
	logCtl := controllers.NewDietLogController(d.Days)
	alertCtl := controllers.NewAlertController(d.Alerts)
	exportCtl := controllers.NewExportController(d.Exports)
	rtCtl := controllers.NewRealtimeController(d.Hub)

	// Public routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
	}
	r.GET("/dates/format", controllers.FormatDate)

	diet := r.Group("/diet")
	diet.Use(middlewares.AuthMiddleware(d.Auth))

	foods := diet.Group("/foods")
	{
		foods.GET("", foodCtl.List)
		foods.POST("", foodCtl.Create)
		foods.GET("/search", foodCtl.Search)
		foods.GET("/:id", foodCtl.Get)
		foods.PUT("/:id", foodCtl.Update)
		foods.DELETE("/:id", foodCtl.Delete)
	}

	meals := diet.Group("/meals")
	{
		meals.GET("", mealCtl.List)
		meals.POST("", mealCtl.Create)
		meals.GET("/:id", mealCtl.Get)
		meals.PUT("/:id", mealCtl.Rename)
		meals.DELETE("/:id", mealCtl.Delete)
		meals.POST("/:id/items", mealCtl.AddItem)
		meals.PUT("/:id/items/:itemId", mealCtl.UpdateItem)
		meals.DELETE("/:id/items/:itemId", mealCtl.RemoveItem)
	}

	logs := diet.Group("/logs")
	{
		logs.GET("/today", logCtl.Today)
		logs.GET("/week", logCtl.Week)
		logs.GET("/month", logCtl.Month)
		logs.GET("/day/:date", logCtl.ByDate)
		logs.GET("/days/:id/summary", logCtl.Summary)
		logs.POST("/days/:id/meals", logCtl.AddDayMeal)
		logs.PUT("/days/:id/goals", logCtl.UpdateGoals)
		logs.POST("/meal", logCtl.LogMeal)
		logs.PATCH("/meals/:id", logCtl.SetStatus)
		logs.DELETE("/meals/:id", logCtl.RemoveDayMeal)
		logs.GET("/report", exportCtl.Report)
		logs.POST("/export", exportCtl.Export)
	}

	diet.GET("/alerts", alertCtl.List)
	diet.GET("/ws/alerts", rtCtl.AlertsWS)

	return r
}
