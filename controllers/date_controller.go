package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackgraver/simple-track/utils"
)

// GET /dates/format?date=2025-09-21T10:00:00Z&tz=Europe/London
// Renders a date the way the clients display it. Unparsable dates come back
// as the "Invalid Date" sentinel in every field with valid=false.
func FormatDate(c *gin.Context) {
	loc := time.UTC
	if tz := c.Query("tz"); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown tz"})
			return
		}
		loc = l
	}
	f := utils.NewDateFormatter(loc)
	iso := c.Query("date")
	_, valid := f.Parse(iso)

	c.JSON(http.StatusOK, gin.H{
		"date":        iso,
		"valid":       valid,
		"short":       f.FormatShort(iso),
		"with_month":  f.FormatDate(iso),
		"long":        f.FormatLong(iso),
		"month":       f.MonthName(iso),
		"day_of_week": f.DayOfWeek(iso),
	})
}
