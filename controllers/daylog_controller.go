package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"nutritracker/middlewares"
	"nutritracker/services"

	"github.com/gin-gonic/gin"

	"gorm.io/gorm"
)

type DayLogController struct {
	dayLogs *services.DayLogService
}

func NewDayLogController(dayLogs *services.DayLogService) *DayLogController {
	return &DayLogController{dayLogs: dayLogs}
}

// GET /api/day-logs/:date — get-or-create for a YYYY-MM-DD date.
func (ctl *DayLogController) GetOrCreate(c *gin.Context) {
	log, err := ctl.dayLogs.GetOrCreate(c.Request.Context(), middlewares.UserID(c), c.Param("date"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, log)
}

// GET /api/day-logs/by-id/:dayLogId
func (ctl *DayLogController) GetByID(c *gin.Context) {
	dayLogID, ok := parseID(c, "dayLogId")
	if !ok {
		return
	}

	log, err := ctl.dayLogs.GetByID(c.Request.Context(), middlewares.UserID(c), dayLogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Day log not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, log)
}

// GET /api/day-logs/week/list?start=YYYY-MM-DD — 7 logs, creating missing days.
func (ctl *DayLogController) Week(c *gin.Context) {
	start := c.Query("start")
	if start == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing start=YYYY-MM-DD"})
		return
	}

	days, err := ctl.dayLogs.Week(c.Request.Context(), middlewares.UserID(c), start)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start must be YYYY-MM-DD"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, days)
}

// parseID reads a numeric path parameter, answering 400 itself when the
// value is not a positive integer.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}
