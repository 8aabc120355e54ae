package controllers

import (
	"errors"
	"net/http"

	"nutritracker/middlewares"
	"nutritracker/services"

	"github.com/gin-gonic/gin"
)

type SummaryController struct {
	summaries *services.SummaryService
}

func NewSummaryController(summaries *services.SummaryService) *SummaryController {
	return &SummaryController{summaries: summaries}
}

// GET /api/summary/day/:dayLogId
func (ctl *SummaryController) Day(c *gin.Context) {
	dayLogID, ok := parseID(c, "dayLogId")
	if !ok {
		return
	}

	summary, err := ctl.summaries.Day(c.Request.Context(), middlewares.UserID(c), dayLogID)
	if err != nil {
		if errors.Is(err, services.ErrNotAllowed) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GET /api/summary/week?start=YYYY-MM-DD — always exactly 7 points.
func (ctl *SummaryController) Week(c *gin.Context) {
	start := c.Query("start")
	if start == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing start=YYYY-MM-DD"})
		return
	}

	series, err := ctl.summaries.Week(c.Request.Context(), middlewares.UserID(c), start)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start must be YYYY-MM-DD"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, series)
}
