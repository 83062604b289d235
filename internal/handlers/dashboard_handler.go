package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gracechurch/server/internal/helpers"
	"github.com/gracechurch/server/internal/reports"
)

func DashboardStats(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	stats, err := reports.DashboardStatsReport(gormDB, time.Now())
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error computing dashboard stats.")
		return
	}

	c.JSON(http.StatusOK, stats)
}
