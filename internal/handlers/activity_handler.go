package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gracechurch/server/internal/helpers"
	"github.com/gracechurch/server/internal/models"
)

var activitySortColumns = map[string]string{
	"created_at": "created_at",
}

// activityPeriodStart resolves a period filter to its calendar-aligned
// lower bound. Weeks start on Sunday.
func activityPeriodStart(period string, now time.Time) (time.Time, bool) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch period {
	case "today":
		return dayStart, true
	case "this_week":
		return dayStart.AddDate(0, 0, -int(now.Weekday())), true
	case "this_month":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), true
	}
	return time.Time{}, false
}

func ListActivities(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	page, perPage := helpers.ParsePagination(c)
	order := helpers.ParseSort(c, activitySortColumns, "created_at")

	query := gormDB.Model(&models.Activity{})
	if search := c.Query("search"); search != "" {
		query = query.Where("details ILIKE ?", "%"+search+"%")
	}
	if actionParam := c.Query("action"); actionParam != "" {
		action, err := models.ParseActionKind(actionParam)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		query = query.Where("action = ?", action)
	}
	if userParam := c.Query("userId"); userParam != "" {
		userID, err := helpers.StringToInt(userParam)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid userId.")
			return
		}
		query = query.Where("user_id = ?", userID)
	}

	if period := c.Query("period"); period != "" {
		start, ok := activityPeriodStart(period, time.Now())
		if !ok {
			helpers.RespondWithError(c, http.StatusBadRequest, "period must be today, this_week or this_month")
			return
		}
		query = query.Where("created_at >= ?", start)
	}

	var totalCount int64
	query.Count(&totalCount)

	var activities []models.Activity
	offset := (page - 1) * perPage
	err := query.Preload("User").Offset(offset).Limit(perPage).Order(order).Find(&activities).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving activity log.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": activities,
		"total": totalCount,
	})
}
