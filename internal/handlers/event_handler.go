package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gracechurch/server/internal/activity"
	"github.com/gracechurch/server/internal/helpers"
	"github.com/gracechurch/server/internal/middleware"
	"github.com/gracechurch/server/internal/models"
)

type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required,min=2"`
	Description string    `json:"description" binding:"required,min=10"`
	Date        time.Time `json:"date" binding:"required"`
	MediaID     *uint     `json:"mediaId"`
}

type UpdateEventRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=2"`
	Description *string    `json:"description" binding:"omitempty,min=10"`
	Date        *time.Time `json:"date"`
	MediaID     *uint      `json:"mediaId"`
}

func CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, helpers.BindingErrorMessage(err))
		return
	}

	if !req.Date.After(time.Now()) {
		helpers.RespondWithError(c, http.StatusBadRequest, "date must be in the future")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	if req.MediaID != nil {
		var media models.Media
		if err := gormDB.Where("id = ?", *req.MediaID).First(&media).Error; err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "mediaId does not reference an existing media item")
			return
		}
	}

	event := models.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		MediaID:     req.MediaID,
	}

	if err := gormDB.Create(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create event.")
		return
	}

	identity, _ := middleware.CurrentIdentity(c)
	activity.Record(gormDB, &identity.UserID, models.ActionEventCreate, fmt.Sprintf("created event %q", event.Title))

	c.JSON(http.StatusCreated, event)
}

func GetEvent(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.Preload("Media").Where("id = ?", c.Param("id")).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event.")
		return
	}

	c.JSON(http.StatusOK, event)
}

func ListEvents(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	page, perPage := helpers.ParsePagination(c)

	query := gormDB.Model(&models.Event{})
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	switch c.Query("filter") {
	case "":
	case "upcoming":
		query = query.Where("date > ?", time.Now())
	case "past":
		query = query.Where("date <= ?", time.Now())
	default:
		helpers.RespondWithError(c, http.StatusBadRequest, "filter must be upcoming or past")
		return
	}

	var totalCount int64
	query.Count(&totalCount)

	var events []models.Event
	offset := (page - 1) * perPage
	err := query.Preload("Media").Offset(offset).Limit(perPage).Order("date ASC").Find(&events).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving events.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": events,
		"total": totalCount,
	})
}

func UpdateEvent(c *gin.Context) {
	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, helpers.BindingErrorMessage(err))
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.Where("id = ?", c.Param("id")).First(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		return
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Date != nil {
		if !req.Date.After(time.Now()) {
			helpers.RespondWithError(c, http.StatusBadRequest, "date must be in the future")
			return
		}
		event.Date = *req.Date
	}
	if req.MediaID != nil {
		var media models.Media
		if err := gormDB.Where("id = ?", *req.MediaID).First(&media).Error; err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "mediaId does not reference an existing media item")
			return
		}
		event.MediaID = req.MediaID
	}

	if err := gormDB.Save(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update event.")
		return
	}

	identity, _ := middleware.CurrentIdentity(c)
	activity.Record(gormDB, &identity.UserID, models.ActionEventUpdate, fmt.Sprintf("updated event %q", event.Title))

	c.JSON(http.StatusOK, event)
}

func DeleteEvent(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.Where("id = ?", c.Param("id")).First(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		return
	}

	if err := gormDB.Delete(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete event.")
		return
	}

	identity, _ := middleware.CurrentIdentity(c)
	activity.Record(gormDB, &identity.UserID, models.ActionEventDelete, fmt.Sprintf("deleted event %q", event.Title))

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully."})
}
