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

type CreateSermonRequest struct {
	Title       string    `json:"title" binding:"required,min=2"`
	Description string    `json:"description" binding:"required,min=10"`
	Date        time.Time `json:"date" binding:"required"`
	MediaID     uint      `json:"mediaId" binding:"required"`
	Duration    string    `json:"duration" binding:"required"`
}

type UpdateSermonRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=2"`
	Description *string    `json:"description" binding:"omitempty,min=10"`
	Date        *time.Time `json:"date"`
	MediaID     *uint      `json:"mediaId"`
	Duration    *string    `json:"duration"`
}

func CreateSermon(c *gin.Context) {
	var req CreateSermonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, helpers.BindingErrorMessage(err))
		return
	}

	if err := models.ValidateDuration(req.Duration); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var media models.Media
	if err := gormDB.Where("id = ?", req.MediaID).First(&media).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "mediaId does not reference an existing media item")
		return
	}

	sermon := models.Sermon{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		MediaID:     req.MediaID,
		Duration:    req.Duration,
	}

	if err := gormDB.Create(&sermon).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create sermon.")
		return
	}

	identity, _ := middleware.CurrentIdentity(c)
	activity.Record(gormDB, &identity.UserID, models.ActionSermonCreate, fmt.Sprintf("created sermon %q", sermon.Title))

	c.JSON(http.StatusCreated, sermon)
}

func GetSermon(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var sermon models.Sermon
	if err := gormDB.Preload("Media").Where("id = ?", c.Param("id")).First(&sermon).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Sermon not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving sermon.")
		return
	}

	c.JSON(http.StatusOK, sermon)
}

func ListSermons(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	page, perPage := helpers.ParsePagination(c)

	query := gormDB.Model(&models.Sermon{})
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var totalCount int64
	query.Count(&totalCount)

	var sermons []models.Sermon
	offset := (page - 1) * perPage
	err := query.Preload("Media").Offset(offset).Limit(perPage).Order("date DESC").Find(&sermons).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving sermons.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": sermons,
		"total": totalCount,
	})
}

func UpdateSermon(c *gin.Context) {
	var req UpdateSermonRequest
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

	var sermon models.Sermon
	if err := gormDB.Where("id = ?", c.Param("id")).First(&sermon).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Sermon not found.")
		return
	}

	if req.Title != nil {
		sermon.Title = *req.Title
	}
	if req.Description != nil {
		sermon.Description = *req.Description
	}
	if req.Date != nil {
		sermon.Date = *req.Date
	}
	if req.Duration != nil {
		if err := models.ValidateDuration(*req.Duration); err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		sermon.Duration = *req.Duration
	}
	if req.MediaID != nil {
		var media models.Media
		if err := gormDB.Where("id = ?", *req.MediaID).First(&media).Error; err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "mediaId does not reference an existing media item")
			return
		}
		sermon.MediaID = *req.MediaID
	}

	if err := gormDB.Save(&sermon).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update sermon.")
		return
	}

	identity, _ := middleware.CurrentIdentity(c)
	activity.Record(gormDB, &identity.UserID, models.ActionSermonUpdate, fmt.Sprintf("updated sermon %q", sermon.Title))

	c.JSON(http.StatusOK, sermon)
}

func DeleteSermon(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var sermon models.Sermon
	if err := gormDB.Where("id = ?", c.Param("id")).First(&sermon).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Sermon not found.")
		return
	}

	if err := gormDB.Delete(&sermon).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete sermon.")
		return
	}

	identity, _ := middleware.CurrentIdentity(c)
	activity.Record(gormDB, &identity.UserID, models.ActionSermonDelete, fmt.Sprintf("deleted sermon %q", sermon.Title))

	c.JSON(http.StatusOK, gin.H{"message": "Sermon deleted successfully."})
}
