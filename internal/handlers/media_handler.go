package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/gracechurch/server/internal/activity"
	"github.com/gracechurch/server/internal/helpers"
	"github.com/gracechurch/server/internal/middleware"
	"github.com/gracechurch/server/internal/models"
)

var logger = zerolog.New(os.Stderr).With().Timestamp().Str("component", "handlers").Logger()

var errMediaInUse = errors.New("media is referenced by existing sermons")

type assetRemover interface {
	Delete(assetID string) error
}

// removeRemoteAssets drops the remote copies of the given media. A failed
// remote delete is logged, not retried, and never blocks the caller.
func removeRemoteAssets(store assetRemover, items []models.Media) {
	if store == nil {
		return
	}
	for _, media := range items {
		if err := store.Delete(media.AssetID); err != nil {
			logger.Warn().Err(err).Str("asset_id", media.AssetID).Msg("remote asset delete failed")
		}
	}
}

// deleteUserMedia removes every media row a user owns along with the
// remote assets, mirroring what DeleteMedia does for a single item.
// Returns errMediaInUse when any of it still backs a sermon.
func deleteUserMedia(c *gin.Context, gormDB *gorm.DB, userID uint) error {
	var items []models.Media
	if err := gormDB.Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(items))
	for _, media := range items {
		ids = append(ids, media.ID)
	}

	var sermonCount int64
	gormDB.Model(&models.Sermon{}).Where("media_id IN ?", ids).Count(&sermonCount)
	if sermonCount > 0 {
		return errMediaInUse
	}

	var remover assetRemover
	if store := middleware.GetStorage(c); store != nil {
		remover = store
	}
	removeRemoteAssets(remover, items)

	gormDB.Model(&models.Event{}).Where("media_id IN ?", ids).Update("media_id", nil)
	return gormDB.Where("user_id = ?", userID).Delete(&models.Media{}).Error
}

type UpdateMediaRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=2"`
	Description *string `json:"description"`
}

func UploadMedia(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	title := c.PostForm("title")
	if title == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "title is required")
		return
	}
	description := c.PostForm("description")

	fileHeader, err := c.FormFile("mediaFile")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "mediaFile is required")
		return
	}

	// Size and MIME are checked before anything touches the asset store.
	contentType, mediaType, err := helpers.ValidateUpload(fileHeader)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	store := middleware.GetStorage(c)
	if store == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Asset store not configured.")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to read uploaded file.")
		return
	}
	defer src.Close()

	url, assetID, err := store.Upload(src, fileHeader.Filename, contentType)
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("asset upload failed")
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to upload file.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	media := models.Media{
		URL:     url,
		AssetID: assetID,
		Type:    mediaType,
		Title:   title,
		UserID:  identity.UserID,
	}
	if description != "" {
		media.Description = &description
	}

	if err := gormDB.Create(&media).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to save media record.")
		return
	}

	activity.Record(gormDB, &identity.UserID, models.ActionMediaUpload, fmt.Sprintf("uploaded %s %q", media.Type, media.Title))

	c.JSON(http.StatusCreated, media)
}

func ListMedia(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	page, perPage := helpers.ParsePagination(c)

	query := gormDB.Model(&models.Media{})
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if typeParam := c.Query("type"); typeParam != "" {
		mediaType, err := models.ParseMediaType(typeParam)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		query = query.Where("type = ?", mediaType)
	}

	var totalCount int64
	query.Count(&totalCount)

	var items []models.Media
	offset := (page - 1) * perPage
	err := query.Preload("User").Offset(offset).Limit(perPage).Order("created_at DESC").Find(&items).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving media.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": totalCount,
	})
}

func GetMedia(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var media models.Media
	if err := gormDB.Preload("User").Where("id = ?", c.Param("id")).First(&media).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Media not found.")
		return
	}

	c.JSON(http.StatusOK, media)
}

func UpdateMedia(c *gin.Context) {
	var req UpdateMediaRequest
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

	var media models.Media
	if err := gormDB.Where("id = ?", c.Param("id")).First(&media).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Media not found.")
		return
	}

	if req.Title != nil {
		media.Title = *req.Title
	}
	if req.Description != nil {
		media.Description = req.Description
	}

	if err := gormDB.Save(&media).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update media.")
		return
	}

	identity, _ := middleware.CurrentIdentity(c)
	activity.Record(gormDB, &identity.UserID, models.ActionMediaUpdate, fmt.Sprintf("updated media %q", media.Title))

	c.JSON(http.StatusOK, media)
}

func DeleteMedia(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var media models.Media
	if err := gormDB.Where("id = ?", c.Param("id")).First(&media).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Media not found.")
		return
	}

	if media.UserID != identity.UserID && identity.Role != models.RoleOwner {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to delete this media.")
		return
	}

	var sermonCount int64
	gormDB.Model(&models.Sermon{}).Where("media_id = ?", media.ID).Count(&sermonCount)
	if sermonCount > 0 {
		helpers.RespondWithError(c, http.StatusConflict, "Media is referenced by existing sermons.")
		return
	}

	// Remote asset first; the local row is still removed on a remote failure.
	var remover assetRemover
	if store := middleware.GetStorage(c); store != nil {
		remover = store
	}
	removeRemoteAssets(remover, []models.Media{media})

	gormDB.Model(&models.Event{}).Where("media_id = ?", media.ID).Update("media_id", nil)

	if err := gormDB.Delete(&media).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete media.")
		return
	}

	activity.Record(gormDB, &identity.UserID, models.ActionMediaDelete, fmt.Sprintf("deleted media %q", media.Title))

	c.JSON(http.StatusOK, gin.H{"message": "Media deleted successfully."})
}
