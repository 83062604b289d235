package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gracechurch/server/internal/activity"
	"github.com/gracechurch/server/internal/helpers"
	"github.com/gracechurch/server/internal/middleware"
	"github.com/gracechurch/server/internal/models"
)

// isProtectedOwner reports whether this is the designated owner account,
// which can never be deleted, demoted or deactivated.
func isProtectedOwner(user models.User) bool {
	ownerEmail := os.Getenv("OWNER_EMAIL")
	return ownerEmail != "" && user.Email == ownerEmail
}

type UpdateProfileRequest struct {
	Name              *string `json:"name" binding:"omitempty,min=2"`
	Password          *string `json:"password" binding:"omitempty,min=6"`
	NotificationOptIn *bool   `json:"notificationOptIn"`
	ProfilePicture    *string `json:"profilePicture"`
}

func GetMyProfile(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var user models.User
	if err := gormDB.Where("id = ?", identity.UserID).First(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "User not found.")
		return
	}

	c.JSON(http.StatusOK, user)
}

func UpdateMyProfile(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var req UpdateProfileRequest
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

	var user models.User
	if err := gormDB.Where("id = ?", identity.UserID).First(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "User not found.")
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.NotificationOptIn != nil {
		user.NotificationOptIn = *req.NotificationOptIn
	}
	if req.ProfilePicture != nil {
		user.ProfilePicture = req.ProfilePicture
	}
	if req.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to hash the password.")
			return
		}
		user.Password = string(hashedPassword)
	}

	if err := gormDB.Save(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile.")
		return
	}

	activity.Record(gormDB, &user.ID, models.ActionUserUpdate, fmt.Sprintf("%s updated their profile", user.Email))

	c.JSON(http.StatusOK, user)
}

func DeleteMyAccount(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var user models.User
	if err := gormDB.Where("id = ?", identity.UserID).First(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "User not found.")
		return
	}

	if isProtectedOwner(user) {
		helpers.RespondWithError(c, http.StatusForbidden, "The owner account cannot be deleted.")
		return
	}

	// The account's uploads go with it, remote assets included.
	if err := deleteUserMedia(c, gormDB, user.ID); err != nil {
		if errors.Is(err, errMediaInUse) {
			helpers.RespondWithError(c, http.StatusConflict, "Your media is referenced by existing sermons.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete account media.")
		return
	}

	if err := gormDB.Delete(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete account.")
		return
	}

	activity.Record(gormDB, nil, models.ActionUserDelete, fmt.Sprintf("%s deleted their account", user.Email))

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.AuthCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully."})
}

type AdminUpdateUserRequest struct {
	Name              *string `json:"name" binding:"omitempty,min=2"`
	Role              *string `json:"role"`
	Status            *string `json:"status"`
	NotificationOptIn *bool   `json:"notificationOptIn"`
}

func ListUsers(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	page, perPage := helpers.ParsePagination(c)

	query := gormDB.Model(&models.User{})
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}
	if statusParam := c.Query("status"); statusParam != "" {
		status, err := models.ParseUserStatus(statusParam)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		query = query.Where("status = ?", status)
	}

	var totalCount int64
	query.Count(&totalCount)

	var users []models.User
	offset := (page - 1) * perPage
	err := query.Offset(offset).Limit(perPage).Order("created_at DESC").Find(&users).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving users.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": users,
		"total": totalCount,
	})
}

func GetUser(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var user models.User
	if err := gormDB.Where("id = ?", c.Param("id")).First(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "User not found.")
		return
	}

	c.JSON(http.StatusOK, user)
}

func UpdateUser(c *gin.Context) {
	var req AdminUpdateUserRequest
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

	var user models.User
	if err := gormDB.Where("id = ?", c.Param("id")).First(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "User not found.")
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		role, err := models.ParseUserRole(*req.Role)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		if isProtectedOwner(user) && role != models.RoleOwner {
			helpers.RespondWithError(c, http.StatusForbidden, "The owner account cannot be demoted.")
			return
		}
		user.Role = role
	}
	if req.Status != nil {
		status, err := models.ParseUserStatus(*req.Status)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		if isProtectedOwner(user) && status != models.UserActive {
			helpers.RespondWithError(c, http.StatusForbidden, "The owner account cannot be deactivated.")
			return
		}
		user.Status = status
	}
	if req.NotificationOptIn != nil {
		user.NotificationOptIn = *req.NotificationOptIn
	}

	if err := gormDB.Save(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update user.")
		return
	}

	identity, _ := middleware.CurrentIdentity(c)
	activity.Record(gormDB, &identity.UserID, models.ActionUserUpdate, fmt.Sprintf("updated user %s", user.Email))

	c.JSON(http.StatusOK, user)
}

func DeleteUser(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var user models.User
	if err := gormDB.Where("id = ?", c.Param("id")).First(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "User not found.")
		return
	}

	if isProtectedOwner(user) {
		helpers.RespondWithError(c, http.StatusForbidden, "The owner account cannot be deleted.")
		return
	}

	if err := deleteUserMedia(c, gormDB, user.ID); err != nil {
		if errors.Is(err, errMediaInUse) {
			helpers.RespondWithError(c, http.StatusConflict, "The user's media is referenced by existing sermons.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete the user's media.")
		return
	}

	if err := gormDB.Delete(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete user.")
		return
	}

	identity, _ := middleware.CurrentIdentity(c)
	activity.Record(gormDB, &identity.UserID, models.ActionUserDelete, fmt.Sprintf("deleted user %s", user.Email))

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully."})
}
