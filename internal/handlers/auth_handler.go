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

type SignupRequest struct {
	Name              string `json:"name" binding:"required,min=2"`
	Email             string `json:"email" binding:"required,email"`
	Password          string `json:"password" binding:"required,min=6"`
	NotificationOptIn bool   `json:"notificationOptIn"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// signupFailureStatus maps an insert failure to a response. Two signups
// for the same email can both pass the precheck; the unique index settles
// the winner and the loser gets a conflict, not a server error.
func signupFailureStatus(err error) (int, string) {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return http.StatusConflict, "An account with this email already exists."
	}
	return http.StatusInternalServerError, "Failed to create user."
}

func Signup(c *gin.Context) {
	var req SignupRequest
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

	var existingUser models.User
	if result := gormDB.Where("email = ?", req.Email).First(&existingUser); result.Error == nil {
		helpers.RespondWithError(c, http.StatusConflict, "An account with this email already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to hash the password.")
		return
	}

	user := models.User{
		Name:              req.Name,
		Email:             req.Email,
		Password:          string(hashedPassword),
		Role:              models.RoleUser,
		Status:            models.UserActive,
		NotificationOptIn: req.NotificationOptIn,
	}

	if err := gormDB.Create(&user).Error; err != nil {
		status, message := signupFailureStatus(err)
		helpers.RespondWithError(c, status, message)
		return
	}

	activity.Record(gormDB, &user.ID, models.ActionUserSignup, fmt.Sprintf("%s signed up", user.Email))
	if mail := middleware.GetMailer(c); mail != nil {
		go mail.SendWelcome(user.Email, user.Name)
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Account created successfully."})
}

func Login(c *gin.Context) {
	var req LoginRequest
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
	if err := gormDB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	if user.Status != models.UserActive {
		helpers.RespondWithError(c, http.StatusForbidden, "This account has been deactivated.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		helpers.RespondWithError(c, http.StatusInternalServerError, "JWT_SECRET not configured.")
		return
	}

	tokenString, err := helpers.IssueToken(user, secret)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token.")
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.AuthCookieName, tokenString, int(helpers.TokenTTL.Seconds()), "/", "", false, true)

	activity.Record(gormDB, &user.ID, models.ActionUserLogin, fmt.Sprintf("%s logged in", user.Email))

	c.JSON(http.StatusOK, user)
}

func Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.AuthCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully."})
}

func Me(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
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
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	c.JSON(http.StatusOK, user)
}
