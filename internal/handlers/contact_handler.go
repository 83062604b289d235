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

type CreateContactRequest struct {
	Name    string `json:"name" binding:"required,min=2"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required,min=10"`
}

type UpdateContactRequest struct {
	Status *string `json:"status"`
}

type RespondContactRequest struct {
	ResponseMessage string `json:"responseMessage" binding:"required,min=2"`
}

func CreateContact(c *gin.Context) {
	var req CreateContactRequest
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

	contact := models.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
		Status:  models.ContactUnread,
	}

	if err := gormDB.Create(&contact).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to submit message.")
		return
	}

	var actorID *uint
	if identity, ok := middleware.CurrentIdentity(c); ok {
		actorID = &identity.UserID
	}
	activity.Record(gormDB, actorID, models.ActionContactCreate, fmt.Sprintf("contact message from %s", contact.Email))
	if mail := middleware.GetMailer(c); mail != nil {
		go mail.SendContactReceipt(contact.Email, contact.Name)
	}

	c.JSON(http.StatusCreated, contact)
}

func ListContacts(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	page, perPage := helpers.ParsePagination(c)

	query := gormDB.Model(&models.Contact{})
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR message ILIKE ?", pattern, pattern, pattern)
	}
	if statusParam := c.Query("status"); statusParam != "" {
		status, err := models.ParseContactStatus(statusParam)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		query = query.Where("status = ?", status)
	}

	var totalCount int64
	query.Count(&totalCount)

	var contacts []models.Contact
	offset := (page - 1) * perPage
	err := query.Offset(offset).Limit(perPage).Order("created_at DESC").Find(&contacts).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving contacts.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": contacts,
		"total": totalCount,
	})
}

func GetContact(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var contact models.Contact
	if err := gormDB.Where("id = ?", c.Param("id")).First(&contact).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Contact not found.")
		return
	}

	c.JSON(http.StatusOK, contact)
}

func UpdateContact(c *gin.Context) {
	var req UpdateContactRequest
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

	var contact models.Contact
	if err := gormDB.Where("id = ?", c.Param("id")).First(&contact).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Contact not found.")
		return
	}

	if req.Status != nil {
		status, err := models.ParseContactStatus(*req.Status)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		contact.Status = status
	}

	if err := gormDB.Save(&contact).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update contact.")
		return
	}

	identity, _ := middleware.CurrentIdentity(c)
	activity.Record(gormDB, &identity.UserID, models.ActionContactUpdate, fmt.Sprintf("updated contact %d status to %s", contact.ID, contact.Status))

	c.JSON(http.StatusOK, contact)
}

func RespondContact(c *gin.Context) {
	var req RespondContactRequest
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

	var contact models.Contact
	if err := gormDB.Where("id = ?", c.Param("id")).First(&contact).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Contact not found.")
		return
	}

	now := time.Now()
	contact.ResponseMessage = &req.ResponseMessage
	contact.RespondedAt = &now
	contact.Status = models.ContactResponded

	if err := gormDB.Save(&contact).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to save response.")
		return
	}

	identity, _ := middleware.CurrentIdentity(c)
	activity.Record(gormDB, &identity.UserID, models.ActionContactRespond, fmt.Sprintf("responded to contact from %s", contact.Email))
	if mail := middleware.GetMailer(c); mail != nil {
		go mail.SendContactResponse(contact.Email, contact.Name, req.ResponseMessage)
	}

	c.JSON(http.StatusOK, contact)
}

func DeleteContact(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var contact models.Contact
	if err := gormDB.Where("id = ?", c.Param("id")).First(&contact).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Contact not found.")
		return
	}

	if err := gormDB.Delete(&contact).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete contact.")
		return
	}

	identity, _ := middleware.CurrentIdentity(c)
	activity.Record(gormDB, &identity.UserID, models.ActionContactDelete, fmt.Sprintf("deleted contact from %s", contact.Email))

	c.JSON(http.StatusOK, gin.H{"message": "Contact deleted successfully."})
}
