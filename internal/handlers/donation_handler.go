package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/gracechurch/server/internal/activity"
	"github.com/gracechurch/server/internal/helpers"
	"github.com/gracechurch/server/internal/middleware"
	"github.com/gracechurch/server/internal/models"
	"github.com/gracechurch/server/internal/reports"
	"github.com/gracechurch/server/internal/storage"
)

type CreateDonationRequest struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod" binding:"required"`
	TransactionID *string `json:"transactionId"`
}

type UpdateDonationRequest struct {
	Status *string `json:"status"`
}

var donationSortColumns = map[string]string{
	"created_at": "created_at",
	"amount":     "amount",
}

// applyMethodDefaults resolves the initial status and generated references
// for a new donation. Card and PayPal donations settle immediately; eSewa
// and bank-QR donations stay pending with a generated reference until they
// are reconciled out of band.
func applyMethodDefaults(donation *models.Donation) {
	donation.Status = models.DonationCompleted

	switch donation.PaymentMethod {
	case models.MethodEsewa:
		donation.Status = models.DonationPending
		ref := "ESW-" + uuid.New().String()[:8]
		donation.EsewaRefID = &ref
		if donation.TransactionID == nil {
			donation.TransactionID = &ref
		}
	case models.MethodBankQR:
		donation.Status = models.DonationPending
		txID := "QR-" + uuid.New().String()[:8]
		donation.TransactionID = &txID
	}
}

// bankQRImage renders the placeholder QR for a pending bank transfer. The
// PNG encodes the transaction reference so tellers can match the payment
// during reconciliation.
func bankQRImage(txID string) ([]byte, error) {
	return qrcode.Encode(txID, qrcode.Medium, 256)
}

// attachBankQR generates the QR asset and stores it through the asset
// store. A failure here is logged and leaves the donation without a QR
// URL; the pending row and its transaction id still stand.
func attachBankQR(store *storage.Client, donation *models.Donation) {
	if store == nil || donation.TransactionID == nil {
		return
	}

	png, err := bankQRImage(*donation.TransactionID)
	if err != nil {
		logger.Warn().Err(err).Str("transaction_id", *donation.TransactionID).Msg("qr encode failed")
		return
	}

	url, _, err := store.Upload(bytes.NewReader(png), *donation.TransactionID+".png", "image/png")
	if err != nil {
		logger.Warn().Err(err).Str("transaction_id", *donation.TransactionID).Msg("qr asset upload failed")
		return
	}
	donation.QRImageURL = &url
}

func CreateDonation(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var req CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, helpers.BindingErrorMessage(err))
		return
	}

	method, err := models.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
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

	donation := models.Donation{
		UserID:        identity.UserID,
		Amount:        req.Amount,
		PaymentMethod: method,
		TransactionID: req.TransactionID,
	}
	applyMethodDefaults(&donation)
	if donation.PaymentMethod == models.MethodBankQR {
		attachBankQR(middleware.GetStorage(c), &donation)
	}

	if err := gormDB.Create(&donation).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to record donation.")
		return
	}

	activity.Record(gormDB, &identity.UserID, models.ActionDonationCreate,
		fmt.Sprintf("donation of %.2f via %s", donation.Amount, donation.PaymentMethod.Label()))

	if donation.Status == models.DonationCompleted {
		if mail := middleware.GetMailer(c); mail != nil {
			go mail.SendDonationReceipt(user.Email, user.Name, donation.Amount, donation.PaymentMethod.Label())
		}
	}

	c.JSON(http.StatusCreated, donation)
}

func DonationHistory(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	page, perPage := helpers.ParsePagination(c)
	order := helpers.ParseSort(c, donationSortColumns, "created_at")

	query := gormDB.Model(&models.Donation{}).Where("user_id = ?", identity.UserID)
	if statusParam := c.Query("status"); statusParam != "" {
		status, err := models.ParseDonationStatus(statusParam)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		query = query.Where("status = ?", status)
	}

	var totalCount int64
	query.Count(&totalCount)

	var donations []models.Donation
	offset := (page - 1) * perPage
	err := query.Offset(offset).Limit(perPage).Order(order).Find(&donations).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving donations.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": donations,
		"total": totalCount,
	})
}

func ListDonations(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	page, perPage := helpers.ParsePagination(c)
	order := helpers.ParseSort(c, donationSortColumns, "created_at")

	query := gormDB.Model(&models.Donation{})
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Joins("JOIN users ON users.id = donations.user_id").
			Where("users.name ILIKE ? OR users.email ILIKE ?", pattern, pattern)
	}
	if statusParam := c.Query("status"); statusParam != "" {
		status, err := models.ParseDonationStatus(statusParam)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		query = query.Where("donations.status = ?", status)
	}
	if periodParam := c.Query("period"); periodParam != "" {
		period, err := reports.ParsePeriod(periodParam)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		if start, end, bounded := reports.PeriodRange(period, time.Now()); bounded {
			query = query.Where("donations.created_at >= ? AND donations.created_at < ?", start, end)
		}
	}

	var totalCount int64
	query.Count(&totalCount)

	var donations []models.Donation
	offset := (page - 1) * perPage
	err := query.Preload("User").Offset(offset).Limit(perPage).Order("donations." + order).Find(&donations).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving donations.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": donations,
		"total": totalCount,
	})
}

func UpdateDonation(c *gin.Context) {
	var req UpdateDonationRequest
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

	var donation models.Donation
	if err := gormDB.Where("id = ?", c.Param("id")).First(&donation).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Donation not found.")
		return
	}

	if req.Status != nil {
		status, err := models.ParseDonationStatus(*req.Status)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		donation.Status = status
	}

	if err := gormDB.Save(&donation).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update donation.")
		return
	}

	identity, _ := middleware.CurrentIdentity(c)
	activity.Record(gormDB, &identity.UserID, models.ActionDonationUpdate,
		fmt.Sprintf("updated donation %d status to %s", donation.ID, donation.Status))

	c.JSON(http.StatusOK, donation)
}

func DeleteDonation(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var donation models.Donation
	if err := gormDB.Where("id = ?", c.Param("id")).First(&donation).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Donation not found.")
		return
	}

	if err := gormDB.Delete(&donation).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete donation.")
		return
	}

	identity, _ := middleware.CurrentIdentity(c)
	activity.Record(gormDB, &identity.UserID, models.ActionDonationDelete, fmt.Sprintf("deleted donation %d", donation.ID))

	c.JSON(http.StatusOK, gin.H{"message": "Donation deleted successfully."})
}

func DonationSummary(c *gin.Context) {
	donationSummary(c, nil)
}

// MyDonationSummary is the member-facing summary, scoped to the caller's
// own giving.
func MyDonationSummary(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)
	donationSummary(c, &identity.UserID)
}

func donationSummary(c *gin.Context, userID *uint) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	period := reports.PeriodAllTime
	if periodParam := c.Query("period"); periodParam != "" {
		parsed, err := reports.ParsePeriod(periodParam)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		period = parsed
	}

	summary, err := reports.DonationSummaryReport(gormDB, period, time.Now(), userID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error computing donation summary.")
		return
	}

	c.JSON(http.StatusOK, summary)
}
