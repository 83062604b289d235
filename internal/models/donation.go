package models

import (
	"fmt"
	"strings"
	"time"
)

type PaymentMethod string

const (
	MethodCreditCard PaymentMethod = "credit_card"
	MethodDebitCard  PaymentMethod = "debit_card"
	MethodPaypal     PaymentMethod = "paypal"
	MethodEsewa      PaymentMethod = "esewa"
	MethodBankQR     PaymentMethod = "bank_qr"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case MethodCreditCard, MethodDebitCard, MethodPaypal, MethodEsewa, MethodBankQR:
		return PaymentMethod(s), nil
	}
	return "", fmt.Errorf("invalid payment method %q", s)
}

// Label is the display form of the method ("bank_qr" -> "bank qr").
func (m PaymentMethod) Label() string {
	return strings.ReplaceAll(string(m), "_", " ")
}

type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationCompleted DonationStatus = "completed"
	DonationFailed    DonationStatus = "failed"
)

func ParseDonationStatus(s string) (DonationStatus, error) {
	switch DonationStatus(s) {
	case DonationPending, DonationCompleted, DonationFailed:
		return DonationStatus(s), nil
	}
	return "", fmt.Errorf("invalid donation status %q", s)
}

type Donation struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"not null;index" json:"userId"`
	User          *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Amount        float64        `gorm:"type:numeric(12,2);not null" json:"amount"`
	PaymentMethod PaymentMethod  `gorm:"type:varchar(16);not null" json:"paymentMethod"`
	Status        DonationStatus `gorm:"type:varchar(16);not null;default:'completed'" json:"status"`
	TransactionID *string        `json:"transactionId"`
	QRImageURL    *string        `json:"qrImageUrl"`
	EsewaRefID    *string        `json:"esewaRefId"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}
