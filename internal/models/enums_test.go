package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUserRole(t *testing.T) {
	role, err := ParseUserRole("owner")
	require.NoError(t, err)
	assert.Equal(t, RoleOwner, role)

	_, err = ParseUserRole("admin")
	assert.Error(t, err)
	_, err = ParseUserRole("")
	assert.Error(t, err)
}

func TestParsePaymentMethod(t *testing.T) {
	for _, valid := range []string{"credit_card", "debit_card", "paypal", "esewa", "bank_qr"} {
		method, err := ParsePaymentMethod(valid)
		require.NoError(t, err)
		assert.Equal(t, PaymentMethod(valid), method)
	}

	_, err := ParsePaymentMethod("cash")
	assert.Error(t, err)
}

func TestPaymentMethodLabel(t *testing.T) {
	assert.Equal(t, "bank qr", MethodBankQR.Label())
	assert.Equal(t, "credit card", MethodCreditCard.Label())
	assert.Equal(t, "paypal", MethodPaypal.Label())
}

func TestParseDonationStatus(t *testing.T) {
	status, err := ParseDonationStatus("pending")
	require.NoError(t, err)
	assert.Equal(t, DonationPending, status)

	_, err = ParseDonationStatus("refunded")
	assert.Error(t, err)
}

func TestParseContactStatus(t *testing.T) {
	status, err := ParseContactStatus("responded")
	require.NoError(t, err)
	assert.Equal(t, ContactResponded, status)

	_, err = ParseContactStatus("archived")
	assert.Error(t, err)
}

func TestParseActionKind(t *testing.T) {
	action, err := ParseActionKind("donation_create")
	require.NoError(t, err)
	assert.Equal(t, ActionDonationCreate, action)

	_, err = ParseActionKind("donation_refund")
	assert.Error(t, err)
}

func TestValidateDuration(t *testing.T) {
	assert.NoError(t, ValidateDuration("45:30"))
	assert.NoError(t, ValidateDuration("5:05"))
	assert.NoError(t, ValidateDuration("120:00"))

	assert.Error(t, ValidateDuration("45:75"))
	assert.Error(t, ValidateDuration("45"))
	assert.Error(t, ValidateDuration("45:3"))
	assert.Error(t, ValidateDuration("abc"))
	assert.Error(t, ValidateDuration(""))
}
