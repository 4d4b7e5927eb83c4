package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCheckoutForm() CheckoutForm {
	return CheckoutForm{
		FirstName:  "Jane",
		LastName:   "Doe",
		Email:      "jane@example.com",
		Phone:      "555-0100",
		Address:    "1 Main St",
		City:       "Springfield",
		State:      "IL",
		ZipCode:    "62701",
		Country:    "USA",
		CardNumber: "4111111111111111",
		ExpiryDate: "12/27",
		CVV:        "123",
		NameOnCard: "Jane Doe",
	}
}

// ============================================================================
// CheckoutForm.Validate Tests
// ============================================================================

func TestValidate_ValidForm(t *testing.T) {
	form := validCheckoutForm()
	assert.Empty(t, form.Validate())
}

func TestValidate_EmptyFormReportsAllFields(t *testing.T) {
	form := CheckoutForm{}
	errs := form.Validate()

	want := map[string]string{
		"firstName":  "First name is required",
		"lastName":   "Last name is required",
		"email":      "Email is invalid",
		"phone":      "Phone number is required",
		"address":    "Address is required",
		"city":       "City is required",
		"state":      "State is required",
		"zipCode":    "ZIP code is required",
		"country":    "Country is required",
		"cardNumber": "Card number is required",
		"expiryDate": "Expiry date is required",
		"cvv":        "CVV is required",
		"nameOnCard": "Name on card is required",
	}
	assert.Equal(t, want, errs)
}

func TestValidate_InvalidEmailOverridesRequired(t *testing.T) {
	form := validCheckoutForm()
	form.Email = "not-an-email"

	errs := form.Validate()

	require.Len(t, errs, 1)
	assert.Equal(t, "Email is invalid", errs["email"])
}

func TestValidate_WhitespaceOnlyFieldIsMissing(t *testing.T) {
	form := validCheckoutForm()
	form.City = "   "

	errs := form.Validate()

	require.Len(t, errs, 1)
	assert.Equal(t, "City is required", errs["city"])
}

func TestValidate_SingleMissingField(t *testing.T) {
	form := validCheckoutForm()
	form.ZipCode = ""

	errs := form.Validate()

	require.Len(t, errs, 1)
	assert.Equal(t, "ZIP code is required", errs["zipCode"])
}

// ============================================================================
// Order Number Tests
// ============================================================================

func TestNewOrderNumber(t *testing.T) {
	now := time.UnixMilli(1724800000000)
	n := NewOrderNumber(now)

	assert.True(t, strings.HasPrefix(n, "#SG"))
	assert.Equal(t, "#SG1724800000000", n)
}
