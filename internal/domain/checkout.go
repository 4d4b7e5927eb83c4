package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// emailPattern is the permissive format check applied to the email field.
var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// CheckoutForm holds the fields collected by the checkout form. Field keys in
// the validation error map match the JSON names.
type CheckoutForm struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zipCode"`
	Country    string `json:"country"`
	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"`
	CVV        string `json:"cvv"`
	NameOnCard string `json:"nameOnCard"`
}

// Validate runs the field-presence and format checks and returns a map of
// field name to error message. An empty map means the form is valid.
func (f *CheckoutForm) Validate() map[string]string {
	errs := make(map[string]string)

	// Personal information.
	if strings.TrimSpace(f.FirstName) == "" {
		errs["firstName"] = "First name is required"
	}
	if strings.TrimSpace(f.LastName) == "" {
		errs["lastName"] = "Last name is required"
	}
	if strings.TrimSpace(f.Email) == "" {
		errs["email"] = "Email is required"
	}
	if !emailPattern.MatchString(f.Email) {
		errs["email"] = "Email is invalid"
	}
	if strings.TrimSpace(f.Phone) == "" {
		errs["phone"] = "Phone number is required"
	}

	// Shipping address.
	if strings.TrimSpace(f.Address) == "" {
		errs["address"] = "Address is required"
	}
	if strings.TrimSpace(f.City) == "" {
		errs["city"] = "City is required"
	}
	if strings.TrimSpace(f.State) == "" {
		errs["state"] = "State is required"
	}
	if strings.TrimSpace(f.ZipCode) == "" {
		errs["zipCode"] = "ZIP code is required"
	}
	if strings.TrimSpace(f.Country) == "" {
		errs["country"] = "Country is required"
	}

	// Payment information.
	if strings.TrimSpace(f.CardNumber) == "" {
		errs["cardNumber"] = "Card number is required"
	}
	if strings.TrimSpace(f.ExpiryDate) == "" {
		errs["expiryDate"] = "Expiry date is required"
	}
	if strings.TrimSpace(f.CVV) == "" {
		errs["cvv"] = "CVV is required"
	}
	if strings.TrimSpace(f.NameOnCard) == "" {
		errs["nameOnCard"] = "Name on card is required"
	}

	return errs
}

// Order is the confirmation produced by a successful (simulated) checkout.
// Orders are not persisted; the confirmation is the only artifact.
type Order struct {
	OrderNumber string     `json:"order_number"`
	Items       []LineItem `json:"items"`
	Subtotal    float64    `json:"subtotal"`
	ShippingFee float64    `json:"shipping_fee"`
	Tax         float64    `json:"tax"`
	Total       float64    `json:"total"`
	PlacedAt    time.Time  `json:"placed_at"`
}

// NewOrderNumber generates a display order number from the current time.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("#SG%d", now.UnixMilli())
}
