package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JKS-sys/shoppyglobe-storefront/internal/domain"
	"github.com/JKS-sys/shoppyglobe-storefront/internal/service"
	"github.com/JKS-sys/shoppyglobe-storefront/pkg/httputil"
)

// CheckoutHandler handles the simulated checkout endpoint.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

// PlaceOrder handles POST /api/v1/checkout. Validation failures are returned
// as a 422 with the field-to-message map; an empty cart is a 400; success
// returns the order confirmation and clears the cart.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDFromContext(r.Context())
	if !ok {
		writeMissingSession(w)
		return
	}

	var form domain.CheckoutForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	order, fieldErrs, err := h.service.PlaceOrder(r.Context(), sessionID, form)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if len(fieldErrs) > 0 {
		httputil.WriteJSON(w, http.StatusUnprocessableEntity, httputil.Response{
			Error: &httputil.ErrorResponse{
				Code:    "VALIDATION_ERROR",
				Message: "checkout form validation failed",
				Fields:  fieldErrs,
			},
		})
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}
