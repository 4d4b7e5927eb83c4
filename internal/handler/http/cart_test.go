package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JKS-sys/shoppyglobe-storefront/internal/domain"
	"github.com/JKS-sys/shoppyglobe-storefront/pkg/httputil"
)

type envelope struct {
	Data  json.RawMessage         `json:"data"`
	Error *httputil.ErrorResponse `json:"error"`
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) *domain.Cart {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotNil(t, env.Data, "expected data in response, body: %s", w.Body.String())

	var cart domain.Cart
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	return &cart
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) *httputil.ErrorResponse {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotNil(t, env.Error, "expected error in response, body: %s", w.Body.String())
	return env.Error
}

// ============================================================================
// GET /api/v1/cart
// ============================================================================

func TestGetCart_NewSessionReturnsEmptyCart(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/cart", "sess-1", "")

	requireStatus(t, w, http.StatusOK)
	cart := decodeCart(t, w)
	assert.Equal(t, "sess-1", cart.SessionID)
	assert.Empty(t, cart.Items)
}

func TestGetCart_MintsSessionWhenHeaderAbsent(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/cart", "", "")

	requireStatus(t, w, http.StatusOK)
	assert.NotEmpty(t, w.Header().Get(SessionHeader))
}

// ============================================================================
// POST /api/v1/cart/items
// ============================================================================

func TestAddItem_Success(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/cart/items", "sess-1", `{"product_id": 1}`)

	requireStatus(t, w, http.StatusOK)
	cart := decodeCart(t, w)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Trail Shoe", cart.Items[0].Title)
	assert.Equal(t, 59.99, cart.Items[0].UnitPrice)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestAddItem_RepeatedAddIncrements(t *testing.T) {
	env := setupTestEnv(t)

	env.do(t, http.MethodPost, "/api/v1/cart/items", "sess-1", `{"product_id": 1}`)
	w := env.do(t, http.MethodPost, "/api/v1/cart/items", "sess-1", `{"product_id": 1}`)

	requireStatus(t, w, http.StatusOK)
	cart := decodeCart(t, w)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestAddItem_OutOfStock(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/cart/items", "sess-1", `{"product_id": 3}`)

	requireStatus(t, w, http.StatusBadRequest)
	errResp := decodeError(t, w)
	assert.Equal(t, "INVALID_INPUT", errResp.Code)
}

func TestAddItem_UnknownProduct(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/cart/items", "sess-1", `{"product_id": 999}`)

	requireStatus(t, w, http.StatusNotFound)
}

func TestAddItem_MissingProductID(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/cart/items", "sess-1", `{}`)

	requireStatus(t, w, http.StatusBadRequest)
	errResp := decodeError(t, w)
	assert.Equal(t, "VALIDATION_ERROR", errResp.Code)
}

func TestAddItem_SessionsAreIsolated(t *testing.T) {
	env := setupTestEnv(t)

	env.do(t, http.MethodPost, "/api/v1/cart/items", "sess-1", `{"product_id": 1}`)
	w := env.do(t, http.MethodGet, "/api/v1/cart", "sess-2", "")

	requireStatus(t, w, http.StatusOK)
	cart := decodeCart(t, w)
	assert.Empty(t, cart.Items)
}

// ============================================================================
// PUT /api/v1/cart/items/{productId}
// ============================================================================

func TestUpdateQuantity_Success(t *testing.T) {
	env := setupTestEnv(t)

	env.do(t, http.MethodPost, "/api/v1/cart/items", "sess-1", `{"product_id": 1}`)
	w := env.do(t, http.MethodPut, "/api/v1/cart/items/1", "sess-1", `{"quantity": 4}`)

	requireStatus(t, w, http.StatusOK)
	cart := decodeCart(t, w)
	assert.Equal(t, 4, cart.Items[0].Quantity)
}

func TestUpdateQuantity_ZeroIsNoOpNotError(t *testing.T) {
	env := setupTestEnv(t)

	env.do(t, http.MethodPost, "/api/v1/cart/items", "sess-1", `{"product_id": 1}`)
	w := env.do(t, http.MethodPut, "/api/v1/cart/items/1", "sess-1", `{"quantity": 0}`)

	requireStatus(t, w, http.StatusOK)
	cart := decodeCart(t, w)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestUpdateQuantity_AbsentItemIsNoOpNotError(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPut, "/api/v1/cart/items/42", "sess-1", `{"quantity": 3}`)

	requireStatus(t, w, http.StatusOK)
	cart := decodeCart(t, w)
	assert.Empty(t, cart.Items)
}

func TestUpdateQuantity_InvalidProductIDParam(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPut, "/api/v1/cart/items/abc", "sess-1", `{"quantity": 3}`)

	requireStatus(t, w, http.StatusBadRequest)
	errResp := decodeError(t, w)
	assert.Equal(t, "INVALID_PARAMETER", errResp.Code)
}

// ============================================================================
// DELETE /api/v1/cart/items/{productId}
// ============================================================================

func TestRemoveItem_Success(t *testing.T) {
	env := setupTestEnv(t)

	env.do(t, http.MethodPost, "/api/v1/cart/items", "sess-1", `{"product_id": 1}`)
	w := env.do(t, http.MethodDelete, "/api/v1/cart/items/1", "sess-1", "")

	requireStatus(t, w, http.StatusOK)
	cart := decodeCart(t, w)
	assert.Empty(t, cart.Items)
}

func TestRemoveItem_AbsentIsIdempotent(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodDelete, "/api/v1/cart/items/42", "sess-1", "")

	requireStatus(t, w, http.StatusOK)
}

// ============================================================================
// DELETE /api/v1/cart
// ============================================================================

func TestClearCart_PreservesSearchTerm(t *testing.T) {
	env := setupTestEnv(t)

	env.do(t, http.MethodPut, "/api/v1/cart/search", "sess-1", `{"term": "shoe"}`)
	env.do(t, http.MethodPost, "/api/v1/cart/items", "sess-1", `{"product_id": 1}`)
	w := env.do(t, http.MethodDelete, "/api/v1/cart", "sess-1", "")

	requireStatus(t, w, http.StatusOK)
	cart := decodeCart(t, w)
	assert.Empty(t, cart.Items)
	assert.Equal(t, "shoe", cart.SearchTerm)
}

// ============================================================================
// GET /api/v1/cart/summary
// ============================================================================

func TestCartSummary(t *testing.T) {
	env := setupTestEnv(t)

	env.do(t, http.MethodPost, "/api/v1/cart/items", "sess-1", `{"product_id": 1}`)
	env.do(t, http.MethodPut, "/api/v1/cart/items/1", "sess-1", `{"quantity": 2}`)
	w := env.do(t, http.MethodGet, "/api/v1/cart/summary", "sess-1", "")

	requireStatus(t, w, http.StatusOK)

	var env2 envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env2))
	var summary domain.Summary
	require.NoError(t, json.Unmarshal(env2.Data, &summary))

	assert.Equal(t, 2, summary.ItemCount)
	assert.InDelta(t, 119.98, summary.Subtotal, 0.001)
	assert.InDelta(t, 5.99, summary.ShippingFee, 0.001)
	assert.InDelta(t, 11.998, summary.Tax, 0.001)
	assert.InDelta(t, 137.968, summary.Total, 0.001)
}

func TestCartSummary_EmptyCartNoShipping(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/cart/summary", "sess-1", "")

	requireStatus(t, w, http.StatusOK)

	var env2 envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env2))
	var summary domain.Summary
	require.NoError(t, json.Unmarshal(env2.Data, &summary))

	assert.Equal(t, 0.0, summary.ShippingFee)
	assert.Equal(t, 0.0, summary.Total)
}

// ============================================================================
// Search term endpoints
// ============================================================================

func TestSearchTerm_RoundTrip(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPut, "/api/v1/cart/search", "sess-1", `{"term": "laptop"}`)
	requireStatus(t, w, http.StatusOK)

	w = env.do(t, http.MethodGet, "/api/v1/cart/search", "sess-1", "")
	requireStatus(t, w, http.StatusOK)

	var env2 envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env2))
	var req SetSearchTermRequest
	require.NoError(t, json.Unmarshal(env2.Data, &req))
	assert.Equal(t, "laptop", req.Term)
}

func TestSearchTerm_EmptyClearsFilter(t *testing.T) {
	env := setupTestEnv(t)

	env.do(t, http.MethodPut, "/api/v1/cart/search", "sess-1", `{"term": "laptop"}`)
	w := env.do(t, http.MethodPut, "/api/v1/cart/search", "sess-1", `{"term": ""}`)

	requireStatus(t, w, http.StatusOK)
	cart := decodeCart(t, w)
	assert.Empty(t, cart.SearchTerm)
}
