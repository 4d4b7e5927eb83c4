package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/JKS-sys/shoppyglobe-storefront/internal/domain"
	"github.com/JKS-sys/shoppyglobe-storefront/internal/event"
	memoryrepo "github.com/JKS-sys/shoppyglobe-storefront/internal/repository/memory"
	"github.com/JKS-sys/shoppyglobe-storefront/internal/service"
	apperrors "github.com/JKS-sys/shoppyglobe-storefront/pkg/errors"
)

// ============================================================================
// Stub catalog fetcher
// ============================================================================

// stubFetcher serves a fixed product set, standing in for the upstream
// catalog API.
type stubFetcher struct {
	products map[int]domain.Product
	listErr  error
}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{
		products: map[int]domain.Product{
			1: {ID: 1, Title: "Trail Shoe", Category: "mens-shoes", Price: 59.99, Stock: 5, Brand: "Acme"},
			2: {ID: 2, Title: "Laptop", Category: "laptops", Price: 999.00, Stock: 3, Brand: "Zenith"},
			3: {ID: 3, Title: "Dress Shoe", Category: "mens-shoes", Price: 89.99, Stock: 0, Brand: "Acme"},
		},
	}
}

func (f *stubFetcher) FetchAll(ctx context.Context) ([]domain.Product, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.Product, 0, len(f.products))
	for _, id := range []int{1, 2, 3} {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *stubFetcher) FetchByID(ctx context.Context, id int) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, apperrors.NotFound("product", strconv.Itoa(id))
	}
	return &p, nil
}

// ============================================================================
// Test helpers
// ============================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// testEnv wires the full production route layout over an in-memory store and
// the stub catalog, so handler behavior is tested end-to-end including the
// Session middleware.
type testEnv struct {
	router  *chi.Mux
	fetcher *stubFetcher
	repo    *memoryrepo.CartRepository
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := testLogger()
	producer := event.NewProducer(nil, logger)
	repo := memoryrepo.NewCartRepository(time.Hour)
	fetcher := newStubFetcher()

	cartService := service.NewCartService(repo, fetcher, producer, logger)
	catalogService := service.NewCatalogService(fetcher, repo, logger)
	checkoutService := service.NewCheckoutService(repo, producer, logger)

	productHandler := NewProductHandler(catalogService, logger)
	cartHandler := NewCartHandler(cartService, logger)
	checkoutHandler := NewCheckoutHandler(checkoutService, logger)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(Session)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Get("/{productId}", productHandler.Get)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.Get)
			r.Delete("/", cartHandler.Clear)
			r.Get("/summary", cartHandler.Summary)
			r.Get("/search", cartHandler.GetSearchTerm)
			r.Put("/search", cartHandler.SetSearchTerm)

			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{productId}", cartHandler.UpdateQuantity)
			r.Delete("/items/{productId}", cartHandler.RemoveItem)
		})

		r.Post("/checkout", checkoutHandler.PlaceOrder)
	})

	return &testEnv{router: r, fetcher: fetcher, repo: repo}
}

// do performs a request against the test router with the given session ID and
// optional JSON body.
func (e *testEnv) do(t *testing.T, method, path, sessionID, body string) *httptest.ResponseRecorder {
	t.Helper()

	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	if sessionID != "" {
		r.Header.Set(SessionHeader, sessionID)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, r)
	return w
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "unexpected status, body: %s", w.Body.String())
}
