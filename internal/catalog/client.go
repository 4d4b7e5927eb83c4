package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/JKS-sys/shoppyglobe-storefront/internal/domain"
	apperrors "github.com/JKS-sys/shoppyglobe-storefront/pkg/errors"
	"github.com/JKS-sys/shoppyglobe-storefront/pkg/httpclient"
)

var catalogRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "catalog_requests_total",
		Help: "Total number of upstream catalog requests",
	},
	[]string{"operation", "outcome"},
)

// Fetcher retrieves product data from the upstream catalog. Fetches are
// one-shot reads; failures surface as errors and never touch cart state.
type Fetcher interface {
	// FetchAll retrieves the full product listing.
	FetchAll(ctx context.Context) ([]domain.Product, error)

	// FetchByID retrieves a single product. A missing product yields an
	// error matching apperrors.ErrNotFound.
	FetchByID(ctx context.Context, id int) (*domain.Product, error)
}

// listResponse is the upstream listing envelope.
type listResponse struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
	Skip     int              `json:"skip"`
	Limit    int              `json:"limit"`
}

// Client implements Fetcher over the upstream HTTP JSON catalog API.
type Client struct {
	baseURL string
	http    *httpclient.CircuitBreakerClient
	logger  *slog.Logger
}

// NewClient creates a catalog client for the given base URL.
func NewClient(baseURL string, http *httpclient.CircuitBreakerClient, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http,
		logger:  logger,
	}
}

// FetchAll retrieves the full product listing from GET /products.
func (c *Client) FetchAll(ctx context.Context) ([]domain.Product, error) {
	resp, err := c.http.Get(ctx, c.baseURL+"/products")
	if err != nil {
		catalogRequestsTotal.WithLabelValues("list", "error").Inc()
		return nil, apperrors.Unavailable("fetch products", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		catalogRequestsTotal.WithLabelValues("list", "error").Inc()
		return nil, apperrors.Unavailable(
			fmt.Sprintf("fetch products: unexpected status %d", resp.StatusCode),
			apperrors.ErrUnavailable,
		)
	}

	var list listResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		catalogRequestsTotal.WithLabelValues("list", "error").Inc()
		return nil, fmt.Errorf("decode products response: %w", err)
	}

	catalogRequestsTotal.WithLabelValues("list", "ok").Inc()
	c.logger.DebugContext(ctx, "fetched product listing",
		slog.Int("count", len(list.Products)),
		slog.Int("total", list.Total),
	)

	return list.Products, nil
}

// FetchByID retrieves a single product from GET /products/{id}. An upstream
// 404 is translated into a not-found error.
func (c *Client) FetchByID(ctx context.Context, id int) (*domain.Product, error) {
	url := c.baseURL + "/products/" + strconv.Itoa(id)

	resp, err := c.http.Get(ctx, url)
	if err != nil {
		catalogRequestsTotal.WithLabelValues("get", "error").Inc()
		return nil, apperrors.Unavailable("fetch product", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		catalogRequestsTotal.WithLabelValues("get", "not_found").Inc()
		return nil, apperrors.NotFound("product", strconv.Itoa(id))
	case resp.StatusCode != http.StatusOK:
		catalogRequestsTotal.WithLabelValues("get", "error").Inc()
		return nil, apperrors.Unavailable(
			fmt.Sprintf("fetch product %d: unexpected status %d", id, resp.StatusCode),
			apperrors.ErrUnavailable,
		)
	}

	var product domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		catalogRequestsTotal.WithLabelValues("get", "error").Inc()
		return nil, fmt.Errorf("decode product response: %w", err)
	}

	catalogRequestsTotal.WithLabelValues("get", "ok").Inc()
	return &product, nil
}
