package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/JKS-sys/shoppyglobe-storefront/internal/catalog"
	"github.com/JKS-sys/shoppyglobe-storefront/internal/domain"
	"github.com/JKS-sys/shoppyglobe-storefront/internal/repository"
	apperrors "github.com/JKS-sys/shoppyglobe-storefront/pkg/errors"
)

// Listing is a filtered product listing with shown-vs-total counts.
type Listing struct {
	Products   []domain.Product `json:"products"`
	Total      int              `json:"total"`
	Shown      int              `json:"shown"`
	SearchTerm string           `json:"search_term,omitempty"`
}

// CatalogService serves product listings and detail, applying the session's
// search term to listings. Catalog reads never touch cart state.
type CatalogService struct {
	fetcher catalog.Fetcher
	repo    repository.CartRepository
	logger  *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(fetcher catalog.Fetcher, repo repository.CartRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		fetcher: fetcher,
		repo:    repo,
		logger:  logger,
	}
}

// ListProducts fetches the product listing and filters it by search term:
// an explicit query wins, otherwise the session's stored search term applies.
// The match is a case-insensitive substring over title, description, and
// category.
func (s *CatalogService) ListProducts(ctx context.Context, sessionID, query string) (*Listing, error) {
	products, err := s.fetcher.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	term := query
	if term == "" && sessionID != "" {
		cart, err := s.repo.Get(ctx, sessionID)
		switch {
		case err == nil:
			term = cart.SearchTerm
		case errors.Is(err, apperrors.ErrNotFound):
			// No cart yet means no stored filter.
		default:
			return nil, fmt.Errorf("read session search term: %w", err)
		}
	}

	filtered := domain.FilterProducts(products, term)

	s.logger.DebugContext(ctx, "product listing served",
		slog.Int("total", len(products)),
		slog.Int("shown", len(filtered)),
		slog.String("search_term", term),
	)

	return &Listing{
		Products:   filtered,
		Total:      len(products),
		Shown:      len(filtered),
		SearchTerm: term,
	}, nil
}

// GetProduct fetches a single product's detail record.
func (s *CatalogService) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	if id <= 0 {
		return nil, apperrors.InvalidInput("product id must be positive")
	}

	product, err := s.fetcher.FetchByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	return product, nil
}
