package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/metrics"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/util"
)

var ErrSearchUnavailable = errors.New("product search is not configured")

type ProductFetcher interface {
	FetchProducts(ctx context.Context) ([]models.Product, error)
}

type ProductIndex interface {
	IndexProducts(ctx context.Context, products []models.Product) error
	Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error)
}

// CatalogService backs the product list screen. It remembers the last list
// that was fetched successfully; a failed fetch leaves it untouched.
type CatalogService struct {
	Fetcher ProductFetcher
	Index   ProductIndex
	Metrics *metrics.Metrics

	mu       sync.RWMutex
	products []models.Product
	loaded   bool
}

func (s *CatalogService) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *CatalogService) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Refresh fetches the catalog once. On success the new list replaces the
// last-known one and is returned; on failure the last-known list is returned
// with the error.
func (s *CatalogService) Refresh(ctx context.Context) ([]models.Product, error) {
	l := logging.FromContext(ctx).With("service", "catalog")

	products, err := s.Fetcher.FetchProducts(ctx)
	s.Metrics.ObserveFetch(err)
	if err != nil {
		l.Error("catalog_fetch_failed", "error", err)
		return s.Products(), err
	}

	s.mu.Lock()
	s.products = products
	s.loaded = true
	s.mu.Unlock()

	l.Info("catalog_fetched", "count", len(products))

	if s.Index != nil {
		if err := s.Index.IndexProducts(ctx, products); err != nil {
			l.Warn("catalog_index_failed", "error", err)
		}
	}
	return s.Products(), nil
}

// EnsureLoaded performs the initial load if no fetch has succeeded yet.
func (s *CatalogService) EnsureLoaded(ctx context.Context) ([]models.Product, error) {
	if s.Loaded() {
		return s.Products(), nil
	}
	return s.Refresh(ctx)
}

// Find looks a product up by catalog id in the last-known list.
func (s *CatalogService) Find(id int) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func (s *CatalogService) Search(ctx context.Context, query string, page, size int) (int64, []models.Product, error) {
	if s.Index == nil {
		return 0, nil, ErrSearchUnavailable
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return 0, []models.Product{}, nil
	}

	from, limit := util.Calculate(page, size)
	total, products, err := s.Index.Search(ctx, query, from, limit)
	if err != nil {
		return 0, nil, fmt.Errorf("search products: %w", err)
	}
	return total, products, nil
}
