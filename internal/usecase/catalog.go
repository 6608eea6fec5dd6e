package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopassist/backend/internal/domain"
)

// CatalogService holds the immutable in-memory catalog snapshot. The snapshot
// is fetched once at startup and only ever replaced wholesale; readers get
// the current slice and must not mutate it. Until the first successful fetch
// every reader sees an empty catalog, which downstream resolves to "no
// products found" rather than an error.
type CatalogService struct {
	client domain.CatalogClient

	mu        sync.RWMutex
	products  []domain.Product
	refreshed time.Time
}

// NewCatalogService creates a catalog service backed by the given client.
func NewCatalogService(client domain.CatalogClient) *CatalogService {
	return &CatalogService{client: client}
}

// Refresh fetches the active product list and replaces the snapshot. On
// failure the previous snapshot (possibly empty) is kept.
func (s *CatalogService) Refresh(ctx context.Context) error {
	products, err := s.client.FetchProducts(ctx)
	if err != nil {
		return fmt.Errorf("catalog refresh: %w", err)
	}

	s.mu.Lock()
	s.products = products
	s.refreshed = time.Now()
	s.mu.Unlock()

	return nil
}

// Snapshot returns the current product list in stored catalog order.
func (s *CatalogService) Snapshot() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products
}

// Size returns the number of products in the current snapshot.
func (s *CatalogService) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// RefreshedAt returns when the snapshot was last replaced; zero when no
// fetch has succeeded yet.
func (s *CatalogService) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshed
}
