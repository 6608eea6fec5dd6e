package catalogapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/shopassist/backend/internal/domain"
	"golang.org/x/time/rate"
)

const (
	defaultPageSize = 100
	maxAttempts     = 3
)

// Client talks to the storefront REST API: the active product list and the
// per-product review endpoints the assistant consumes.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	pageSize    int
	debug       bool
}

// NewClient creates a new storefront API client
func NewClient(apiKey, baseURL string) *Client {
	// Keep well under the storefront's per-client quota.
	limiter := rate.NewLimiter(rate.Limit(5), 10)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
		pageSize:    defaultPageSize,
	}
}

// SetDebug enables verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// SetPageSize overrides how many products one catalog fetch requests.
func (c *Client) SetPageSize(size int) {
	if size > 0 {
		c.pageSize = size
	}
}

// exponentialBackoff returns the sleep before the next retry attempt
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(250*(1<<attempt)) * time.Millisecond
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "ShopAssist/1.0")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogAPIFailure, err)
	}

	return resp, nil
}

// getJSON fetches reqURL with rate limiting and bounded retries, decoding
// the body into out.
func (c *Client) getJSON(ctx context.Context, reqURL string, out interface{}) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			if c.debug {
				log.Printf("[CATALOG] request error (attempt %d): %v", attempt, err)
			}
			lastErr = err
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return domain.ErrProductNotFound
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = domain.ErrRateLimited
			time.Sleep(exponentialBackoff(attempt))
			continue
		}
		if resp.StatusCode != http.StatusOK {
			if c.debug {
				log.Printf("[CATALOG] API error (attempt %d) - status: %d, body: %s", attempt, resp.StatusCode, string(body))
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrCatalogAPIFailure, resp.StatusCode)
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}

	return lastErr
}

// FetchProducts retrieves the full active product list as one snapshot.
// An empty storefront yields an empty slice, not an error.
func (c *Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	endpoint := fmt.Sprintf("%s/products/active", c.baseURL)
	params := url.Values{}
	params.Add("page", "0")
	params.Add("size", fmt.Sprintf("%d", c.pageSize))
	params.Add("sortField", "id")
	params.Add("sortDirection", "asc")

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	var page productPage
	if err := c.getJSON(ctx, reqURL, &page); err != nil {
		return nil, err
	}

	products := mapProducts(page.Content)
	if c.debug {
		log.Printf("[CATALOG] fetched %d of %d active products", len(products), page.TotalElements)
	}
	return products, nil
}

// FetchProductReviews retrieves the first page of reviews for a product.
func (c *Client) FetchProductReviews(ctx context.Context, productID int64) ([]domain.Review, error) {
	endpoint := fmt.Sprintf("%s/reviews/product/%d", c.baseURL, productID)
	params := url.Values{}
	params.Add("page", "0")
	params.Add("size", "5")

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	var page reviewPage
	if err := c.getJSON(ctx, reqURL, &page); err != nil {
		return nil, err
	}

	return mapReviews(page.Content), nil
}

// FetchRatingStats retrieves the aggregate rating summary for a product.
func (c *Client) FetchRatingStats(ctx context.Context, productID int64) (*domain.RatingStats, error) {
	reqURL := fmt.Sprintf("%s/reviews/product/%d/stats", c.baseURL, productID)

	var stats ratingStatsDTO
	if err := c.getJSON(ctx, reqURL, &stats); err != nil {
		return nil, err
	}

	return &domain.RatingStats{
		AverageRating: stats.AverageRating,
		TotalReviews:  stats.TotalReviews,
	}, nil
}
