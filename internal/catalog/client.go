package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Skotchmaster/storefront/internal/models"
)

// ErrNetwork marks every failed catalog fetch: transport, status and decode
// failures alike.
var ErrNetwork = errors.New("catalog unavailable")

type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog responded with status: %d", e.Code)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNetwork
}

type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient returns a fetcher for the catalog at url. A zero timeout leaves
// the request unbounded apart from the caller's context.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (c *Client) URL() string {
	return c.url
}

// FetchProducts performs one GET against the catalog and returns the
// products in the order the server sent them. It keeps no state between
// calls.
func (c *Client) FetchProducts(ctx context.Context) ([]models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: do request: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var products []models.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrNetwork, err)
	}
	if products == nil {
		products = []models.Product{}
	}

	return products, nil
}
