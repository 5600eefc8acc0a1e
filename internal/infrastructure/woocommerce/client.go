package woocommerce

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"dzstorefront-backend/internal/domain"
	"dzstorefront-backend/pkg/logger"

	"github.com/goccy/go-json"
)

const apiBasePath = "/wp-json/wc/v3/"

// Client talks to a WooCommerce REST API using consumer key/secret basic auth.
// It is the only component that touches the commerce backend over the network.
type Client struct {
	baseURL        string
	consumerKey    string
	consumerSecret string
	httpClient     *http.Client
}

// NewClient creates a new commerce backend client
func NewClient(baseURL, consumerKey, consumerSecret string, timeout time.Duration) *Client {
	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		consumerKey:    consumerKey,
		consumerSecret: consumerSecret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + apiBasePath + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("woocommerce: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return fmt.Errorf("woocommerce: build request: %w", err)
	}
	req.SetBasicAuth(c.consumerKey, c.consumerSecret)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("woocommerce: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little of the body for diagnostics, never the whole thing
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logger.WithContext(ctx).Warn().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Str("body", string(snippet)).
			Msg("Commerce backend returned non-2xx")
		return fmt.Errorf("woocommerce: %s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("woocommerce: decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// FetchProducts lists catalog products
func (c *Client) FetchProducts(ctx context.Context, opts domain.ProductListOptions) ([]domain.Product, error) {
	query := url.Values{}
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(opts.PerPage))
	}
	if opts.Category != "" {
		query.Set("category", opts.Category)
	}
	if opts.Search != "" {
		query.Set("search", opts.Search)
	}
	if opts.OrderBy != "" {
		query.Set("orderby", opts.OrderBy)
	}
	query.Set("status", "publish")

	var products []domain.Product
	if err := c.get(ctx, "products", query, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FetchProduct fetches a single product by id
func (c *Client) FetchProduct(ctx context.Context, id int) (*domain.Product, error) {
	var product domain.Product
	if err := c.get(ctx, fmt.Sprintf("products/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// FetchCategories lists non-empty product categories
func (c *Client) FetchCategories(ctx context.Context) ([]domain.Category, error) {
	query := url.Values{}
	query.Set("per_page", "100")
	query.Set("hide_empty", "true")
	query.Set("orderby", "count")
	query.Set("order", "desc")

	var categories []domain.Category
	if err := c.get(ctx, "products/categories", query, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateOrder submits a new order to the commerce backend
func (c *Client) CreateOrder(ctx context.Context, req *domain.OrderRequest) (*domain.OrderResponse, error) {
	var order domain.OrderResponse
	if err := c.post(ctx, "orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
