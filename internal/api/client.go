package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"farmaterm/internal/domain"
)

func init() {
	// The backend speaks plain JSON numbers for money
	decimal.MarshalJSONWithoutQuotes = true
}

// Client is the REST client for the pharmacy backend
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithToken sets the bearer token sent on every request
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a backend client for the given base URL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProductPage is the paginated search response
type ProductPage struct {
	Items      []domain.Product `json:"items"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// SaleItemCreate is one line of a sale submission
type SaleItemCreate struct {
	ProductID int             `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
}

// SaleCreate is the sale submission payload
type SaleCreate struct {
	ClientID       int              `json:"client_id"`
	UserID         int              `json:"user_id"`
	DocumentType   string           `json:"document_type"`
	PaymentStatus  string           `json:"payment_status"`
	PaymentMethod  string           `json:"payment_method"`
	ShippingStatus string           `json:"shipping_status"`
	Notes          string           `json:"notes,omitempty"`
	Items          []SaleItemCreate `json:"items"`
}

// SearchProducts queries the paginated product search endpoint. The backend
// matches partial names and barcodes case-insensitively.
func (c *Client) SearchProducts(ctx context.Context, query string, page, pageSize int) (*ProductPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(pageSize))
	params.Set("search", query)
	params.Set("stock_filter", "all")

	var result ProductPage
	if err := c.do(ctx, http.MethodGet, "/products/paginated?"+params.Encode(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateSale submits a sale. With autoAdjust set the backend sells short items
// down to zero stock instead of rejecting; that path is only taken after the
// user confirms a stock conflict.
func (c *Client) CreateSale(ctx context.Context, sale SaleCreate, autoAdjust bool) (*domain.Sale, error) {
	path := "/sales/"
	if autoAdjust {
		path += "?auto_adjust_stock=true"
	}

	var result domain.Sale
	if err := c.do(ctx, http.MethodPost, path, sale, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListClients fetches the customer catalog
func (c *Client) ListClients(ctx context.Context) ([]domain.Client, error) {
	var result []domain.Client
	if err := c.do(ctx, http.MethodGet, "/clients/", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// RecentSales fetches the most recent sales, newest first
func (c *Client) RecentSales(ctx context.Context, limit int) ([]domain.Sale, error) {
	var result []domain.Sale
	path := "/sales/?limit=" + strconv.Itoa(limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ListAlerts fetches the current low-stock and expiration alerts
func (c *Client) ListAlerts(ctx context.Context) ([]domain.Alert, error) {
	var result []domain.Alert
	if err := c.do(ctx, http.MethodGet, "/alerts/", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// do builds and executes a request, decoding the JSON response into out.
// Non-2xx responses are converted via parseError.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("API: %s %s -> %d", method, path, resp.StatusCode)
		return parseError(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
