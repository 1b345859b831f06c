// Package remote is the HTTP client for the inventory/billing API that owns
// all business data. This layer only constructs payloads and renders what
// comes back; a failed call never mutates local state.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"go-stockbill/internal/model"
)

// ErrRemoteUnavailable wraps any transport or non-success response from the
// API. Callers surface it as a generic operation-failed message; there are
// no automatic retries.
var ErrRemoteUnavailable = errors.New("inventory API unavailable")

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// ListOptions are the pagination and filter parameters accepted by list
// endpoints.
type ListOptions struct {
	Page   int
	Limit  int
	Search string
	Status string
	Type   string
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	if o.Status != "" {
		q.Set("status", o.Status)
	}
	if o.Type != "" {
		q.Set("type", o.Type)
	}
	return q
}

type ProductList struct {
	Items []model.Product `json:"items"`
	Total int             `json:"total"`
}

type BillList struct {
	Items []model.Bill `json:"items"`
	Total int          `json:"total"`
}

// DashboardSummary is the aggregate returned by /api/dashboard.
type DashboardSummary struct {
	TotalProducts     int             `json:"totalProducts"`
	TotalSoldProducts int             `json:"totalSoldProducts"`
	TotalBills        int             `json:"totalBills"`
	TotalIncome       decimal.Decimal `json:"totalIncome"`
}

func (c *Client) ListProducts(ctx context.Context, opts ListOptions) (*ProductList, error) {
	var out ProductList
	if err := c.get(ctx, "/api/products", opts.query(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	var out model.Product
	if err := c.get(ctx, "/api/products/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProduct(ctx context.Context, p *model.Product) (*model.Product, error) {
	var out model.Product
	if err := c.send(ctx, http.MethodPost, "/api/products", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, p *model.Product) (*model.Product, error) {
	var out model.Product
	if err := c.send(ctx, http.MethodPut, "/api/products/"+url.PathEscape(id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(id), nil, nil)
}

func (c *Client) LowStockProducts(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	if err := c.get(ctx, "/api/products/low-stock", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ExpiredProducts(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	if err := c.get(ctx, "/api/products/expired", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	var out DashboardSummary
	if err := c.get(ctx, "/api/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListBills(ctx context.Context, opts ListOptions) (*BillList, error) {
	var out BillList
	if err := c.get(ctx, "/api/bills", opts.query(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetBill(ctx context.Context, id string) (*model.Bill, error) {
	var out model.Bill
	if err := c.get(ctx, "/api/bills/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateBill(ctx context.Context, payload *model.BillCreate) (*model.Bill, error) {
	var out model.Bill
	if err := c.send(ctx, http.MethodPost, "/api/bills", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dest interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, dest)
}

func (c *Client) send(ctx context.Context, method, path string, body, dest interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, dest)
}

func (c *Client) do(req *http.Request, dest interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", ErrRemoteUnavailable, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	return nil
}
