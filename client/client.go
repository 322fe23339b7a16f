// Package client calls the storefront API the way the web client does. Its
// Client satisfies the checkout collaborator interfaces, so a cart store,
// an orchestrator and one of these is a complete headless checkout.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/esh-dev257/ecommerce-store/checkout"
)

type Client struct {
	BaseURL string
	Token   string // session JWT, empty when signed out
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{BaseURL: baseURL}
}

// Product mirrors one GET /api/products entry.
type Product struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice,omitempty"`
	Image         string  `json:"image"`
}

// Products lists the catalog.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.getJSON(ctx, "/api/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CurrentUser returns the signed-in user, or nil when the session is
// anonymous (the endpoint answers an empty object in that case).
func (c *Client) CurrentUser(ctx context.Context) (*checkout.User, error) {
	var user checkout.User
	if err := c.getJSON(ctx, "/api/current_user", &user); err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, nil
	}
	return &user, nil
}

// CreateOrder implements checkout.GatewayClient against POST /api/create-order.
func (c *Client) CreateOrder(ctx context.Context, amount float64, currency, receipt string) (*checkout.GatewayOrder, error) {
	payload := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}
	var order checkout.GatewayOrder
	if err := c.postJSON(ctx, "/api/create-order", payload, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// SaveOrder implements checkout.OrderSaver against POST /api/save-order.
func (c *Client) SaveOrder(ctx context.Context, req checkout.OrderRequest) error {
	return c.postJSON(ctx, "/api/save-order", req, nil)
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s", apiErr.Error)
		}
		return fmt.Errorf("API error (%d): %s", resp.StatusCode, string(body))
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}
