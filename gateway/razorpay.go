package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
)

const defaultBaseURL = "https://api.razorpay.com"

// Client talks to the Razorpay Orders API.
type Client struct {
	KeyID     string
	KeySecret string
	BaseURL   string // overridden in tests
	HTTP      *http.Client
}

// NewClientFromEnv builds a client from RAZORPAY_KEY_ID / RAZORPAY_KEY_SECRET.
func NewClientFromEnv() (*Client, error) {
	keyID := os.Getenv("RAZORPAY_KEY_ID")
	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	if keyID == "" || keySecret == "" {
		return nil, fmt.Errorf("razorpay configuration missing")
	}
	return &Client{KeyID: keyID, KeySecret: keySecret}, nil
}

// Order is Razorpay's server-side transaction record. Amount is in paise.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type apiError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder creates a gateway order. The amount comes in as rupees and
// goes out in paise, rounded the way the web client rounds.
func (c *Client) CreateOrder(ctx context.Context, amount float64, currency, receipt string) (*Order, error) {
	payload := map[string]interface{}{
		"amount":   int64(math.Round(amount * 100)),
		"currency": currency,
		"receipt":  receipt,
	}
	jsonData, _ := json.Marshal(payload)

	base := c.BaseURL
	if base == "" {
		base = defaultBaseURL
	}

	req, err := http.NewRequestWithContext(ctx, "POST", base+"/v1/orders", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.KeyID, c.KeySecret)

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach razorpay: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Description != "" {
			return nil, fmt.Errorf("razorpay error: %s", apiErr.Error.Description)
		}
		return nil, fmt.Errorf("razorpay API error (%d): %s", resp.StatusCode, string(body))
	}

	var order Order
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("failed to parse razorpay response: %v", err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("razorpay returned empty order id")
	}
	return &order, nil
}
