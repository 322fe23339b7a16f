package gateway

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderSendsPaise(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(Order{
			ID:       "order_abc",
			Amount:   249950,
			Currency: "INR",
			Receipt:  "cart_1",
			Status:   "created",
		})
	}))
	defer srv.Close()

	c := &Client{KeyID: "key", KeySecret: "secret", BaseURL: srv.URL}
	order, err := c.CreateOrder(context.Background(), 2499.50, "INR", "cart_1")
	require.NoError(t, err)

	assert.Equal(t, "/v1/orders", gotPath)
	expectedAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("key:secret"))
	assert.Equal(t, expectedAuth, gotAuth)

	// 2499.50 rupees → 249950 paise
	assert.Equal(t, float64(249950), gotBody["amount"])
	assert.Equal(t, "INR", gotBody["currency"])
	assert.Equal(t, "cart_1", gotBody["receipt"])

	assert.Equal(t, "order_abc", order.ID)
	assert.Equal(t, int64(249950), order.Amount)
}

func TestCreateOrderRelaysUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"amount exceeds maximum"}}`))
	}))
	defer srv.Close()

	c := &Client{KeyID: "key", KeySecret: "secret", BaseURL: srv.URL}
	_, err := c.CreateOrder(context.Background(), 10, "INR", "r1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount exceeds maximum")
}

func TestCreateOrderRejectsEmptyOrderID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := &Client{KeyID: "key", KeySecret: "secret", BaseURL: srv.URL}
	_, err := c.CreateOrder(context.Background(), 10, "INR", "r1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty order id")
}

func TestNewClientFromEnvRequiresKeys(t *testing.T) {
	t.Setenv("RAZORPAY_KEY_ID", "")
	t.Setenv("RAZORPAY_KEY_SECRET", "")
	_, err := NewClientFromEnv()
	assert.Error(t, err)

	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_x")
	t.Setenv("RAZORPAY_KEY_SECRET", "s3cret")
	c, err := NewClientFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "rzp_test_x", c.KeyID)
}
