package shopify

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const apiVersion = "2025-01"

// stockQuery reads the custom/stock_status metafield off an order. The order
// webhook payload does not carry stock state, so it has to be fetched.
const stockQuery = `query ($id: ID!) {
  order(id: $id) {
    metafield(namespace: "custom", key: "stock_status") {
      value
    }
  }
}`

// Client talks to the Shopify Admin GraphQL API of one shop.
type Client struct {
	token string
	base  string
	hc    *http.Client
}

func New(shop, token string, timeout time.Duration) *Client {
	return &Client{
		token: token,
		base:  fmt.Sprintf("https://%s.myshopify.com/admin/api/%s/graphql.json", shop, apiVersion),
		hc:    &http.Client{Timeout: timeout},
	}
}

// WithBaseURL points the client at a different GraphQL endpoint. Tests use it.
func (c *Client) WithBaseURL(base string) *Client {
	c.base = base
	return c
}

// StockStatus fetches the stock_status metafield value for an order. Empty
// string means the metafield is not set.
func (c *Client) StockStatus(ctx context.Context, orderID string) (string, error) {
	payload, _ := json.Marshal(map[string]any{
		"query":     stockQuery,
		"variables": map[string]string{"id": "gid://shopify/Order/" + orderID},
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("X-Shopify-Access-Token", c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("shopify graphql: status %d", resp.StatusCode)
	}

	var body struct {
		Data struct {
			Order struct {
				Metafield *struct {
					Value string `json:"value"`
				} `json:"metafield"`
			} `json:"order"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.Data.Order.Metafield == nil {
		return "", nil
	}
	return body.Data.Order.Metafield.Value, nil
}

// VerifyWebhook checks the X-Shopify-Hmac-Sha256 header against the raw
// request body.
func VerifyWebhook(secret string, body []byte, header string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(want), []byte(header))
}
