// ABOUTME: Stripe API client for payment intent receipt lookup
// ABOUTME: Retrieves a payment intent with its latest charge expanded
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const stripeAPIBase = "https://api.stripe.com"

// StripeClient handles Stripe API requests.
type StripeClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewStripeClient creates a new Stripe API client.
func NewStripeClient(apiKey string) *StripeClient {
	return &StripeClient{
		apiKey:     apiKey,
		baseURL:    stripeAPIBase,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewStripeClientWithBaseURL creates a client pointed at a non-default API
// host. Used by tests.
func NewStripeClientWithBaseURL(apiKey, baseURL string) *StripeClient {
	c := NewStripeClient(apiKey)
	c.baseURL = baseURL
	return c
}

type stripeCharge struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	ReceiptURL string `json:"receipt_url"`
}

type stripePaymentIntent struct {
	ID           string        `json:"id"`
	Status       string        `json:"status"`
	LatestCharge *stripeCharge `json:"latest_charge"`
}

type stripeErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// ReceiptURL fetches the receipt URL on the latest charge of a payment
// intent. An intent with no settled charge yet returns ("", nil): the
// receipt simply is not ready, which is not an error.
func (c *StripeClient) ReceiptURL(ctx context.Context, paymentIntentID string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("Stripe API key not configured")
	}

	endpoint := fmt.Sprintf("%s/v1/payment_intents/%s?%s",
		c.baseURL, url.PathEscape(paymentIntentID), url.Values{"expand[]": {"latest_charge"}}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call Stripe API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var stripeErr stripeErrorResponse
		if json.Unmarshal(body, &stripeErr) == nil && stripeErr.Error.Message != "" {
			return "", fmt.Errorf("Stripe API error (status %d): %s", resp.StatusCode, stripeErr.Error.Message)
		}
		return "", fmt.Errorf("Stripe API error (status %d): %s", resp.StatusCode, string(body))
	}

	var intent stripePaymentIntent
	if err := json.Unmarshal(body, &intent); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	// No charge yet, or charge still settling: try again later
	if intent.LatestCharge == nil || intent.LatestCharge.ReceiptURL == "" {
		return "", nil
	}

	return intent.LatestCharge.ReceiptURL, nil
}
