// ABOUTME: MailerLite API client for newsletter subscription
// ABOUTME: Creates or updates a subscriber, optionally assigning a group
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const mailerLiteAPIBase = "https://connect.mailerlite.com"

// MailerLiteClient handles MailerLite API requests. Subscription is
// best-effort everywhere it is used: callers log failures and move on.
type MailerLiteClient struct {
	apiKey     string
	groupID    string
	baseURL    string
	httpClient *http.Client
}

// NewMailerLiteClient creates a new MailerLite API client. groupID may be
// empty, in which case subscribers are created without a group.
func NewMailerLiteClient(apiKey, groupID string) *MailerLiteClient {
	return &MailerLiteClient{
		apiKey:     apiKey,
		groupID:    groupID,
		baseURL:    mailerLiteAPIBase,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// NewMailerLiteClientWithBaseURL creates a client pointed at a non-default
// API host. Used by tests.
func NewMailerLiteClientWithBaseURL(apiKey, groupID, baseURL string) *MailerLiteClient {
	c := NewMailerLiteClient(apiKey, groupID)
	c.baseURL = baseURL
	return c
}

type mailerLiteSubscriber struct {
	Email  string            `json:"email"`
	Fields map[string]string `json:"fields,omitempty"`
	Groups []string          `json:"groups,omitempty"`
}

// Subscribe creates or updates a subscriber by email. MailerLite upserts on
// email, so repeated calls are safe.
func (c *MailerLiteClient) Subscribe(ctx context.Context, email, name string) error {
	if c.apiKey == "" {
		return fmt.Errorf("MailerLite API key not configured")
	}
	if email == "" {
		return fmt.Errorf("email is required")
	}

	sub := mailerLiteSubscriber{Email: email}
	if name != "" {
		sub.Fields = map[string]string{"name": name}
	}
	if c.groupID != "" {
		sub.Groups = []string{c.groupID}
	}

	jsonData, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/subscribers", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call MailerLite API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("MailerLite API error (status %d): %s", resp.StatusCode, string(body))
	}

	return nil
}
