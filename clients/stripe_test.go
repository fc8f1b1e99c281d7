package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStripeReceiptURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/payment_intents/pi_123" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test_abc" {
			t.Errorf("Unexpected auth header: %s", got)
		}
		if got := r.URL.Query().Get("expand[]"); got != "latest_charge" {
			t.Errorf("Expected latest_charge expansion, got %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "pi_123",
			"status": "succeeded",
			"latest_charge": {"id": "ch_1", "status": "succeeded", "receipt_url": "https://r.example/1"}
		}`))
	}))
	defer server.Close()

	client := NewStripeClientWithBaseURL("sk_test_abc", server.URL)

	url, err := client.ReceiptURL(context.Background(), "pi_123")
	if err != nil {
		t.Fatalf("ReceiptURL failed: %v", err)
	}
	if url != "https://r.example/1" {
		t.Errorf("Expected receipt URL, got %q", url)
	}
}

func TestStripeReceiptNotReady(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "pi_123", "status": "processing", "latest_charge": null}`))
	}))
	defer server.Close()

	client := NewStripeClientWithBaseURL("sk_test_abc", server.URL)

	url, err := client.ReceiptURL(context.Background(), "pi_123")
	if err != nil {
		t.Fatalf("An unsettled intent must not be an error, got: %v", err)
	}
	if url != "" {
		t.Errorf("Expected empty receipt URL, got %q", url)
	}
}

func TestStripeAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": {"type": "invalid_request_error", "message": "No such payment_intent"}}`))
	}))
	defer server.Close()

	client := NewStripeClientWithBaseURL("sk_test_abc", server.URL)

	_, err := client.ReceiptURL(context.Background(), "pi_missing")
	if err == nil {
		t.Fatal("Expected error for unknown payment intent")
	}
}

func TestStripeMissingAPIKey(t *testing.T) {
	client := NewStripeClient("")

	_, err := client.ReceiptURL(context.Background(), "pi_123")
	if err == nil {
		t.Fatal("Expected error with no API key configured")
	}
}
