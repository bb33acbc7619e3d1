package client

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"defiant-meals-backend/internal/config"
)

const testWebhookSecret = "whsec_test_secret"

func newTestStripeClient(baseURL string) *stripeClientImpl {
	return &stripeClientImpl{
		httpClient:    &http.Client{Timeout: 5 * time.Second},
		baseApiURL:    baseURL,
		secretKey:     "sk_test_123",
		webhookSecret: testWebhookSecret,
		now:           time.Now,
	}
}

func signPayload(secret string, ts time.Time, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts.Unix())
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifyWebhookSignature(t *testing.T) {
	c := newTestStripeClient("")
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)

	t.Run("valid signature", func(t *testing.T) {
		header := signPayload(testWebhookSecret, time.Now(), payload)
		if err := c.VerifyWebhookSignature(payload, header); err != nil {
			t.Fatalf("expected valid signature, got %v", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		header := signPayload("whsec_other", time.Now(), payload)
		if err := c.VerifyWebhookSignature(payload, header); err == nil {
			t.Fatal("expected verification failure")
		}
	})

	t.Run("tampered payload", func(t *testing.T) {
		header := signPayload(testWebhookSecret, time.Now(), payload)
		tampered := append([]byte{}, payload...)
		tampered[len(tampered)-2] = 'X'
		if err := c.VerifyWebhookSignature(tampered, header); err == nil {
			t.Fatal("expected verification failure")
		}
	})

	t.Run("stale timestamp", func(t *testing.T) {
		header := signPayload(testWebhookSecret, time.Now().Add(-10*time.Minute), payload)
		if err := c.VerifyWebhookSignature(payload, header); err == nil {
			t.Fatal("expected replay rejection")
		}
	})

	t.Run("missing header", func(t *testing.T) {
		if err := c.VerifyWebhookSignature(payload, ""); err == nil {
			t.Fatal("expected verification failure")
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		if err := c.VerifyWebhookSignature(payload, "v1=deadbeef"); err == nil {
			t.Fatal("expected verification failure")
		}
	})

	t.Run("extra v1 entries still match", func(t *testing.T) {
		header := signPayload(testWebhookSecret, time.Now(), payload) + ",v1=deadbeef"
		if err := c.VerifyWebhookSignature(payload, header); err != nil {
			t.Fatalf("expected valid signature, got %v", err)
		}
	})
}

func TestCreateCheckoutSession(t *testing.T) {
	var gotForm url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/checkout/sessions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer sk_test_123" {
			t.Errorf("unexpected auth header %q", auth)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotForm = r.PostForm
		fmt.Fprint(w, `{"id":"cs_test_abc","url":"https://checkout.stripe.com/pay/cs_test_abc"}`)
	}))
	defer srv.Close()

	c := newTestStripeClient(srv.URL)
	result, err := c.CreateCheckoutSession(context.Background(), &CheckoutSessionParams{
		LineItems: []SessionLineItem{
			{Name: "Grilled Chicken", Description: "High protein", UnitAmount: 1200, Quantity: 2},
		},
		SuccessURL:    "https://example.com/success",
		CancelURL:     "https://example.com/cancel",
		CustomerEmail: "jo@example.com",
		Metadata: map[string]string{
			"orderType":      "regular",
			"cartDataChunks": "1",
		},
	})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	if result.SessionID != "cs_test_abc" {
		t.Errorf("session id = %q", result.SessionID)
	}
	if result.URL != "https://checkout.stripe.com/pay/cs_test_abc" {
		t.Errorf("url = %q", result.URL)
	}

	checks := map[string]string{
		"mode": "payment",
		"line_items[0][price_data][product_data][name]": "Grilled Chicken",
		"line_items[0][price_data][unit_amount]":        "1200",
		"line_items[0][quantity]":                       "2",
		"metadata[orderType]":                           "regular",
		"metadata[cartDataChunks]":                      "1",
		"customer_email":                                "jo@example.com",
	}
	for key, want := range checks {
		if got := gotForm.Get(key); got != want {
			t.Errorf("form[%s] = %q, want %q", key, got, want)
		}
	}
}

func TestCreateCheckoutSessionProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		fmt.Fprint(w, `{"error":{"message":"card error"}}`)
	}))
	defer srv.Close()

	c := newTestStripeClient(srv.URL)
	_, err := c.CreateCheckoutSession(context.Background(), &CheckoutSessionParams{
		LineItems:  []SessionLineItem{{Name: "Item", UnitAmount: 100, Quantity: 1}},
		SuccessURL: "https://example.com/s",
		CancelURL:  "https://example.com/c",
	})
	if err == nil {
		t.Fatal("expected provider error to propagate")
	}
}

func TestNewStripeClientDefaults(t *testing.T) {
	c := NewStripeClient(&config.Stripe{
		BaseApiURL:    "https://api.stripe.com",
		SecretKey:     "sk",
		WebhookSecret: "whsec",
	})
	if c == nil {
		t.Fatal("expected client")
	}
}
