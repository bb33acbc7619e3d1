package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"defiant-meals-backend/internal/config"
)

type ResendClient interface {
	Send(ctx context.Context, to []string, subject, html string) error
}

type resendClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	apiKey     string
	from       string
}

func NewResendClient(resendCfg *config.Resend) ResendClient {
	return &resendClientImpl{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseApiURL: resendCfg.BaseApiURL,
		apiKey:     resendCfg.APIKey,
		from:       resendCfg.From,
	}
}

func (c *resendClientImpl) Send(ctx context.Context, to []string, subject, html string) error {
	payload := map[string]interface{}{
		"from":    c.from,
		"to":      to,
		"subject": subject,
		"html":    html,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseApiURL+"/emails",
		bytes.NewBuffer(body),
	)
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("resend error %d: %s", resp.StatusCode, string(b))
	}

	return nil
}
