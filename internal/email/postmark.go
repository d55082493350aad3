package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/saloncartapp/saloncart/internal/observability"
)

const postmarkEndpoint = "https://api.postmarkapp.com/email"

type PostmarkProvider struct {
	apiKey string
	from   string
	client *http.Client
}

func NewPostmarkProvider(apiKey, from string) *PostmarkProvider {
	return &PostmarkProvider{
		apiKey: apiKey,
		from:   from,
		client: observability.NewHTTPClient(30 * time.Second),
	}
}

type postmarkRequest struct {
	From     string `json:"From"`
	To       string `json:"To"`
	Subject  string `json:"Subject"`
	TextBody string `json:"TextBody,omitempty"`
	HtmlBody string `json:"HtmlBody,omitempty"`
}

type postmarkResponse struct {
	ErrorCode int    `json:"ErrorCode"`
	Message   string `json:"Message"`
}

func (p *PostmarkProvider) SendEmail(ctx context.Context, email *Email) error {
	payload, err := json.Marshal(postmarkRequest{
		From:     p.from,
		To:       email.To,
		Subject:  email.Subject,
		TextBody: email.Text,
		HtmlBody: email.HTML,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, postmarkEndpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Postmark-Server-Token", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read postmark response: %w", err)
	}

	var result postmarkResponse
	if err := json.Unmarshal(body, &result); err == nil && result.ErrorCode != 0 {
		return fmt.Errorf("postmark error (%d): %s", result.ErrorCode, result.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("postmark API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
