package email

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/saloncartapp/saloncart/internal/observability"
)

const mailgunBaseURL = "https://api.mailgun.net/v3"

type MailgunProvider struct {
	apiKey  string
	domain  string
	from    string
	baseURL string
	client  *http.Client
}

func NewMailgunProvider(apiKey, domain, from string) *MailgunProvider {
	return &MailgunProvider{
		apiKey:  apiKey,
		domain:  domain,
		from:    from,
		baseURL: mailgunBaseURL,
		client:  observability.NewHTTPClient(30 * time.Second),
	}
}

func (m *MailgunProvider) SendEmail(ctx context.Context, email *Email) error {
	form := url.Values{}
	form.Set("from", m.from)
	form.Set("to", email.To)
	form.Set("subject", email.Subject)
	if email.Text != "" {
		form.Set("text", email.Text)
	}
	if email.HTML != "" {
		form.Set("html", email.HTML)
	}

	endpoint := fmt.Sprintf("%s/%s/messages", m.baseURL, m.domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth("api", m.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("mailgun API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
