package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultTimeout = 15 * time.Second

// ErrNotConfigured is returned when the mail API URL or key is missing.
var ErrNotConfigured = errors.New("mail: API not configured")

// HTTPSender posts recovery emails to a transactional mail API as JSON.
type HTTPSender struct {
	APIKey     string
	BaseURL    string
	From       string
	ResetURL   string
	HTTPClient *http.Client
}

// NewHTTPSender returns a sender for the mail API at baseURL. resetURL is the client page that accepts
// the recovery token as its "token" query parameter.
func NewHTTPSender(apiKey, baseURL, from, resetURL string) *HTTPSender {
	return &HTTPSender{
		APIKey:     apiKey,
		BaseURL:    baseURL,
		From:       from,
		ResetURL:   resetURL,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

type sendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// SendPasswordReset sends the recovery link to email. Does not log the token.
func (c *HTTPSender) SendPasswordReset(ctx context.Context, email, token string, expiresAt time.Time) error {
	if c.APIKey == "" || c.BaseURL == "" {
		return ErrNotConfigured
	}
	link, err := ResetLink(c.ResetURL, token)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(sendRequest{
		From:    c.From,
		To:      email,
		Subject: "Password recovery",
		Text: fmt.Sprintf("Use the link below to choose a new password. It expires at %s.\n\n%s\n",
			expiresAt.UTC().Format(time.RFC1123), link),
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("mail: send: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("mail: request failed status=%d body=%s", resp.StatusCode, string(b))
	}
	return nil
}

// ResetLink appends token to resetURL as the "token" query parameter. An empty resetURL yields the bare token.
func ResetLink(resetURL, token string) (string, error) {
	if resetURL == "" {
		return token, nil
	}
	u, err := url.Parse(resetURL)
	if err != nil {
		return "", fmt.Errorf("mail: invalid reset url: %w", err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
