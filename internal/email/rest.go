package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ignite/newsletter-api/internal/config"
	"github.com/ignite/newsletter-api/internal/pkg/httpretry"
)

// RESTClient sends mail through a SparkPost-compatible transmissions API.
type RESTClient struct {
	baseURL    string
	apiKey     string
	sender     string
	senderName string
	httpClient httpretry.HTTPDoer
}

// NewRESTClient creates a transmissions API client from configuration.
func NewRESTClient(cfg config.EmailConfig) *RESTClient {
	return &RESTClient{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		sender:     cfg.SenderEmail,
		senderName: cfg.SenderName,
		httpClient: httpretry.NewRetryClient(&http.Client{
			Timeout: cfg.Timeout(),
		}, 3),
	}
}

// Send posts one transmission with a single recipient.
func (c *RESTClient) Send(ctx context.Context, msg Message) error {
	transmission := map[string]interface{}{
		"recipients": []map[string]interface{}{
			{
				"address": map[string]string{
					"email": msg.To,
				},
			},
		},
		"content": map[string]interface{}{
			"from": map[string]string{
				"email": c.sender,
				"name":  c.senderName,
			},
			"subject": msg.Subject,
			"html":    msg.HTML,
			"text":    msg.Text,
		},
	}

	body, err := json.Marshal(transmission)
	if err != nil {
		return fmt.Errorf("marshaling transmission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transmissions", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("email API error (status %d): %s", resp.StatusCode, apiErrorMessage(respBody))
	}
	return nil
}

// apiErrorMessage extracts the first error message from a transmissions API
// error payload, falling back to the raw body.
func apiErrorMessage(body []byte) string {
	var parsed struct {
		Errors []struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.Errors) > 0 {
		return parsed.Errors[0].Message
	}
	return string(body)
}
