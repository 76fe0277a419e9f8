// Package emailgateway sends transactional email through a third-party provider.
package emailgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBrevoURL is the Brevo transactional email endpoint.
const DefaultBrevoURL = "https://api.brevo.com/v3/smtp/email"

// ErrNoContent is returned when a message has neither an HTML nor a text body.
var ErrNoContent = errors.New("email has no html or text content")

// ErrNotConfigured is returned by UnconfiguredGateway for every message.
var ErrNotConfigured = errors.New("email provider not configured")

// Address is a mailbox with an optional display name.
type Address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Message is one provider call. All recipients receive the same message.
type Message struct {
	To      []string
	Subject string
	HTML    string
	Text    string
}

// Gateway represents an email provider
type Gateway interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// BrevoGateway sends email through the Brevo v3 API
type BrevoGateway struct {
	BaseURL    string
	APIKey     string
	Sender     Address
	httpClient *http.Client
}

// NewBrevoGateway creates a new BrevoGateway
func NewBrevoGateway(baseURL, apiKey string, sender Address, timeout time.Duration) *BrevoGateway {
	if baseURL == "" {
		baseURL = DefaultBrevoURL
	}
	return &BrevoGateway{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Sender:  sender,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type brevoRequest struct {
	Sender      Address   `json:"sender"`
	To          []Address `json:"to"`
	Subject     string    `json:"subject"`
	HTMLContent string    `json:"htmlContent,omitempty"`
	TextContent string    `json:"textContent,omitempty"`
}

// Send posts msg as a single API call with every recipient in "to".
func (g *BrevoGateway) Send(ctx context.Context, msg Message) (string, error) {
	if msg.HTML == "" && msg.Text == "" {
		return "", ErrNoContent
	}
	if len(msg.To) == 0 {
		return "", errors.New("email has no recipients")
	}

	to := make([]Address, 0, len(msg.To))
	for _, email := range msg.To {
		to = append(to, Address{Email: email})
	}

	jsonBody, err := json.Marshal(brevoRequest{
		Sender:      g.Sender,
		To:          to,
		Subject:     msg.Subject,
		HTMLContent: msg.HTML,
		TextContent: msg.Text,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", g.APIKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		MessageID string `json:"messageId"`
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &response); err != nil {
			return "", fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return response.MessageID, nil
}

// UnconfiguredGateway stands in when no provider key is set. Every send fails.
type UnconfiguredGateway struct {
	log zerolog.Logger
}

// NewUnconfiguredGateway creates a new UnconfiguredGateway
func NewUnconfiguredGateway(log zerolog.Logger) *UnconfiguredGateway {
	return &UnconfiguredGateway{log: log}
}

// Send logs the dropped message and returns ErrNotConfigured.
func (g *UnconfiguredGateway) Send(ctx context.Context, msg Message) (string, error) {
	g.log.Warn().
		Int("recipients", len(msg.To)).
		Str("subject", msg.Subject).
		Msg("email not sent, provider not configured")
	return "", ErrNotConfigured
}

// LogGateway writes messages to the log and reports them as sent. Nothing is retained.
type LogGateway struct {
	log zerolog.Logger
}

// NewLogGateway creates a new LogGateway
func NewLogGateway(log zerolog.Logger) *LogGateway {
	return &LogGateway{log: log}
}

// Send logs msg and returns a synthetic message id.
func (g *LogGateway) Send(ctx context.Context, msg Message) (string, error) {
	if msg.HTML == "" && msg.Text == "" {
		return "", ErrNoContent
	}
	id := fmt.Sprintf("LOG-MSG-%d", time.Now().UnixNano())
	g.log.Info().
		Str("message_id", id).
		Strs("to", msg.To).
		Str("subject", msg.Subject).
		Str("text", msg.Text).
		Msg("email logged instead of sent")
	return id, nil
}

// MockGateway records messages instead of sending them. Used in tests.
type MockGateway struct {
	Name string
	Err  error

	mu   sync.Mutex
	sent []Message
}

// NewMockGateway creates a new mock gateway
func NewMockGateway(name string) *MockGateway {
	return &MockGateway{Name: name}
}

// Send records msg and returns Err if set.
func (g *MockGateway) Send(ctx context.Context, msg Message) (string, error) {
	if msg.HTML == "" && msg.Text == "" {
		return "", ErrNoContent
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return "", g.Err
	}
	g.sent = append(g.sent, msg)
	return fmt.Sprintf("%s-MOCK-MSG-%d", g.Name, time.Now().UnixNano()), nil
}

// Sent returns a copy of the recorded messages.
func (g *MockGateway) Sent() []Message {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Message, len(g.sent))
	copy(out, g.sent)
	return out
}
