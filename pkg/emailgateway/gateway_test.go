package emailgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrevoGateway_Send(t *testing.T) {
	var got brevoRequest
	var apiKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"messageId":"<abc@brevo>"}`))
	}))
	defer srv.Close()

	g := NewBrevoGateway(srv.URL, "key-1", Address{Email: "club@example.com", Name: "Club"}, time.Second)
	id, err := g.Send(context.Background(), Message{
		To:      []string{"a@example.com", "b@example.com"},
		Subject: "Hello",
		Text:    "Body",
	})
	require.NoError(t, err)

	assert.Equal(t, "<abc@brevo>", id)
	assert.Equal(t, "key-1", apiKey)
	assert.Equal(t, "Club", got.Sender.Name)
	assert.Equal(t, []Address{{Email: "a@example.com"}, {Email: "b@example.com"}}, got.To)
	assert.Equal(t, "Body", got.TextContent)
	assert.Empty(t, got.HTMLContent)
}

func TestBrevoGateway_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"unauthorized"}`))
	}))
	defer srv.Close()

	g := NewBrevoGateway(srv.URL, "bad", Address{Email: "club@example.com"}, time.Second)
	_, err := g.Send(context.Background(), Message{To: []string{"a@example.com"}, Subject: "s", HTML: "<p>x</p>"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestBrevoGateway_RejectsEmptyContent(t *testing.T) {
	g := NewBrevoGateway("http://127.0.0.1:0", "k", Address{}, time.Second)
	_, err := g.Send(context.Background(), Message{To: []string{"a@example.com"}, Subject: "s"})
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestMockGateway_RecordsMessages(t *testing.T) {
	g := NewMockGateway("TEST")
	_, err := g.Send(context.Background(), Message{To: []string{"a@example.com"}, Subject: "s", Text: "t"})
	require.NoError(t, err)
	require.Len(t, g.Sent(), 1)
	assert.Equal(t, "s", g.Sent()[0].Subject)
}

func TestUnconfiguredGateway_Send(t *testing.T) {
	var buf bytes.Buffer
	g := NewUnconfiguredGateway(zerolog.New(&buf))

	id, err := g.Send(context.Background(), Message{To: []string{"a@example.com"}, Subject: "Hi", Text: "Body"})

	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Empty(t, id)
	assert.Contains(t, buf.String(), "provider not configured")
}

func TestLogGateway_Send(t *testing.T) {
	var buf bytes.Buffer
	g := NewLogGateway(zerolog.New(&buf))

	id, err := g.Send(context.Background(), Message{To: []string{"a@example.com"}, Subject: "Hi", Text: "Body"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Contains(t, buf.String(), `"subject":"Hi"`)
	assert.Contains(t, buf.String(), "a@example.com")

	_, err = g.Send(context.Background(), Message{To: []string{"a@example.com"}})
	assert.ErrorIs(t, err, ErrNoContent)
}
