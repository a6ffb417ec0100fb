package clubapi

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubfeed/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testClient(baseURL string) *Client {
	return New(Config{
		BaseURL:        baseURL,
		Token:          "test-token",
		Timeout:        2 * time.Second,
		MaxAttempts:    2,
		InitialBackoff: 10 * time.Millisecond,
		MaxBackoff:     20 * time.Millisecond,
	}, testLogger())
}

const bootstrapBody = `{
	"user": {"id": 42, "name": "Alex", "email": "alex@example.com", "roles": ["member"]},
	"feed": [
		{"id": 1, "kind": "notification", "category": "event_invite", "title": "Summer cup", "read": false},
		{"id": 2, "kind": "announcement", "category": "club_news", "title": "New courts", "club": {"id": 7, "name": "TC Blau-Weiss"}}
	]
}`

func TestLoad(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/session/bootstrap", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(bootstrapBody))
	}))
	defer srv.Close()

	payload, err := testClient(srv.URL).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(42), payload.Identity.ID)
	require.Len(t, payload.Items, 2)
	assert.True(t, payload.Items[0].IsNotification())
	assert.True(t, payload.Items[1].IsAnnouncement())
	assert.Equal(t, int64(7), payload.Items[1].Club.ID)
}

func TestLoad_RetriesThenSucceeds(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(bootstrapBody))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestLoad_MalformedRecordRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user": {"id": 42}, "feed": [{"id": 9, "kind": "notification"}]}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Load(context.Background())

	var malformed *domain.MalformedItemError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, int64(9), malformed.ID)
}

func TestConfirmRead(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/notifications/5/read", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	assert.NoError(t, testClient(srv.URL).ConfirmRead(context.Background(), 5))
}

func TestConfirmDismiss_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/feed/5", r.URL.Path)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := testClient(srv.URL).ConfirmDismiss(context.Background(), 5)
	assert.ErrorContains(t, err, "unexpected status: 500")
}
