package quotes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyspark/studyspark/internal/domain/shared"
	"github.com/studyspark/studyspark/pkg/retry"
)

func testConfig(baseURL string) ClientConfig {
	cfg := DefaultClientConfig(baseURL)
	cfg.Timeout = time.Second
	cfg.RetryConfig = retry.Config{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
	return cfg
}

func TestClient_Random(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/random", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"q":"Stay curious.","a":"Anonymous"}]`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))

	quote, err := client.Random(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Stay curious.", quote.Text)
	assert.Equal(t, "Anonymous", quote.Author)
	assert.Equal(t, `"Stay curious." - Anonymous`, quote.String())
}

func TestClient_Random_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[{"q":"Persistence pays.","a":"Unknown"}]`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))

	quote, err := client.Random(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Persistence pays.", quote.Text)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_Random_ClientErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))

	_, err := client.Random(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrQuoteServiceUnavailable)
	assert.Equal(t, int32(1), calls.Load(), "4xx should not be retried")
}
