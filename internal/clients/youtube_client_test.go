package clients

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDoWithRetryExhaustionKeepsUpstreamStatus(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":{"code":503,"message":"Backend Error"}}`))
	}))
	defer srv.Close()

	yc := &YouTubeClient{
		Client:         srv.Client(),
		initialBackoff: time.Millisecond,
	}
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := yc.doWithRetry(req)
	require.Nil(t, resp)
	require.Error(t, err)

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream),
		"exhausted retries must surface the API's own error, got: %v", err)
	require.Equal(t, http.StatusServiceUnavailable, upstream.StatusCode)
	require.Equal(t, "Backend Error", upstream.Message)
	require.Equal(t, MAX_RETRIES, hits)
}

func TestDoWithRetryReturnsClientErrorsUnretried(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"code":404,"message":"The video identified could not be found."}}`))
	}))
	defer srv.Close()

	yc := &YouTubeClient{
		Client:         srv.Client(),
		initialBackoff: time.Millisecond,
	}
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := yc.doWithRetry(req)
	require.NoError(t, err)
	require.Equal(t, 1, hits)
	defer resp.Body.Close()

	// the body must still be readable so the caller can decode the
	// API's error payload
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
