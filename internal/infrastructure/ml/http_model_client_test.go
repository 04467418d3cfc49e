package ml

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPModelClient_Predict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/predict", r.URL.Path)
		var req predictRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Quick money, no experience", req.Text)
		_, _ = w.Write([]byte(`{"prediction":1,"probability":0.87}`))
	}))
	defer srv.Close()

	got, err := NewHTTPModelClient(srv.URL, time.Second).Predict(context.Background(), "Quick money, no experience")

	require.NoError(t, err)
	assert.Equal(t, 1, got.Prediction)
	assert.InDelta(t, 0.87, got.Probability, 1e-9)
}

func TestHTTPModelClient_RejectsBadProbability(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"prediction":1,"probability":87}`))
	}))
	defer srv.Close()

	_, err := NewHTTPModelClient(srv.URL, time.Second).Predict(context.Background(), "text")
	require.Error(t, err)
}

func TestHTTPModelClient_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewHTTPModelClient(url, 100*time.Millisecond).Predict(context.Background(), "text")
	require.Error(t, err)
}
