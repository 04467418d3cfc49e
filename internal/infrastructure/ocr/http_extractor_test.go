package ocr

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhxnujaK/Fraud-Alert-LK/internal/domain/port"
)

func TestHTTPExtractor_Extract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/extract", r.URL.Path)
		assert.Equal(t, "image/jpeg", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, []byte("jpeg-bytes"), body)
		_, _ = w.Write([]byte(`{"text":"Earn daily from home"}`))
	}))
	defer srv.Close()

	text, err := NewHTTPExtractor(srv.URL, "", time.Second).Extract(context.Background(), []byte("jpeg-bytes"), "image/jpeg")

	require.NoError(t, err)
	assert.Equal(t, "Earn daily from home", text)
}

func TestHTTPExtractor_FailureWrapsErrOCRFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "cannot decode image", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := NewHTTPExtractor(srv.URL, "", time.Second).Extract(context.Background(), []byte("x"), "image/png")

	require.ErrorIs(t, err, port.ErrOCRFailed)
	assert.Contains(t, err.Error(), "cannot decode image")
}
