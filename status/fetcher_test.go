package status

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dasherrors "github.com/iwtcode/vehicleDash/pkg/errors"
)

func TestFetchDecodesDocument(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/dashboard", r.URL.Path)
		assert.Equal(t, "no-cache", r.Header.Get("Cache-Control"))
		assert.Equal(t, "no-cache", r.Header.Get("Pragma"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"summary":{"title":"Daily","speed":101.6},"trip":{"range_km":210}}`))
	}))
	defer srv.Close()

	f, err := NewFetcher(srv.URL+"/api/dashboard", srv.Client())
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		payload, err := f.Fetch(context.Background())
		require.NoError(t, err)

		doc, ok := payload.(map[string]any)
		require.True(t, ok)
		summary := doc["summary"].(map[string]any)
		assert.Equal(t, "Daily", summary["title"])
		assert.Equal(t, 101.6, summary["speed"])
		assert.Equal(t, 210.0, doc["trip"].(map[string]any)["range_km"])
	}
	assert.Equal(t, int32(2), hits.Load(), "every fetch must reach the server")
}

func TestFetchNon2xx(t *testing.T) {
	for _, code := range []int{http.StatusInternalServerError, http.StatusNotFound, http.StatusNotModified} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
			_, _ = w.Write([]byte(`{"summary":{}}`))
		}))

		f, err := NewFetcher(srv.URL, srv.Client())
		require.NoError(t, err)

		payload, err := f.Fetch(context.Background())
		srv.Close()

		assert.Nil(t, payload)
		require.True(t, dasherrors.IsTransport(err))
		assert.Equal(t, code, dasherrors.StatusCode(err))
		assert.True(t, errors.Is(err, dasherrors.ErrUnexpectedStatus))
	}
}

func TestFetchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"summary": `))
	}))
	defer srv.Close()

	f, err := NewFetcher(srv.URL, srv.Client())
	require.NoError(t, err)

	_, err = f.Fetch(context.Background())
	require.True(t, dasherrors.IsTransport(err))
	assert.True(t, errors.Is(err, dasherrors.ErrMalformedBody))
}

func TestFetchNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	f, err := NewFetcher(endpoint, nil)
	require.NoError(t, err)

	_, err = f.Fetch(context.Background())
	require.True(t, dasherrors.IsTransport(err))
	assert.Equal(t, 0, dasherrors.StatusCode(err))
}

func TestFetchNonObjectDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[1, 2, 3]`))
	}))
	defer srv.Close()

	f, err := NewFetcher(srv.URL, srv.Client())
	require.NoError(t, err)

	payload, err := f.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []any{1.0, 2.0, 3.0}, payload)
}

func TestNewFetcherValidatesEndpoint(t *testing.T) {
	for _, endpoint := range []string{"", "localhost:8000", "ftp://car/api", "http://", "::bad"} {
		_, err := NewFetcher(endpoint, nil)
		assert.Error(t, err, endpoint)
	}

	f, err := NewFetcher("http://localhost:8000/api/dashboard", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api/dashboard", f.Endpoint())
}
