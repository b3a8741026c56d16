package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rechilab/volley-backend/internal/config"
)

func TestCachePayloadRoundTrip(t *testing.T) {
	header := http.Header{}
	header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	body := []byte(`{"success":true,"result":{"data":[],"total":0}}`)

	payload, err := encodePayload(http.StatusOK, header, body)
	require.NoError(t, err)

	status, gotHeader, gotBody, ok := decodePayload(payload)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, echo.MIMEApplicationJSON, gotHeader.Get(echo.HeaderContentType))
	assert.Equal(t, body, gotBody)
}

func TestCachePayloadRejectsGarbage(t *testing.T) {
	for _, bs := range [][]byte{nil, []byte("short"), make([]byte, 8)} {
		_, _, _, ok := decodePayload(bs)
		assert.False(t, ok, "decoded %d-byte payload", len(bs))
	}
	// A truncated payload must not panic or succeed.
	full, err := encodePayload(http.StatusOK, http.Header{}, nil)
	require.NoError(t, err)
	_, _, _, ok := decodePayload(full[:6])
	assert.False(t, ok)
}

func TestCacheKeyVariesByQuery(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache"}
	e := echo.New()

	key := func(target string) string {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/products")
		return cacheKey(cfg, c)
	}

	assert.Equal(t, key("/products?page=1"), key("/products?page=1"))
	assert.NotEqual(t, key("/products?page=1"), key("/products?page=2"))
}

func TestResponseCacheDisabled(t *testing.T) {
	// A nil client or a disabled config must become a strict pass-through.
	for _, cfg := range []config.CacheConfig{
		{Enabled: false},
		{Enabled: true}, // nil client
	} {
		mw := ResponseCache(cfg, nil)
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		called := false
		require.NoError(t, mw(func(c echo.Context) error {
			called = true
			return c.String(http.StatusOK, "ok")
		})(c))
		assert.True(t, called)
		assert.Empty(t, rec.Header().Get("X-Cache"))
	}
}
