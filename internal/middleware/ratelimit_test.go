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

func TestRateLimitDisabledPassesThrough(t *testing.T) {
	for _, cfg := range []config.RateLimitConfig{
		{Enabled: false, Capacity: 10},
		{Enabled: true, Capacity: 10}, // nil client
	} {
		mw := RateLimit(cfg, nil)
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/users/login", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		called := false
		require.NoError(t, mw(func(c echo.Context) error {
			called = true
			return c.NoContent(http.StatusOK)
		})(c))
		assert.True(t, called)
	}
}

func TestAsInt64(t *testing.T) {
	assert.Equal(t, int64(1), asInt64(int64(1)))
	assert.Equal(t, int64(2), asInt64(2))
	assert.Equal(t, int64(3), asInt64(3.7))
	assert.Equal(t, int64(4), asInt64("4"))
	assert.Equal(t, int64(0), asInt64("nope"))
	assert.Equal(t, int64(0), asInt64(nil))
}
