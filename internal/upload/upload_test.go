package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if field != "" {
		fw, err := w.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/products", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func TestImageSavesFile(t *testing.T) {
	dir := t.TempDir()
	e := echo.New()
	req := multipartRequest(t, "image", "ball.jpg", []byte("jpeg bytes"))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got string
	h := Image(dir)(func(c echo.Context) error {
		got, _ = c.Get(CtxImagePath).(string)
		return nil
	})
	require.NoError(t, h(c))

	require.NotEmpty(t, got)
	assert.Equal(t, ".jpg", filepath.Ext(got))
	data, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg bytes"), data)
}

func TestImageWithoutFilePassesThrough(t *testing.T) {
	e := echo.New()
	req := multipartRequest(t, "", "", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := Image(t.TempDir())(func(c echo.Context) error {
		called = true
		assert.Nil(t, c.Get(CtxImagePath))
		return nil
	})
	require.NoError(t, h(c))
	assert.True(t, called)
}

func TestImageNamesAreUnique(t *testing.T) {
	dir := t.TempDir()
	e := echo.New()

	save := func() string {
		req := multipartRequest(t, "image", "ball.jpg", []byte("x"))
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		var got string
		h := Image(dir)(func(c echo.Context) error {
			got, _ = c.Get(CtxImagePath).(string)
			return nil
		})
		require.NoError(t, h(c))
		return got
	}

	assert.NotEqual(t, save(), save())
}
