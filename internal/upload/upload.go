// Package upload implements the product image side channel.  Admin product
// requests arrive as multipart forms; the image file is stored on disk
// before the handler runs and only its path travels into the document.
package upload

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CtxImagePath is the context key under which the stored file path is made
// available to the product handlers.
const CtxImagePath = "imagePath"

// Image returns a middleware that saves the request's "image" form file into
// dir under a uuid name and exposes the resulting path via CtxImagePath.
// Requests without an image file pass through untouched; product validation
// decides whether that is acceptable (required on create, optional on edit).
func Image(dir string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			fh, err := c.FormFile("image")
			if err != nil {
				return next(c) // no file attached
			}
			src, err := fh.Open()
			if err != nil {
				return err
			}
			defer src.Close()

			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			name := uuid.NewString() + filepath.Ext(fh.Filename)
			path := filepath.Join(dir, name)
			dst, err := os.Create(path)
			if err != nil {
				return err
			}
			defer dst.Close()
			if _, err := io.Copy(dst, src); err != nil {
				return err
			}

			c.Set(CtxImagePath, path)
			return next(c)
		}
	}
}
