// Package handler exposes the HTTP handlers for users, products and
// appointments.  Every response uses the same envelope the frontend was
// built against: {success, message, result?}.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the uniform JSON envelope for every endpoint.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Result  any    `json:"result,omitempty"`
}

// MsgUnknown is the catch-all message for unclassified failures.
const MsgUnknown = "未知錯誤"

func ok(c echo.Context, result any) error {
	return c.JSON(http.StatusOK, Response{Success: true, Message: "", Result: result})
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, Response{Success: false, Message: message})
}

// failUnknown maps everything the operation could not classify to a generic
// 500.  The underlying error stays server-side.
func failUnknown(c echo.Context) error {
	return fail(c, http.StatusInternalServerError, MsgUnknown)
}
