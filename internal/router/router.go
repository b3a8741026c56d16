// Package router registers every HTTP route with its authorization expressed
// explicitly per route: public routes carry no middleware, authenticated
// routes carry the token check, and admin routes additionally carry the role
// gate.  There is no global default-deny handler whose correctness depends
// on registration order.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rechilab/volley-backend/internal/handler"
)

// Deps collects the handlers and route-level middleware the router wires up.
// Optional middleware (Cache, RateLimit) may be nil.
type Deps struct {
	Users        *handler.UserHandler
	Products     *handler.ProductHandler
	Appointments *handler.AppointmentHandler

	Auth      echo.MiddlewareFunc // bearer-token authentication
	Admin     echo.MiddlewareFunc // admin role gate, downstream of Auth
	Upload    echo.MiddlewareFunc // product image side channel
	Cache     echo.MiddlewareFunc // public listing response cache
	RateLimit echo.MiddlewareFunc // auth endpoint rate limit
}

// Register wires all routes onto the Echo instance, plus the catch-all 404
// and the error handler that keeps every failure inside the response
// envelope.
func Register(e *echo.Echo, d Deps) {
	e.HTTPErrorHandler = errorHandler

	e.GET("/healthz", handler.Health)

	users := e.Group("/users")
	users.POST("", d.Users.Register, optional(d.RateLimit))
	users.POST("/login", d.Users.Login, optional(d.RateLimit))
	users.DELETE("/logout", d.Users.Logout, d.Auth)
	users.PATCH("/extend", d.Users.Extend, d.Auth)
	users.GET("/me", d.Users.Profile, d.Auth)
	users.GET("/cart", d.Users.GetCart, d.Auth)
	users.PATCH("/cart", d.Users.EditCart, d.Auth)

	products := e.Group("/products")
	products.POST("", d.Products.Create, d.Auth, d.Admin, d.Upload)
	products.GET("/all", d.Products.GetAll, d.Auth, d.Admin)
	products.PATCH("/:id", d.Products.Edit, d.Auth, d.Admin, d.Upload)
	products.GET("", d.Products.Get, optional(d.Cache))
	products.GET("/:id", d.Products.GetID)

	appointments := e.Group("/appointments")
	appointments.POST("", d.Appointments.Create, d.Auth, d.Admin)
	appointments.GET("/all", d.Appointments.GetAll, d.Auth, d.Admin)
	appointments.PATCH("/:id", d.Appointments.Edit, d.Auth, d.Admin)
	appointments.GET("", d.Appointments.Get, optional(d.Cache))
	appointments.GET("/date", d.Appointments.GetDate)
	appointments.GET("/:id", d.Appointments.GetID)

	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, handler.Response{Success: false, Message: "找不到"})
	})
}

// optional turns a nil middleware into a pass-through so routes can list it
// unconditionally.
func optional(mw echo.MiddlewareFunc) echo.MiddlewareFunc {
	if mw != nil {
		return mw
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
}

// errorHandler keeps errors that escape handlers inside the response
// envelope: malformed JSON bodies and other echo binding errors become 400
// 資料格式錯誤, unmatched routes 404 找不到, everything else the generic 500.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status := http.StatusInternalServerError
	message := handler.MsgUnknown
	if he, ok := err.(*echo.HTTPError); ok {
		switch he.Code {
		case http.StatusBadRequest:
			status, message = http.StatusBadRequest, "資料格式錯誤"
		case http.StatusNotFound, http.StatusMethodNotAllowed:
			status, message = http.StatusNotFound, "找不到"
		default:
			status = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			}
		}
	}
	_ = c.JSON(status, handler.Response{Success: false, Message: message})
}
