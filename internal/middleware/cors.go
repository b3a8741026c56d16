package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// CORS builds the cross-origin policy from an allow-list of origin
// substrings.  Requests without an Origin header are not CORS requests and
// pass through; browser requests pass when the Origin contains any of the
// configured substrings (e.g. "rechilab.com", "localhost").
func CORS(allowed []string) echo.MiddlewareFunc {
	return echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOriginFunc: func(origin string) (bool, error) {
			for _, frag := range allowed {
				if strings.Contains(origin, frag) {
					return true, nil
				}
			}
			return false, nil
		},
		AllowMethods: []string{echo.GET, echo.POST, echo.PATCH, echo.DELETE, echo.OPTIONS},
	})
}
