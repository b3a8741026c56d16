package middleware // middleware provides shared request processing for handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rechilab/volley-backend/internal/model"
	"github.com/rechilab/volley-backend/internal/utils"
)

// Context keys set by TokenAuth for downstream middleware and handlers.
const (
	CtxUser  = "user"  // model.User of the authenticated request
	CtxToken = "token" // the raw bearer token that authenticated it
)

// Client-facing messages for the three distinct auth failures.  401 is never
// used: the contract answers every auth failure with 403.
const (
	msgDenied  = "請求被拒絕"
	msgExpired = "JWT 過期"
	msgInvalid = "JWT 無效"
)

// UserFinder looks up the user a token claims to belong to.  The token must
// appear literally in the user's active token list; that membership check is
// what makes server-side revocation effective.
type UserFinder interface {
	FindByIDAndToken(ctx context.Context, id primitive.ObjectID, token string) (model.User, error)
}

// TokenAuth returns an Echo middleware that validates a Bearer session token
// and injects the owning user into the request context.  Expiry is enforced
// manually rather than by the JWT library: the paths listed in exempt (token
// renewal and logout) must remain reachable with an expired token, as long
// as that token is still in the user's list.
func TokenAuth(secret string, users UserFinder, exempt ...string) echo.MiddlewareFunc {
	exemptPaths := make(map[string]bool, len(exempt))
	for _, p := range exempt {
		exemptPaths[p] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": msgDenied})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			id, exp, err := utils.ParseSessionToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": msgInvalid})
			}
			if time.Now().UTC().After(exp) && !exemptPaths[c.Request().URL.Path] {
				return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": msgExpired})
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			u, err := users.FindByIDAndToken(ctx, id, raw)
			if err != nil {
				// Signature checked out but the token is not in the list:
				// revoked, rotated away, or forged against a deleted user.
				return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": msgInvalid})
			}

			c.Set(CtxUser, u)
			c.Set(CtxToken, raw)
			return next(c)
		}
	}
}
