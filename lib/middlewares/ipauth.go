package middlewares

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/wallcal/wallcal.go/lib"
	"github.com/wallcal/wallcal.go/lib/responses"
	"github.com/wallcal/wallcal.go/lib/service"
)

// BrowserRedirect sends direct browser navigation on API paths back to
// the home page instead of answering with JSON. A UX accommodation, not
// a security control.
func BrowserRedirect() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMETextHTML) {
				return c.Redirect(http.StatusFound, "/")
			}
			return next(c)
		}
	}
}

// IPAuth is the authorization gate for event-mutation routes. It
// resolves the caller's identity from their network address and attaches
// it to the request context; unknown callers never reach the handler.
func IPAuth(svc *service.WallcalService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			address := lib.ClientAddress(c.Request())
			user, err := svc.FindUserByAddress(c.Request().Context(), address)
			if err != nil {
				c.Logger().Errorf("Authentication error for address %s: %v", address, err)
				return c.JSON(responses.AuthFailedError.HttpStatusCode, responses.AuthFailedError)
			}
			if user == nil {
				return c.JSON(responses.AuthRequiredError.HttpStatusCode, responses.AuthRequiredError)
			}
			c.Set("User", user)
			c.Set("UserID", user.ID)
			return next(c)
		}
	}
}
