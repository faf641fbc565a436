package responses

import (
	_ "embed"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed error404.html
var notFoundHtml string

// NotFoundPage serves the HTML error page for unmatched routes.
func NotFoundPage(c echo.Context) error {
	return c.HTML(http.StatusNotFound, notFoundHtml)
}
