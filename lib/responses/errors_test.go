package responses

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestUnmatchedRouteServesHtmlErrorPage(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	HTTPErrorHandler(echo.ErrNotFound, c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML)
	assert.True(t, strings.Contains(rec.Body.String(), "404"))
}

func TestUncaughtErrorBecomesGeneric500(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	HTTPErrorHandler(errors.New("sqlite3: disk I/O error"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "DATABASE_ERROR")
	// storage internals never leak into the response
	assert.NotContains(t, rec.Body.String(), "sqlite3")
}
