package responses

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body of every error response. The string
// codes are part of the API contract and are matched by the client.
type ErrorResponse struct {
	Error          bool   `json:"error"`
	Code           string `json:"code"`
	Message        string `json:"message"`
	HttpStatusCode int    `json:"-"`
}

var GeneralServerError = ErrorResponse{
	Error:          true,
	Code:           "DATABASE_ERROR",
	Message:        "Something went wrong. Please try again later",
	HttpStatusCode: 500,
}

var AuthRequiredError = ErrorResponse{
	Error:          true,
	Code:           "AUTH_REQUIRED",
	Message:        "Please login or register first",
	HttpStatusCode: 403,
}

var AuthFailedError = ErrorResponse{
	Error:          true,
	Code:           "AUTH_ERROR",
	Message:        "Internal server error",
	HttpStatusCode: 500,
}

var InvalidNameError = ErrorResponse{
	Error:          true,
	Code:           "INVALID_NAME",
	Message:        "Invalid or missing name",
	HttpStatusCode: 400,
}

var NameTakenError = ErrorResponse{
	Error:          true,
	Code:           "NAME_TAKEN",
	Message:        "Name already taken",
	HttpStatusCode: 409,
}

var AddressTakenError = ErrorResponse{
	Error:          true,
	Code:           "ADDRESS_TAKEN",
	Message:        "IP already registered with a user",
	HttpStatusCode: 409,
}

var InvalidEventError = ErrorResponse{
	Error:          true,
	Code:           "INVALID_EVENT",
	Message:        "Missing or invalid date/title",
	HttpStatusCode: 400,
}

var InvalidEventIdError = ErrorResponse{
	Error:          true,
	Code:           "INVALID_EVENT_ID",
	Message:        "Invalid event ID. Must be a positive integer.",
	HttpStatusCode: 400,
}

var EventNotFoundError = ErrorResponse{
	Error:          true,
	Code:           "EVENT_NOT_FOUND",
	Message:        "Event does not exist",
	HttpStatusCode: 404,
}

var EventAccessDeniedError = ErrorResponse{
	Error:          true,
	Code:           "EVENT_ACCESS_DENIED",
	Message:        "You do not have permission to access this event",
	HttpStatusCode: 403,
}

// HTTPErrorHandler is the central echo error handler. Unmatched routes
// get the HTML error page; everything else uncaught becomes a generic
// 500 so storage internals never leak into a response.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	c.Logger().Error(err)
	if hub := sentryecho.GetHubFromContext(c); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetExtra("UserID", c.Get("UserID"))
			hub.CaptureException(err)
		})
	}
	if he, ok := err.(*echo.HTTPError); ok {
		if he.Code == http.StatusNotFound {
			NotFoundPage(c)
			return
		}
		c.JSON(he.Code, he.Message)
		return
	}
	c.JSON(http.StatusInternalServerError, GeneralServerError)
}
