package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/wallcal/wallcal.go/db/models"
	"github.com/wallcal/wallcal.go/lib/responses"
	"github.com/wallcal/wallcal.go/lib/service"
)

// EventsController : calendar event CRUD
type EventsController struct {
	svc *service.WallcalService
}

func NewEventsController(svc *service.WallcalService) *EventsController {
	return &EventsController{svc: svc}
}

type EventRequestBody struct {
	Date  string `json:"date"`
	Title string `json:"title"`
	// a non-string details value is tolerated and treated as absent
	Details interface{} `json:"details"`
}

func (b *EventRequestBody) details() string {
	details, _ := b.Details.(string)
	return details
}

// ListEvents returns every event, ordered by date then id.
func (controller *EventsController) ListEvents(c echo.Context) error {
	events, err := controller.svc.ListEvents(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("Failed to list events: %v", err)
		return c.JSON(responses.GeneralServerError.HttpStatusCode, responses.GeneralServerError)
	}
	return c.JSON(http.StatusOK, events)
}

// CreateEvent adds an event owned by the caller.
func (controller *EventsController) CreateEvent(c echo.Context) error {
	user := c.Get("User").(*models.User)

	var body EventRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create event request body: %v", err)
		return c.JSON(responses.InvalidEventError.HttpStatusCode, responses.InvalidEventError)
	}

	event, err := controller.svc.CreateEvent(c.Request().Context(), user, body.Date, body.Title, body.details())
	switch {
	case errors.Is(err, service.ErrInvalidEvent):
		return c.JSON(responses.InvalidEventError.HttpStatusCode, responses.InvalidEventError)
	case err != nil:
		c.Logger().Errorf("Failed to create event for user %d: %v", user.ID, err)
		return c.JSON(responses.GeneralServerError.HttpStatusCode, responses.GeneralServerError)
	}
	return c.JSON(http.StatusCreated, event)
}

// UpdateEvent overwrites date, title and details of an event the caller owns.
func (controller *EventsController) UpdateEvent(c echo.Context) error {
	user := c.Get("User").(*models.User)

	eventId, err := parseEventId(c.Param("id"))
	if err != nil {
		return c.JSON(responses.InvalidEventIdError.HttpStatusCode, responses.InvalidEventIdError)
	}

	var body EventRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load update event request body: %v", err)
		return c.JSON(responses.InvalidEventError.HttpStatusCode, responses.InvalidEventError)
	}

	event, err := controller.svc.UpdateEvent(c.Request().Context(), eventId, user, body.Date, body.Title, body.details())
	switch {
	case errors.Is(err, service.ErrInvalidEvent):
		return c.JSON(responses.InvalidEventError.HttpStatusCode, responses.InvalidEventError)
	case errors.Is(err, service.ErrEventNotFound):
		return c.JSON(responses.EventNotFoundError.HttpStatusCode, responses.EventNotFoundError)
	case errors.Is(err, service.ErrNotEventOwner):
		return c.JSON(responses.EventAccessDeniedError.HttpStatusCode, responses.EventAccessDeniedError)
	case err != nil:
		c.Logger().Errorf("Failed to update event %d for user %d: %v", eventId, user.ID, err)
		return c.JSON(responses.GeneralServerError.HttpStatusCode, responses.GeneralServerError)
	}
	return c.JSON(http.StatusOK, event)
}

// DeleteEvent removes an event the caller owns.
func (controller *EventsController) DeleteEvent(c echo.Context) error {
	user := c.Get("User").(*models.User)

	eventId, err := parseEventId(c.Param("id"))
	if err != nil {
		return c.JSON(responses.InvalidEventIdError.HttpStatusCode, responses.InvalidEventIdError)
	}

	err = controller.svc.DeleteEvent(c.Request().Context(), eventId, user)
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		return c.JSON(responses.EventNotFoundError.HttpStatusCode, responses.EventNotFoundError)
	case errors.Is(err, service.ErrNotEventOwner):
		return c.JSON(responses.EventAccessDeniedError.HttpStatusCode, responses.EventAccessDeniedError)
	case err != nil:
		c.Logger().Errorf("Failed to delete event %d for user %d: %v", eventId, user.ID, err)
		return c.JSON(responses.GeneralServerError.HttpStatusCode, responses.GeneralServerError)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Event deleted successfully"})
}

func parseEventId(raw string) (int64, error) {
	eventId, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if eventId < 1 {
		return 0, errors.New("event id must be positive")
	}
	return eventId, nil
}
