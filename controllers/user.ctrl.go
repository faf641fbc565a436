package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wallcal/wallcal.go/lib"
	"github.com/wallcal/wallcal.go/lib/responses"
	"github.com/wallcal/wallcal.go/lib/service"
)

// UserController : identity registration and lookup
type UserController struct {
	svc *service.WallcalService
}

func NewUserController(svc *service.WallcalService) *UserController {
	return &UserController{svc: svc}
}

type RegisterUserRequestBody struct {
	Name string `json:"name"`
}

type UserResponseBody struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// GetUser returns the identity registered for the caller's address, or
// an empty object when there is none. Never requires auth.
func (controller *UserController) GetUser(c echo.Context) error {
	address := lib.ClientAddress(c.Request())
	user, err := controller.svc.FindUserByAddress(c.Request().Context(), address)
	if err != nil {
		c.Logger().Errorf("Failed to look up user for address %s: %v", address, err)
		return c.JSON(responses.GeneralServerError.HttpStatusCode, responses.GeneralServerError)
	}
	if user == nil {
		return c.JSON(http.StatusOK, echo.Map{})
	}
	return c.JSON(http.StatusOK, &UserResponseBody{ID: user.ID, Name: user.Name})
}

// RegisterUser claims a display name for the caller's address.
func (controller *UserController) RegisterUser(c echo.Context) error {
	var body RegisterUserRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load register user request body: %v", err)
		return c.JSON(responses.InvalidNameError.HttpStatusCode, responses.InvalidNameError)
	}

	address := lib.ClientAddress(c.Request())
	user, err := controller.svc.RegisterUser(c.Request().Context(), address, body.Name)
	switch {
	case errors.Is(err, service.ErrInvalidName):
		return c.JSON(responses.InvalidNameError.HttpStatusCode, responses.InvalidNameError)
	case errors.Is(err, service.ErrNameTaken):
		return c.JSON(responses.NameTakenError.HttpStatusCode, responses.NameTakenError)
	case errors.Is(err, service.ErrAddressTaken):
		return c.JSON(responses.AddressTakenError.HttpStatusCode, responses.AddressTakenError)
	case err != nil:
		c.Logger().Errorf("Failed to register user for address %s: %v", address, err)
		return c.JSON(responses.GeneralServerError.HttpStatusCode, responses.GeneralServerError)
	}

	c.Logger().Infof("Registered user: id %d address %s", user.ID, address)
	return c.JSON(http.StatusCreated, &UserResponseBody{ID: user.ID, Name: user.Name})
}
