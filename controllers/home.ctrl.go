package controllers

import (
	_ "embed"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed index.html
var indexHtml string

// HomeController : HomeController struct
type HomeController struct {
	html string
}

func NewHomeController() *HomeController {
	return &HomeController{html: indexHtml}
}

func (controller *HomeController) Home(c echo.Context) error {
	return c.HTML(http.StatusOK, controller.html)
}
