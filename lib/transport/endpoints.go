package transport

import (
	"github.com/labstack/echo/v4"

	"github.com/wallcal/wallcal.go/controllers"
	"github.com/wallcal/wallcal.go/lib/middlewares"
	"github.com/wallcal/wallcal.go/lib/service"
)

func RegisterEndpoints(svc *service.WallcalService, e *echo.Echo, strictRateLimitMiddleware echo.MiddlewareFunc, logMw echo.MiddlewareFunc) {
	userCtrl := controllers.NewUserController(svc)
	eventsCtrl := controllers.NewEventsController(svc)

	// registration and identity lookup bypass the authorization gate
	api := e.Group("/api", middlewares.BrowserRedirect(), logMw)
	api.GET("/user", userCtrl.GetUser)
	api.POST("/user", userCtrl.RegisterUser, strictRateLimitMiddleware)

	secured := api.Group("", middlewares.IPAuth(svc))
	secured.GET("/events", eventsCtrl.ListEvents)
	secured.POST("/events", eventsCtrl.CreateEvent)
	secured.PUT("/events/:id", eventsCtrl.UpdateEvent)
	secured.DELETE("/events/:id", eventsCtrl.DeleteEvent)

	e.GET("/ws", controllers.NewEventStreamController(svc).StreamEvents)
	e.GET("/", controllers.NewHomeController().Home, createCacheClient().Middleware())
}
