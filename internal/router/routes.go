package router

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/octobees/ragnarok-registration/internal/handler"
	middlewarepkg "github.com/octobees/ragnarok-registration/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Registration *handler.RegistrationHandler
}

// New builds an echo instance with the shared middleware stack and all routes.
func New(log zerolog.Logger, handlers Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler(log)

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(log))
	e.Use(echoMiddleware.Recover())

	Register(e, handlers)
	return e
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, handlers Handlers) {
	e.GET("/health", handler.Health)
	e.POST("/registerUser", handlers.Registration.RegisterUser)
}
