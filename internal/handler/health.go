package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/ragnarok-registration/internal/dto"
)

// Health handles GET /health. It is a liveness probe and checks nothing.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}
