package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/octobees/ragnarok-registration/internal/dto"
	"github.com/octobees/ragnarok-registration/internal/entity"
	middlewarepkg "github.com/octobees/ragnarok-registration/internal/middleware"
	"github.com/octobees/ragnarok-registration/internal/service"
)

// Registrar validates and submits registration requests.
type Registrar interface {
	Register(ctx context.Context, req dto.RegisterUserRequest) (entity.RegistrationOutcome, error)
}

// RegistrationHandler exposes the account registration endpoint.
type RegistrationHandler struct {
	registrar Registrar
	log       zerolog.Logger
}

// NewRegistrationHandler constructs a RegistrationHandler.
func NewRegistrationHandler(registrar Registrar, log zerolog.Logger) *RegistrationHandler {
	return &RegistrationHandler{registrar: registrar, log: log}
}

// RegisterUser handles POST /registerUser requests.
func (h *RegistrationHandler) RegisterUser(c echo.Context) error {
	var req dto.RegisterUserRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "Invalid request body")
	}

	outcome, err := h.registrar.Register(c.Request().Context(), req)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			return Error(c, http.StatusBadRequest, verr.Message)
		}

		middlewarepkg.LoggerFromContext(c, h.log).Error().
			Err(err).
			Str("username", req.Username).
			Msg("registration failed")
		return Error(c, http.StatusInternalServerError, InternalServerErrorMessage)
	}

	if outcome.Created() {
		return Success(c, http.StatusCreated, outcome.Message)
	}
	return Error(c, http.StatusConflict, outcome.Message)
}
