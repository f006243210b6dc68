package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	middlewarepkg "github.com/octobees/ragnarok-registration/internal/middleware"
)

// ErrorHandler renders errors that escape handlers (unknown routes, bad
// methods, recovered panics) in the APIResponse envelope.
func ErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := InternalServerErrorMessage

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if status < http.StatusInternalServerError {
				message = httpErrorMessage(he)
			}
		}

		if status >= http.StatusInternalServerError {
			middlewarepkg.LoggerFromContext(c, log).Error().
				Err(err).
				Int("status", status).
				Msg("unhandled error")
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = Error(c, status, message)
		}
		if writeErr != nil {
			middlewarepkg.LoggerFromContext(c, log).Error().Err(writeErr).Msg("write error response")
		}
	}
}

func httpErrorMessage(he *echo.HTTPError) string {
	switch msg := he.Message.(type) {
	case string:
		if msg != "" {
			return msg
		}
	case nil:
	default:
		return fmt.Sprint(msg)
	}
	return http.StatusText(he.Code)
}
