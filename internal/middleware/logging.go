package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Logging stores a request-scoped logger in the context and writes one
// structured line for each HTTP request.
func Logging(base zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqLog := base.With().
				Str("request_id", RequestIDFromContext(c)).
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Logger()
			c.Set(ContextKeyLogger, &reqLog)

			// Errors are rendered here so the logged status is the final one.
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			level := zerolog.InfoLevel
			switch {
			case status >= 500:
				level = zerolog.ErrorLevel
			case status >= 400:
				level = zerolog.WarnLevel
			}
			event := reqLog.WithLevel(level)
			if err != nil {
				event = event.Err(err)
			}
			event.Int("status", status).
				Dur("latency", time.Since(start)).
				Msg("http request")

			return nil
		}
	}
}

// LoggerFromContext returns the request-scoped logger, or base when Logging
// did not run for this request.
func LoggerFromContext(c echo.Context, base zerolog.Logger) *zerolog.Logger {
	if l, ok := c.Get(ContextKeyLogger).(*zerolog.Logger); ok && l != nil {
		return l
	}
	return &base
}
