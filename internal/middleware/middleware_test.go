package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid log line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestLoggingMiddleware(t *testing.T) {
	buf := &bytes.Buffer{}
	base := zerolog.New(buf)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ContextKeyRequestID, "rid-123")

	var scoped *zerolog.Logger
	err := Logging(base)(func(c echo.Context) error {
		scoped = LoggerFromContext(c, zerolog.Nop())
		return c.String(http.StatusOK, "ok")
	})(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if scoped == nil {
		t.Fatalf("expected request logger in context")
	}

	entries := decodeLines(t, buf)
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry["request_id"] != "rid-123" || entry["path"] != "/health" || entry["method"] != http.MethodGet {
		t.Fatalf("unexpected log entry: %v", entry)
	}
	if entry["status"] != float64(http.StatusOK) || entry["level"] != "info" {
		t.Fatalf("unexpected status/level: %v", entry)
	}

	// errors are rendered once and logged, not propagated
	buf.Reset()
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.Set(ContextKeyRequestID, "rid-456")
	handled := 0
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		handled++
		e.DefaultHTTPErrorHandler(err, c)
	}
	err = Logging(base)(func(c echo.Context) error {
		return errors.New("boom")
	})(c)
	if err != nil {
		t.Fatalf("expected error to be handled, got %v", err)
	}
	if handled != 1 {
		t.Fatalf("expected error handler to run once, got %d", handled)
	}
	entries = decodeLines(t, buf)
	if len(entries) != 1 || entries[0]["request_id"] != "rid-456" || entries[0]["level"] != "error" || entries[0]["error"] != "boom" {
		t.Fatalf("expected error entry with new request id, got %v", entries)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected error handler to write 500, got %d", rec.Code)
	}
}

func TestLoggerFromContext_Fallback(t *testing.T) {
	buf := &bytes.Buffer{}
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	LoggerFromContext(c, zerolog.New(buf)).Info().Msg("fallback")
	if !strings.Contains(buf.String(), "fallback") {
		t.Fatalf("expected base logger to be used, got %q", buf.String())
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	e := echo.New()
	handler := RequestID()

	t.Run("reuse incoming header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderXRequestID, "incoming")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := handler(func(c echo.Context) error {
			if RequestIDFromContext(c) != "incoming" {
				t.Fatalf("expected request id to be stored")
			}
			return c.NoContent(http.StatusOK)
		})(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if rec.Header().Get(echo.HeaderXRequestID) != "incoming" {
			t.Fatalf("expected response header to propagate request id")
		}
	})

	t.Run("generate when missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := handler(func(c echo.Context) error {
			if RequestIDFromContext(c) == "" {
				t.Fatalf("expected generated request id")
			}
			return c.NoContent(http.StatusOK)
		})(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if rec.Header().Get(echo.HeaderXRequestID) == "" {
			t.Fatalf("expected response header set")
		}
	})
}
