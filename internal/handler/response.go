package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Result values carried in every APIResponse.
const (
	ResultSuccess = "success"
	ResultFailed  = "failed"
)

// InternalServerErrorMessage is the only text clients see for infrastructure failures.
const InternalServerErrorMessage = "Internal server error"

// APIResponse describes the standard envelope returned by the API.
type APIResponse struct {
	Result        string `json:"result"`
	StatusMessage string `json:"statusMessage"`
}

// Success sends a successful response using the shared envelope format.
func Success(c echo.Context, status int, message string) error {
	if status == 0 {
		status = http.StatusOK
	}
	return c.JSON(status, APIResponse{
		Result:        ResultSuccess,
		StatusMessage: message,
	})
}

// Error sends a failed response using the shared envelope format.
func Error(c echo.Context, status int, message string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, APIResponse{
		Result:        ResultFailed,
		StatusMessage: message,
	})
}
