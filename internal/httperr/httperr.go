package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// statusFor maps non-validation business codes to HTTP statuses.
// Every code not present here is validation-class and maps to 400.
var statusFor = map[string]int{
	CodeSlotUnavailable:       http.StatusConflict,
	CodeAppointmentNotFound:   http.StatusNotFound,
	CodeInvalidTransition:     http.StatusConflict,
	CodeDependencyUnavailable: http.StatusServiceUnavailable,
	CodeIndeterminate:         http.StatusGatewayTimeout,
}

// Respond writes any engine error: business errors get their mapped
// status and code, everything else becomes an opaque 500.
func Respond(c *gin.Context, err error, message string) {
	code := BusinessCode(err)
	if code == "" {
		Internal(c, "internal_error", message)
		return
	}

	status, ok := statusFor[code]
	if !ok {
		status = http.StatusBadRequest
	}
	Write(c, status, code, message)
}
