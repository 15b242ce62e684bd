// Package response writes JSON error responses for workflow errors.
package response

import (
	"log/slog"
	"net/http"

	"health_backend/internal/shared/apperr"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the JSON body of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// Error logs err and writes it as {"error": message} with the status chosen
// by apperr.StatusCode. Server-side failures are logged at error level and
// their details are not sent to the client.
func Error(c *gin.Context, msg string, err error) {
	status := apperr.StatusCode(err)
	attrs := []any{"error", err, "status", status, "remote_addr", c.ClientIP()}
	if status >= http.StatusInternalServerError {
		slog.Error(msg, attrs...)
	} else {
		slog.Warn(msg, attrs...)
	}
	c.JSON(status, ErrorBody{Error: apperr.PublicMessage(err)})
}

// BadRequest writes a 400 for a body that could not be bound.
func BadRequest(c *gin.Context, msg string, err error) {
	slog.Warn(msg, "error", err, "remote_addr", c.ClientIP())
	c.JSON(http.StatusBadRequest, ErrorBody{Error: "invalid request"})
}
