// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelplanner/internal/http/middleware"
	"travelplanner/internal/modules/planning"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Detail  string `json:"detail"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Success: false, Detail: msg})
}

// writeDomainError maps planning error kinds to status codes.
func writeDomainError(c *gin.Context, err error) {
	var upstream planning.UpstreamError
	switch {
	case planning.IsValidation(err):
		writeError(c, http.StatusBadRequest, err.Error())
	case planning.IsConfiguration(err):
		writeError(c, http.StatusInternalServerError, err.Error())
	case errors.As(err, &upstream):
		writeError(c, http.StatusInternalServerError, "Error generating response from "+upstream.Service+": "+errorText(upstream.Err))
	default:
		slog.Error("unhandled error", "request_id", middleware.GetRequestID(c), "error", err)
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func errorText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
