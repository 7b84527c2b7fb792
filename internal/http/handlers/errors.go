package handlers

import (
	"net/http"

	"transport/internal/domain"
	"transport/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"error":      message,
		"code":       code,
		"request_id": middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case domain.IsForbidden(err):
		respondError(c, http.StatusForbidden, "forbidden", err.Error())
	case domain.IsSeatConflict(err):
		respondError(c, http.StatusConflict, "seat_conflict", err.Error())
	case domain.IsAlreadyCancelled(err):
		respondError(c, http.StatusConflict, "already_cancelled", err.Error())
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error())
	case domain.IsTransient(err):
		respondError(c, http.StatusServiceUnavailable, "try_again", "temporary storage contention, retry the request")
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}
