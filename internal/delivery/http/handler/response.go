package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wellgym/wellgym-backend/internal/domain"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps domain errors to HTTP statuses. Unauthenticated callers
// get 401 so the client can redirect to sign-in; remote trouble is 502/503
// territory, not a client fault.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	case errors.Is(err, domain.ErrRemoteUnavailable):
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "remote store unavailable"})
	case errors.Is(err, domain.ErrPersistenceFailed):
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "write rejected by remote store"})
	case errors.Is(err, domain.ErrInvalidField):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
