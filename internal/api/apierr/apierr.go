// Package apierr maps engine errors onto HTTP responses.
package apierr

import (
	"errors"
	"net/http"

	"gallery-app/internal/domain/market"

	"github.com/gin-gonic/gin"
)

// Status returns the HTTP status for an engine error.
func Status(err error) int {
	switch {
	case errors.Is(err, market.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, market.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, market.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, market.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, market.ErrOutOfStock), errors.Is(err, market.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, market.ErrUpstreamPayment):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Abort writes the error response and stops the handler chain.
func Abort(c *gin.Context, err error) {
	status := Status(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Something went wrong"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
