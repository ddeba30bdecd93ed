// README: Shared handler utilities: JSON helpers and error mapping.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"omaga/internal/modules/admin"
	"omaga/internal/modules/driver"
	"omaga/internal/modules/identity"
	"omaga/internal/modules/media"
	"omaga/internal/modules/order"
	"omaga/internal/modules/report"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeServiceError maps module sentinels onto HTTP statuses. Anything
// unmapped is a 500 with a generic body.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, identity.ErrBadRequest),
		errors.Is(err, order.ErrBadRequest),
		errors.Is(err, report.ErrBadRequest),
		errors.Is(err, media.ErrBadRequest),
		errors.Is(err, media.ErrUnsupportedType),
		errors.Is(err, driver.ErrBadAvailability):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, identity.ErrInvalidCredentials),
		errors.Is(err, identity.ErrUnauthenticated),
		errors.Is(err, identity.ErrInvalidToken):
		writeError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, order.ErrNotAssigned):
		writeError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, identity.ErrNotFound),
		errors.Is(err, order.ErrNotFound),
		errors.Is(err, driver.ErrNotFound),
		errors.Is(err, report.ErrNotFound),
		errors.Is(err, admin.ErrNotFound),
		errors.Is(err, media.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, identity.ErrEmailTaken),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrAlreadyAssigned),
		errors.Is(err, order.ErrDriverOffline),
		errors.Is(err, admin.ErrRoleConflict):
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
