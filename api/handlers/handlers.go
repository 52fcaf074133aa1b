package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"flowsite/cmserrors"
	"flowsite/dto"
)

// writeError maps the error taxonomy onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case cmserrors.IsValidation(err):
		status = http.StatusBadRequest
	case cmserrors.IsNotFound(err):
		status = http.StatusNotFound
	case cmserrors.IsStoreUnavailable(err):
		status = http.StatusServiceUnavailable
	case cmserrors.IsUpload(err):
		// most upload failures are undecodable input
		status = http.StatusBadRequest
	}
	c.JSON(status, dto.ErrorResponse{Error: err.Error()})
}
