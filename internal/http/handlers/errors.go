package handlers

import (
	"errors"
	"net/http"

	"backoffice/internal/domain"
	"backoffice/internal/http/middleware"
	"backoffice/internal/utils"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, message string, extra gin.H) {
	body := gin.H{"success": false, "message": message}
	for k, v := range extra {
		body[k] = v
	}
	c.AbortWithStatusJSON(status, body)
}

// RespondDomainError maps domain errors to HTTP responses. Anything that is
// not a known client error is logged and hidden behind a generic 500.
func RespondDomainError(c *gin.Context, err error) {
	reqID := middleware.GetRequestID(c)

	var ve domain.ValidationError
	switch {
	case errors.As(err, &ve):
		details := ve.Details()
		if details == nil {
			details = []domain.FieldError{}
		}
		respondError(c, http.StatusBadRequest, ve.Error(), gin.H{"errors": details, "request_id": reqID})
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, err.Error(), nil)
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusUnauthorized, err.Error(), nil)
	default:
		utils.LogError(reqID, "HTTP", c.Request.Method+" "+c.FullPath(), err)
		respondError(c, http.StatusInternalServerError, "internal server error", gin.H{"request_id": reqID})
	}
}
