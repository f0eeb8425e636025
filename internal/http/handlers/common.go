package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"backoffice/internal/domain"
	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

// Handler serves the API over one set of services.
type Handler struct {
	Services services.Services
	Ping     func(ctx context.Context) error
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

// BindJSONOrError decodes the body into dst and answers 400 when it cannot.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondDomainError(c, bodyError("request body is required", nil))
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondDomainError(c, decodeError(err))
		return false
	}
	return true
}

func decodeError(err error) error {
	if errors.Is(err, io.EOF) {
		return bodyError("request body is required", err)
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return domain.ValidationError{
			Field: typeErr.Field,
			Msg:   "must be a " + typeErr.Type.String(),
			Err:   err,
		}
	}
	return bodyError("malformed JSON", err)
}

func bodyError(msg string, err error) error {
	return domain.ValidationError{Field: "body", Msg: msg, Err: err}
}
