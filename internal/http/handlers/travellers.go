package handlers

import (
	"strings"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"

	"github.com/gin-gonic/gin"
)

func (h Handler) CreateTraveller(c *gin.Context) {
	var p models.TravellerPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	tr, err := h.Services.Travellers.Create(c.Request.Context(), p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondCreated(c, tr)
}

// ListTravellers handles GET /v1/travellers?bookingId=.
func (h Handler) ListTravellers(c *gin.Context) {
	list, err := h.Services.Travellers.List(c.Request.Context(), strings.TrimSpace(c.Query("bookingId")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, list)
}

func (h Handler) GetTraveller(c *gin.Context) {
	tr, err := h.Services.Travellers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if tr == nil {
		RespondDomainError(c, domain.NotFoundError{Resource: "Traveller"})
		return
	}
	respondOK(c, tr)
}
