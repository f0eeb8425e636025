package handlers

import (
	"strings"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"

	"github.com/gin-gonic/gin"
)

func (h Handler) CreateTrip(c *gin.Context) {
	var p models.TripPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	trip, err := h.Services.Trips.Create(c.Request.Context(), p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondCreated(c, trip)
}

// ListTrips handles GET /v1/trips?status=&tripType=&city=.
func (h Handler) ListTrips(c *gin.Context) {
	f := domain.TripFilter{
		Status:   strings.TrimSpace(c.Query("status")),
		TripType: strings.TrimSpace(c.Query("tripType")),
		City:     strings.TrimSpace(c.Query("city")),
	}
	list, err := h.Services.Trips.List(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, list)
}

func (h Handler) GetTrip(c *gin.Context) {
	trip, err := h.Services.Trips.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if trip == nil {
		RespondDomainError(c, domain.NotFoundError{Resource: "Trip"})
		return
	}
	respondOK(c, trip)
}
