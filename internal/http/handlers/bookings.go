package handlers

import (
	"net/http"
	"strings"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// CreateBooking handles POST /v1/user-booking.
func (h Handler) CreateBooking(c *gin.Context) {
	var p models.BookingPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	b, err := h.Services.Bookings.Create(c.Request.Context(), p, middleware.GetActor(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondCreated(c, b)
}

// ListBookings handles GET /v1/user-booking?bookingType=&bookingStatus=.
func (h Handler) ListBookings(c *gin.Context) {
	f := domain.BookingFilter{
		BookingType:   strings.TrimSpace(c.Query("bookingType")),
		BookingStatus: strings.TrimSpace(c.Query("bookingStatus")),
	}
	list, err := h.Services.Bookings.ListByFilter(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, list)
}

func (h Handler) GetBooking(c *gin.Context) {
	b, err := h.Services.Bookings.GetByReference(c.Request.Context(), c.Param("bookingReference"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if b == nil {
		RespondDomainError(c, domain.NotFoundError{Resource: "Booking"})
		return
	}
	respondOK(c, b)
}

// BookingVoucher streams the PDF voucher as a download.
func (h Handler) BookingVoucher(c *gin.Context) {
	pdf, filename, err := h.Services.Docs.GenerateVoucher(c.Request.Context(), c.Param("bookingReference"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
