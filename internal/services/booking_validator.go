package services

import (
	"strings"
	"time"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/utils"
)

// ValidateBooking checks p and, when it passes, returns the booking it
// describes. Defaults, ids, the reference and timestamps are left to
// BookingService.Create. Every failing field is reported in one
// ValidationError.
func ValidateBooking(p models.BookingPayload) (models.Booking, error) {
	fields, err := checkStruct(p)
	if err != nil {
		return models.Booking{}, domain.ValidationError{Msg: "invalid payload", Err: err}
	}
	fields = mergeFieldErrors(fields, bookingVariantRules(p)...)

	departure, depErr := utils.ParseFlexibleDate(p.DepartureDate)
	if p.DepartureDate != "" && depErr != nil {
		fields = mergeFieldErrors(fields, domain.FieldError{Field: "departureDate", Message: "must be a valid date"})
	}
	returnDate, retErr := utils.ParseOptionalDate(p.ReturnDate)
	switch {
	case retErr != nil:
		fields = mergeFieldErrors(fields, domain.FieldError{Field: "returnDate", Message: "must be a valid date"})
	case returnDate != nil && depErr == nil && returnDate.Before(departure):
		fields = mergeFieldErrors(fields, domain.FieldError{Field: "returnDate", Message: "must not be before departureDate"})
	}

	custom, customFields := customDetailsFromPayload(p.CustomDetails)
	fields = mergeFieldErrors(fields, customFields...)
	cancellation, cancelFields := cancellationFromPayload(p.Cancellation)
	fields = mergeFieldErrors(fields, cancelFields...)

	if err := validationError(fields); err != nil {
		return models.Booking{}, err
	}

	b := models.Booking{
		BookingReference: strings.TrimSpace(p.BookingReference),
		BookingStatus:    p.BookingStatus,
		BookingSource:    p.BookingSource,
		BookingType:      p.BookingType,
		DepartureDate:    departure,
		ReturnDate:       returnDate,
		NumberOfDays:     p.NumberOfDays,
		NumberOfNights:   p.NumberOfNights,
		Currency:         strings.ToUpper(strings.TrimSpace(p.Currency)),
		PriceBreakup:     p.PriceBreakup,
		TotalAmount:      *p.TotalAmount,
		PaymentStatus:    p.PaymentStatus,
		PaymentMethod:    p.PaymentMethod,
		PaymentGateway:   strings.TrimSpace(p.PaymentGateway),
		TransactionID:    strings.TrimSpace(p.TransactionID),
		Cancellation:     cancellation,
		Notes:            p.Notes,
	}
	if p.AmountPaid != nil {
		b.AmountPaid = *p.AmountPaid
	}
	if p.AmountDue != nil {
		b.AmountDue = *p.AmountDue
	}
	if p.BookingType == models.BookingTypeCustom {
		b.CustomDetails = custom
	}

	// ids were checked by the mongodb tag, so parsing cannot fail here
	b.CustomerID, _ = domain.ParseID(p.CustomerID)
	b.Travellers, _ = domain.ParseIDs(p.Travellers)
	b.TripID = optionalID(p.TripID)
	b.Address = optionalID(p.Address)
	b.AssignedAgent = optionalID(p.AssignedAgent)
	return b, nil
}

// bookingVariantRules holds the rules that depend on bookingType: a catalogue
// trip for every type except custom, custom details for custom bookings.
func bookingVariantRules(p models.BookingPayload) []domain.FieldError {
	var out []domain.FieldError
	add := func(field, msg string) {
		out = append(out, domain.FieldError{Field: field, Message: msg})
	}

	if p.BookingType == models.BookingTypeCustom {
		cd := p.CustomDetails
		if cd == nil {
			add("customDetails", "is required for custom bookings")
		} else {
			if strings.TrimSpace(cd.Destination) == "" {
				add("customDetails.destination", "is required")
			}
			if cd.NumberOfDays == nil {
				add("customDetails.numberOfDays", "is required")
			}
			switch br := cd.BudgetRange; {
			case br == nil:
				add("customDetails.budgetRange", "is required")
			default:
				if br.Min == nil {
					add("customDetails.budgetRange.min", "is required")
				}
				if br.Max == nil {
					add("customDetails.budgetRange.max", "is required")
				}
				if br.Min != nil && br.Max != nil && *br.Min > *br.Max {
					add("customDetails.budgetRange.min", "must not exceed max")
				}
			}
		}
	} else if p.BookingType != "" && strings.TrimSpace(p.TripID) == "" {
		add("tripId", "is required unless bookingType is custom")
	}

	if p.TotalAmount != nil && *p.TotalAmount < 0 {
		add("totalAmount", "must not be negative")
	}
	return out
}

func customDetailsFromPayload(p *models.CustomDetailsPayload) (*models.CustomDetails, []domain.FieldError) {
	if p == nil {
		return nil, nil
	}
	var fields []domain.FieldError
	out := &models.CustomDetails{
		TripName:          strings.TrimSpace(p.TripName),
		Destination:       strings.TrimSpace(p.Destination),
		NumberOfNights:    p.NumberOfNights,
		TransportMode:     p.TransportMode,
		AccommodationType: p.AccommodationType,
	}
	if p.NumberOfDays != nil {
		out.NumberOfDays = *p.NumberOfDays
	}
	if p.BudgetRange != nil && p.BudgetRange.Min != nil && p.BudgetRange.Max != nil {
		out.BudgetRange = &models.BudgetRange{Min: *p.BudgetRange.Min, Max: *p.BudgetRange.Max}
	}

	var err error
	if out.StartDate, err = utils.ParseOptionalDate(p.StartDate); err != nil {
		fields = append(fields, domain.FieldError{Field: "customDetails.startDate", Message: "must be a valid date"})
	}
	if out.EndDate, err = utils.ParseOptionalDate(p.EndDate); err != nil {
		fields = append(fields, domain.FieldError{Field: "customDetails.endDate", Message: "must be a valid date"})
	}
	if out.StartDate != nil && out.EndDate != nil && out.EndDate.Before(*out.StartDate) {
		fields = append(fields, domain.FieldError{Field: "customDetails.endDate", Message: "must not be before startDate"})
	}
	return out, fields
}

func cancellationFromPayload(p *models.CancellationPayload) (models.Cancellation, []domain.FieldError) {
	if p == nil {
		return models.Cancellation{}, nil
	}
	out := models.Cancellation{
		IsCancelled:        p.IsCancelled,
		CancelledBy:        p.CancelledBy,
		CancellationReason: strings.TrimSpace(p.CancellationReason),
		RefundAmount:       p.RefundAmount,
		RefundStatus:       p.RefundStatus,
	}
	at, err := utils.ParseOptionalDate(p.CancelledAt)
	if err != nil {
		return out, []domain.FieldError{{Field: "cancellation.cancelledAt", Message: "must be a valid date"}}
	}
	out.CancelledAt = at
	return out, nil
}

func optionalID(s string) *domain.ID {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	id, err := domain.ParseID(s)
	if err != nil {
		return nil
	}
	return &id
}

// applyBookingDefaults fills every field the store expects to be set.
func applyBookingDefaults(b *models.Booking, now time.Time) {
	if b.BookingStatus == "" {
		b.BookingStatus = models.BookingStatusPending
	}
	if b.BookingSource == "" {
		b.BookingSource = models.BookingSourceWebsite
	}
	if b.Currency == "" {
		b.Currency = models.DefaultCurrency
	}
	if b.PaymentStatus == "" {
		b.PaymentStatus = models.PaymentStatusPending
	}
	if b.Travellers == nil {
		b.Travellers = []domain.ID{}
	}
	b.CreatedAt = now
	b.UpdatedAt = now
}
