package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/repositories"
	"backoffice/internal/utils"
)

type TripService struct {
	Trips repositories.TripStore
	Now   func() time.Time
}

func (s TripService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

func (s TripService) Create(ctx context.Context, p models.TripPayload) (*models.Trip, error) {
	p.TripName = utils.NormalizeSpace(p.TripName)

	fields, err := checkStruct(p)
	if err != nil {
		return nil, domain.ValidationError{Msg: "invalid payload", Err: err}
	}
	from, fromErr := utils.ParseOptionalDate(p.AvailableFrom)
	if fromErr != nil {
		fields = mergeFieldErrors(fields, domain.FieldError{Field: "availableFrom", Message: "must be a valid date"})
	}
	till, tillErr := utils.ParseOptionalDate(p.AvailableTill)
	if tillErr != nil {
		fields = mergeFieldErrors(fields, domain.FieldError{Field: "availableTill", Message: "must be a valid date"})
	}
	if from != nil && till != nil && till.Before(*from) {
		fields = mergeFieldErrors(fields, domain.FieldError{Field: "availableTill", Message: "must not be before availableFrom"})
	}
	if p.MaxCapacity != nil && p.AvailableSeats != nil && *p.AvailableSeats > *p.MaxCapacity {
		fields = mergeFieldErrors(fields, domain.FieldError{Field: "availableSeats", Message: "must not exceed maxCapacity"})
	}
	if err := validationError(fields); err != nil {
		return nil, err
	}

	now := s.now()
	t := models.Trip{
		ID:                domain.NewID(),
		TripName:          p.TripName,
		TripType:          p.TripType,
		Destination:       trimDestination(p.Destination),
		Duration:          p.Duration,
		StartLocation:     utils.NormalizeSpace(p.StartLocation),
		TransportMode:     p.TransportMode,
		AccommodationType: p.AccommodationType,
		Itinerary:         p.Itinerary,
		Pricing: models.Pricing{
			BasePrice:  *p.Pricing.BasePrice,
			Tax:        p.Pricing.Tax,
			GST:        p.Pricing.GST,
			Discount:   p.Pricing.Discount,
			FinalPrice: *p.Pricing.FinalPrice,
		},
		Currency:       strings.ToUpper(utils.TrimOrEmpty(p.Currency)),
		AvailableFrom:  from,
		AvailableTill:  till,
		MaxCapacity:    p.MaxCapacity,
		AvailableSeats: p.AvailableSeats,
		Status:         p.Status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if t.TripType == "" {
		t.TripType = models.TripTypePackage
	}
	if t.Status == "" {
		t.Status = models.TripStatusDraft
	}
	if t.Currency == "" {
		t.Currency = models.DefaultCurrency
	}
	if t.Itinerary == nil {
		t.Itinerary = []models.ItineraryEntry{}
	}
	if p.IsCustomGenerated != nil {
		t.IsCustomGenerated = *p.IsCustomGenerated
	}

	if err := s.Trips.Insert(ctx, &t); err != nil {
		return nil, err
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "trip", "create", fmt.Sprintf("trip_id=%s name=%q", t.ID.Hex(), t.TripName))
	return &t, nil
}

// List returns trips newest first. Empty filter fields are ignored.
func (s TripService) List(ctx context.Context, f domain.TripFilter) ([]models.Trip, error) {
	f.Status = strings.TrimSpace(f.Status)
	f.TripType = strings.TrimSpace(f.TripType)
	f.City = utils.NormalizeSpace(f.City)
	return s.Trips.List(ctx, f)
}

// Get returns (nil, nil) for an unknown id.
func (s TripService) Get(ctx context.Context, id string) (*models.Trip, error) {
	oid, err := parseStoreID(id)
	if err != nil {
		return nil, err
	}
	return s.Trips.FindByID(ctx, oid)
}

func trimDestination(d *models.Destination) *models.Destination {
	if d == nil {
		return nil
	}
	out := models.Destination{
		Country: utils.NormalizeSpace(d.Country),
		State:   utils.NormalizeSpace(d.State),
		City:    utils.NormalizeSpace(d.City),
	}
	if out == (models.Destination{}) {
		return nil
	}
	return &out
}
