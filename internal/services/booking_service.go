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

// BookingService is the booking workflow: validate, assign a reference,
// persist, and read back with references resolved.
type BookingService struct {
	Bookings   repositories.BookingStore
	Customers  repositories.CustomerStore
	Travellers repositories.TravellerStore
	Trips      repositories.TripStore

	// Cache is optional.
	Cache BookingCache

	References utils.ReferenceGenerator
	// ReferenceRetries is how many fresh references to try after a generated
	// one collides. Zero accepts the collision as a conflict.
	ReferenceRetries int

	Now func() time.Time
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

// Create validates p and stores a new booking. A reference is generated
// unless p carries one; a client-supplied reference that already exists is a
// ConflictError.
func (s BookingService) Create(ctx context.Context, p models.BookingPayload, actor *domain.Actor) (*models.Booking, error) {
	reqID := utils.RequestIDFrom(ctx)

	b, err := ValidateBooking(p)
	if err != nil {
		utils.LogEvent(reqID, "booking", "create_rejected", err.Error())
		return nil, err
	}

	b.ID = domain.NewID()
	applyBookingDefaults(&b, s.now())
	if actor != nil && actor.UserID != "" {
		b.CreatedBy = actor.UserID
		b.UpdatedBy = actor.UserID
	}

	generated := b.BookingReference == ""
	attempts := 1
	if generated && s.ReferenceRetries > 0 {
		attempts += s.ReferenceRetries
	}

	for i := 0; i < attempts; i++ {
		if generated {
			b.BookingReference = s.References.Next()
		}
		err = s.Bookings.Insert(ctx, &b)
		if err == nil {
			utils.LogEvent(reqID, "booking", "create", fmt.Sprintf("reference=%s type=%s", b.BookingReference, b.BookingType))
			return &b, nil
		}
		if !domain.IsConflict(err) {
			return nil, err
		}
		utils.LogEvent(reqID, "booking", "reference_collision", fmt.Sprintf("reference=%s attempt=%d", b.BookingReference, i+1))
	}
	return nil, domain.ConflictError{
		Resource: "booking",
		Msg:      fmt.Sprintf("bookingReference %s already exists", b.BookingReference),
		Err:      err,
	}
}

// ListByFilter returns matching bookings, newest first, with customer,
// travellers and trip resolved.
func (s BookingService) ListByFilter(ctx context.Context, f domain.BookingFilter) ([]models.BookingDetail, error) {
	f.BookingType = strings.TrimSpace(f.BookingType)
	f.BookingStatus = strings.TrimSpace(f.BookingStatus)

	bookings, err := s.Bookings.Find(ctx, f)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, bookings)
}

// GetByReference returns (nil, nil) when no booking has ref.
func (s BookingService) GetByReference(ctx context.Context, ref string) (*models.BookingDetail, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, nil
	}
	reqID := utils.RequestIDFrom(ctx)

	if s.Cache != nil {
		cached, err := s.Cache.Get(ctx, ref)
		if err != nil {
			utils.LogError(reqID, "booking", "cache_get", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	b, err := s.Bookings.FindByReference(ctx, ref)
	if err != nil || b == nil {
		return nil, err
	}
	details, err := s.populate(ctx, []models.Booking{*b})
	if err != nil {
		return nil, err
	}
	d := &details[0]

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, ref, d); err != nil {
			utils.LogError(reqID, "booking", "cache_set", err)
		}
	}
	return d, nil
}

// populate batch-fetches every referenced customer, traveller and trip once
// and attaches them to their bookings. References that no longer resolve
// become nil (customer, trip) or are dropped (travellers).
func (s BookingService) populate(ctx context.Context, bookings []models.Booking) ([]models.BookingDetail, error) {
	out := make([]models.BookingDetail, 0, len(bookings))
	if len(bookings) == 0 {
		return out, nil
	}

	var customerIDs, travellerIDs, tripIDs []domain.ID
	for _, b := range bookings {
		customerIDs = append(customerIDs, b.CustomerID)
		travellerIDs = append(travellerIDs, b.Travellers...)
		if b.TripID != nil {
			tripIDs = append(tripIDs, *b.TripID)
		}
	}

	customers, err := s.Customers.FindByIDs(ctx, customerIDs)
	if err != nil {
		return nil, err
	}
	travellers, err := s.Travellers.FindByIDs(ctx, travellerIDs)
	if err != nil {
		return nil, err
	}
	trips, err := s.Trips.FindByIDs(ctx, tripIDs)
	if err != nil {
		return nil, err
	}

	customerByID := make(map[domain.ID]*models.Customer, len(customers))
	for i := range customers {
		customerByID[customers[i].ID] = &customers[i]
	}
	travellerByID := make(map[domain.ID]models.Traveller, len(travellers))
	for _, t := range travellers {
		travellerByID[t.ID] = t
	}
	tripByID := make(map[domain.ID]*models.Trip, len(trips))
	for i := range trips {
		tripByID[trips[i].ID] = &trips[i]
	}

	for _, b := range bookings {
		d := models.BookingDetail{
			Booking:    b,
			Customer:   customerByID[b.CustomerID],
			Travellers: make([]models.Traveller, 0, len(b.Travellers)),
		}
		for _, id := range b.Travellers {
			if t, ok := travellerByID[id]; ok {
				d.Travellers = append(d.Travellers, t)
			}
		}
		if b.TripID != nil {
			d.Trip = tripByID[*b.TripID]
		}
		out = append(out, d)
	}
	return out, nil
}
