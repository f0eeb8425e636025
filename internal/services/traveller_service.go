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

type TravellerService struct {
	Travellers repositories.TravellerStore
	Now        func() time.Time
}

func (s TravellerService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

func (s TravellerService) Create(ctx context.Context, p models.TravellerPayload) (*models.Traveller, error) {
	p.FullName = utils.NormalizeSpace(p.FullName)

	fields, err := checkStruct(p)
	if err != nil {
		return nil, domain.ValidationError{Msg: "invalid payload", Err: err}
	}
	dob, dobErr := utils.ParseOptionalDate(p.DateOfBirth)
	if dobErr != nil {
		fields = mergeFieldErrors(fields, domain.FieldError{Field: "dateOfBirth", Message: "must be a valid date"})
	}
	expiry, expErr := utils.ParseOptionalDate(p.PassportExpiry)
	if expErr != nil {
		fields = mergeFieldErrors(fields, domain.FieldError{Field: "passportExpiry", Message: "must be a valid date"})
	}
	if err := validationError(fields); err != nil {
		return nil, err
	}

	now := s.now()
	t := models.Traveller{
		ID:             domain.NewID(),
		BookingID:      optionalID(p.BookingID),
		FullName:       p.FullName,
		Gender:         p.Gender,
		DateOfBirth:    dob,
		Nationality:    utils.NormalizeSpace(p.Nationality),
		PassportNumber: strings.ToUpper(utils.TrimOrEmpty(p.PassportNumber)),
		PassportExpiry: expiry,
		VisaStatus:     utils.TrimOrEmpty(p.VisaStatus),
		MealPreference: p.MealPreference,
		SeatPreference: p.SeatPreference,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if t.MealPreference == "" {
		t.MealPreference = models.MealPreferenceAny
	}
	if t.SeatPreference == "" {
		t.SeatPreference = models.SeatPreferenceAny
	}
	if p.SpecialAssistance != nil {
		t.SpecialAssistance = *p.SpecialAssistance
	}

	if err := s.Travellers.Insert(ctx, &t); err != nil {
		return nil, err
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "traveller", "create", fmt.Sprintf("traveller_id=%s", t.ID.Hex()))
	return &t, nil
}

// List returns travellers newest first, optionally only those linked to
// bookingID.
func (s TravellerService) List(ctx context.Context, bookingID string) ([]models.Traveller, error) {
	var f domain.TravellerFilter
	if bookingID = strings.TrimSpace(bookingID); bookingID != "" {
		id, err := parseStoreID(bookingID)
		if err != nil {
			return nil, err
		}
		f.BookingID = &id
	}
	return s.Travellers.List(ctx, f)
}

// Get returns (nil, nil) for an unknown id.
func (s TravellerService) Get(ctx context.Context, id string) (*models.Traveller, error) {
	oid, err := parseStoreID(id)
	if err != nil {
		return nil, err
	}
	return s.Travellers.FindByID(ctx, oid)
}
