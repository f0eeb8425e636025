package models

import (
	"time"

	"backoffice/internal/domain"
)

const (
	MealPreferenceAny = "any"
	SeatPreferenceAny = "any"
)

// Traveller is an individual who travels. It is usually created before the
// booking exists, so BookingID is optional.
type Traveller struct {
	ID                domain.ID  `json:"_id" bson:"_id"`
	BookingID         *domain.ID `json:"bookingId,omitempty" bson:"bookingId,omitempty"`
	FullName          string     `json:"fullName" bson:"fullName"`
	Gender            string     `json:"gender,omitempty" bson:"gender,omitempty"`
	DateOfBirth       *time.Time `json:"dateOfBirth,omitempty" bson:"dateOfBirth,omitempty"`
	Nationality       string     `json:"nationality,omitempty" bson:"nationality,omitempty"`
	PassportNumber    string     `json:"passportNumber,omitempty" bson:"passportNumber,omitempty"`
	PassportExpiry    *time.Time `json:"passportExpiry,omitempty" bson:"passportExpiry,omitempty"`
	VisaStatus        string     `json:"visaStatus,omitempty" bson:"visaStatus,omitempty"`
	MealPreference    string     `json:"mealPreference" bson:"mealPreference"`
	SeatPreference    string     `json:"seatPreference" bson:"seatPreference"`
	SpecialAssistance bool       `json:"specialAssistance" bson:"specialAssistance"`
	CreatedAt         time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// TravellerPayload is the create request body. "any" is part of the meal
// enum so the default is always a legal value.
type TravellerPayload struct {
	BookingID         string `json:"bookingId" validate:"omitempty,mongodb"`
	FullName          string `json:"fullName" validate:"required"`
	Gender            string `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	DateOfBirth       string `json:"dateOfBirth"`
	Nationality       string `json:"nationality"`
	PassportNumber    string `json:"passportNumber"`
	PassportExpiry    string `json:"passportExpiry"`
	VisaStatus        string `json:"visaStatus"`
	MealPreference    string `json:"mealPreference" validate:"omitempty,oneof=any veg non-veg vegan jain kosher halal"`
	SeatPreference    string `json:"seatPreference" validate:"omitempty,oneof=window aisle middle any"`
	SpecialAssistance *bool  `json:"specialAssistance"`
}
