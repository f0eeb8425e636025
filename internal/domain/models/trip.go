package models

import (
	"time"

	"backoffice/internal/domain"
)

const (
	TripTypePackage = "package"
	TripStatusDraft = "draft"
)

// Trip is a sellable package (master data).
type Trip struct {
	ID                domain.ID        `json:"_id" bson:"_id"`
	TripName          string           `json:"tripName" bson:"tripName"`
	TripType          string           `json:"tripType" bson:"tripType"`
	Destination       *Destination     `json:"destination,omitempty" bson:"destination,omitempty"`
	Duration          *Duration        `json:"duration,omitempty" bson:"duration,omitempty"`
	StartLocation     string           `json:"startLocation,omitempty" bson:"startLocation,omitempty"`
	TransportMode     string           `json:"transportMode,omitempty" bson:"transportMode,omitempty"`
	AccommodationType string           `json:"accommodationType,omitempty" bson:"accommodationType,omitempty"`
	Itinerary         []ItineraryEntry `json:"itinerary" bson:"itinerary"`
	Pricing           Pricing          `json:"pricing" bson:"pricing"`
	Currency          string           `json:"currency" bson:"currency"`
	AvailableFrom     *time.Time       `json:"availableFrom,omitempty" bson:"availableFrom,omitempty"`
	AvailableTill     *time.Time       `json:"availableTill,omitempty" bson:"availableTill,omitempty"`
	MaxCapacity       *int             `json:"maxCapacity,omitempty" bson:"maxCapacity,omitempty"`
	AvailableSeats    *int             `json:"availableSeats,omitempty" bson:"availableSeats,omitempty"`
	Status            string           `json:"status" bson:"status"`
	IsCustomGenerated bool             `json:"isCustomGenerated" bson:"isCustomGenerated"`
	CreatedAt         time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt" bson:"updatedAt"`
}

type Destination struct {
	Country string `json:"country,omitempty" bson:"country,omitempty"`
	State   string `json:"state,omitempty" bson:"state,omitempty"`
	City    string `json:"city,omitempty" bson:"city,omitempty"`
}

type Duration struct {
	Days   int `json:"days" bson:"days" validate:"min=0"`
	Nights int `json:"nights" bson:"nights" validate:"min=0"`
}

// ItineraryEntry is one day's plan, embedded in the trip without its own id.
type ItineraryEntry struct {
	Day         int    `json:"day" bson:"day" validate:"min=0"`
	Title       string `json:"title,omitempty" bson:"title,omitempty"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

type Pricing struct {
	BasePrice  float64  `json:"basePrice" bson:"basePrice"`
	Tax        *float64 `json:"tax,omitempty" bson:"tax,omitempty"`
	GST        *float64 `json:"gst,omitempty" bson:"gst,omitempty"`
	Discount   *float64 `json:"discount,omitempty" bson:"discount,omitempty"`
	FinalPrice float64  `json:"finalPrice" bson:"finalPrice"`
}

type TripPayload struct {
	TripName          string           `json:"tripName" validate:"required"`
	TripType          string           `json:"tripType" validate:"omitempty,oneof=package custom"`
	Destination       *Destination     `json:"destination"`
	Duration          *Duration        `json:"duration"`
	StartLocation     string           `json:"startLocation"`
	TransportMode     string           `json:"transportMode" validate:"omitempty,oneof=flight train bus self"`
	AccommodationType string           `json:"accommodationType" validate:"omitempty,oneof=hotel homestay resort"`
	Itinerary         []ItineraryEntry `json:"itinerary" validate:"omitempty,dive"`
	Pricing           *PricingPayload  `json:"pricing" validate:"required"`
	Currency          string           `json:"currency" validate:"omitempty,len=3"`
	AvailableFrom     string           `json:"availableFrom"`
	AvailableTill     string           `json:"availableTill"`
	MaxCapacity       *int             `json:"maxCapacity" validate:"omitempty,min=0"`
	AvailableSeats    *int             `json:"availableSeats" validate:"omitempty,min=0"`
	Status            string           `json:"status" validate:"omitempty,oneof=draft active inactive expired"`
	IsCustomGenerated *bool            `json:"isCustomGenerated"`
}

type PricingPayload struct {
	BasePrice  *float64 `json:"basePrice" validate:"required"`
	Tax        *float64 `json:"tax"`
	GST        *float64 `json:"gst"`
	Discount   *float64 `json:"discount"`
	FinalPrice *float64 `json:"finalPrice" validate:"required"`
}
