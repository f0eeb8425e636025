package domain

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ID is a 12-byte ObjectID, shared by every store backend. It marshals to JSON
// as a 24-char hex string.
type ID = primitive.ObjectID

// NilID is the zero ID.
var NilID = primitive.NilObjectID

// NewID returns a fresh ObjectID.
func NewID() ID {
	return primitive.NewObjectID()
}

// ParseID parses a hex identifier.
func ParseID(s string) (ID, error) {
	return primitive.ObjectIDFromHex(strings.TrimSpace(s))
}

// ParseIDs parses every element or fails on the first malformed one.
func ParseIDs(in []string) ([]ID, error) {
	out := make([]ID, 0, len(in))
	for _, s := range in {
		id, err := ParseID(s)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

// BookingFilter narrows ListByFilter; empty fields are ignored.
type BookingFilter struct {
	BookingType   string
	BookingStatus string
}

// TripFilter narrows trip listing; City matches destination.city.
type TripFilter struct {
	Status   string
	TripType string
	City     string
}

// TravellerFilter narrows traveller listing. A nil BookingID lists everything.
type TravellerFilter struct {
	BookingID *ID
}

// Actor identifies the authenticated operator, when auth is enabled.
type Actor struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}
