package models

import (
	"encoding/json"
	"time"

	"backoffice/internal/domain"
)

// Customer is the person who books and pays.
type Customer struct {
	ID          domain.ID  `json:"_id" bson:"_id"`
	FullName    string     `json:"fullName" bson:"fullName"`
	Email       string     `json:"email,omitempty" bson:"email,omitempty"`
	PhoneNumber string     `json:"phoneNumber" bson:"phoneNumber"`
	Address     *domain.ID `json:"address,omitempty" bson:"address,omitempty"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// CustomerDetail carries the resolved address in place of its id.
type CustomerDetail struct {
	Customer
	Address *Address `json:"address,omitempty"`
}

type Address struct {
	ID         domain.ID `json:"_id" bson:"_id"`
	Street     string    `json:"street,omitempty" bson:"street,omitempty"`
	City       string    `json:"city,omitempty" bson:"city,omitempty"`
	State      string    `json:"state,omitempty" bson:"state,omitempty"`
	PostalCode string    `json:"postalCode,omitempty" bson:"postalCode,omitempty"`
	Country    string    `json:"country,omitempty" bson:"country,omitempty"`
}

// CustomerPayload accepts the address either as an existing id or as an
// embedded object to be stored alongside the customer.
type CustomerPayload struct {
	FullName    string          `json:"fullName" validate:"required"`
	Email       string          `json:"email" validate:"omitempty,email"`
	PhoneNumber string          `json:"phoneNumber" validate:"required"`
	Address     json.RawMessage `json:"address"`
}

type AddressPayload struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// IsEmpty reports whether every field is blank.
func (a AddressPayload) IsEmpty() bool {
	return a.Street == "" && a.City == "" && a.State == "" && a.PostalCode == "" && a.Country == ""
}
