package models

import (
	"time"

	"backoffice/internal/domain"
)

const (
	BookingTypePackage = "package"
	BookingTypeHotel   = "hotel"
	BookingTypeFlight  = "flight"
	BookingTypeBus     = "bus"
	BookingTypeCustom  = "custom"

	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
	BookingStatusOnHold    = "on-hold"

	PaymentStatusPending = "pending"

	BookingSourceWebsite = "website"

	DefaultCurrency = "INR"
)

// Booking is the aggregate root. References to other entities are stored as ids
// and resolved by the workflow on read (see BookingDetail).
type Booking struct {
	ID               domain.ID      `json:"_id" bson:"_id"`
	BookingReference string         `json:"bookingReference" bson:"bookingReference"`
	BookingStatus    string         `json:"bookingStatus" bson:"bookingStatus"`
	BookingSource    string         `json:"bookingSource" bson:"bookingSource"`
	BookingType      string         `json:"bookingType" bson:"bookingType"`
	CustomDetails    *CustomDetails `json:"customDetails,omitempty" bson:"customDetails,omitempty"`

	CustomerID domain.ID   `json:"customerId" bson:"customerId"`
	Travellers []domain.ID `json:"travellers" bson:"travellers"`
	Address    *domain.ID  `json:"address,omitempty" bson:"address,omitempty"`
	TripID     *domain.ID  `json:"tripId,omitempty" bson:"tripId,omitempty"`

	DepartureDate  time.Time  `json:"departureDate" bson:"departureDate"`
	ReturnDate     *time.Time `json:"returnDate,omitempty" bson:"returnDate,omitempty"`
	NumberOfDays   *int       `json:"numberOfDays,omitempty" bson:"numberOfDays,omitempty"`
	NumberOfNights *int       `json:"numberOfNights,omitempty" bson:"numberOfNights,omitempty"`

	Currency       string        `json:"currency" bson:"currency"`
	PriceBreakup   *PriceBreakup `json:"priceBreakup,omitempty" bson:"priceBreakup,omitempty"`
	TotalAmount    float64       `json:"totalAmount" bson:"totalAmount"`
	AmountPaid     float64       `json:"amountPaid" bson:"amountPaid"`
	AmountDue      float64       `json:"amountDue" bson:"amountDue"`
	PaymentStatus  string        `json:"paymentStatus" bson:"paymentStatus"`
	PaymentMethod  string        `json:"paymentMethod,omitempty" bson:"paymentMethod,omitempty"`
	PaymentGateway string        `json:"paymentGateway,omitempty" bson:"paymentGateway,omitempty"`
	TransactionID  string        `json:"transactionId,omitempty" bson:"transactionId,omitempty"`

	Cancellation Cancellation `json:"cancellation" bson:"cancellation"`

	AssignedAgent *domain.ID    `json:"assignedAgent,omitempty" bson:"assignedAgent,omitempty"`
	Notes         *BookingNotes `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedBy     string        `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	UpdatedBy     string        `json:"updatedBy,omitempty" bson:"updatedBy,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type CustomDetails struct {
	TripName          string       `json:"tripName,omitempty" bson:"tripName,omitempty"`
	Destination       string       `json:"destination" bson:"destination"`
	NumberOfDays      int          `json:"numberOfDays" bson:"numberOfDays"`
	NumberOfNights    *int         `json:"numberOfNights,omitempty" bson:"numberOfNights,omitempty"`
	StartDate         *time.Time   `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate           *time.Time   `json:"endDate,omitempty" bson:"endDate,omitempty"`
	TransportMode     string       `json:"transportMode,omitempty" bson:"transportMode,omitempty"`
	AccommodationType string       `json:"accommodationType,omitempty" bson:"accommodationType,omitempty"`
	BudgetRange       *BudgetRange `json:"budgetRange,omitempty" bson:"budgetRange,omitempty"`
}

type BudgetRange struct {
	Min float64 `json:"min" bson:"min"`
	Max float64 `json:"max" bson:"max"`
}

type PriceBreakup struct {
	BaseFare       *float64 `json:"baseFare,omitempty" bson:"baseFare,omitempty"`
	Taxes          *float64 `json:"taxes,omitempty" bson:"taxes,omitempty"`
	Discount       *float64 `json:"discount,omitempty" bson:"discount,omitempty"`
	ConvenienceFee *float64 `json:"convenienceFee,omitempty" bson:"convenienceFee,omitempty"`
	GST            *float64 `json:"gst,omitempty" bson:"gst,omitempty"`
}

type Cancellation struct {
	IsCancelled        bool       `json:"isCancelled" bson:"isCancelled"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty" bson:"cancelledAt,omitempty"`
	CancelledBy        string     `json:"cancelledBy,omitempty" bson:"cancelledBy,omitempty"`
	CancellationReason string     `json:"cancellationReason,omitempty" bson:"cancellationReason,omitempty"`
	RefundAmount       *float64   `json:"refundAmount,omitempty" bson:"refundAmount,omitempty"`
	RefundStatus       string     `json:"refundStatus,omitempty" bson:"refundStatus,omitempty"`
}

type BookingNotes struct {
	CustomerNote string `json:"customerNote,omitempty" bson:"customerNote,omitempty"`
	InternalNote string `json:"internalNote,omitempty" bson:"internalNote,omitempty"`
}

// BookingDetail is a booking with customerId, travellers and tripId replaced by
// the referenced records. The outer fields shadow the embedded ids in JSON.
type BookingDetail struct {
	Booking
	Customer   *Customer   `json:"customerId"`
	Travellers []Traveller `json:"travellers"`
	Trip       *Trip       `json:"tripId"`
}

// BookingPayload is the create request body. Pointers mark presence for
// numeric fields where zero is a legal value.
type BookingPayload struct {
	BookingReference string `json:"bookingReference" validate:"omitempty,max=64"`
	BookingType      string `json:"bookingType" validate:"required,oneof=package hotel flight bus custom"`
	BookingStatus    string `json:"bookingStatus" validate:"omitempty,oneof=pending confirmed cancelled completed on-hold"`
	BookingSource    string `json:"bookingSource" validate:"omitempty,oneof=website mobile agent admin"`

	CustomDetails *CustomDetailsPayload `json:"customDetails"`

	CustomerID    string   `json:"customerId" validate:"required,mongodb"`
	Travellers    []string `json:"travellers" validate:"required,min=1,dive,required,mongodb"`
	Address       string   `json:"address" validate:"omitempty,mongodb"`
	TripID        string   `json:"tripId" validate:"omitempty,mongodb"`
	AssignedAgent string   `json:"assignedAgent" validate:"omitempty,mongodb"`

	DepartureDate  string `json:"departureDate" validate:"required"`
	ReturnDate     string `json:"returnDate"`
	NumberOfDays   *int   `json:"numberOfDays" validate:"omitempty,min=0"`
	NumberOfNights *int   `json:"numberOfNights" validate:"omitempty,min=0"`

	Currency       string        `json:"currency" validate:"omitempty,len=3"`
	PriceBreakup   *PriceBreakup `json:"priceBreakup"`
	TotalAmount    *float64      `json:"totalAmount" validate:"required"`
	AmountPaid     *float64      `json:"amountPaid" validate:"omitempty,min=0"`
	AmountDue      *float64      `json:"amountDue" validate:"omitempty,min=0"`
	PaymentStatus  string        `json:"paymentStatus" validate:"omitempty,oneof=pending paid partial failed refunded"`
	PaymentMethod  string        `json:"paymentMethod" validate:"omitempty,oneof=upi card netbanking wallet cash"`
	PaymentGateway string        `json:"paymentGateway"`
	TransactionID  string        `json:"transactionId"`

	Cancellation *CancellationPayload `json:"cancellation"`
	Notes        *BookingNotes        `json:"notes"`
}

type CustomDetailsPayload struct {
	TripName          string              `json:"tripName"`
	Destination       string              `json:"destination"`
	NumberOfDays      *int                `json:"numberOfDays" validate:"omitempty,min=0"`
	NumberOfNights    *int                `json:"numberOfNights" validate:"omitempty,min=0"`
	StartDate         string              `json:"startDate"`
	EndDate           string              `json:"endDate"`
	TransportMode     string              `json:"transportMode" validate:"omitempty,oneof=flight train bus self"`
	AccommodationType string              `json:"accommodationType" validate:"omitempty,oneof=hotel homestay resort"`
	BudgetRange       *BudgetRangePayload `json:"budgetRange"`
}

type BudgetRangePayload struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

type CancellationPayload struct {
	IsCancelled        bool     `json:"isCancelled"`
	CancelledAt        string   `json:"cancelledAt"`
	CancelledBy        string   `json:"cancelledBy" validate:"omitempty,oneof=user admin vendor"`
	CancellationReason string   `json:"cancellationReason"`
	RefundAmount       *float64 `json:"refundAmount" validate:"omitempty,min=0"`
	RefundStatus       string   `json:"refundStatus" validate:"omitempty,oneof=pending processed failed"`
}
