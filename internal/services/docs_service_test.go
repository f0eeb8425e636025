package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
)

func TestDocsServiceGenerateVoucher(t *testing.T) {
	ret := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
	loader := func(_ context.Context, ref string) (*models.BookingDetail, error) {
		return &models.BookingDetail{
			Booking: models.Booking{
				BookingReference: ref,
				BookingStatus:    "confirmed",
				BookingType:      "package",
				BookingSource:    "website",
				DepartureDate:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
				ReturnDate:       &ret,
				Currency:         "INR",
				TotalAmount:      15000,
				AmountPaid:       5000,
				AmountDue:        10000,
				PaymentStatus:    "partial",
				Notes:            &models.BookingNotes{CustomerNote: "Window seats please"},
			},
			Customer:   &models.Customer{FullName: "Asha Rao", PhoneNumber: "9800000000"},
			Travellers: []models.Traveller{{FullName: "Asha Rao", MealPreference: "veg", SeatPreference: "window"}},
			Trip:       &models.Trip{TripName: "Goa Escape", Destination: &models.Destination{City: "Goa", Country: "India"}},
		}, nil
	}

	svc := DocsService{Loader: loader, Now: func() time.Time { return time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC) }}
	pdf, filename, err := svc.GenerateVoucher(context.Background(), "JW-M1ABC-XY12")
	if err != nil {
		t.Fatalf("GenerateVoucher returned error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	if filename != "voucher-JW-M1ABC-XY12.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestDocsServiceCustomBookingVoucher(t *testing.T) {
	loader := func(_ context.Context, ref string) (*models.BookingDetail, error) {
		return &models.BookingDetail{Booking: models.Booking{
			BookingReference: ref,
			BookingType:      models.BookingTypeCustom,
			CustomDetails: &models.CustomDetails{
				Destination:  "Ladakh",
				NumberOfDays: 6,
				BudgetRange:  &models.BudgetRange{Min: 50000, Max: 80000},
			},
			Cancellation: models.Cancellation{IsCancelled: true, CancellationReason: "weather"},
		}}, nil
	}
	pdf, _, err := DocsService{Loader: loader}.GenerateVoucher(context.Background(), "JW-1-AAAA")
	if err != nil || len(pdf) == 0 {
		t.Fatalf("GenerateVoucher returned %d bytes, err %v", len(pdf), err)
	}
}

func TestDocsServiceUnknownReference(t *testing.T) {
	f := newFixture()
	svc := New(f.stores(), Options{}).Docs

	_, _, err := svc.GenerateVoucher(context.Background(), "JW-NOPE-0000")
	if !domain.IsNotFound(err) || err.Error() != "Booking not found" {
		t.Fatalf("expected Booking not found, got %v", err)
	}
}
