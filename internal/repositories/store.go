package repositories

import (
	"context"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
)

// Every lookup returns (nil, nil) when no record matches; "not found" is an
// absent result, not an error. List methods order by createdAt descending.

type BookingStore interface {
	// Insert fails with domain.ConflictError when bookingReference is taken.
	Insert(ctx context.Context, b *models.Booking) error
	Find(ctx context.Context, f domain.BookingFilter) ([]models.Booking, error)
	FindByReference(ctx context.Context, ref string) (*models.Booking, error)
}

type CustomerStore interface {
	Insert(ctx context.Context, c *models.Customer) error
	List(ctx context.Context) ([]models.Customer, error)
	FindByID(ctx context.Context, id domain.ID) (*models.Customer, error)
	FindByIDs(ctx context.Context, ids []domain.ID) ([]models.Customer, error)
}

type AddressStore interface {
	Insert(ctx context.Context, a *models.Address) error
	FindByIDs(ctx context.Context, ids []domain.ID) ([]models.Address, error)
	// Delete removes an address written by a create that failed later on.
	// Deleting an unknown id is not an error.
	Delete(ctx context.Context, id domain.ID) error
}

type TravellerStore interface {
	Insert(ctx context.Context, t *models.Traveller) error
	List(ctx context.Context, f domain.TravellerFilter) ([]models.Traveller, error)
	FindByID(ctx context.Context, id domain.ID) (*models.Traveller, error)
	FindByIDs(ctx context.Context, ids []domain.ID) ([]models.Traveller, error)
}

type TripStore interface {
	Insert(ctx context.Context, t *models.Trip) error
	List(ctx context.Context, f domain.TripFilter) ([]models.Trip, error)
	FindByID(ctx context.Context, id domain.ID) (*models.Trip, error)
	FindByIDs(ctx context.Context, ids []domain.ID) ([]models.Trip, error)
}

// Stores bundles one backend's implementation of every collection.
type Stores struct {
	Bookings   BookingStore
	Customers  CustomerStore
	Addresses  AddressStore
	Travellers TravellerStore
	Trips      TripStore
}

// uniqueIDs drops duplicates while keeping first-seen order.
func uniqueIDs(ids []domain.ID) []domain.ID {
	seen := make(map[domain.ID]bool, len(ids))
	out := make([]domain.ID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
