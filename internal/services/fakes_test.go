package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/repositories"
)

var errStoreDown = errors.New("store down")

// The fixture runs on the memory backend. The wrappers below only count
// calls and inject failures.

type recordingBookings struct {
	repositories.BookingStore
	mu       sync.Mutex
	inserts  int
	failWith error
	// taken marks references the store rejects as duplicates.
	taken map[string]bool
}

func (s *recordingBookings) Insert(ctx context.Context, b *models.Booking) error {
	s.mu.Lock()
	s.inserts++
	failWith, taken := s.failWith, s.taken[b.BookingReference]
	s.mu.Unlock()

	if failWith != nil {
		return domain.StoreError{Op: "insert booking", Err: failWith}
	}
	if taken {
		return domain.ConflictError{Resource: "booking", Msg: "duplicate key"}
	}
	return s.BookingStore.Insert(ctx, b)
}

func (s *recordingBookings) Find(ctx context.Context, f domain.BookingFilter) ([]models.Booking, error) {
	if s.failWith != nil {
		return nil, domain.StoreError{Op: "find booking", Err: s.failWith}
	}
	return s.BookingStore.Find(ctx, f)
}

func (s *recordingBookings) FindByReference(ctx context.Context, ref string) (*models.Booking, error) {
	if s.failWith != nil {
		return nil, domain.StoreError{Op: "find booking", Err: s.failWith}
	}
	return s.BookingStore.FindByReference(ctx, ref)
}

type countingCustomers struct {
	repositories.CustomerStore
	calls      int
	failInsert error
}

func (s *countingCustomers) Insert(ctx context.Context, c *models.Customer) error {
	if s.failInsert != nil {
		return domain.StoreError{Op: "insert customer", Err: s.failInsert}
	}
	return s.CustomerStore.Insert(ctx, c)
}

func (s *countingCustomers) FindByIDs(ctx context.Context, ids []domain.ID) ([]models.Customer, error) {
	s.calls++
	return s.CustomerStore.FindByIDs(ctx, ids)
}

func (s *countingCustomers) seed(c models.Customer) {
	_ = s.CustomerStore.Insert(context.Background(), &c)
}

func (s *countingCustomers) count() int {
	all, _ := s.CustomerStore.List(context.Background())
	return len(all)
}

// trackedAddresses remembers every id written so tests can check what is
// still stored.
type trackedAddresses struct {
	repositories.AddressStore
	ids []domain.ID
}

func (s *trackedAddresses) Insert(ctx context.Context, a *models.Address) error {
	if err := s.AddressStore.Insert(ctx, a); err != nil {
		return err
	}
	s.ids = append(s.ids, a.ID)
	return nil
}

func (s *trackedAddresses) seed(a models.Address) {
	_ = s.Insert(context.Background(), &a)
}

func (s *trackedAddresses) count() int {
	got, _ := s.AddressStore.FindByIDs(context.Background(), s.ids)
	return len(got)
}

type countingTravellers struct {
	repositories.TravellerStore
	calls int
}

func (s *countingTravellers) FindByIDs(ctx context.Context, ids []domain.ID) ([]models.Traveller, error) {
	s.calls++
	return s.TravellerStore.FindByIDs(ctx, ids)
}

func (s *countingTravellers) seed(t models.Traveller) {
	_ = s.TravellerStore.Insert(context.Background(), &t)
}

type countingTrips struct {
	repositories.TripStore
	calls int
}

func (s *countingTrips) FindByIDs(ctx context.Context, ids []domain.ID) ([]models.Trip, error) {
	s.calls++
	return s.TripStore.FindByIDs(ctx, ids)
}

func (s *countingTrips) seed(t models.Trip) {
	_ = s.TripStore.Insert(context.Background(), &t)
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]*models.BookingDetail
	gets    int
	failGet bool
}

func (c *fakeCache) Get(_ context.Context, ref string) (*models.BookingDetail, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.failGet {
		return nil, errors.New("cache unavailable")
	}
	return c.entries[ref], nil
}

func (c *fakeCache) Set(_ context.Context, ref string, d *models.BookingDetail) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = map[string]*models.BookingDetail{}
	}
	c.entries[ref] = d
	return nil
}

// stepClock returns a clock that advances by step on every call.
func stepClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	next := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := next
		next = next.Add(step)
		return t
	}
}

type fixture struct {
	bookings   *recordingBookings
	customers  *countingCustomers
	addresses  *trackedAddresses
	travellers *countingTravellers
	trips      *countingTrips
}

func newFixture() fixture {
	mem := repositories.NewMemoryStores()
	return fixture{
		bookings:   &recordingBookings{BookingStore: mem.Bookings},
		customers:  &countingCustomers{CustomerStore: mem.Customers},
		addresses:  &trackedAddresses{AddressStore: mem.Addresses},
		travellers: &countingTravellers{TravellerStore: mem.Travellers},
		trips:      &countingTrips{TripStore: mem.Trips},
	}
}

func (f fixture) stores() repositories.Stores {
	return repositories.Stores{
		Bookings:   f.bookings,
		Customers:  f.customers,
		Addresses:  f.addresses,
		Travellers: f.travellers,
		Trips:      f.trips,
	}
}

func (f fixture) bookingService() BookingService {
	return BookingService{
		Bookings:         f.bookings,
		Customers:        f.customers,
		Travellers:       f.travellers,
		Trips:            f.trips,
		ReferenceRetries: 3,
		Now:              stepClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Second),
	}
}

func ptr[T any](v T) *T { return &v }
