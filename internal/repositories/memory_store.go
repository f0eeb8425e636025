package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
)

// NewMemoryStores returns process-local stores. Data is lost on restart; it
// serves local runs without a database and HTTP tests.
func NewMemoryStores() Stores {
	return Stores{
		Bookings:   &MemoryBookingRepo{docs: newMemDocs(func(b models.Booking) (domain.ID, time.Time) { return b.ID, b.CreatedAt })},
		Customers:  &MemoryCustomerRepo{docs: newMemDocs(func(c models.Customer) (domain.ID, time.Time) { return c.ID, c.CreatedAt })},
		Addresses:  &MemoryAddressRepo{docs: newMemDocs(func(a models.Address) (domain.ID, time.Time) { return a.ID, a.ID.Timestamp() })},
		Travellers: &MemoryTravellerRepo{docs: newMemDocs(func(t models.Traveller) (domain.ID, time.Time) { return t.ID, t.CreatedAt })},
		Trips:      &MemoryTripRepo{docs: newMemDocs(func(t models.Trip) (domain.ID, time.Time) { return t.ID, t.CreatedAt })},
	}
}

type memDocs[T any] struct {
	mu   sync.RWMutex
	rows []T
	key  func(T) (domain.ID, time.Time)
}

func newMemDocs[T any](key func(T) (domain.ID, time.Time)) *memDocs[T] {
	return &memDocs[T]{key: key}
}

func (m *memDocs[T]) insert(doc T, conflict func(T) bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, _ := m.key(doc)
	for _, r := range m.rows {
		if rid, _ := m.key(r); rid == id || (conflict != nil && conflict(r)) {
			return domain.ConflictError{Resource: "record", Msg: "duplicate key"}
		}
	}
	m.rows = append(m.rows, doc)
	return nil
}

// find returns matching rows, newest first.
func (m *memDocs[T]) find(keep func(T) bool) []T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []T{}
	for _, r := range m.rows {
		if keep == nil || keep(r) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ii, ti := m.key(out[i])
		ji, tj := m.key(out[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return ii.Hex() > ji.Hex()
	})
	return out
}

func (m *memDocs[T]) remove(id domain.ID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.rows {
		if rid, _ := m.key(r); rid == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return
		}
	}
}

func (m *memDocs[T]) findOne(keep func(T) bool) *T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.rows {
		if keep(r) {
			cp := r
			return &cp
		}
	}
	return nil
}

func (m *memDocs[T]) byID(id domain.ID) *T {
	return m.findOne(func(r T) bool { rid, _ := m.key(r); return rid == id })
}

func (m *memDocs[T]) byIDs(ids []domain.ID) []T {
	want := make(map[domain.ID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	if len(want) == 0 {
		return []T{}
	}
	return m.find(func(r T) bool { rid, _ := m.key(r); return want[rid] })
}

type MemoryBookingRepo struct{ docs *memDocs[models.Booking] }

func (r *MemoryBookingRepo) Insert(_ context.Context, b *models.Booking) error {
	err := r.docs.insert(*b, func(o models.Booking) bool { return o.BookingReference == b.BookingReference })
	if err != nil {
		return domain.ConflictError{Resource: "booking", Msg: "duplicate key", Err: err}
	}
	return nil
}

func (r *MemoryBookingRepo) Find(_ context.Context, f domain.BookingFilter) ([]models.Booking, error) {
	return r.docs.find(func(b models.Booking) bool {
		return (f.BookingType == "" || b.BookingType == f.BookingType) &&
			(f.BookingStatus == "" || b.BookingStatus == f.BookingStatus)
	}), nil
}

func (r *MemoryBookingRepo) FindByReference(_ context.Context, ref string) (*models.Booking, error) {
	return r.docs.findOne(func(b models.Booking) bool { return b.BookingReference == ref }), nil
}

type MemoryCustomerRepo struct{ docs *memDocs[models.Customer] }

func (r *MemoryCustomerRepo) Insert(_ context.Context, c *models.Customer) error {
	return r.docs.insert(*c, nil)
}

func (r *MemoryCustomerRepo) List(context.Context) ([]models.Customer, error) {
	return r.docs.find(nil), nil
}

func (r *MemoryCustomerRepo) FindByID(_ context.Context, id domain.ID) (*models.Customer, error) {
	return r.docs.byID(id), nil
}

func (r *MemoryCustomerRepo) FindByIDs(_ context.Context, ids []domain.ID) ([]models.Customer, error) {
	return r.docs.byIDs(ids), nil
}

type MemoryAddressRepo struct{ docs *memDocs[models.Address] }

func (r *MemoryAddressRepo) Insert(_ context.Context, a *models.Address) error {
	return r.docs.insert(*a, nil)
}

func (r *MemoryAddressRepo) Delete(_ context.Context, id domain.ID) error {
	r.docs.remove(id)
	return nil
}

func (r *MemoryAddressRepo) FindByIDs(_ context.Context, ids []domain.ID) ([]models.Address, error) {
	return r.docs.byIDs(ids), nil
}

type MemoryTravellerRepo struct{ docs *memDocs[models.Traveller] }

func (r *MemoryTravellerRepo) Insert(_ context.Context, t *models.Traveller) error {
	return r.docs.insert(*t, nil)
}

func (r *MemoryTravellerRepo) List(_ context.Context, f domain.TravellerFilter) ([]models.Traveller, error) {
	return r.docs.find(func(t models.Traveller) bool {
		return f.BookingID == nil || (t.BookingID != nil && *t.BookingID == *f.BookingID)
	}), nil
}

func (r *MemoryTravellerRepo) FindByID(_ context.Context, id domain.ID) (*models.Traveller, error) {
	return r.docs.byID(id), nil
}

func (r *MemoryTravellerRepo) FindByIDs(_ context.Context, ids []domain.ID) ([]models.Traveller, error) {
	return r.docs.byIDs(ids), nil
}

type MemoryTripRepo struct{ docs *memDocs[models.Trip] }

func (r *MemoryTripRepo) Insert(_ context.Context, t *models.Trip) error {
	return r.docs.insert(*t, nil)
}

func (r *MemoryTripRepo) List(_ context.Context, f domain.TripFilter) ([]models.Trip, error) {
	return r.docs.find(func(t models.Trip) bool {
		if f.Status != "" && t.Status != f.Status {
			return false
		}
		if f.TripType != "" && t.TripType != f.TripType {
			return false
		}
		return f.City == "" || (t.Destination != nil && t.Destination.City == f.City)
	}), nil
}

func (r *MemoryTripRepo) FindByID(_ context.Context, id domain.ID) (*models.Trip, error) {
	return r.docs.byID(id), nil
}

func (r *MemoryTripRepo) FindByIDs(_ context.Context, ids []domain.ID) ([]models.Trip, error) {
	return r.docs.byIDs(ids), nil
}
