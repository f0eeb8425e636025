package services

import (
	"backoffice/internal/domain"
	"backoffice/internal/repositories"
	"backoffice/internal/utils"
)

type Options struct {
	ReferencePrefix  string
	ReferenceRetries int
	Cache            BookingCache
	Auth             AuthService
}

// Services is every use case bound to one store backend.
type Services struct {
	Bookings   BookingService
	Customers  CustomerService
	Travellers TravellerService
	Trips      TripService
	Docs       DocsService
	Auth       AuthService
}

func New(st repositories.Stores, opts Options) Services {
	bookings := BookingService{
		Bookings:         st.Bookings,
		Customers:        st.Customers,
		Travellers:       st.Travellers,
		Trips:            st.Trips,
		Cache:            opts.Cache,
		References:       utils.ReferenceGenerator{Prefix: opts.ReferencePrefix},
		ReferenceRetries: opts.ReferenceRetries,
	}
	return Services{
		Bookings:   bookings,
		Customers:  CustomerService{Customers: st.Customers, Addresses: st.Addresses},
		Travellers: TravellerService{Travellers: st.Travellers},
		Trips:      TripService{Trips: st.Trips},
		Docs:       DocsService{Bookings: bookings},
		Auth:       opts.Auth,
	}
}

// parseStoreID parses a lookup id from a path or query string. A malformed id
// fails at the store boundary, like a cast error from the driver, and is
// reported as a server-side failure rather than a validation one.
func parseStoreID(raw string) (domain.ID, error) {
	id, err := domain.ParseID(raw)
	if err != nil {
		return domain.NilID, domain.StoreError{Op: "parse id", Err: err}
	}
	return id, nil
}
