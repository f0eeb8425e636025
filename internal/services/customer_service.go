package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/repositories"
	"backoffice/internal/utils"
)

type CustomerService struct {
	Customers repositories.CustomerStore
	Addresses repositories.AddressStore
	Now       func() time.Time
}

func (s CustomerService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

// Create stores a customer. An embedded address object is saved first and
// referenced by id; an id string is referenced as-is. When the customer write
// fails the embedded address is removed again.
func (s CustomerService) Create(ctx context.Context, p models.CustomerPayload) (*models.CustomerDetail, error) {
	p.FullName = utils.NormalizeSpace(p.FullName)
	p.Email = utils.NormalizeEmail(p.Email)
	p.PhoneNumber = utils.TrimOrEmpty(p.PhoneNumber)

	fields, err := checkStruct(p)
	if err != nil {
		return nil, domain.ValidationError{Msg: "invalid payload", Err: err}
	}
	addrID, addr, addrErr := parseAddressField(p.Address)
	if addrErr != nil {
		fields = mergeFieldErrors(fields, *addrErr)
	}
	if err := validationError(fields); err != nil {
		return nil, err
	}

	now := s.now()
	if addr != nil {
		addr.ID = domain.NewID()
		if err := s.Addresses.Insert(ctx, addr); err != nil {
			return nil, err
		}
		addrID = &addr.ID
	}

	c := models.Customer{
		ID:          domain.NewID(),
		FullName:    p.FullName,
		Email:       p.Email,
		PhoneNumber: p.PhoneNumber,
		Address:     addrID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	reqID := utils.RequestIDFrom(ctx)
	if err := s.Customers.Insert(ctx, &c); err != nil {
		if addr != nil {
			if derr := s.Addresses.Delete(ctx, addr.ID); derr != nil {
				utils.LogError(reqID, "customer", "rollback_address", derr)
			}
		}
		return nil, err
	}
	utils.LogEvent(reqID, "customer", "create", fmt.Sprintf("customer_id=%s", c.ID.Hex()))

	if addr == nil && addrID != nil {
		out, err := s.withAddresses(ctx, []models.Customer{c})
		if err != nil {
			return nil, err
		}
		return &out[0], nil
	}
	return &models.CustomerDetail{Customer: c, Address: addr}, nil
}

// List returns every customer, newest first, with addresses resolved.
func (s CustomerService) List(ctx context.Context) ([]models.CustomerDetail, error) {
	customers, err := s.Customers.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.withAddresses(ctx, customers)
}

// Get returns (nil, nil) for an unknown id. A malformed id is a store error.
func (s CustomerService) Get(ctx context.Context, id string) (*models.CustomerDetail, error) {
	oid, err := parseStoreID(id)
	if err != nil {
		return nil, err
	}
	c, err := s.Customers.FindByID(ctx, oid)
	if err != nil || c == nil {
		return nil, err
	}
	out, err := s.withAddresses(ctx, []models.Customer{*c})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s CustomerService) withAddresses(ctx context.Context, customers []models.Customer) ([]models.CustomerDetail, error) {
	var ids []domain.ID
	for _, c := range customers {
		if c.Address != nil {
			ids = append(ids, *c.Address)
		}
	}
	addresses, err := s.Addresses.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[domain.ID]*models.Address, len(addresses))
	for i := range addresses {
		byID[addresses[i].ID] = &addresses[i]
	}

	out := make([]models.CustomerDetail, 0, len(customers))
	for _, c := range customers {
		d := models.CustomerDetail{Customer: c}
		if c.Address != nil {
			d.Address = byID[*c.Address]
		}
		out = append(out, d)
	}
	return out, nil
}

// parseAddressField reads the address field as absent, an id string, or an
// embedded object. Exactly one of the first two results is set when present.
func parseAddressField(raw json.RawMessage) (*domain.ID, *models.Address, *domain.FieldError) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil, nil
	}
	bad := &domain.FieldError{Field: "address", Message: "must be an address id or an address object"}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, nil, bad
		}
		if utils.TrimOrEmpty(s) == "" {
			return nil, nil, nil
		}
		id, err := domain.ParseID(s)
		if err != nil {
			return nil, nil, &domain.FieldError{Field: "address", Message: "must be a valid id"}
		}
		return &id, nil, nil
	case '{':
		var p models.AddressPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, nil, bad
		}
		p = models.AddressPayload{
			Street:     utils.NormalizeSpace(p.Street),
			City:       utils.NormalizeSpace(p.City),
			State:      utils.NormalizeSpace(p.State),
			PostalCode: utils.TrimOrEmpty(p.PostalCode),
			Country:    utils.NormalizeSpace(p.Country),
		}
		if p.IsEmpty() {
			return nil, nil, nil
		}
		return nil, &models.Address{
			Street:     p.Street,
			City:       p.City,
			State:      p.State,
			PostalCode: p.PostalCode,
			Country:    p.Country,
		}, nil
	default:
		return nil, nil, bad
	}
}
