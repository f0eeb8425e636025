package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	intdb "backoffice/internal/db"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
)

// The MySQL backend keeps each record as a JSON document in a `doc` column.
// Only the fields used for filtering, ordering and uniqueness are promoted to
// real columns.
var mysqlSchema = []struct {
	table string
	ddl   string
}{
	{CollectionBookings, `
CREATE TABLE IF NOT EXISTS bookings (
	id CHAR(24) NOT NULL PRIMARY KEY,
	booking_reference VARCHAR(64) NOT NULL,
	booking_type VARCHAR(20) NOT NULL,
	booking_status VARCHAR(20) NOT NULL,
	customer_id CHAR(24) NOT NULL,
	created_at DATETIME(3) NOT NULL,
	doc JSON NOT NULL,
	UNIQUE KEY uniq_booking_reference (booking_reference),
	KEY idx_customer_created (customer_id, created_at),
	KEY idx_type_status (booking_type, booking_status, created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`},
	{CollectionCustomers, `
CREATE TABLE IF NOT EXISTS customers (
	id CHAR(24) NOT NULL PRIMARY KEY,
	created_at DATETIME(3) NOT NULL,
	doc JSON NOT NULL,
	KEY idx_created (created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`},
	{CollectionAddresses, `
CREATE TABLE IF NOT EXISTS addresses (
	id CHAR(24) NOT NULL PRIMARY KEY,
	created_at DATETIME(3) NOT NULL,
	doc JSON NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`},
	{CollectionTravellers, `
CREATE TABLE IF NOT EXISTS travellers (
	id CHAR(24) NOT NULL PRIMARY KEY,
	booking_id CHAR(24) NULL,
	created_at DATETIME(3) NOT NULL,
	doc JSON NOT NULL,
	KEY idx_booking (booking_id, created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`},
	{CollectionTrips, `
CREATE TABLE IF NOT EXISTS trips (
	id CHAR(24) NOT NULL PRIMARY KEY,
	trip_name VARCHAR(255) NOT NULL,
	trip_type VARCHAR(20) NOT NULL,
	status VARCHAR(20) NOT NULL,
	city VARCHAR(120) NULL,
	created_at DATETIME(3) NOT NULL,
	doc JSON NOT NULL,
	KEY idx_trip_name (trip_name),
	KEY idx_status (status),
	KEY idx_city (city)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`},
}

// EnsureMySQLSchema creates missing tables. An existing table without a doc
// column belongs to some other schema and is reported instead of reused.
func EnsureMySQLSchema(ctx context.Context, db *sql.DB) error {
	for _, s := range mysqlSchema {
		if intdb.HasTable(ctx, db, s.table) {
			if !intdb.HasColumn(ctx, db, s.table, "doc") {
				return domain.StoreError{Op: "check table " + s.table, Err: fmt.Errorf("table %s exists without a doc column", s.table)}
			}
			continue
		}
		if _, err := db.ExecContext(ctx, s.ddl); err != nil {
			return domain.StoreError{Op: "create table " + s.table, Err: err}
		}
	}
	return nil
}

// NewMySQLStores binds every collection to a table in db.
func NewMySQLStores(db *sql.DB) Stores {
	return Stores{
		Bookings:   MySQLBookingRepo{docs: sqlDocs[models.Booking]{db: db, table: CollectionBookings, name: "booking"}},
		Customers:  MySQLCustomerRepo{docs: sqlDocs[models.Customer]{db: db, table: CollectionCustomers, name: "customer"}},
		Addresses:  MySQLAddressRepo{docs: sqlDocs[models.Address]{db: db, table: CollectionAddresses, name: "address"}},
		Travellers: MySQLTravellerRepo{docs: sqlDocs[models.Traveller]{db: db, table: CollectionTravellers, name: "traveller"}},
		Trips:      MySQLTripRepo{docs: sqlDocs[models.Trip]{db: db, table: CollectionTrips, name: "trip"}},
	}
}

type sqlDocs[T any] struct {
	db    *sql.DB
	table string
	name  string
}

func (s sqlDocs[T]) insert(ctx context.Context, id domain.ID, createdAt time.Time, cols []string, vals []any, doc *T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return domain.StoreError{Op: "encode " + s.name, Err: err}
	}

	allCols := append([]string{"id"}, cols...)
	allCols = append(allCols, "created_at", "doc")
	args := append([]any{id.Hex()}, vals...)
	args = append(args, createdAt, raw)

	q := `INSERT INTO ` + s.table + ` (` + strings.Join(allCols, ",") + `) VALUES (` + intdb.Placeholders(len(allCols)) + `)`
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		if intdb.IsDuplicateEntry(err) {
			return domain.ConflictError{Resource: s.name, Msg: "duplicate key", Err: err}
		}
		return domain.StoreError{Op: "insert " + s.name, Err: err}
	}
	return nil
}

func (s sqlDocs[T]) delete(ctx context.Context, id domain.ID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM `+s.table+` WHERE id=?`, id.Hex()); err != nil {
		return domain.StoreError{Op: "delete " + s.name, Err: err}
	}
	return nil
}

func (s sqlDocs[T]) query(ctx context.Context, where []string, args []any) ([]T, error) {
	q := `SELECT doc FROM ` + s.table
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, domain.StoreError{Op: "find " + s.name, Err: err}
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, domain.StoreError{Op: "scan " + s.name, Err: err}
		}
		var doc T
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, domain.StoreError{Op: "decode " + s.name, Err: err}
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreError{Op: "find " + s.name, Err: err}
	}
	return out, nil
}

func (s sqlDocs[T]) queryOne(ctx context.Context, where string, args ...any) (*T, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM `+s.table+` WHERE `+where+` LIMIT 1`, args...).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.StoreError{Op: "find one " + s.name, Err: err}
	}
	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, domain.StoreError{Op: "decode " + s.name, Err: err}
	}
	return &doc, nil
}

func (s sqlDocs[T]) byIDs(ctx context.Context, ids []domain.ID) ([]T, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return []T{}, nil
	}
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id.Hex())
	}
	return s.query(ctx, []string{`id IN (` + intdb.Placeholders(len(ids)) + `)`}, args)
}

type MySQLBookingRepo struct {
	docs sqlDocs[models.Booking]
}

func (r MySQLBookingRepo) Insert(ctx context.Context, b *models.Booking) error {
	return r.docs.insert(ctx, b.ID, b.CreatedAt,
		[]string{"booking_reference", "booking_type", "booking_status", "customer_id"},
		[]any{b.BookingReference, b.BookingType, b.BookingStatus, b.CustomerID.Hex()},
		b)
}

func (r MySQLBookingRepo) Find(ctx context.Context, f domain.BookingFilter) ([]models.Booking, error) {
	where := []string{}
	args := []any{}
	if f.BookingType != "" {
		where = append(where, "booking_type=?")
		args = append(args, f.BookingType)
	}
	if f.BookingStatus != "" {
		where = append(where, "booking_status=?")
		args = append(args, f.BookingStatus)
	}
	return r.docs.query(ctx, where, args)
}

func (r MySQLBookingRepo) FindByReference(ctx context.Context, ref string) (*models.Booking, error) {
	return r.docs.queryOne(ctx, "booking_reference=?", ref)
}

type MySQLCustomerRepo struct {
	docs sqlDocs[models.Customer]
}

func (r MySQLCustomerRepo) Insert(ctx context.Context, c *models.Customer) error {
	return r.docs.insert(ctx, c.ID, c.CreatedAt, nil, nil, c)
}

func (r MySQLCustomerRepo) List(ctx context.Context) ([]models.Customer, error) {
	return r.docs.query(ctx, nil, nil)
}

func (r MySQLCustomerRepo) FindByID(ctx context.Context, id domain.ID) (*models.Customer, error) {
	return r.docs.queryOne(ctx, "id=?", id.Hex())
}

func (r MySQLCustomerRepo) FindByIDs(ctx context.Context, ids []domain.ID) ([]models.Customer, error) {
	return r.docs.byIDs(ctx, ids)
}

type MySQLAddressRepo struct {
	docs sqlDocs[models.Address]
}

func (r MySQLAddressRepo) Insert(ctx context.Context, a *models.Address) error {
	return r.docs.insert(ctx, a.ID, a.ID.Timestamp().UTC(), nil, nil, a)
}

func (r MySQLAddressRepo) Delete(ctx context.Context, id domain.ID) error {
	return r.docs.delete(ctx, id)
}

func (r MySQLAddressRepo) FindByIDs(ctx context.Context, ids []domain.ID) ([]models.Address, error) {
	return r.docs.byIDs(ctx, ids)
}

type MySQLTravellerRepo struct {
	docs sqlDocs[models.Traveller]
}

func (r MySQLTravellerRepo) Insert(ctx context.Context, t *models.Traveller) error {
	var bookingID any
	if t.BookingID != nil {
		bookingID = t.BookingID.Hex()
	}
	return r.docs.insert(ctx, t.ID, t.CreatedAt, []string{"booking_id"}, []any{bookingID}, t)
}

func (r MySQLTravellerRepo) List(ctx context.Context, f domain.TravellerFilter) ([]models.Traveller, error) {
	if f.BookingID != nil {
		return r.docs.query(ctx, []string{"booking_id=?"}, []any{f.BookingID.Hex()})
	}
	return r.docs.query(ctx, nil, nil)
}

func (r MySQLTravellerRepo) FindByID(ctx context.Context, id domain.ID) (*models.Traveller, error) {
	return r.docs.queryOne(ctx, "id=?", id.Hex())
}

func (r MySQLTravellerRepo) FindByIDs(ctx context.Context, ids []domain.ID) ([]models.Traveller, error) {
	return r.docs.byIDs(ctx, ids)
}

type MySQLTripRepo struct {
	docs sqlDocs[models.Trip]
}

func (r MySQLTripRepo) Insert(ctx context.Context, t *models.Trip) error {
	var city any
	if t.Destination != nil && t.Destination.City != "" {
		city = t.Destination.City
	}
	return r.docs.insert(ctx, t.ID, t.CreatedAt,
		[]string{"trip_name", "trip_type", "status", "city"},
		[]any{t.TripName, t.TripType, t.Status, city},
		t)
}

func (r MySQLTripRepo) List(ctx context.Context, f domain.TripFilter) ([]models.Trip, error) {
	where := []string{}
	args := []any{}
	if f.Status != "" {
		where = append(where, "status=?")
		args = append(args, f.Status)
	}
	if f.TripType != "" {
		where = append(where, "trip_type=?")
		args = append(args, f.TripType)
	}
	if f.City != "" {
		where = append(where, "city=?")
		args = append(args, f.City)
	}
	return r.docs.query(ctx, where, args)
}

func (r MySQLTripRepo) FindByID(ctx context.Context, id domain.ID) (*models.Trip, error) {
	return r.docs.queryOne(ctx, "id=?", id.Hex())
}

func (r MySQLTripRepo) FindByIDs(ctx context.Context, ids []domain.ID) ([]models.Trip, error) {
	return r.docs.byIDs(ctx, ids)
}
