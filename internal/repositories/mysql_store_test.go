package repositories

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func newMockStores(t *testing.T) (Stores, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewMySQLStores(db), mock
}

func bookingDoc(t *testing.T, b models.Booking) []byte {
	t.Helper()
	raw, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal booking: %v", err)
	}
	return raw
}

func TestMySQLBookingInsertPromotesColumns(t *testing.T) {
	stores, mock := newMockStores(t)

	b := &models.Booking{
		ID:               domain.NewID(),
		BookingReference: "JW-M1ABC-XY12",
		BookingType:      models.BookingTypePackage,
		BookingStatus:    models.BookingStatusPending,
		CustomerID:       domain.NewID(),
		CreatedAt:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	mock.ExpectExec("INSERT INTO bookings \\(id,booking_reference,booking_type,booking_status,customer_id,created_at,doc\\)").
		WithArgs(b.ID.Hex(), b.BookingReference, "package", "pending", b.CustomerID.Hex(), b.CreatedAt, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := stores.Bookings.Insert(context.Background(), b); err != nil {
		t.Fatalf("insert error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMySQLBookingInsertDuplicateReferenceIsConflict(t *testing.T) {
	stores, mock := newMockStores(t)

	mock.ExpectExec("INSERT INTO bookings").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'JW-1-AAAA' for key 'uniq_booking_reference'"})

	err := stores.Bookings.Insert(context.Background(), &models.Booking{ID: domain.NewID(), BookingReference: "JW-1-AAAA"})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestMySQLBookingInsertFailureIsStoreError(t *testing.T) {
	stores, mock := newMockStores(t)

	mock.ExpectExec("INSERT INTO bookings").WillReturnError(&mysql.MySQLError{Number: 1205, Message: "Lock wait timeout"})

	err := stores.Bookings.Insert(context.Background(), &models.Booking{ID: domain.NewID()})
	if !domain.IsStore(err) || domain.IsConflict(err) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestMySQLBookingFindAppliesFiltersAndOrder(t *testing.T) {
	stores, mock := newMockStores(t)

	newer := models.Booking{ID: domain.NewID(), BookingReference: "JW-2-BBBB", BookingType: "flight", BookingStatus: "confirmed"}
	older := models.Booking{ID: domain.NewID(), BookingReference: "JW-1-AAAA", BookingType: "flight", BookingStatus: "confirmed"}

	mock.ExpectQuery("SELECT doc FROM bookings WHERE booking_type=\\? AND booking_status=\\? ORDER BY created_at DESC, id DESC").
		WithArgs("flight", "confirmed").
		WillReturnRows(sqlmock.NewRows([]string{"doc"}).
			AddRow(bookingDoc(t, newer)).
			AddRow(bookingDoc(t, older)))

	got, err := stores.Bookings.Find(context.Background(), domain.BookingFilter{BookingType: "flight", BookingStatus: "confirmed"})
	if err != nil {
		t.Fatalf("find error: %v", err)
	}
	if len(got) != 2 || got[0].BookingReference != "JW-2-BBBB" || got[1].ID != older.ID {
		t.Fatalf("unexpected result %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMySQLBookingFindWithoutFilters(t *testing.T) {
	stores, mock := newMockStores(t)

	mock.ExpectQuery("SELECT doc FROM bookings ORDER BY created_at DESC, id DESC").
		WillReturnRows(sqlmock.NewRows([]string{"doc"}))

	got, err := stores.Bookings.Find(context.Background(), domain.BookingFilter{})
	if err != nil {
		t.Fatalf("find error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestMySQLBookingFindByReferenceMissingIsNil(t *testing.T) {
	stores, mock := newMockStores(t)

	mock.ExpectQuery("SELECT doc FROM bookings WHERE booking_reference=\\? LIMIT 1").
		WithArgs("JW-NOPE-0000").
		WillReturnRows(sqlmock.NewRows([]string{"doc"}))

	got, err := stores.Bookings.FindByReference(context.Background(), "JW-NOPE-0000")
	if err != nil || got != nil {
		t.Fatalf("expected nil, nil; got %v, %v", got, err)
	}
}

func TestMySQLBookingFindByReferenceDecodeFailure(t *testing.T) {
	stores, mock := newMockStores(t)

	mock.ExpectQuery("SELECT doc FROM bookings").
		WillReturnRows(sqlmock.NewRows([]string{"doc"}).AddRow([]byte(`{not json`)))

	_, err := stores.Bookings.FindByReference(context.Background(), "JW-1-AAAA")
	if !domain.IsStore(err) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestMySQLTravellerFindByIDsDeduplicates(t *testing.T) {
	stores, mock := newMockStores(t)

	a, b := domain.NewID(), domain.NewID()
	ta, _ := json.Marshal(models.Traveller{ID: a, FullName: "Asha"})

	mock.ExpectQuery("SELECT doc FROM travellers WHERE id IN \\(\\?,\\?\\)").
		WithArgs(a.Hex(), b.Hex()).
		WillReturnRows(sqlmock.NewRows([]string{"doc"}).AddRow(ta))

	got, err := stores.Travellers.FindByIDs(context.Background(), []domain.ID{a, b, a})
	if err != nil {
		t.Fatalf("FindByIDs error: %v", err)
	}
	if len(got) != 1 || got[0].FullName != "Asha" {
		t.Fatalf("unexpected travellers %+v", got)
	}

	none, err := stores.Travellers.FindByIDs(context.Background(), nil)
	if err != nil || len(none) != 0 {
		t.Fatalf("empty ids should not query: %v %v", none, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMySQLTravellerListByBooking(t *testing.T) {
	stores, mock := newMockStores(t)

	bookingID := domain.NewID()
	mock.ExpectQuery("SELECT doc FROM travellers WHERE booking_id=\\?").
		WithArgs(bookingID.Hex()).
		WillReturnRows(sqlmock.NewRows([]string{"doc"}))

	if _, err := stores.Travellers.List(context.Background(), domain.TravellerFilter{BookingID: &bookingID}); err != nil {
		t.Fatalf("list error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMySQLTripInsertAndList(t *testing.T) {
	stores, mock := newMockStores(t)

	trip := &models.Trip{
		ID:          domain.NewID(),
		TripName:    "Manali Adventure",
		TripType:    "package",
		Status:      "active",
		Destination: &models.Destination{Country: "India", City: "Manali"},
		CreatedAt:   time.Now().UTC(),
	}
	mock.ExpectExec("INSERT INTO trips \\(id,trip_name,trip_type,status,city,created_at,doc\\)").
		WithArgs(trip.ID.Hex(), "Manali Adventure", "package", "active", "Manali", trip.CreatedAt, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery("SELECT doc FROM trips WHERE status=\\? AND trip_type=\\? AND city=\\? ORDER BY").
		WithArgs("active", "package", "Manali").
		WillReturnRows(sqlmock.NewRows([]string{"doc"}))

	ctx := context.Background()
	if err := stores.Trips.Insert(ctx, trip); err != nil {
		t.Fatalf("insert error: %v", err)
	}
	if _, err := stores.Trips.List(ctx, domain.TripFilter{Status: "active", TripType: "package", City: "Manali"}); err != nil {
		t.Fatalf("list error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEnsureMySQLSchemaCreatesMissingTables(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	for _, s := range mysqlSchema {
		if s.table == CollectionBookings {
			mock.ExpectQuery("information_schema\\.tables").WithArgs(s.table).
				WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow(s.table))
			mock.ExpectQuery("information_schema\\.columns").WithArgs(s.table, "doc").
				WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("doc"))
			continue
		}
		mock.ExpectQuery("information_schema\\.tables").WithArgs(s.table).
			WillReturnRows(sqlmock.NewRows([]string{"table_name"}))
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS " + s.table).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	if err := EnsureMySQLSchema(context.Background(), db); err != nil {
		t.Fatalf("EnsureMySQLSchema error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEnsureMySQLSchemaRejectsForeignTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema\\.tables").WithArgs(CollectionBookings).
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow(CollectionBookings))
	mock.ExpectQuery("information_schema\\.columns").WithArgs(CollectionBookings, "doc").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}))

	err = EnsureMySQLSchema(context.Background(), db)
	if !domain.IsStore(err) {
		t.Fatalf("expected store error for a bookings table without doc, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMySQLAddressDelete(t *testing.T) {
	stores, mock := newMockStores(t)
	id := domain.NewID()

	mock.ExpectExec("DELETE FROM addresses WHERE id=\\?").WithArgs(id.Hex()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	if err := stores.Addresses.Delete(context.Background(), id); err != nil {
		t.Fatalf("delete error: %v", err)
	}

	mock.ExpectExec("DELETE FROM addresses").WillReturnError(&mysql.MySQLError{Number: 1205, Message: "Lock wait timeout"})
	if err := stores.Addresses.Delete(context.Background(), id); !domain.IsStore(err) {
		t.Fatalf("expected store error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
