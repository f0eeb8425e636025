package repositories

import (
	"context"
	"errors"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionBookings   = "bookings"
	CollectionCustomers  = "customers"
	CollectionAddresses  = "addresses"
	CollectionTravellers = "travellers"
	CollectionTrips      = "trips"
)

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

// mongoCollection is the shared Create/Find/FindOne/FindByIDs plumbing.
type mongoCollection[T any] struct {
	coll *mongo.Collection
	name string
}

func (c mongoCollection[T]) insert(ctx context.Context, doc *T) error {
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ConflictError{Resource: c.name, Msg: "duplicate key", Err: err}
		}
		return domain.StoreError{Op: "insert " + c.name, Err: err}
	}
	return nil
}

func (c mongoCollection[T]) find(ctx context.Context, filter bson.M) ([]T, error) {
	cur, err := c.coll.Find(ctx, filter, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, domain.StoreError{Op: "find " + c.name, Err: err}
	}
	defer cur.Close(ctx)

	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, domain.StoreError{Op: "decode " + c.name, Err: err}
	}
	return out, nil
}

func (c mongoCollection[T]) findOne(ctx context.Context, filter bson.M) (*T, error) {
	var doc T
	if err := c.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, domain.StoreError{Op: "find one " + c.name, Err: err}
	}
	return &doc, nil
}

func (c mongoCollection[T]) deleteByID(ctx context.Context, id domain.ID) error {
	if _, err := c.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return domain.StoreError{Op: "delete " + c.name, Err: err}
	}
	return nil
}

func (c mongoCollection[T]) findByIDs(ctx context.Context, ids []domain.ID) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}
	return c.find(ctx, bson.M{"_id": bson.M{"$in": uniqueIDs(ids)}})
}

// NewMongoStores binds every collection to db.
func NewMongoStores(db *mongo.Database) Stores {
	return Stores{
		Bookings:   MongoBookingRepo{c: mongoCollection[models.Booking]{coll: db.Collection(CollectionBookings), name: "booking"}},
		Customers:  MongoCustomerRepo{c: mongoCollection[models.Customer]{coll: db.Collection(CollectionCustomers), name: "customer"}},
		Addresses:  MongoAddressRepo{c: mongoCollection[models.Address]{coll: db.Collection(CollectionAddresses), name: "address"}},
		Travellers: MongoTravellerRepo{c: mongoCollection[models.Traveller]{coll: db.Collection(CollectionTravellers), name: "traveller"}},
		Trips:      MongoTripRepo{c: mongoCollection[models.Trip]{coll: db.Collection(CollectionTrips), name: "trip"}},
	}
}

// EnsureMongoIndexes creates the indexes the list and lookup paths rely on,
// including the unique index on bookingReference.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		CollectionBookings: {
			{Keys: bson.D{{Key: "bookingReference", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_booking_reference")},
			{Keys: bson.D{{Key: "customerId", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "bookingStatus", Value: 1}, {Key: "paymentStatus", Value: 1}}},
			{Keys: bson.D{{Key: "bookingType", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		CollectionCustomers: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		CollectionTravellers: {
			{Keys: bson.D{{Key: "bookingId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		CollectionTrips: {
			{Keys: bson.D{{Key: "tripName", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "destination.city", Value: 1}}},
		},
	}
	for coll, idx := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, idx); err != nil {
			return domain.StoreError{Op: "create indexes " + coll, Err: err}
		}
	}
	return nil
}

type MongoBookingRepo struct {
	c mongoCollection[models.Booking]
}

func (r MongoBookingRepo) Insert(ctx context.Context, b *models.Booking) error {
	return r.c.insert(ctx, b)
}

func (r MongoBookingRepo) Find(ctx context.Context, f domain.BookingFilter) ([]models.Booking, error) {
	filter := bson.M{}
	if f.BookingType != "" {
		filter["bookingType"] = f.BookingType
	}
	if f.BookingStatus != "" {
		filter["bookingStatus"] = f.BookingStatus
	}
	return r.c.find(ctx, filter)
}

func (r MongoBookingRepo) FindByReference(ctx context.Context, ref string) (*models.Booking, error) {
	return r.c.findOne(ctx, bson.M{"bookingReference": ref})
}

type MongoCustomerRepo struct {
	c mongoCollection[models.Customer]
}

func (r MongoCustomerRepo) Insert(ctx context.Context, c *models.Customer) error {
	return r.c.insert(ctx, c)
}

func (r MongoCustomerRepo) List(ctx context.Context) ([]models.Customer, error) {
	return r.c.find(ctx, bson.M{})
}

func (r MongoCustomerRepo) FindByID(ctx context.Context, id domain.ID) (*models.Customer, error) {
	return r.c.findOne(ctx, bson.M{"_id": id})
}

func (r MongoCustomerRepo) FindByIDs(ctx context.Context, ids []domain.ID) ([]models.Customer, error) {
	return r.c.findByIDs(ctx, ids)
}

type MongoAddressRepo struct {
	c mongoCollection[models.Address]
}

func (r MongoAddressRepo) Insert(ctx context.Context, a *models.Address) error {
	return r.c.insert(ctx, a)
}

func (r MongoAddressRepo) Delete(ctx context.Context, id domain.ID) error {
	return r.c.deleteByID(ctx, id)
}

func (r MongoAddressRepo) FindByIDs(ctx context.Context, ids []domain.ID) ([]models.Address, error) {
	return r.c.findByIDs(ctx, ids)
}

type MongoTravellerRepo struct {
	c mongoCollection[models.Traveller]
}

func (r MongoTravellerRepo) Insert(ctx context.Context, t *models.Traveller) error {
	return r.c.insert(ctx, t)
}

func (r MongoTravellerRepo) List(ctx context.Context, f domain.TravellerFilter) ([]models.Traveller, error) {
	filter := bson.M{}
	if f.BookingID != nil {
		filter["bookingId"] = *f.BookingID
	}
	return r.c.find(ctx, filter)
}

func (r MongoTravellerRepo) FindByID(ctx context.Context, id domain.ID) (*models.Traveller, error) {
	return r.c.findOne(ctx, bson.M{"_id": id})
}

func (r MongoTravellerRepo) FindByIDs(ctx context.Context, ids []domain.ID) ([]models.Traveller, error) {
	return r.c.findByIDs(ctx, ids)
}

type MongoTripRepo struct {
	c mongoCollection[models.Trip]
}

func (r MongoTripRepo) Insert(ctx context.Context, t *models.Trip) error {
	return r.c.insert(ctx, t)
}

func (r MongoTripRepo) List(ctx context.Context, f domain.TripFilter) ([]models.Trip, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.TripType != "" {
		filter["tripType"] = f.TripType
	}
	if f.City != "" {
		filter["destination.city"] = f.City
	}
	return r.c.find(ctx, filter)
}

func (r MongoTripRepo) FindByID(ctx context.Context, id domain.ID) (*models.Trip, error) {
	return r.c.findOne(ctx, bson.M{"_id": id})
}

func (r MongoTripRepo) FindByIDs(ctx context.Context, ids []domain.ID) ([]models.Trip, error) {
	return r.c.findByIDs(ctx, ids)
}
