package store

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hivewatch/models"
)

// ErrNotFound is returned by contact reads that matched nothing.
var ErrNotFound = errors.New("not found")

// ContactStore manages the emergency-contact directory.
type ContactStore interface {
	FindByCity(ctx context.Context, city string) (models.EmergencyContact, error)
	FindAny(ctx context.Context) (models.EmergencyContact, error)
	ListAll(ctx context.Context) ([]models.EmergencyContact, error)
	Create(ctx context.Context, c models.EmergencyContact) (models.EmergencyContact, error)
	Update(ctx context.Context, id primitive.ObjectID, c models.EmergencyContact) (models.EmergencyContact, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// DefaultContact is the hardcoded last-resort payload; lookups must never
// come back empty.
func DefaultContact() models.EmergencyContact {
	return models.EmergencyContact{
		Region:      "India",
		ContactName: "National Bee Emergency Helpline",
		PhoneNumber: "+91 98765 43212",
		Designation: "Emergency Response Team",
	}
}

// LookupContact resolves a contact for a report location: city match first,
// then any contact at all, then the hardcoded default. Store errors fall
// through the chain rather than surfacing; the caller always gets a contact.
func LookupContact(ctx context.Context, s ContactStore, city string) models.EmergencyContact {
	if city != "" {
		if c, err := s.FindByCity(ctx, city); err == nil {
			return c
		}
	}
	if c, err := s.FindAny(ctx); err == nil {
		return c
	}
	return DefaultContact()
}

// MongoContacts stores the directory in an "emergencycontacts" collection.
type MongoContacts struct {
	col *mongo.Collection
}

func NewMongoContacts(db *mongo.Database) *MongoContacts {
	return &MongoContacts{col: db.Collection("emergencycontacts")}
}

func (s *MongoContacts) findOne(ctx context.Context, filter bson.M) (models.EmergencyContact, error) {
	var c models.EmergencyContact
	err := s.col.FindOne(ctx, filter).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.EmergencyContact{}, ErrNotFound
	}
	if err != nil {
		return models.EmergencyContact{}, err
	}
	return c, nil
}

func (s *MongoContacts) FindByCity(ctx context.Context, city string) (models.EmergencyContact, error) {
	return s.findOne(ctx, bson.M{"city": city})
}

func (s *MongoContacts) FindAny(ctx context.Context) (models.EmergencyContact, error) {
	return s.findOne(ctx, bson.M{})
}

func (s *MongoContacts) ListAll(ctx context.Context) ([]models.EmergencyContact, error) {
	cur, err := s.col.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "region", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.EmergencyContact{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoContacts) Create(ctx context.Context, c models.EmergencyContact) (models.EmergencyContact, error) {
	res, err := s.col.InsertOne(ctx, &c)
	if err != nil {
		return models.EmergencyContact{}, err
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return c, nil
}

func (s *MongoContacts) Update(ctx context.Context, id primitive.ObjectID, c models.EmergencyContact) (models.EmergencyContact, error) {
	set := bson.M{
		"region":      c.Region,
		"contactName": c.ContactName,
		"phoneNumber": c.PhoneNumber,
		"designation": c.Designation,
		"city":        c.City,
		"state":       c.State,
	}
	res := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var out models.EmergencyContact
	if err := res.Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.EmergencyContact{}, ErrNotFound
		}
		return models.EmergencyContact{}, err
	}
	return out, nil
}

func (s *MongoContacts) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
