package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"hivewatch/models"
)

// MongoReports stores reports in a "reports" collection.
type MongoReports struct {
	col *mongo.Collection
}

func NewMongoReports(db *mongo.Database) *MongoReports {
	return &MongoReports{col: db.Collection("reports")}
}

func (s *MongoReports) Save(ctx context.Context, r models.Report) (models.Report, error) {
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}
	res, err := s.col.InsertOne(ctx, &r)
	if err != nil {
		return models.Report{}, err
	}
	r.ID = res.InsertedID.(primitive.ObjectID)
	return r, nil
}

func (s *MongoReports) ListAll(ctx context.Context) ([]models.Report, error) {
	cur, err := s.col.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Report{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MongoProbe pings the deployment with a short deadline so an unreachable
// primary flips requests to the local store quickly instead of hanging.
type MongoProbe struct {
	client  *mongo.Client
	timeout time.Duration
}

func NewMongoProbe(client *mongo.Client) *MongoProbe {
	return &MongoProbe{client: client, timeout: 2 * time.Second}
}

func (p *MongoProbe) Alive(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.client.Ping(ctx, readpref.Primary()) == nil
}
