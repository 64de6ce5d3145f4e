package mongo

import (
	"context"
	"fmt"
	"time"

	"drone-survey-service/internal/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	UsersCollection      = "users"
	DronesCollection     = "drones"
	FacilitiesCollection = "facilities"
	MissionsCollection   = "missions"
	SurveysCollection    = "surveys"
)

// DB wraps the Mongo client and the service database handle.
type DB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func Connect(cfg config.MongoConfig) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &DB{
		Client:   client,
		Database: client.Database(cfg.DBName),
	}, nil
}

func (d *DB) Collection(name string) *mongo.Collection {
	return d.Database.Collection(name)
}

// EnsureIndexes creates the indexes the repositories rely on: unique user
// email, unique drone serial number, and the mission/survey query paths.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		DronesCollection: {
			{Keys: bson.D{{Key: "serialNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		MissionsCollection: {
			{Keys: bson.D{{Key: "facilityId", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "droneId", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "schedule.startTime", Value: 1}}},
		},
		SurveysCollection: {
			{Keys: bson.D{{Key: "missionId", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
	}

	for coll, models := range indexes {
		if _, err := d.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", coll, err)
		}
	}
	return nil
}

func (d *DB) Close(ctx context.Context) error {
	return d.Client.Disconnect(ctx)
}
