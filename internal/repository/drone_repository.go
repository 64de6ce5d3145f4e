package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"drone-survey-service/internal/database/mongo"
	"drone-survey-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateKey signals a unique index violation (email, serial number).
var ErrDuplicateKey = errors.New("duplicate key")

type IDroneRepository interface {
	FindAll(ctx context.Context) ([]models.Drone, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Drone, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Drone, error)
	FindBySerialNumber(ctx context.Context, serialNumber string) (*models.Drone, error)
	Create(ctx context.Context, drone *models.Drone) error
	FindByIDAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Drone, error)
}

type DroneRepository struct {
	collection *mongodrv.Collection
}

func NewDroneRepository(db *mongo.DB) IDroneRepository {
	return &DroneRepository{
		collection: db.Collection(mongo.DronesCollection),
	}
}

func (r *DroneRepository) FindAll(ctx context.Context) ([]models.Drone, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *DroneRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Drone, error) {
	if len(ids) == 0 {
		return []models.Drone{}, nil
	}
	return r.findMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *DroneRepository) findMany(ctx context.Context, filter bson.M) ([]models.Drone, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find drones: %w", err)
	}
	defer cursor.Close(ctx)

	drones := []models.Drone{}
	if err := cursor.All(ctx, &drones); err != nil {
		return nil, fmt.Errorf("failed to decode drones: %w", err)
	}
	return drones, nil
}

func (r *DroneRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Drone, error) {
	var drone models.Drone
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&drone)
	if errors.Is(err, mongodrv.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find drone %s: %w", id.Hex(), err)
	}
	return &drone, nil
}

func (r *DroneRepository) FindBySerialNumber(ctx context.Context, serialNumber string) (*models.Drone, error) {
	var drone models.Drone
	err := r.collection.FindOne(ctx, bson.M{"serialNumber": serialNumber}).Decode(&drone)
	if errors.Is(err, mongodrv.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find drone by serial number: %w", err)
	}
	return &drone, nil
}

func (r *DroneRepository) Create(ctx context.Context, drone *models.Drone) error {
	now := time.Now()
	drone.CreatedAt = now
	drone.UpdatedAt = now
	drone.ClampBatteryLevel()

	result, err := r.collection.InsertOne(ctx, drone)
	if mongodrv.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	if err != nil {
		return fmt.Errorf("failed to create drone: %w", err)
	}
	drone.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *DroneRepository) FindByIDAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Drone, error) {
	setFields, ok := update["$set"].(bson.M)
	if !ok {
		setFields = bson.M{}
		update["$set"] = setFields
	}
	setFields["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var drone models.Drone
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&drone)
	if errors.Is(err, mongodrv.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update drone: %w", err)
	}
	return &drone, nil
}
