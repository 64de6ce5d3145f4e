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

type IMissionRepository interface {
	FindAll(ctx context.Context) ([]models.Mission, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Mission, error)
	FindByFacility(ctx context.Context, facilityID primitive.ObjectID) ([]models.Mission, error)
	FindByDrone(ctx context.Context, droneID primitive.ObjectID) ([]models.Mission, error)
	Create(ctx context.Context, mission *models.Mission) error
	FindByIDAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Mission, error)
	// FindOneAndUpdate applies update to the document matching filter and
	// returns the updated document, nil when nothing matched.
	FindOneAndUpdate(ctx context.Context, filter, update bson.M) (*models.Mission, error)
	// UpdateStatusIf atomically moves the mission to the target status only
	// when its current status is one of from. Returns nil when the mission
	// is missing or the precondition failed.
	UpdateStatusIf(ctx context.Context, id primitive.ObjectID, from []models.MissionStatus, to models.MissionStatus) (*models.Mission, error)
}

type MissionRepository struct {
	collection *mongodrv.Collection
}

func NewMissionRepository(db *mongo.DB) IMissionRepository {
	return &MissionRepository{
		collection: db.Collection(mongo.MissionsCollection),
	}
}

func (r *MissionRepository) FindAll(ctx context.Context) ([]models.Mission, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *MissionRepository) FindByFacility(ctx context.Context, facilityID primitive.ObjectID) ([]models.Mission, error) {
	return r.findMany(ctx, bson.M{"facilityId": facilityID})
}

func (r *MissionRepository) FindByDrone(ctx context.Context, droneID primitive.ObjectID) ([]models.Mission, error) {
	return r.findMany(ctx, bson.M{"droneId": droneID})
}

func (r *MissionRepository) findMany(ctx context.Context, filter bson.M) ([]models.Mission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find missions: %w", err)
	}
	defer cursor.Close(ctx)

	missions := []models.Mission{}
	if err := cursor.All(ctx, &missions); err != nil {
		return nil, fmt.Errorf("failed to decode missions: %w", err)
	}
	return missions, nil
}

func (r *MissionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Mission, error) {
	var mission models.Mission
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&mission)
	if errors.Is(err, mongodrv.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find mission %s: %w", id.Hex(), err)
	}
	return &mission, nil
}

func (r *MissionRepository) Create(ctx context.Context, mission *models.Mission) error {
	now := time.Now()
	mission.CreatedAt = now
	mission.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, mission)
	if err != nil {
		return fmt.Errorf("failed to create mission: %w", err)
	}
	mission.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MissionRepository) FindByIDAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Mission, error) {
	return r.FindOneAndUpdate(ctx, bson.M{"_id": id}, update)
}

func (r *MissionRepository) FindOneAndUpdate(ctx context.Context, filter, update bson.M) (*models.Mission, error) {
	setFields, ok := update["$set"].(bson.M)
	if !ok {
		setFields = bson.M{}
		update["$set"] = setFields
	}
	setFields["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mission models.Mission
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&mission)
	if errors.Is(err, mongodrv.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update mission: %w", err)
	}
	return &mission, nil
}

func (r *MissionRepository) UpdateStatusIf(ctx context.Context, id primitive.ObjectID, from []models.MissionStatus, to models.MissionStatus) (*models.Mission, error) {
	filter := bson.M{
		"_id":    id,
		"status": bson.M{"$in": from},
	}
	update := bson.M{"$set": bson.M{"status": to}}
	return r.FindOneAndUpdate(ctx, filter, update)
}
