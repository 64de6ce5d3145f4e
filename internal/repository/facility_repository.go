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

type IFacilityRepository interface {
	FindAll(ctx context.Context) ([]models.Facility, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Facility, error)
	Create(ctx context.Context, facility *models.Facility) error
	FindByIDAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Facility, error)
}

type FacilityRepository struct {
	collection *mongodrv.Collection
}

func NewFacilityRepository(db *mongo.DB) IFacilityRepository {
	return &FacilityRepository{
		collection: db.Collection(mongo.FacilitiesCollection),
	}
}

func (r *FacilityRepository) FindAll(ctx context.Context) ([]models.Facility, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find facilities: %w", err)
	}
	defer cursor.Close(ctx)

	facilities := []models.Facility{}
	if err := cursor.All(ctx, &facilities); err != nil {
		return nil, fmt.Errorf("failed to decode facilities: %w", err)
	}
	return facilities, nil
}

func (r *FacilityRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Facility, error) {
	var facility models.Facility
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&facility)
	if errors.Is(err, mongodrv.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find facility %s: %w", id.Hex(), err)
	}
	return &facility, nil
}

func (r *FacilityRepository) Create(ctx context.Context, facility *models.Facility) error {
	now := time.Now()
	facility.CreatedAt = now
	facility.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, facility)
	if err != nil {
		return fmt.Errorf("failed to create facility: %w", err)
	}
	facility.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *FacilityRepository) FindByIDAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Facility, error) {
	setFields, ok := update["$set"].(bson.M)
	if !ok {
		setFields = bson.M{}
		update["$set"] = setFields
	}
	setFields["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var facility models.Facility
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&facility)
	if errors.Is(err, mongodrv.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update facility: %w", err)
	}
	return &facility, nil
}
