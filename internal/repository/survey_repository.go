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

type ISurveyRepository interface {
	FindAll(ctx context.Context) ([]models.Survey, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Survey, error)
	FindByMissionID(ctx context.Context, missionID primitive.ObjectID) (*models.Survey, error)
	Create(ctx context.Context, survey *models.Survey) error
	FindByIDAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Survey, error)
	// UpdateByMissionID patches the survey matched by mission id and returns
	// the updated document, nil when the mission has no survey.
	UpdateByMissionID(ctx context.Context, missionID primitive.ObjectID, update bson.M) (*models.Survey, error)
	PushFindings(ctx context.Context, id primitive.ObjectID, findings []models.Finding) (*models.Survey, error)
}

type SurveyRepository struct {
	collection *mongodrv.Collection
}

func NewSurveyRepository(db *mongo.DB) ISurveyRepository {
	return &SurveyRepository{
		collection: db.Collection(mongo.SurveysCollection),
	}
}

func (r *SurveyRepository) FindAll(ctx context.Context) ([]models.Survey, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find surveys: %w", err)
	}
	defer cursor.Close(ctx)

	surveys := []models.Survey{}
	if err := cursor.All(ctx, &surveys); err != nil {
		return nil, fmt.Errorf("failed to decode surveys: %w", err)
	}
	return surveys, nil
}

func (r *SurveyRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Survey, error) {
	var survey models.Survey
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&survey)
	if errors.Is(err, mongodrv.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find survey %s: %w", id.Hex(), err)
	}
	return &survey, nil
}

func (r *SurveyRepository) FindByMissionID(ctx context.Context, missionID primitive.ObjectID) (*models.Survey, error) {
	var survey models.Survey
	err := r.collection.FindOne(ctx, bson.M{"missionId": missionID}).Decode(&survey)
	if errors.Is(err, mongodrv.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find survey for mission %s: %w", missionID.Hex(), err)
	}
	return &survey, nil
}

func (r *SurveyRepository) Create(ctx context.Context, survey *models.Survey) error {
	now := time.Now()
	survey.CreatedAt = now
	survey.UpdatedAt = now
	if survey.TelemetryData == nil {
		survey.TelemetryData = []models.TelemetrySample{}
	}
	if survey.Findings == nil {
		survey.Findings = []models.Finding{}
	}

	result, err := r.collection.InsertOne(ctx, survey)
	if err != nil {
		return fmt.Errorf("failed to create survey: %w", err)
	}
	survey.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *SurveyRepository) FindByIDAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Survey, error) {
	return r.findOneAndUpdate(ctx, bson.M{"_id": id}, update)
}

func (r *SurveyRepository) UpdateByMissionID(ctx context.Context, missionID primitive.ObjectID, update bson.M) (*models.Survey, error) {
	return r.findOneAndUpdate(ctx, bson.M{"missionId": missionID}, update)
}

func (r *SurveyRepository) PushFindings(ctx context.Context, id primitive.ObjectID, findings []models.Finding) (*models.Survey, error) {
	update := bson.M{
		"$push": bson.M{"findings": bson.M{"$each": findings}},
	}
	return r.findOneAndUpdate(ctx, bson.M{"_id": id}, update)
}

func (r *SurveyRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*models.Survey, error) {
	setFields, ok := update["$set"].(bson.M)
	if !ok {
		setFields = bson.M{}
		update["$set"] = setFields
	}
	setFields["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var survey models.Survey
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&survey)
	if errors.Is(err, mongodrv.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update survey: %w", err)
	}
	return &survey, nil
}
