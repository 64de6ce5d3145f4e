package services

import (
	"context"
	"testing"
	"time"

	"drone-survey-service/internal/apperr"
	"drone-survey-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestSurveyService() (*SurveyService, *fakeSurveyRepo) {
	surveyRepo := newFakeSurveyRepo()
	service := &SurveyService{
		surveyRepo: surveyRepo,
		now:        func() time.Time { return testNow },
	}
	return service, surveyRepo
}

func createTestSurvey(t *testing.T, service *SurveyService) *models.Survey {
	t.Helper()
	survey, err := service.Create(context.Background(), &models.CreateSurveyRequest{
		MissionID: primitive.NewObjectID().Hex(),
	})
	require.NoError(t, err)
	return survey
}

func TestCreateSurvey_Defaults(t *testing.T) {
	service, _ := newTestSurveyService()

	survey := createTestSurvey(t, service)

	assert.Equal(t, models.SurveyInProgress, survey.Status)
	assert.Equal(t, testNow, survey.StartTime)
	assert.Nil(t, survey.EndTime)
	assert.NotNil(t, survey.TelemetryData)
	assert.NotNil(t, survey.Findings)
}

func TestCreateSurvey_ExplicitStartTime(t *testing.T) {
	service, _ := newTestSurveyService()
	start := testNow.Add(-time.Hour).Unix()

	survey, err := service.Create(context.Background(), &models.CreateSurveyRequest{
		MissionID: primitive.NewObjectID().Hex(),
		StartTime: &start,
	})

	require.NoError(t, err)
	assert.Equal(t, start, survey.StartTime.Unix())
}

func TestCreateSurvey_DuplicateMission(t *testing.T) {
	service, _ := newTestSurveyService()
	missionID := primitive.NewObjectID().Hex()

	_, err := service.Create(context.Background(), &models.CreateSurveyRequest{MissionID: missionID})
	require.NoError(t, err)

	_, err = service.Create(context.Background(), &models.CreateSurveyRequest{MissionID: missionID})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestCreateSurvey_InvalidStatus(t *testing.T) {
	service, _ := newTestSurveyService()

	_, err := service.Create(context.Background(), &models.CreateSurveyRequest{
		MissionID: primitive.NewObjectID().Hex(),
		Status:    "pending",
	})

	require.Error(t, err)
	assert.Equal(t, apperr.KindValidationFailed, apperr.KindOf(err))
}

func TestUpdateSurvey_AppendsTelemetry(t *testing.T) {
	service, _ := newTestSurveyService()
	survey := createTestSurvey(t, service)

	first := []models.TelemetrySample{{Timestamp: testNow, BatteryLevel: 90, Speed: 12}}
	updated, err := service.Update(context.Background(), survey.ID.Hex(), &models.UpdateSurveyRequest{TelemetryData: first})
	require.NoError(t, err)
	assert.Len(t, updated.TelemetryData, 1)

	second := []models.TelemetrySample{{Timestamp: testNow.Add(time.Second), BatteryLevel: 89, Speed: 13}}
	updated, err = service.Update(context.Background(), survey.ID.Hex(), &models.UpdateSurveyRequest{TelemetryData: second})
	require.NoError(t, err)
	assert.Len(t, updated.TelemetryData, 2, "telemetry is append-only")
	assert.Equal(t, 90.0, updated.TelemetryData[0].BatteryLevel)
}

func TestUpdateSurvey_SetsData(t *testing.T) {
	service, _ := newTestSurveyService()
	survey := createTestSurvey(t, service)

	data := models.SurveyData{CoverageArea: 12000, ImagesCollected: 48, FlightDuration: 1800}
	updated, err := service.Update(context.Background(), survey.ID.Hex(), &models.UpdateSurveyRequest{Data: &data})

	require.NoError(t, err)
	assert.Equal(t, data, updated.Data)
}

func TestUpdateSurveyStatus_TerminalStampsEndTime(t *testing.T) {
	service, _ := newTestSurveyService()
	survey := createTestSurvey(t, service)

	updated, err := service.UpdateStatus(context.Background(), survey.ID.Hex(), models.SurveyCompleted)

	require.NoError(t, err)
	assert.Equal(t, models.SurveyCompleted, updated.Status)
	require.NotNil(t, updated.EndTime)
	assert.Equal(t, testNow, *updated.EndTime)
}

func TestUpdateSurveyStatus_InProgressKeepsEndTimeEmpty(t *testing.T) {
	service, _ := newTestSurveyService()
	survey := createTestSurvey(t, service)

	updated, err := service.UpdateStatus(context.Background(), survey.ID.Hex(), models.SurveyInProgress)

	require.NoError(t, err)
	assert.Nil(t, updated.EndTime)
}

func TestUpdateSurveyStatus_Invalid(t *testing.T) {
	service, _ := newTestSurveyService()
	survey := createTestSurvey(t, service)

	_, err := service.UpdateStatus(context.Background(), survey.ID.Hex(), "pending")

	require.Error(t, err)
	assert.Equal(t, apperr.KindValidationFailed, apperr.KindOf(err))
}

func TestAddFindings(t *testing.T) {
	service, _ := newTestSurveyService()
	survey := createTestSurvey(t, service)

	findings := []models.Finding{{
		Type:        "crack",
		Severity:    models.SeverityHigh,
		Location:    models.GeoPoint{Latitude: 10, Longitude: 106},
		Description: "Hairline crack on the north wall",
	}}
	updated, err := service.AddFindings(context.Background(), survey.ID.Hex(), findings)

	require.NoError(t, err)
	require.Len(t, updated.Findings, 1)
	assert.Equal(t, "crack", updated.Findings[0].Type)
}

func TestAddFindings_Validation(t *testing.T) {
	service, _ := newTestSurveyService()
	survey := createTestSurvey(t, service)

	tests := []struct {
		name     string
		findings []models.Finding
	}{
		{"empty list", nil},
		{"missing type", []models.Finding{{Severity: models.SeverityLow, Description: "something"}}},
		{"missing description", []models.Finding{{Type: "crack", Severity: models.SeverityLow}}},
		{"bad severity", []models.Finding{{Type: "crack", Severity: "catastrophic", Description: "something"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.AddFindings(context.Background(), survey.ID.Hex(), tt.findings)

			require.Error(t, err)
			assert.Equal(t, apperr.KindValidationFailed, apperr.KindOf(err))
		})
	}
}

func TestGetSurvey_NotFound(t *testing.T) {
	service, _ := newTestSurveyService()

	_, err := service.Get(context.Background(), primitive.NewObjectID().Hex())

	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
