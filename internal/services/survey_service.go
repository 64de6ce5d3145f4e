package services

import (
	"context"
	"fmt"
	"time"

	"drone-survey-service/internal/apperr"
	"drone-survey-service/internal/models"
	"drone-survey-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
)

type ISurveyService interface {
	List(ctx context.Context) ([]models.Survey, error)
	Get(ctx context.Context, id string) (*models.Survey, error)
	Create(ctx context.Context, req *models.CreateSurveyRequest) (*models.Survey, error)
	Update(ctx context.Context, id string, req *models.UpdateSurveyRequest) (*models.Survey, error)
	UpdateStatus(ctx context.Context, id string, status models.SurveyStatus) (*models.Survey, error)
	AddFindings(ctx context.Context, id string, findings []models.Finding) (*models.Survey, error)
}

type SurveyService struct {
	surveyRepo repository.ISurveyRepository
	now        func() time.Time
}

func NewSurveyService(surveyRepo repository.ISurveyRepository) ISurveyService {
	return &SurveyService{
		surveyRepo: surveyRepo,
		now:        time.Now,
	}
}

func (s *SurveyService) List(ctx context.Context) ([]models.Survey, error) {
	surveys, err := s.surveyRepo.FindAll(ctx)
	if err != nil {
		return nil, apperr.Upstream("failed to list surveys", err)
	}
	return surveys, nil
}

func (s *SurveyService) Get(ctx context.Context, id string) (*models.Survey, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	survey, err := s.surveyRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, apperr.Upstream("failed to fetch survey", err)
	}
	if survey == nil {
		return nil, apperr.NotFound("Survey not found")
	}
	return survey, nil
}

func (s *SurveyService) Create(ctx context.Context, req *models.CreateSurveyRequest) (*models.Survey, error) {
	missionID, err := parseObjectID(req.MissionID)
	if err != nil {
		return nil, apperr.Validation("invalid mission id")
	}

	existing, err := s.surveyRepo.FindByMissionID(ctx, missionID)
	if err != nil {
		return nil, apperr.Upstream("failed to check existing survey", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("mission already has a survey")
	}

	startTime := s.now()
	if req.StartTime != nil {
		startTime = time.Unix(*req.StartTime, 0)
	}
	status := models.SurveyInProgress
	if req.Status != "" {
		if !req.Status.IsValid() {
			return nil, apperr.Validation(fmt.Sprintf("invalid survey status %q", req.Status))
		}
		status = req.Status
	}

	survey := &models.Survey{
		MissionID: missionID,
		StartTime: startTime,
		Status:    status,
	}
	if err := s.surveyRepo.Create(ctx, survey); err != nil {
		return nil, apperr.Upstream("failed to create survey", err)
	}
	return survey, nil
}

func (s *SurveyService) Update(ctx context.Context, id string, req *models.UpdateSurveyRequest) (*models.Survey, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	setFields := bson.M{}
	if req.Data != nil {
		setFields["data"] = *req.Data
	}

	update := bson.M{"$set": setFields}
	if len(req.TelemetryData) > 0 {
		// Telemetry is append-only.
		update["$push"] = bson.M{"telemetryData": bson.M{"$each": req.TelemetryData}}
	}
	if len(setFields) == 0 && len(req.TelemetryData) == 0 {
		return s.Get(ctx, id)
	}

	survey, err := s.surveyRepo.FindByIDAndUpdate(ctx, oid, update)
	if err != nil {
		return nil, apperr.Upstream("failed to update survey", err)
	}
	if survey == nil {
		return nil, apperr.NotFound("Survey not found")
	}
	return survey, nil
}

// UpdateStatus changes the survey status, stamping the end time when the
// survey reaches a terminal state.
func (s *SurveyService) UpdateStatus(ctx context.Context, id string, status models.SurveyStatus) (*models.Survey, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, apperr.Validation(fmt.Sprintf("invalid survey status %q", status))
	}

	setFields := bson.M{"status": status}
	if status == models.SurveyCompleted || status == models.SurveyFailed {
		setFields["endTime"] = s.now()
	}

	survey, err := s.surveyRepo.FindByIDAndUpdate(ctx, oid, bson.M{"$set": setFields})
	if err != nil {
		return nil, apperr.Upstream("failed to update survey status", err)
	}
	if survey == nil {
		return nil, apperr.NotFound("Survey not found")
	}
	return survey, nil
}

func (s *SurveyService) AddFindings(ctx context.Context, id string, findings []models.Finding) (*models.Survey, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	if len(findings) == 0 {
		return nil, apperr.Validation("findings are required")
	}
	for _, f := range findings {
		if f.Type == "" || f.Description == "" {
			return nil, apperr.Validation("finding type and description are required")
		}
		if !f.Severity.IsValid() {
			return nil, apperr.Validation(fmt.Sprintf("invalid finding severity %q", f.Severity))
		}
	}

	survey, err := s.surveyRepo.PushFindings(ctx, oid, findings)
	if err != nil {
		return nil, apperr.Upstream("failed to add findings", err)
	}
	if survey == nil {
		return nil, apperr.NotFound("Survey not found")
	}
	return survey, nil
}
