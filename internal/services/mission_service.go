package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"drone-survey-service/internal/apperr"
	"drone-survey-service/internal/event"
	"drone-survey-service/internal/models"
	"drone-survey-service/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type IMissionService interface {
	List(ctx context.Context) ([]models.Mission, error)
	Get(ctx context.Context, id string) (*models.Mission, error)
	ListByFacility(ctx context.Context, facilityID string) ([]models.Mission, error)
	ListByDrone(ctx context.Context, droneID string) ([]models.Mission, error)
	Create(ctx context.Context, req *models.CreateMissionRequest, createdBy string) (*models.Mission, error)
	Update(ctx context.Context, id string, req *models.UpdateMissionRequest) (*models.Mission, error)
	Start(ctx context.Context, id string) (*models.Mission, error)
	Pause(ctx context.Context, id string) (*models.Mission, error)
	Resume(ctx context.Context, id string) (*models.Mission, error)
	Abort(ctx context.Context, id string) (*models.Mission, error)
	Complete(ctx context.Context, id string) (*models.Mission, error)
	Survey(ctx context.Context, missionID string) (*models.Survey, error)
}

// MissionService owns the mission lifecycle state machine and its side
// effects on the associated survey record. All transitions go through an
// atomic conditional status update so concurrent callers cannot both win.
type MissionService struct {
	missionRepo repository.IMissionRepository
	surveyRepo  repository.ISurveyRepository
	publisher   event.Publisher
	now         func() time.Time
}

func NewMissionService(missionRepo repository.IMissionRepository, surveyRepo repository.ISurveyRepository, publisher event.Publisher) IMissionService {
	return &MissionService{
		missionRepo: missionRepo,
		surveyRepo:  surveyRepo,
		publisher:   publisher,
		now:         time.Now,
	}
}

func (s *MissionService) List(ctx context.Context) ([]models.Mission, error) {
	missions, err := s.missionRepo.FindAll(ctx)
	if err != nil {
		return nil, apperr.Upstream("failed to list missions", err)
	}
	return missions, nil
}

func (s *MissionService) Get(ctx context.Context, id string) (*models.Mission, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	mission, err := s.missionRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, apperr.Upstream("failed to fetch mission", err)
	}
	if mission == nil {
		return nil, apperr.NotFound("Mission not found")
	}
	return mission, nil
}

func (s *MissionService) ListByFacility(ctx context.Context, facilityID string) ([]models.Mission, error) {
	oid, err := parseObjectID(facilityID)
	if err != nil {
		return nil, err
	}
	missions, err := s.missionRepo.FindByFacility(ctx, oid)
	if err != nil {
		return nil, apperr.Upstream("failed to list missions", err)
	}
	return missions, nil
}

func (s *MissionService) ListByDrone(ctx context.Context, droneID string) ([]models.Mission, error) {
	oid, err := parseObjectID(droneID)
	if err != nil {
		return nil, err
	}
	missions, err := s.missionRepo.FindByDrone(ctx, oid)
	if err != nil {
		return nil, apperr.Upstream("failed to list missions", err)
	}
	return missions, nil
}

func (s *MissionService) Create(ctx context.Context, req *models.CreateMissionRequest, createdBy string) (*models.Mission, error) {
	if err := validateCreateMission(req); err != nil {
		return nil, err
	}

	facilityID, err := parseObjectID(req.FacilityID)
	if err != nil {
		return nil, apperr.Validation("invalid facility id")
	}
	droneID, err := parseObjectID(req.DroneID)
	if err != nil {
		return nil, apperr.Validation("invalid drone id")
	}
	creatorID, err := parseObjectID(createdBy)
	if err != nil {
		return nil, apperr.Validation("invalid creator id")
	}

	mission := &models.Mission{
		Name:        req.Name,
		Description: req.Description,
		FacilityID:  facilityID,
		DroneID:     droneID,
		MissionType: req.MissionType,
		Status:      models.MissionPlanned,
		Schedule:    req.Schedule,
		FlightPath:  req.FlightPath,
		Parameters:  req.Parameters,
		CreatedBy:   creatorID,
	}
	if err := s.missionRepo.Create(ctx, mission); err != nil {
		return nil, apperr.Upstream("failed to create mission", err)
	}

	s.publish(ctx, event.MissionCreated, mission)
	return mission, nil
}

func validateCreateMission(req *models.CreateMissionRequest) error {
	if req.Name == "" {
		return apperr.Validation("mission name is required")
	}
	if !req.MissionType.IsValid() {
		return apperr.Validation(fmt.Sprintf("invalid mission type %q", req.MissionType))
	}
	if len(req.FlightPath) == 0 {
		return apperr.Validation("flight path must contain at least one waypoint")
	}
	if !req.Schedule.EndTime.After(req.Schedule.StartTime) {
		return apperr.Validation("schedule end time must be after start time")
	}
	return nil
}

// Update patches mutable fields. A status change in the patch body must
// be a legal lifecycle transition from the current status; the write is
// still guarded on the observed status so a concurrent transition loses.
func (s *MissionService) Update(ctx context.Context, id string, req *models.UpdateMissionRequest) (*models.Mission, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	setFields := bson.M{}
	if req.Name != nil {
		setFields["name"] = *req.Name
	}
	if req.Description != nil {
		setFields["description"] = *req.Description
	}
	if req.Schedule != nil {
		if !req.Schedule.EndTime.After(req.Schedule.StartTime) {
			return nil, apperr.Validation("schedule end time must be after start time")
		}
		setFields["schedule"] = *req.Schedule
	}

	filter := bson.M{"_id": oid}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, apperr.Validation(fmt.Sprintf("invalid mission status %q", *req.Status))
		}
		current, err := s.missionRepo.FindByID(ctx, oid)
		if err != nil {
			return nil, apperr.Upstream("failed to fetch mission", err)
		}
		if current == nil {
			return nil, apperr.NotFound("Mission not found")
		}
		if !current.Status.CanTransitionTo(*req.Status) {
			return nil, apperr.Conflict(fmt.Sprintf("cannot change mission status from %q to %q", current.Status, *req.Status))
		}
		setFields["status"] = *req.Status
		filter["status"] = current.Status
	}

	if len(setFields) == 0 {
		return s.Get(ctx, id)
	}

	mission, err := s.missionRepo.FindOneAndUpdate(ctx, filter, bson.M{"$set": setFields})
	if err != nil {
		return nil, apperr.Upstream("failed to update mission", err)
	}
	if mission == nil {
		if req.Status != nil {
			// The guarded status filter lost a race with another writer.
			existing, ferr := s.missionRepo.FindByID(ctx, oid)
			if ferr == nil && existing != nil {
				return nil, apperr.Conflict("mission status changed concurrently")
			}
		}
		return nil, apperr.NotFound("Mission not found")
	}
	return mission, nil
}

// Start moves a planned mission to in-progress and creates its survey.
// Only one caller can win the planned -> in-progress update, so at most
// one survey is ever created per mission. If the survey write fails the
// mission status is reverted as compensation.
func (s *MissionService) Start(ctx context.Context, id string) (*models.Mission, error) {
	mission, err := s.transition(ctx, id, "start", []models.MissionStatus{models.MissionPlanned}, models.MissionInProgress)
	if err != nil {
		return nil, err
	}

	survey := &models.Survey{
		MissionID: mission.ID,
		StartTime: s.now(),
		Status:    models.SurveyInProgress,
	}
	if err := s.surveyRepo.Create(ctx, survey); err != nil {
		if _, rerr := s.missionRepo.UpdateStatusIf(ctx, mission.ID, []models.MissionStatus{models.MissionInProgress}, models.MissionPlanned); rerr != nil {
			log.Printf("Failed to revert mission %s after survey create failure: %v", mission.ID.Hex(), rerr)
		}
		return nil, apperr.Upstream("failed to create survey for mission", err)
	}

	s.publish(ctx, event.MissionStarted, mission)
	return mission, nil
}

// Pause moves an in-progress mission into the paused state. The survey is
// untouched; resuming continues the same run.
func (s *MissionService) Pause(ctx context.Context, id string) (*models.Mission, error) {
	mission, err := s.transition(ctx, id, "pause", []models.MissionStatus{models.MissionInProgress}, models.MissionPaused)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, event.MissionPaused, mission)
	return mission, nil
}

func (s *MissionService) Resume(ctx context.Context, id string) (*models.Mission, error) {
	mission, err := s.transition(ctx, id, "resume", []models.MissionStatus{models.MissionPaused}, models.MissionInProgress)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, event.MissionResumed, mission)
	return mission, nil
}

// Abort terminates a non-finished mission and fails its survey, setting
// the survey end time. Aborting a planned mission has no survey to fail.
func (s *MissionService) Abort(ctx context.Context, id string) (*models.Mission, error) {
	from := []models.MissionStatus{models.MissionPlanned, models.MissionInProgress, models.MissionPaused}
	mission, err := s.transition(ctx, id, "abort", from, models.MissionAborted)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"status":  models.SurveyFailed,
		"endTime": s.now(),
	}}
	if _, err := s.surveyRepo.UpdateByMissionID(ctx, mission.ID, update); err != nil {
		// Mission stays aborted; the survey record is now stale.
		log.Printf("Failed to fail survey for aborted mission %s: %v", mission.ID.Hex(), err)
		return nil, apperr.Upstream("failed to update survey for aborted mission", err)
	}

	s.publish(ctx, event.MissionAborted, mission)
	return mission, nil
}

// Complete finishes an in-progress mission and completes its survey with
// an end time.
func (s *MissionService) Complete(ctx context.Context, id string) (*models.Mission, error) {
	mission, err := s.transition(ctx, id, "complete", []models.MissionStatus{models.MissionInProgress}, models.MissionCompleted)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"status":  models.SurveyCompleted,
		"endTime": s.now(),
	}}
	if _, err := s.surveyRepo.UpdateByMissionID(ctx, mission.ID, update); err != nil {
		log.Printf("Failed to complete survey for mission %s: %v", mission.ID.Hex(), err)
		return nil, apperr.Upstream("failed to update survey for completed mission", err)
	}

	s.publish(ctx, event.MissionCompleted, mission)
	return mission, nil
}

func (s *MissionService) Survey(ctx context.Context, missionID string) (*models.Survey, error) {
	oid, err := parseObjectID(missionID)
	if err != nil {
		return nil, err
	}
	survey, err := s.surveyRepo.FindByMissionID(ctx, oid)
	if err != nil {
		return nil, apperr.Upstream("failed to fetch survey", err)
	}
	if survey == nil {
		return nil, apperr.NotFound("Survey not found for this mission")
	}
	return survey, nil
}

// transition performs the compare-and-swap status move. A nil result from
// the conditional update means either the mission does not exist (not
// found) or its status failed the precondition (conflict); the follow-up
// read distinguishes the two without any write.
func (s *MissionService) transition(ctx context.Context, id, action string, from []models.MissionStatus, to models.MissionStatus) (*models.Mission, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	mission, err := s.missionRepo.UpdateStatusIf(ctx, oid, from, to)
	if err != nil {
		return nil, apperr.Upstream(fmt.Sprintf("failed to %s mission", action), err)
	}
	if mission != nil {
		return mission, nil
	}

	existing, err := s.missionRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, apperr.Upstream("failed to fetch mission", err)
	}
	if existing == nil {
		return nil, apperr.NotFound("Mission not found")
	}
	return nil, apperr.Conflict(fmt.Sprintf("cannot %s mission in status %q", action, existing.Status))
}

func (s *MissionService) publish(ctx context.Context, eventType event.MissionEventType, mission *models.Mission) {
	evt := event.MissionEvent{
		ID:         uuid.New().String(),
		EventType:  eventType,
		MissionID:  mission.ID.Hex(),
		FacilityID: mission.FacilityID.Hex(),
		DroneID:    mission.DroneID.Hex(),
		Status:     string(mission.Status),
		OccurredAt: s.now(),
	}
	if err := s.publisher.PublishMissionEvent(ctx, evt); err != nil {
		log.Printf("Failed to publish %s for mission %s: %v", eventType, evt.MissionID, err)
	}
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperr.Validation(fmt.Sprintf("invalid id %q", id))
	}
	return oid, nil
}
