package services

import (
	"context"
	"fmt"

	"drone-survey-service/internal/apperr"
	"drone-survey-service/internal/models"
	"drone-survey-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type IFacilityService interface {
	List(ctx context.Context) ([]models.Facility, error)
	Get(ctx context.Context, id string) (*models.Facility, error)
	Create(ctx context.Context, req *models.CreateFacilityRequest) (*models.Facility, error)
	Update(ctx context.Context, id string, req *models.UpdateFacilityRequest) (*models.Facility, error)
	// Drones returns the drones that have flown missions at the facility.
	Drones(ctx context.Context, facilityID string) ([]models.Drone, error)
}

type FacilityService struct {
	facilityRepo repository.IFacilityRepository
	missionRepo  repository.IMissionRepository
	droneRepo    repository.IDroneRepository
}

func NewFacilityService(facilityRepo repository.IFacilityRepository, missionRepo repository.IMissionRepository, droneRepo repository.IDroneRepository) IFacilityService {
	return &FacilityService{
		facilityRepo: facilityRepo,
		missionRepo:  missionRepo,
		droneRepo:    droneRepo,
	}
}

func (s *FacilityService) List(ctx context.Context) ([]models.Facility, error) {
	facilities, err := s.facilityRepo.FindAll(ctx)
	if err != nil {
		return nil, apperr.Upstream("failed to list facilities", err)
	}
	return facilities, nil
}

func (s *FacilityService) Get(ctx context.Context, id string) (*models.Facility, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	facility, err := s.facilityRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, apperr.Upstream("failed to fetch facility", err)
	}
	if facility == nil {
		return nil, apperr.NotFound("Facility not found")
	}
	return facility, nil
}

func (s *FacilityService) Create(ctx context.Context, req *models.CreateFacilityRequest) (*models.Facility, error) {
	if req.Name == "" {
		return nil, apperr.Validation("facility name is required")
	}
	if !req.Type.IsValid() {
		return nil, apperr.Validation(fmt.Sprintf("invalid facility type %q", req.Type))
	}
	if err := ValidateBoundaries(req.Boundaries); err != nil {
		return nil, err
	}

	area := 0.0
	if req.Area != nil {
		area = *req.Area
	} else {
		computed, err := BoundaryArea(req.Boundaries)
		if err != nil {
			return nil, err
		}
		area = computed
	}

	facility := &models.Facility{
		Name:       req.Name,
		Location:   req.Location,
		Area:       area,
		Boundaries: req.Boundaries,
		Type:       req.Type,
		Status:     models.FacilityActive,
	}
	if err := s.facilityRepo.Create(ctx, facility); err != nil {
		return nil, apperr.Upstream("failed to create facility", err)
	}
	return facility, nil
}

func (s *FacilityService) Update(ctx context.Context, id string, req *models.UpdateFacilityRequest) (*models.Facility, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	setFields := bson.M{}
	if req.Name != nil {
		setFields["name"] = *req.Name
	}
	if req.Location != nil {
		setFields["location"] = *req.Location
	}
	if req.Boundaries != nil {
		if err := ValidateBoundaries(req.Boundaries); err != nil {
			return nil, err
		}
		setFields["boundaries"] = req.Boundaries
		if req.Area == nil {
			computed, err := BoundaryArea(req.Boundaries)
			if err != nil {
				return nil, err
			}
			setFields["area"] = computed
		}
	}
	if req.Area != nil {
		setFields["area"] = *req.Area
	}
	if req.Type != nil {
		if !req.Type.IsValid() {
			return nil, apperr.Validation(fmt.Sprintf("invalid facility type %q", *req.Type))
		}
		setFields["type"] = *req.Type
	}
	if req.Status != nil {
		setFields["status"] = *req.Status
	}
	if len(setFields) == 0 {
		return s.Get(ctx, id)
	}

	facility, err := s.facilityRepo.FindByIDAndUpdate(ctx, oid, bson.M{"$set": setFields})
	if err != nil {
		return nil, apperr.Upstream("failed to update facility", err)
	}
	if facility == nil {
		return nil, apperr.NotFound("Facility not found")
	}
	return facility, nil
}

func (s *FacilityService) Drones(ctx context.Context, facilityID string) ([]models.Drone, error) {
	oid, err := parseObjectID(facilityID)
	if err != nil {
		return nil, err
	}

	missions, err := s.missionRepo.FindByFacility(ctx, oid)
	if err != nil {
		return nil, apperr.Upstream("failed to list facility missions", err)
	}

	seen := map[primitive.ObjectID]bool{}
	droneIDs := []primitive.ObjectID{}
	for _, mission := range missions {
		if !seen[mission.DroneID] {
			seen[mission.DroneID] = true
			droneIDs = append(droneIDs, mission.DroneID)
		}
	}

	drones, err := s.droneRepo.FindByIDs(ctx, droneIDs)
	if err != nil {
		return nil, apperr.Upstream("failed to list facility drones", err)
	}
	return drones, nil
}
