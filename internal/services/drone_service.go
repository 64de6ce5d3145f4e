package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"drone-survey-service/internal/apperr"
	"drone-survey-service/internal/models"
	"drone-survey-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
)

type IDroneService interface {
	List(ctx context.Context) ([]models.Drone, error)
	Get(ctx context.Context, id string) (*models.Drone, error)
	Create(ctx context.Context, req *models.CreateDroneRequest) (*models.Drone, error)
	Update(ctx context.Context, id string, req *models.UpdateDroneRequest) (*models.Drone, error)
	UpdateStatus(ctx context.Context, id string, status models.DroneStatus) (*models.Drone, error)
	ScheduleMaintenance(ctx context.Context, id string) (*models.Drone, error)
}

type DroneService struct {
	droneRepo repository.IDroneRepository
	now       func() time.Time
}

func NewDroneService(droneRepo repository.IDroneRepository) IDroneService {
	return &DroneService{
		droneRepo: droneRepo,
		now:       time.Now,
	}
}

func (s *DroneService) List(ctx context.Context) ([]models.Drone, error) {
	drones, err := s.droneRepo.FindAll(ctx)
	if err != nil {
		return nil, apperr.Upstream("failed to list drones", err)
	}
	return drones, nil
}

func (s *DroneService) Get(ctx context.Context, id string) (*models.Drone, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	drone, err := s.droneRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, apperr.Upstream("failed to fetch drone", err)
	}
	if drone == nil {
		return nil, apperr.NotFound("Drone not found")
	}
	return drone, nil
}

func (s *DroneService) Create(ctx context.Context, req *models.CreateDroneRequest) (*models.Drone, error) {
	if req.Name == "" || req.SerialNumber == "" || req.ModelName == "" || req.Manufacturer == "" {
		return nil, apperr.Validation("name, serial number, model name and manufacturer are required")
	}

	batteryLevel := 100.0
	if req.BatteryLevel != nil {
		batteryLevel = *req.BatteryLevel
	}

	drone := &models.Drone{
		Name:            req.Name,
		SerialNumber:    req.SerialNumber,
		ModelName:       req.ModelName,
		Manufacturer:    req.Manufacturer,
		Status:          models.DroneAvailable,
		BatteryLevel:    batteryLevel,
		LastMaintenance: s.now(),
		CurrentLocation: req.CurrentLocation,
		MaxFlightTime:   req.MaxFlightTime,
		MaxAltitude:     req.MaxAltitude,
		MaxSpeed:        req.MaxSpeed,
		Sensors:         req.Sensors,
	}
	if drone.Sensors == nil {
		drone.Sensors = []string{}
	}

	if err := s.droneRepo.Create(ctx, drone); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperr.Conflict(fmt.Sprintf("drone with serial number %q already exists", req.SerialNumber))
		}
		return nil, apperr.Upstream("failed to create drone", err)
	}
	return drone, nil
}

func (s *DroneService) Update(ctx context.Context, id string, req *models.UpdateDroneRequest) (*models.Drone, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	setFields := bson.M{}
	if req.Name != nil {
		setFields["name"] = *req.Name
	}
	if req.ModelName != nil {
		setFields["modelName"] = *req.ModelName
	}
	if req.Manufacturer != nil {
		setFields["manufacturer"] = *req.Manufacturer
	}
	if req.BatteryLevel != nil {
		level := *req.BatteryLevel
		if level < 0 {
			level = 0
		}
		if level > 100 {
			level = 100
		}
		setFields["batteryLevel"] = level
	}
	if req.CurrentLocation != nil {
		setFields["currentLocation"] = *req.CurrentLocation
	}
	if req.MaxFlightTime != nil {
		setFields["maxFlightTime"] = *req.MaxFlightTime
	}
	if req.MaxAltitude != nil {
		setFields["maxAltitude"] = *req.MaxAltitude
	}
	if req.MaxSpeed != nil {
		setFields["maxSpeed"] = *req.MaxSpeed
	}
	if req.Sensors != nil {
		setFields["sensors"] = req.Sensors
	}
	if len(setFields) == 0 {
		return s.Get(ctx, id)
	}

	drone, err := s.droneRepo.FindByIDAndUpdate(ctx, oid, bson.M{"$set": setFields})
	if err != nil {
		return nil, apperr.Upstream("failed to update drone", err)
	}
	if drone == nil {
		return nil, apperr.NotFound("Drone not found")
	}
	return drone, nil
}

func (s *DroneService) UpdateStatus(ctx context.Context, id string, status models.DroneStatus) (*models.Drone, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, apperr.Validation(fmt.Sprintf("invalid drone status %q", status))
	}

	drone, err := s.droneRepo.FindByIDAndUpdate(ctx, oid, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return nil, apperr.Upstream("failed to update drone status", err)
	}
	if drone == nil {
		return nil, apperr.NotFound("Drone not found")
	}
	return drone, nil
}

func (s *DroneService) ScheduleMaintenance(ctx context.Context, id string) (*models.Drone, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"status":          models.DroneMaintenance,
		"lastMaintenance": s.now(),
	}}
	drone, err := s.droneRepo.FindByIDAndUpdate(ctx, oid, update)
	if err != nil {
		return nil, apperr.Upstream("failed to schedule maintenance", err)
	}
	if drone == nil {
		return nil, apperr.NotFound("Drone not found")
	}
	return drone, nil
}
