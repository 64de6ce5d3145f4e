package services

import (
	"context"
	"sync"
	"testing"

	"drone-survey-service/internal/apperr"
	"drone-survey-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeFacilityRepo struct {
	mu         sync.Mutex
	facilities map[primitive.ObjectID]*models.Facility
}

func newFakeFacilityRepo() *fakeFacilityRepo {
	return &fakeFacilityRepo{facilities: map[primitive.ObjectID]*models.Facility{}}
}

func (r *fakeFacilityRepo) FindAll(ctx context.Context) ([]models.Facility, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	facilities := []models.Facility{}
	for _, f := range r.facilities {
		facilities = append(facilities, *f)
	}
	return facilities, nil
}

func (r *fakeFacilityRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Facility, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	facility, ok := r.facilities[id]
	if !ok {
		return nil, nil
	}
	copied := *facility
	return &copied, nil
}

func (r *fakeFacilityRepo) Create(ctx context.Context, facility *models.Facility) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	facility.ID = primitive.NewObjectID()
	copied := *facility
	r.facilities[facility.ID] = &copied
	return nil
}

func (r *fakeFacilityRepo) FindByIDAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Facility, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	facility, ok := r.facilities[id]
	if !ok {
		return nil, nil
	}
	if setFields, ok := update["$set"].(bson.M); ok {
		for key, value := range setFields {
			switch key {
			case "name":
				facility.Name = value.(string)
			case "area":
				facility.Area = value.(float64)
			case "boundaries":
				facility.Boundaries = value.([]models.GeoPoint)
			case "type":
				facility.Type = value.(models.FacilityType)
			case "status":
				facility.Status = value.(models.FacilityStatus)
			}
		}
	}
	copied := *facility
	return &copied, nil
}

func newTestFacilityService() (*FacilityService, *fakeFacilityRepo, *fakeMissionRepo, *fakeDroneRepo) {
	facilityRepo := newFakeFacilityRepo()
	missionRepo := newFakeMissionRepo()
	droneRepo := newFakeDroneRepo()
	service := &FacilityService{
		facilityRepo: facilityRepo,
		missionRepo:  missionRepo,
		droneRepo:    droneRepo,
	}
	return service, facilityRepo, missionRepo, droneRepo
}

func validCreateFacilityRequest() *models.CreateFacilityRequest {
	return &models.CreateFacilityRequest{
		Name: "North Warehouse",
		Type: models.FacilityWarehouse,
		Location: models.FacilityLocation{
			Address: "12 Dock Road",
			City:    "Da Nang",
			Country: "VN",
		},
		Boundaries: []models.GeoPoint{
			{Latitude: 16.05, Longitude: 108.20},
			{Latitude: 16.05, Longitude: 108.21},
			{Latitude: 16.06, Longitude: 108.21},
			{Latitude: 16.06, Longitude: 108.20},
		},
	}
}

func TestCreateFacility_ComputesArea(t *testing.T) {
	service, _, _, _ := newTestFacilityService()

	facility, err := service.Create(context.Background(), validCreateFacilityRequest())

	require.NoError(t, err)
	assert.Equal(t, models.FacilityActive, facility.Status)
	assert.Greater(t, facility.Area, 0.0, "area derived from boundaries when not supplied")
}

func TestCreateFacility_ExplicitAreaWins(t *testing.T) {
	service, _, _, _ := newTestFacilityService()

	req := validCreateFacilityRequest()
	area := 9999.0
	req.Area = &area

	facility, err := service.Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 9999.0, facility.Area)
}

func TestCreateFacility_Validation(t *testing.T) {
	service, _, _, _ := newTestFacilityService()

	tests := []struct {
		name   string
		mutate func(req *models.CreateFacilityRequest)
	}{
		{"missing name", func(req *models.CreateFacilityRequest) { req.Name = "" }},
		{"invalid type", func(req *models.CreateFacilityRequest) { req.Type = "farm" }},
		{"too few boundary points", func(req *models.CreateFacilityRequest) {
			req.Boundaries = req.Boundaries[:2]
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateFacilityRequest()
			tt.mutate(req)

			_, err := service.Create(context.Background(), req)

			require.Error(t, err)
			assert.Equal(t, apperr.KindValidationFailed, apperr.KindOf(err))
		})
	}
}

func TestUpdateFacility_RecomputesAreaOnNewBoundaries(t *testing.T) {
	service, _, _, _ := newTestFacilityService()
	facility, err := service.Create(context.Background(), validCreateFacilityRequest())
	require.NoError(t, err)

	bigger := []models.GeoPoint{
		{Latitude: 16.05, Longitude: 108.20},
		{Latitude: 16.05, Longitude: 108.22},
		{Latitude: 16.07, Longitude: 108.22},
		{Latitude: 16.07, Longitude: 108.20},
	}
	updated, err := service.Update(context.Background(), facility.ID.Hex(), &models.UpdateFacilityRequest{Boundaries: bigger})

	require.NoError(t, err)
	assert.Greater(t, updated.Area, facility.Area)
}

func TestFacilityDrones_DedupedAcrossMissions(t *testing.T) {
	service, facilityRepo, missionRepo, droneRepo := newTestFacilityService()

	facility := &models.Facility{Name: "Plant A", Type: models.FacilityIndustrial}
	require.NoError(t, facilityRepo.Create(context.Background(), facility))

	droneA := &models.Drone{Name: "A", SerialNumber: "SN-A"}
	droneB := &models.Drone{Name: "B", SerialNumber: "SN-B"}
	require.NoError(t, droneRepo.Create(context.Background(), droneA))
	require.NoError(t, droneRepo.Create(context.Background(), droneB))

	for _, droneID := range []primitive.ObjectID{droneA.ID, droneA.ID, droneB.ID} {
		mission := createTestMission(missionRepo, models.MissionCompleted)
		mission.FacilityID = facility.ID
		mission.DroneID = droneID
		missionRepo.put(mission)
	}

	drones, err := service.Drones(context.Background(), facility.ID.Hex())

	require.NoError(t, err)
	assert.Len(t, drones, 2, "same drone across missions counts once")
}

func TestGetFacility_NotFound(t *testing.T) {
	service, _, _, _ := newTestFacilityService()

	_, err := service.Get(context.Background(), primitive.NewObjectID().Hex())

	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
