package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"drone-survey-service/internal/apperr"
	"drone-survey-service/internal/models"
	"drone-survey-service/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeDroneRepo struct {
	mu     sync.Mutex
	drones map[primitive.ObjectID]*models.Drone
}

func newFakeDroneRepo() *fakeDroneRepo {
	return &fakeDroneRepo{drones: map[primitive.ObjectID]*models.Drone{}}
}

func (r *fakeDroneRepo) FindAll(ctx context.Context) ([]models.Drone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	drones := []models.Drone{}
	for _, d := range r.drones {
		drones = append(drones, *d)
	}
	return drones, nil
}

func (r *fakeDroneRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Drone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	drone, ok := r.drones[id]
	if !ok {
		return nil, nil
	}
	copied := *drone
	return &copied, nil
}

func (r *fakeDroneRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Drone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	drones := []models.Drone{}
	for _, id := range ids {
		if drone, ok := r.drones[id]; ok {
			drones = append(drones, *drone)
		}
	}
	return drones, nil
}

func (r *fakeDroneRepo) FindBySerialNumber(ctx context.Context, serialNumber string) (*models.Drone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, drone := range r.drones {
		if drone.SerialNumber == serialNumber {
			copied := *drone
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeDroneRepo) Create(ctx context.Context, drone *models.Drone) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.drones {
		if existing.SerialNumber == drone.SerialNumber {
			return repository.ErrDuplicateKey
		}
	}
	drone.ID = primitive.NewObjectID()
	drone.ClampBatteryLevel()
	copied := *drone
	r.drones[drone.ID] = &copied
	return nil
}

func (r *fakeDroneRepo) FindByIDAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Drone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	drone, ok := r.drones[id]
	if !ok {
		return nil, nil
	}
	if setFields, ok := update["$set"].(bson.M); ok {
		for key, value := range setFields {
			switch key {
			case "name":
				drone.Name = value.(string)
			case "status":
				drone.Status = value.(models.DroneStatus)
			case "batteryLevel":
				drone.BatteryLevel = value.(float64)
			case "lastMaintenance":
				drone.LastMaintenance = value.(time.Time)
			}
		}
	}
	copied := *drone
	return &copied, nil
}

func newTestDroneService() (*DroneService, *fakeDroneRepo) {
	droneRepo := newFakeDroneRepo()
	service := &DroneService{
		droneRepo: droneRepo,
		now:       func() time.Time { return testNow },
	}
	return service, droneRepo
}

func validCreateDroneRequest() *models.CreateDroneRequest {
	return &models.CreateDroneRequest{
		Name:          "Falcon 1",
		SerialNumber:  "SN-0001",
		ModelName:     "Mavic 3E",
		Manufacturer:  "DJI",
		MaxFlightTime: 45,
		MaxAltitude:   120,
		MaxSpeed:      21,
		Sensors:       []string{"rgb", "thermal"},
	}
}

func TestCreateDrone_Defaults(t *testing.T) {
	service, _ := newTestDroneService()

	drone, err := service.Create(context.Background(), validCreateDroneRequest())

	require.NoError(t, err)
	assert.Equal(t, models.DroneAvailable, drone.Status)
	assert.Equal(t, 100.0, drone.BatteryLevel, "battery defaults to full")
	assert.Equal(t, testNow, drone.LastMaintenance)
}

func TestCreateDrone_DuplicateSerialNumber(t *testing.T) {
	service, _ := newTestDroneService()

	_, err := service.Create(context.Background(), validCreateDroneRequest())
	require.NoError(t, err)

	_, err = service.Create(context.Background(), validCreateDroneRequest())
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestCreateDrone_MissingFields(t *testing.T) {
	service, _ := newTestDroneService()

	req := validCreateDroneRequest()
	req.SerialNumber = ""
	_, err := service.Create(context.Background(), req)

	require.Error(t, err)
	assert.Equal(t, apperr.KindValidationFailed, apperr.KindOf(err))
}

func TestUpdateDrone_ClampsBattery(t *testing.T) {
	service, _ := newTestDroneService()
	drone, err := service.Create(context.Background(), validCreateDroneRequest())
	require.NoError(t, err)

	over := 140.0
	updated, err := service.Update(context.Background(), drone.ID.Hex(), &models.UpdateDroneRequest{BatteryLevel: &over})
	require.NoError(t, err)
	assert.Equal(t, 100.0, updated.BatteryLevel)

	under := -5.0
	updated, err = service.Update(context.Background(), drone.ID.Hex(), &models.UpdateDroneRequest{BatteryLevel: &under})
	require.NoError(t, err)
	assert.Equal(t, 0.0, updated.BatteryLevel)
}

func TestUpdateDroneStatus(t *testing.T) {
	service, _ := newTestDroneService()
	drone, err := service.Create(context.Background(), validCreateDroneRequest())
	require.NoError(t, err)

	updated, err := service.UpdateStatus(context.Background(), drone.ID.Hex(), models.DroneInMission)
	require.NoError(t, err)
	assert.Equal(t, models.DroneInMission, updated.Status)

	_, err = service.UpdateStatus(context.Background(), drone.ID.Hex(), "flying")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidationFailed, apperr.KindOf(err))
}

func TestScheduleMaintenance(t *testing.T) {
	service, _ := newTestDroneService()
	drone, err := service.Create(context.Background(), validCreateDroneRequest())
	require.NoError(t, err)

	updated, err := service.ScheduleMaintenance(context.Background(), drone.ID.Hex())

	require.NoError(t, err)
	assert.Equal(t, models.DroneMaintenance, updated.Status)
	assert.Equal(t, testNow, updated.LastMaintenance)
}

func TestGetDrone_NotFound(t *testing.T) {
	service, _ := newTestDroneService()

	_, err := service.Get(context.Background(), primitive.NewObjectID().Hex())

	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
