package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DroneStatus string

const (
	DroneAvailable   DroneStatus = "available"
	DroneInMission   DroneStatus = "in-mission"
	DroneMaintenance DroneStatus = "maintenance"
	DroneOffline     DroneStatus = "offline"
)

func (s DroneStatus) IsValid() bool {
	switch s {
	case DroneAvailable, DroneInMission, DroneMaintenance, DroneOffline:
		return true
	}
	return false
}

type Drone struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	SerialNumber    string             `bson:"serialNumber" json:"serialNumber"`
	ModelName       string             `bson:"modelName" json:"modelName"`
	Manufacturer    string             `bson:"manufacturer" json:"manufacturer"`
	Status          DroneStatus        `bson:"status" json:"status"`
	BatteryLevel    float64            `bson:"batteryLevel" json:"batteryLevel"`
	LastMaintenance time.Time          `bson:"lastMaintenance" json:"lastMaintenance"`
	CurrentLocation *Location          `bson:"currentLocation,omitempty" json:"currentLocation,omitempty"`
	MaxFlightTime   float64            `bson:"maxFlightTime" json:"maxFlightTime"`
	MaxAltitude     float64            `bson:"maxAltitude" json:"maxAltitude"`
	MaxSpeed        float64            `bson:"maxSpeed" json:"maxSpeed"`
	Sensors         []string           `bson:"sensors" json:"sensors"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ClampBatteryLevel keeps the battery level inside 0-100.
func (d *Drone) ClampBatteryLevel() {
	if d.BatteryLevel < 0 {
		d.BatteryLevel = 0
	}
	if d.BatteryLevel > 100 {
		d.BatteryLevel = 100
	}
}

// IsOperational reports whether the drone can be assigned to a mission.
func (d *Drone) IsOperational() bool {
	return d.Status == DroneAvailable && d.BatteryLevel > 20
}
