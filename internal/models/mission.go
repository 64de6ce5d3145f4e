package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MissionStatus string

const (
	MissionPlanned    MissionStatus = "planned"
	MissionInProgress MissionStatus = "in-progress"
	MissionPaused     MissionStatus = "paused"
	MissionCompleted  MissionStatus = "completed"
	MissionAborted    MissionStatus = "aborted"
	MissionFailed     MissionStatus = "failed"
)

func (s MissionStatus) IsValid() bool {
	switch s {
	case MissionPlanned, MissionInProgress, MissionPaused, MissionCompleted, MissionAborted, MissionFailed:
		return true
	}
	return false
}

// allowedTransitions is the mission lifecycle graph. Terminal states
// (completed, aborted, failed) have no outgoing edges.
var allowedTransitions = map[MissionStatus][]MissionStatus{
	MissionPlanned:    {MissionInProgress, MissionAborted},
	MissionInProgress: {MissionPaused, MissionCompleted, MissionAborted, MissionFailed},
	MissionPaused:     {MissionInProgress, MissionAborted},
}

// CanTransitionTo reports whether the lifecycle allows moving from s to target.
func (s MissionStatus) CanTransitionTo(target MissionStatus) bool {
	for _, next := range allowedTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

type MissionType string

const (
	MissionTypeSurvey     MissionType = "survey"
	MissionTypeInspection MissionType = "inspection"
	MissionTypeSecurity   MissionType = "security"
	MissionTypeMapping    MissionType = "mapping"
)

func (t MissionType) IsValid() bool {
	switch t {
	case MissionTypeSurvey, MissionTypeInspection, MissionTypeSecurity, MissionTypeMapping:
		return true
	}
	return false
}

// Waypoint is one ordered point in a mission's flight path.
type Waypoint struct {
	Waypoint  int     `bson:"waypoint" json:"waypoint"`
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
	Altitude  float64 `bson:"altitude" json:"altitude"`
	Speed     float64 `bson:"speed" json:"speed"`
	Action    string  `bson:"action,omitempty" json:"action,omitempty"`
}

type Schedule struct {
	StartTime        time.Time `bson:"startTime" json:"startTime"`
	EndTime          time.Time `bson:"endTime" json:"endTime"`
	IsRecurring      bool      `bson:"isRecurring" json:"isRecurring"`
	RecurringPattern string    `bson:"recurringPattern,omitempty" json:"recurringPattern,omitempty"`
}

type MissionParameters struct {
	Altitude          float64 `bson:"altitude" json:"altitude"`
	Speed             float64 `bson:"speed" json:"speed"`
	OverlapPercentage float64 `bson:"overlapPercentage" json:"overlapPercentage"`
	Resolution        float64 `bson:"resolution" json:"resolution"`
}

// Mission is a scheduled drone flight with a path, parameters and a
// lifecycle status. Facility, drone, type, flight path, parameters and
// creator are fixed at creation time.
type Mission struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	FacilityID  primitive.ObjectID `bson:"facilityId" json:"facilityId"`
	DroneID     primitive.ObjectID `bson:"droneId" json:"droneId"`
	MissionType MissionType        `bson:"missionType" json:"missionType"`
	Status      MissionStatus      `bson:"status" json:"status"`
	Schedule    Schedule           `bson:"schedule" json:"schedule"`
	FlightPath  []Waypoint         `bson:"flightPath" json:"flightPath"`
	Parameters  MissionParameters  `bson:"parameters" json:"parameters"`
	CreatedBy   primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
