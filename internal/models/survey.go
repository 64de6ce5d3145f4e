package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SurveyStatus string

const (
	SurveyInProgress SurveyStatus = "in-progress"
	SurveyCompleted  SurveyStatus = "completed"
	SurveyFailed     SurveyStatus = "failed"
)

func (s SurveyStatus) IsValid() bool {
	switch s {
	case SurveyInProgress, SurveyCompleted, SurveyFailed:
		return true
	}
	return false
}

type FindingSeverity string

const (
	SeverityLow    FindingSeverity = "low"
	SeverityMedium FindingSeverity = "medium"
	SeverityHigh   FindingSeverity = "high"
)

func (s FindingSeverity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

type GeoPoint struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

type Location struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
	Altitude  float64 `bson:"altitude" json:"altitude"`
}

// TelemetrySample is one timestamped point in a survey's telemetry sequence.
type TelemetrySample struct {
	Timestamp    time.Time `bson:"timestamp" json:"timestamp"`
	Location     Location  `bson:"location" json:"location"`
	BatteryLevel float64   `bson:"batteryLevel" json:"batteryLevel"`
	Speed        float64   `bson:"speed" json:"speed"`
}

type Finding struct {
	Type        string          `bson:"type" json:"type"`
	Severity    FindingSeverity `bson:"severity" json:"severity"`
	Location    GeoPoint        `bson:"location" json:"location"`
	Description string          `bson:"description" json:"description"`
	ImageURL    string          `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
}

type SurveyData struct {
	CoverageArea    float64 `bson:"coverageArea" json:"coverageArea"`
	ImagesCollected int     `bson:"imagesCollected" json:"imagesCollected"`
	FlightDuration  float64 `bson:"flightDuration" json:"flightDuration"`
	AverageAltitude float64 `bson:"averageAltitude" json:"averageAltitude"`
	AverageSpeed    float64 `bson:"averageSpeed" json:"averageSpeed"`
}

// Survey records the execution results of one mission run. It is created
// when the mission starts and its status follows the mission's terminal
// transitions.
type Survey struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MissionID     primitive.ObjectID `bson:"missionId" json:"missionId"`
	StartTime     time.Time          `bson:"startTime" json:"startTime"`
	EndTime       *time.Time         `bson:"endTime,omitempty" json:"endTime,omitempty"`
	Status        SurveyStatus       `bson:"status" json:"status"`
	Data          SurveyData         `bson:"data" json:"data"`
	TelemetryData []TelemetrySample  `bson:"telemetryData" json:"telemetryData"`
	Findings      []Finding          `bson:"findings" json:"findings"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
