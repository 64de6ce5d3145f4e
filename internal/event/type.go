package event

import "time"

const MissionQueue string = "mission_events"

type MissionEventType string

const (
	MissionCreated   MissionEventType = "mission.created"
	MissionStarted   MissionEventType = "mission.started"
	MissionPaused    MissionEventType = "mission.paused"
	MissionResumed   MissionEventType = "mission.resumed"
	MissionAborted   MissionEventType = "mission.aborted"
	MissionCompleted MissionEventType = "mission.completed"
)

type MissionEvent struct {
	ID         string           `json:"id"`
	EventType  MissionEventType `json:"event_type"`
	MissionID  string           `json:"mission_id"`
	FacilityID string           `json:"facility_id"`
	DroneID    string           `json:"drone_id"`
	Status     string           `json:"status"`
	OccurredAt time.Time        `json:"occurred_at"`
}
