package models

type RegisterRequest struct {
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Role      UserRole `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type CreateMissionRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	FacilityID  string            `json:"facilityId"`
	DroneID     string            `json:"droneId"`
	MissionType MissionType       `json:"missionType"`
	Schedule    Schedule          `json:"schedule"`
	FlightPath  []Waypoint        `json:"flightPath"`
	Parameters  MissionParameters `json:"parameters"`
}

// UpdateMissionRequest patches mutable mission fields. Immutable fields
// (facility, drone, type, flight path, parameters, creator) are not here.
type UpdateMissionRequest struct {
	Name        *string        `json:"name,omitempty"`
	Description *string        `json:"description,omitempty"`
	Schedule    *Schedule      `json:"schedule,omitempty"`
	Status      *MissionStatus `json:"status,omitempty"`
}

type CreateDroneRequest struct {
	Name            string    `json:"name"`
	SerialNumber    string    `json:"serialNumber"`
	ModelName       string    `json:"modelName"`
	Manufacturer    string    `json:"manufacturer"`
	BatteryLevel    *float64  `json:"batteryLevel,omitempty"`
	CurrentLocation *Location `json:"currentLocation,omitempty"`
	MaxFlightTime   float64   `json:"maxFlightTime"`
	MaxAltitude     float64   `json:"maxAltitude"`
	MaxSpeed        float64   `json:"maxSpeed"`
	Sensors         []string  `json:"sensors"`
}

type UpdateDroneRequest struct {
	Name            *string   `json:"name,omitempty"`
	ModelName       *string   `json:"modelName,omitempty"`
	Manufacturer    *string   `json:"manufacturer,omitempty"`
	BatteryLevel    *float64  `json:"batteryLevel,omitempty"`
	CurrentLocation *Location `json:"currentLocation,omitempty"`
	MaxFlightTime   *float64  `json:"maxFlightTime,omitempty"`
	MaxAltitude     *float64  `json:"maxAltitude,omitempty"`
	MaxSpeed        *float64  `json:"maxSpeed,omitempty"`
	Sensors         []string  `json:"sensors,omitempty"`
}

type UpdateDroneStatusRequest struct {
	Status DroneStatus `json:"status"`
}

type CreateFacilityRequest struct {
	Name       string           `json:"name"`
	Location   FacilityLocation `json:"location"`
	Area       *float64         `json:"area,omitempty"`
	Boundaries []GeoPoint       `json:"boundaries"`
	Type       FacilityType     `json:"type"`
}

type UpdateFacilityRequest struct {
	Name       *string           `json:"name,omitempty"`
	Location   *FacilityLocation `json:"location,omitempty"`
	Area       *float64          `json:"area,omitempty"`
	Boundaries []GeoPoint        `json:"boundaries,omitempty"`
	Type       *FacilityType     `json:"type,omitempty"`
	Status     *FacilityStatus   `json:"status,omitempty"`
}

type CreateSurveyRequest struct {
	MissionID string       `json:"missionId"`
	StartTime *int64       `json:"startTime,omitempty"` // unix seconds, defaults to now
	Status    SurveyStatus `json:"status,omitempty"`
}

type UpdateSurveyRequest struct {
	Data          *SurveyData       `json:"data,omitempty"`
	TelemetryData []TelemetrySample `json:"telemetryData,omitempty"`
}

type UpdateSurveyStatusRequest struct {
	Status SurveyStatus `json:"status"`
}

type AddFindingsRequest struct {
	Findings []Finding `json:"findings"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
