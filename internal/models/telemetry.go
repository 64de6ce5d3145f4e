package models

import "time"

// DroneTelemetry is one synthetic telemetry reading for a drone.
type DroneTelemetry struct {
	Timestamp      time.Time `json:"timestamp"`
	DroneID        string    `json:"droneId"`
	Location       Location  `json:"location"`
	BatteryLevel   float64   `json:"batteryLevel"`
	Speed          float64   `json:"speed"`
	Heading        float64   `json:"heading"`
	SignalStrength float64   `json:"signalStrength"`
	Temperature    float64   `json:"temperature"`
	Humidity       float64   `json:"humidity"`
	Pressure       float64   `json:"pressure"`
}

// TelemetryStats are aggregate figures derived from a survey's telemetry.
type TelemetryStats struct {
	AverageSpeed        float64 `json:"averageSpeed"`
	AverageAltitude     float64 `json:"averageAltitude"`
	AverageBatteryLevel float64 `json:"averageBatteryLevel"`
	MaxSpeed            float64 `json:"maxSpeed"`
	MaxAltitude         float64 `json:"maxAltitude"`
	TotalDistance       float64 `json:"totalDistance"`
	FlightTime          float64 `json:"flightTime"`
}
