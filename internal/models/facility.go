package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FacilityType string

const (
	FacilityIndustrial FacilityType = "industrial"
	FacilityCommercial FacilityType = "commercial"
	FacilityWarehouse  FacilityType = "warehouse"
	FacilityOther      FacilityType = "other"
)

func (t FacilityType) IsValid() bool {
	switch t {
	case FacilityIndustrial, FacilityCommercial, FacilityWarehouse, FacilityOther:
		return true
	}
	return false
}

type FacilityStatus string

const (
	FacilityActive   FacilityStatus = "active"
	FacilityInactive FacilityStatus = "inactive"
)

type FacilityLocation struct {
	Address     string   `bson:"address" json:"address"`
	City        string   `bson:"city" json:"city"`
	State       string   `bson:"state" json:"state"`
	Country     string   `bson:"country" json:"country"`
	Coordinates GeoPoint `bson:"coordinates" json:"coordinates"`
}

// Facility is a physical site with geographic boundaries that missions
// are scoped to. Area is in square meters.
type Facility struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Location   FacilityLocation   `bson:"location" json:"location"`
	Area       float64            `bson:"area" json:"area"`
	Boundaries []GeoPoint         `bson:"boundaries" json:"boundaries"`
	Type       FacilityType       `bson:"type" json:"type"`
	Status     FacilityStatus     `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
