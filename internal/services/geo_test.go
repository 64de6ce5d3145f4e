package services

import (
	"testing"

	"drone-survey-service/internal/apperr"
	"drone-survey-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBoundaries(t *testing.T) {
	err := ValidateBoundaries([]models.GeoPoint{
		{Latitude: 10, Longitude: 106},
		{Latitude: 10.01, Longitude: 106},
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidationFailed, apperr.KindOf(err))

	err = ValidateBoundaries([]models.GeoPoint{
		{Latitude: 10, Longitude: 106},
		{Latitude: 10.01, Longitude: 106},
		{Latitude: 10.01, Longitude: 106.01},
	})
	assert.NoError(t, err)
}

func TestBoundaryArea_UnitSquare(t *testing.T) {
	// Roughly a 1.11km x 1.11km square at the equator (0.01 degrees).
	boundaries := []models.GeoPoint{
		{Latitude: 0, Longitude: 0},
		{Latitude: 0, Longitude: 0.01},
		{Latitude: 0.01, Longitude: 0.01},
		{Latitude: 0.01, Longitude: 0},
	}

	area, err := BoundaryArea(boundaries)

	require.NoError(t, err)
	sideMeters := 6371000.0 * 0.01 * 3.141592653589793 / 180
	assert.InDelta(t, sideMeters*sideMeters, area, sideMeters*sideMeters*0.01)
}

func TestBoundaryArea_ClosedRingEqualsOpenRing(t *testing.T) {
	open := []models.GeoPoint{
		{Latitude: 10, Longitude: 106},
		{Latitude: 10, Longitude: 106.02},
		{Latitude: 10.02, Longitude: 106.02},
		{Latitude: 10.02, Longitude: 106},
	}
	closed := append(append([]models.GeoPoint{}, open...), open[0])

	openArea, err := BoundaryArea(open)
	require.NoError(t, err)
	closedArea, err := BoundaryArea(closed)
	require.NoError(t, err)

	assert.InDelta(t, openArea, closedArea, 0.001)
}

func TestBoundaryArea_TooFewPoints(t *testing.T) {
	_, err := BoundaryArea([]models.GeoPoint{{Latitude: 10, Longitude: 106}})

	require.Error(t, err)
	assert.Equal(t, apperr.KindValidationFailed, apperr.KindOf(err))
}
