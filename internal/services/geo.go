package services

import (
	"math"

	"drone-survey-service/internal/apperr"
	"drone-survey-service/internal/models"

	"github.com/twpayne/go-geom"
)

const earthRadiusMeters = 6371000.0

// ValidateBoundaries checks that facility boundaries form a usable ring:
// at least three distinct points.
func ValidateBoundaries(boundaries []models.GeoPoint) error {
	if len(boundaries) < 3 {
		return apperr.Validation("facility boundaries must form a valid polygon with at least 3 points")
	}
	return nil
}

// BoundaryArea computes the enclosed area in square meters. Points are
// projected onto a local equirectangular plane around the boundary's
// mean latitude, which is accurate enough at facility scale.
func BoundaryArea(boundaries []models.GeoPoint) (float64, error) {
	if err := ValidateBoundaries(boundaries); err != nil {
		return 0, err
	}

	meanLat := 0.0
	for _, p := range boundaries {
		meanLat += p.Latitude
	}
	meanLat = meanLat / float64(len(boundaries)) * math.Pi / 180

	ring := make([]geom.Coord, 0, len(boundaries)+1)
	for _, p := range boundaries {
		x := earthRadiusMeters * (p.Longitude * math.Pi / 180) * math.Cos(meanLat)
		y := earthRadiusMeters * (p.Latitude * math.Pi / 180)
		ring = append(ring, geom.Coord{x, y})
	}
	// Close the ring when the input leaves it open.
	if ring[0][0] != ring[len(ring)-1][0] || ring[0][1] != ring[len(ring)-1][1] {
		ring = append(ring, ring[0])
	}

	polygon := geom.NewPolygon(geom.XY)
	if _, err := polygon.SetCoords([][]geom.Coord{ring}); err != nil {
		return 0, apperr.Validation("facility boundaries do not form a valid polygon")
	}

	return math.Abs(polygon.Area()), nil
}
