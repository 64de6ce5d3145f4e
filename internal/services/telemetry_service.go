package services

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"sync"
	"time"

	redisdb "drone-survey-service/internal/database/redis"
	"drone-survey-service/internal/models"
)

const (
	telemetryCacheKeyPrefix = "telemetry:latest:"
	telemetryCacheTTL       = 10 * time.Second
	missionTelemetrySamples = 10
)

// TelemetryService generates synthetic telemetry. It is an explicitly
// owned component: clock and randomness are injected, and streams have an
// explicit start/stop lifecycle instead of ambient global timers. Not a
// real data path.
type TelemetryService struct {
	cache *redisdb.Client
	now   func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

func NewTelemetryService(cache *redisdb.Client) *TelemetryService {
	return &TelemetryService{
		cache: cache,
		now:   time.Now,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *TelemetryService) DroneTelemetry(ctx context.Context, droneID string) *models.DroneTelemetry {
	sample := s.generate(droneID)
	s.cacheSample(ctx, droneID, sample)
	return sample
}

func (s *TelemetryService) MissionTelemetry(ctx context.Context, missionID string) []models.DroneTelemetry {
	samples := make([]models.DroneTelemetry, 0, missionTelemetrySamples)
	for i := 0; i < missionTelemetrySamples; i++ {
		samples = append(samples, *s.generate("mock-drone-id"))
	}
	return samples
}

func (s *TelemetryService) SurveyStatistics(ctx context.Context, surveyID string) *models.TelemetryStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &models.TelemetryStats{
		AverageSpeed:        15 + s.rng.Float64()*5,
		AverageAltitude:     50 + s.rng.Float64()*20,
		AverageBatteryLevel: 70 + s.rng.Float64()*30,
		MaxSpeed:            25,
		MaxAltitude:         100,
		TotalDistance:       1000 + s.rng.Float64()*500,
		FlightTime:          1800 + s.rng.Float64()*600,
	}
}

// StartStream periodically caches a fresh sample for the drone until the
// returned stop function is called or ctx is cancelled.
func (s *TelemetryService) StartStream(ctx context.Context, droneID string, interval time.Duration) (stop func()) {
	streamCtx, cancel := context.WithCancel(ctx)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-streamCtx.Done():
				return
			case <-ticker.C:
				s.cacheSample(streamCtx, droneID, s.generate(droneID))
			}
		}
	}()

	return cancel
}

func (s *TelemetryService) generate(droneID string) *models.DroneTelemetry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &models.DroneTelemetry{
		Timestamp: s.now(),
		DroneID:   droneID,
		Location: models.Location{
			Latitude:  s.rng.Float64()*180 - 90,
			Longitude: s.rng.Float64()*360 - 180,
			Altitude:  s.rng.Float64() * 100,
		},
		BatteryLevel:   s.rng.Float64() * 100,
		Speed:          s.rng.Float64() * 20,
		Heading:        s.rng.Float64() * 360,
		SignalStrength: s.rng.Float64() * 100,
		Temperature:    20 + s.rng.Float64()*10,
		Humidity:       s.rng.Float64() * 100,
		Pressure:       1000 + s.rng.Float64()*100,
	}
}

func (s *TelemetryService) cacheSample(ctx context.Context, droneID string, sample *models.DroneTelemetry) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(sample)
	if err != nil {
		return
	}
	key := telemetryCacheKeyPrefix + droneID
	if err := s.cache.GetClient().Set(ctx, key, data, telemetryCacheTTL).Err(); err != nil {
		log.Printf("Failed to cache telemetry for drone %s: %v", droneID, err)
	}
}
