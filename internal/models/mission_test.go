package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissionStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		from    MissionStatus
		to      MissionStatus
		allowed bool
	}{
		{MissionPlanned, MissionInProgress, true},
		{MissionPlanned, MissionAborted, true},
		{MissionPlanned, MissionCompleted, false},
		{MissionPlanned, MissionPaused, false},
		{MissionInProgress, MissionPaused, true},
		{MissionInProgress, MissionCompleted, true},
		{MissionInProgress, MissionAborted, true},
		{MissionInProgress, MissionFailed, true},
		{MissionInProgress, MissionPlanned, false},
		{MissionPaused, MissionInProgress, true},
		{MissionPaused, MissionAborted, true},
		{MissionPaused, MissionCompleted, false},
		{MissionCompleted, MissionInProgress, false},
		{MissionAborted, MissionPlanned, false},
		{MissionFailed, MissionInProgress, false},
	}

	for _, tt := range tests {
		got := tt.from.CanTransitionTo(tt.to)
		assert.Equal(t, tt.allowed, got, "%s -> %s", tt.from, tt.to)
	}
}

func TestMissionStatusIsValid(t *testing.T) {
	for _, status := range []MissionStatus{MissionPlanned, MissionInProgress, MissionPaused, MissionCompleted, MissionAborted, MissionFailed} {
		assert.True(t, status.IsValid(), string(status))
	}
	assert.False(t, MissionStatus("charging").IsValid())
	assert.False(t, MissionStatus("").IsValid())
}

func TestMissionTypeIsValid(t *testing.T) {
	for _, mt := range []MissionType{MissionTypeSurvey, MissionTypeInspection, MissionTypeSecurity, MissionTypeMapping} {
		assert.True(t, mt.IsValid(), string(mt))
	}
	assert.False(t, MissionType("delivery").IsValid())
}
