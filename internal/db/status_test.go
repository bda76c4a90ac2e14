package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatusAcceptsLegacyNames(t *testing.T) {
	cases := map[string]ReservationStatus{
		"active":    StatusActive,
		"occupied":  StatusActive,
		"completed": StatusCompleted,
		"available": StatusCompleted,
		"cancelled": StatusCancelled,
		"canceled":  StatusCancelled,
	}
	for in, want := range cases {
		got, err := ParseStatus(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}
}

func TestParseStatusRejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "ACTIVE", "parked", "done"} {
		_, err := ParseStatus(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestTransitionTable(t *testing.T) {
	assert.True(t, CanTransition(StatusActive, StatusCompleted))
	assert.True(t, CanTransition(StatusActive, StatusCancelled))

	// Completed and cancelled are terminal.
	assert.False(t, CanTransition(StatusCompleted, StatusActive))
	assert.False(t, CanTransition(StatusCompleted, StatusCancelled))
	assert.False(t, CanTransition(StatusCancelled, StatusActive))
	assert.False(t, CanTransition(StatusCancelled, StatusCompleted))
	assert.False(t, CanTransition(StatusActive, StatusActive))
}
