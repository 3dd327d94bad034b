package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironment_StateHelpers(t *testing.T) {
	assert.True(t, Environment{State: StateRunning}.IsRunning())
	assert.False(t, Environment{State: StateTerminated}.IsRunning())

	assert.True(t, Environment{State: StateTerminated}.IsTerminated())
	assert.False(t, Environment{State: StateTerminating}.IsTerminated())

	assert.True(t, Environment{State: StateLaunching}.InTransition())
	assert.True(t, Environment{State: StateUpdating}.InTransition())
	assert.True(t, Environment{State: StateTerminating}.InTransition())
	assert.False(t, Environment{State: StateRunning}.InTransition())
	assert.False(t, Environment{State: StateTerminated}.InTransition())
}

func TestNewestPerName(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
	}
	envs := []Environment{
		{Name: "PROJ123", State: StateTerminated, CreatedAt: day(1)},
		{Name: "PROJ124", State: StateRunning, CreatedAt: day(2)},
		{Name: "PROJ123", State: StateRunning, CreatedAt: day(3)},
		{Name: "PROJ123", State: StateTerminated, CreatedAt: day(2)},
	}

	got := NewestPerName(envs)

	require.Len(t, got, 2)
	assert.Equal(t, "PROJ123", got[0].Name)
	assert.Equal(t, StateRunning, got[0].State, "newest descriptor wins")
	assert.Equal(t, "PROJ124", got[1].Name)
}

func TestNewestPerName_Empty(t *testing.T) {
	assert.Empty(t, NewestPerName(nil))
}
