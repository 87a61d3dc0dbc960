package rl

import (
	"math/rand"
	"testing"

	"github.com/stickysnack/ev-fleet-sim/internal/core"
	"github.com/stretchr/testify/require"
)

func TestBatteryLevelBuckets(t *testing.T) {
	require.Equal(t, 0, batteryLevel(false, 100))
	require.Equal(t, 1, batteryLevel(true, 5))
	require.Equal(t, 2, batteryLevel(true, 15))
	require.Equal(t, 3, batteryLevel(true, 25))
	require.Equal(t, 4, batteryLevel(true, 40))
	require.Equal(t, 5, batteryLevel(true, 99))
}

func TestEncodeClipsNearbyAndUrgentCounts(t *testing.T) {
	var waiting []*core.Vehicle
	for i := 0; i < 12; i++ {
		waiting = append(waiting, &core.Vehicle{
			ID:        core.VehicleID(i + 1),
			Pos:       core.Pos{X: 0, Y: 0},
			Departure: 10, // time_left < 30 for all -> urgent
		})
	}
	s := Encode(core.Pos{X: 0, Y: 0}, true, 50, waiting, 0)
	require.Equal(t, 8, s.NearbyCount)
	require.Equal(t, 3, s.UrgentCount)
}

func TestQTableUpdateMovesTowardTarget(t *testing.T) {
	q := NewQTable()
	s := State{}
	sNext := State{PosXCell: 1}
	q.Update(s, 1, 10, sNext, nil)
	// target = 10 + 0.8*0 = 10; new = 0 + 0.2*(10-0) = 2.
	require.InDelta(t, 2.0, q.Get(s, 1), 1e-9)
}

func TestEpsilonDecaysEveryFiveEpisodesWithFloor(t *testing.T) {
	p := NewPolicy()
	for i := 0; i < 5; i++ {
		p.EndEpisode()
	}
	require.InDelta(t, InitialEpsilon*DecayFactor, p.Epsilon, 1e-9)

	for i := 0; i < 1000; i++ {
		p.EndEpisode()
	}
	require.InDelta(t, EpsilonFloor, p.Epsilon, 1e-9)
}

func TestSelectReturnsNilWhenNoVehicles(t *testing.T) {
	p := NewPolicy()
	rng := rand.New(rand.NewSource(1))
	require.Nil(t, p.Select(rng, State{}, nil, 0))
}

func TestSelectAlwaysReturnsOneOfTheCandidates(t *testing.T) {
	p := NewPolicy()
	rng := rand.New(rand.NewSource(1))
	vehicles := []*core.Vehicle{
		{ID: 1, Departure: 1000},
		{ID: 2, Departure: 1000},
	}
	for i := 0; i < 50; i++ {
		v := p.Select(rng, State{}, vehicles, 0)
		require.Contains(t, []core.VehicleID{1, 2}, v.ID)
	}
}
