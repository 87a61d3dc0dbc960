package stats

import (
	"testing"

	"github.com/stickysnack/ev-fleet-sim/internal/core"
	"github.com/stretchr/testify/require"
)

func TestZeroVehiclesCompletedYieldsZeroAverages(t *testing.T) {
	s := New("run-1")
	require.Equal(t, 0.0, s.CompletionRate())
	require.Equal(t, 0.0, s.AvgWaitingTime())
	require.Equal(t, 0.0, s.AvgChargingTime())
	require.Equal(t, 0.0, s.AvgUtilization(100))
}

func TestCompletionRate(t *testing.T) {
	s := New("run-1")
	s.CompletedCount = 3
	s.FailedCount = 1
	require.InDelta(t, 75.0, s.CompletionRate(), 1e-9)
}

func TestRecordCompletionAccrualsWaitingAndCharging(t *testing.T) {
	s := New("run-1")
	v := &core.Vehicle{Arrival: 0, ChargingStart: 10, ChargingEnd: 40}
	s.RecordCompletion(v, core.ZoneSW)
	require.Equal(t, 1, s.CompletedCount)
	require.InDelta(t, 10.0, s.AvgWaitingTime(), 1e-9)
	require.InDelta(t, 30.0, s.AvgChargingTime(), 1e-9)
	require.Equal(t, 1, s.ZoneCoverage()[core.ZoneSW])
}

func TestUtilizationFraction(t *testing.T) {
	s := New("run-1")
	s.TrackRobot(1)
	s.TrackRobot(2)
	for i := 0; i < 30; i++ {
		s.AccrueBusyMinute(1)
	}
	util := s.Utilization(60)
	require.InDelta(t, 0.5, util[1], 1e-9)
	require.InDelta(t, 0.0, util[2], 1e-9)
}

func TestFairShareDefaultsToFullyServedWhenNothingCompleted(t *testing.T) {
	s := New("run-1")
	require.Equal(t, 1.0, s.FairShare(core.ZoneNE))
}

func TestCompareOrdersByCompletionRateThenWaiting(t *testing.T) {
	ranking := Compare(map[string]Final{
		"a": {CompletionRate: 80, AvgWaitingTime: 20},
		"b": {CompletionRate: 90, AvgWaitingTime: 15},
		"c": {CompletionRate: 90, AvgWaitingTime: 10},
	})
	require.Len(t, ranking.Entries, 3)
	require.Equal(t, "c", ranking.Entries[0].Policy)
	require.Equal(t, "b", ranking.Entries[1].Policy)
	require.Equal(t, "a", ranking.Entries[2].Policy)
}
