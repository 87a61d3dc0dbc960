package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stickysnack/ev-fleet-sim/internal/config"
	"github.com/stickysnack/ev-fleet-sim/internal/core"
	"github.com/stickysnack/ev-fleet-sim/internal/dispatch"
)

func newTestSim(t *testing.T, policy config.Policy, seed int64, horizon int) *Simulator {
	t.Helper()
	cfg := config.Config{
		Scale:   config.ScaleSmall,
		Policy:  policy,
		Park:    config.Park{Width: 1000, Height: 1000},
		Horizon: horizon,
		Seed:    seed,
	}
	s, err := New(cfg)
	require.NoError(t, err)
	return s
}

func TestRunCompletesSomeVehicles(t *testing.T) {
	s := newTestSim(t, config.PolicyHybridStrategy, 7, 6*60)
	final := s.Run()
	require.Greater(t, final.CompletedCount, 0)
	require.GreaterOrEqual(t, final.CompletionRate, 0.0)
	require.LessOrEqual(t, final.CompletionRate, 100.0)
}

func TestRunIsDeterministicForAFixedSeed(t *testing.T) {
	a := newTestSim(t, config.PolicyNearestFirst, 42, 4*60).Run()
	b := newTestSim(t, config.PolicyNearestFirst, 42, 4*60).Run()
	require.Equal(t, a.CompletedCount, b.CompletedCount)
	require.Equal(t, a.FailedCount, b.FailedCount)
	require.InDelta(t, a.AvgWaitingTime, b.AvgWaitingTime, 1e-9)
	require.Equal(t, a.BatterySwaps, b.BatterySwaps)
}

// TestSingleRobotSingleVehicleCompletes is scenario 1: with every idle
// robot (each holding a full battery) moved to the origin, one nearby
// vehicle that needs little energy and has ample dwell is served by a
// single robot and reaches VehicleCompleted.
func TestSingleRobotSingleVehicleCompletes(t *testing.T) {
	s := newTestSim(t, config.PolicyNearestFirst, 1, 1)
	// Clear the generated arrivals; this scenario wants one controlled
	// vehicle instead of the Poisson stream.
	s.pending = map[core.VehicleID]pendingArrival{}
	for _, r := range s.robots {
		r.Pos = core.Pos{X: 0, Y: 0}
	}
	v := &core.Vehicle{
		ID:             9000,
		Pos:            core.Pos{X: 5, Y: 0},
		Arrival:        0,
		Departure:      500,
		InitialEnergy:  40,
		RequiredEnergy: 45,
		CurrentEnergy:  40,
		Status:         core.VehicleWaiting,
	}
	s.vehicles[v.ID] = v
	s.waiting = append(s.waiting, v.ID)

	for minute := 0; minute < 400 && v.Status != core.VehicleCompleted; minute++ {
		s.now = core.Minute(minute)
		s.handleAssignTasks()
		s.handleUpdateStatus()
	}
	require.Equal(t, core.VehicleCompleted, v.Status)
}

// TestBatteryAbandonmentReturnsVehicleToWaiting is scenario 3: a robot
// whose held battery drops below the abandon threshold mid-charge
// releases the vehicle back to waiting instead of stalling forever.
func TestBatteryAbandonmentReturnsVehicleToWaiting(t *testing.T) {
	s := newTestSim(t, config.PolicyNearestFirst, 2, 1)
	r := s.robots[1]
	r.Status = core.RobotChargingVehicle
	r.TargetVehicle = 500
	b := s.batteries[r.HeldBattery]
	b.CurrentCharge = abandonThreshold - 1

	v := &core.Vehicle{
		ID:             500,
		Pos:            r.Pos,
		Departure:      1000,
		RequiredEnergy: 90,
		CurrentEnergy:  10,
		Status:         core.VehicleCharging,
		AssignedRobot:  r.ID,
	}
	s.vehicles[v.ID] = v
	s.activeAssignment[r.ID] = dispatch.Assignment{Robot: r.ID, Vehicle: v.ID}

	s.updateChargingVehicle(r, b)

	require.Equal(t, core.VehicleWaiting, v.Status)
	require.Equal(t, core.RobotID(0), v.AssignedRobot)
	require.Equal(t, core.RobotReturning, r.Status)
	require.Contains(t, s.waiting, v.ID)
}

// TestEmergencyArrivalAssignsImmediately is scenario 4: a vehicle
// arriving with a short dwell is assigned the same minute, without
// waiting for the next periodic dispatch pass.
func TestEmergencyArrivalAssignsImmediately(t *testing.T) {
	s := newTestSim(t, config.PolicyNearestFirst, 3, 1)
	for _, r := range s.robots {
		r.Pos = core.Pos{X: 0, Y: 0}
	}

	id := core.VehicleID(9001)
	s.pending[id] = pendingArrival{
		pos:            core.Pos{X: 10, Y: 0},
		initialEnergy:  50,
		requiredEnergy: 60,
		dwell:          30, // under the 60-minute emergency threshold
	}
	s.now = 0
	s.handleArrival(id)

	v := s.vehicles[id]
	require.Equal(t, core.VehicleAssigned, v.Status)
	require.NotZero(t, v.AssignedRobot)
}

// TestHorizonTruncationStopsNewEvents is scenario 6: Step returns false
// once the next event would bring the clock to or past the configured
// horizon, even with events still queued beyond it.
func TestHorizonTruncationStopsNewEvents(t *testing.T) {
	s := newTestSim(t, config.PolicyNearestFirst, 4, 10)
	steps := 0
	for s.Step() {
		steps++
		require.Less(t, int(s.CurrentTime()), 10)
		if steps > 100000 {
			t.Fatal("loop did not terminate at horizon")
		}
	}
	require.False(t, s.Step())
}
