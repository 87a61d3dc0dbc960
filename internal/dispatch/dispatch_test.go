package dispatch

import (
	"math/rand"
	"testing"

	"github.com/stickysnack/ev-fleet-sim/internal/core"
	"github.com/stickysnack/ev-fleet-sim/internal/stats"
	"github.com/stretchr/testify/require"
)

func testContext(park *core.Park, batteries map[core.BatteryID]*core.Battery) *Context {
	return &Context{
		Now:   0,
		Park:  park,
		Stats: stats.New("test"),
		Rng:   rand.New(rand.NewSource(1)),
		BatteryOf: func(id core.BatteryID) *core.Battery {
			return batteries[id]
		},
	}
}

func fullBattery(id core.BatteryID) *core.Battery {
	return &core.Battery{ID: id, MaxCapacity: 100, CurrentCharge: 100}
}

func TestNearestFirstChoosesCloser(t *testing.T) {
	park := core.NewPark(2000, 2000)
	batteries := map[core.BatteryID]*core.Battery{1: fullBattery(1)}
	ctx := testContext(park, batteries)

	robot := &core.Robot{ID: 1, Pos: core.Pos{X: 0, Y: 0}, Speed: 20, MovingRate: 1, HeldBattery: 1}
	near := &core.Vehicle{ID: 1, Pos: core.Pos{X: 400, Y: 0}, Departure: 10000, RequiredEnergy: 80, CurrentEnergy: 50}
	far := &core.Vehicle{ID: 2, Pos: core.Pos{X: 1200, Y: 0}, Departure: 10000, RequiredEnergy: 80, CurrentEnergy: 50}

	p := &NearestFirst{}
	got := p.Assign(ctx, []*core.Robot{robot}, []*core.Vehicle{far, near})
	require.Len(t, got, 1)
	require.Equal(t, core.VehicleID(1), got[0].Vehicle)
}

func TestEarliestDeadlineFirstChoosesEarlierDeparture(t *testing.T) {
	park := core.NewPark(2000, 2000)
	batteries := map[core.BatteryID]*core.Battery{1: fullBattery(1)}
	ctx := testContext(park, batteries)

	// MovingRate 0.5 keeps the far vehicle within the energy budget:
	// 1.3 * (30 out + 15 transfer half + ~15.8 back) ~= 79 < 100.
	robot := &core.Robot{ID: 1, Pos: core.Pos{X: 0, Y: 0}, Speed: 20, MovingRate: 0.5, HeldBattery: 1}
	near := &core.Vehicle{ID: 1, Pos: core.Pos{X: 400, Y: 0}, Departure: 10000, RequiredEnergy: 80, CurrentEnergy: 50}
	far := &core.Vehicle{ID: 2, Pos: core.Pos{X: 1200, Y: 0}, Departure: 500, RequiredEnergy: 80, CurrentEnergy: 50}

	p := &EarliestDeadlineFirst{}
	got := p.Assign(ctx, []*core.Robot{robot}, []*core.Vehicle{near, far})
	require.Len(t, got, 1)
	require.Equal(t, core.VehicleID(2), got[0].Vehicle, "deadline_first should pick the earlier departure even though it's farther")
}

func TestFeasibleRejectsLowBattery(t *testing.T) {
	park := core.NewPark(1000, 1000)
	batteries := map[core.BatteryID]*core.Battery{1: {ID: 1, MaxCapacity: 100, CurrentCharge: 10}}
	ctx := testContext(park, batteries)
	r := &core.Robot{ID: 1, Pos: core.Pos{X: 0, Y: 0}, Speed: 10, MovingRate: 1, HeldBattery: 1}
	v := &core.Vehicle{ID: 1, Pos: core.Pos{X: 10, Y: 0}, Departure: 1000, RequiredEnergy: 80, CurrentEnergy: 10}
	require.False(t, Feasible(ctx, r, v))
}

func TestFeasibleRejectsTimeInfeasible(t *testing.T) {
	park := core.NewPark(1000, 1000)
	batteries := map[core.BatteryID]*core.Battery{1: fullBattery(1)}
	ctx := testContext(park, batteries)
	r := &core.Robot{ID: 1, Pos: core.Pos{X: 0, Y: 0}, Speed: 1, MovingRate: 1, HeldBattery: 1}
	v := &core.Vehicle{ID: 1, Pos: core.Pos{X: 900, Y: 0}, Departure: 5, RequiredEnergy: 80, CurrentEnergy: 0}
	require.False(t, Feasible(ctx, r, v))
}

func TestHybridSafetyMarginClipped(t *testing.T) {
	require.InDelta(t, 1.5, hybridSafetyMargin(0), 1e-9)
	require.InDelta(t, 1.2, hybridSafetyMargin(100), 1e-9)
	require.InDelta(t, 1.3, hybridSafetyMargin(12), 1e-9)
}

func TestEmergencyPicksNearestFeasibleIdleRobot(t *testing.T) {
	park := core.NewPark(2000, 2000)
	batteries := map[core.BatteryID]*core.Battery{1: fullBattery(1), 2: fullBattery(2)}
	ctx := testContext(park, batteries)

	near := &core.Robot{ID: 1, Pos: core.Pos{X: 100, Y: 0}, Speed: 20, MovingRate: 1, HeldBattery: 1}
	far := &core.Robot{ID: 2, Pos: core.Pos{X: 900, Y: 0}, Speed: 20, MovingRate: 1, HeldBattery: 2}
	v := &core.Vehicle{ID: 1, Pos: core.Pos{X: 0, Y: 0}, Departure: 45, RequiredEnergy: 60, CurrentEnergy: 40}

	got := Emergency(ctx, []*core.Robot{far, near}, v)
	require.NotNil(t, got)
	require.Equal(t, core.RobotID(1), got.ID)
}

func TestRLPolicyAssignDoesNotPanicAndRespectsPool(t *testing.T) {
	park := core.NewPark(2000, 2000)
	batteries := map[core.BatteryID]*core.Battery{1: fullBattery(1)}
	ctx := testContext(park, batteries)

	robot := &core.Robot{ID: 1, Pos: core.Pos{X: 0, Y: 0}, Speed: 20, MovingRate: 1, HeldBattery: 1}
	v := &core.Vehicle{ID: 1, Pos: core.Pos{X: 100, Y: 0}, Departure: 10000, RequiredEnergy: 80, CurrentEnergy: 50}

	p := NewRLPolicy()
	got := p.Assign(ctx, []*core.Robot{robot}, []*core.Vehicle{v})
	require.LessOrEqual(t, len(got), 1)
	if len(got) == 1 {
		p.OnCompletion(ctx, got[0], 30, 20, 100, 5)
	}
}

func TestByNameKnownAndUnknown(t *testing.T) {
	require.NotNil(t, ByName("nearest_first"))
	require.NotNil(t, ByName("rl"))
	require.Nil(t, ByName("does_not_exist"))
}
