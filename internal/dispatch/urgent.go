package dispatch

import (
	"sort"

	"github.com/stickysnack/ev-fleet-sim/internal/core"
)

// MostUrgentFirst orders waiting vehicles by descending priority score
// (§4.3), assigning each the nearest still-idle feasible robot.
type MostUrgentFirst struct{ BasePolicy }

func (*MostUrgentFirst) Name() string { return "most_urgent_first" }

func (*MostUrgentFirst) Assign(ctx *Context, robots []*core.Robot, vehicles []*core.Vehicle) []Assignment {
	ordered := append([]*core.Vehicle(nil), vehicles...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Priority > ordered[j].Priority })
	return assignNearestRobotPerVehicle(ctx, robots, ordered)
}
