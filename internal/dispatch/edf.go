package dispatch

import (
	"sort"

	"github.com/stickysnack/ev-fleet-sim/internal/core"
)

// EarliestDeadlineFirst orders waiting vehicles by ascending departure
// minute, assigning each the nearest still-idle feasible robot.
type EarliestDeadlineFirst struct{ BasePolicy }

func (*EarliestDeadlineFirst) Name() string { return "earliest_deadline_first" }

func (*EarliestDeadlineFirst) Assign(ctx *Context, robots []*core.Robot, vehicles []*core.Vehicle) []Assignment {
	ordered := append([]*core.Vehicle(nil), vehicles...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Departure < ordered[j].Departure })
	return assignNearestRobotPerVehicle(ctx, robots, ordered)
}
