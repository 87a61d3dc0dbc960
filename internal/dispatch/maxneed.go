package dispatch

import (
	"sort"

	"github.com/stickysnack/ev-fleet-sim/internal/core"
)

// MaxChargeNeedFirst orders waiting vehicles by descending outstanding
// energy need, assigning each the nearest still-idle feasible robot.
type MaxChargeNeedFirst struct{ BasePolicy }

func (*MaxChargeNeedFirst) Name() string { return "max_charge_need_first" }

func (*MaxChargeNeedFirst) Assign(ctx *Context, robots []*core.Robot, vehicles []*core.Vehicle) []Assignment {
	ordered := append([]*core.Vehicle(nil), vehicles...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].NeedEnergy() > ordered[j].NeedEnergy() })
	return assignNearestRobotPerVehicle(ctx, robots, ordered)
}
