package dispatch

import "github.com/stickysnack/ev-fleet-sim/internal/core"

// removeRobot returns robots with r dropped, preserving order.
func removeRobot(robots []*core.Robot, r *core.Robot) []*core.Robot {
	out := make([]*core.Robot, 0, len(robots)-1)
	for _, x := range robots {
		if x.ID != r.ID {
			out = append(out, x)
		}
	}
	return out
}

// removeVehicle returns vehicles with v dropped, preserving order.
func removeVehicle(vehicles []*core.Vehicle, v *core.Vehicle) []*core.Vehicle {
	out := make([]*core.Vehicle, 0, len(vehicles)-1)
	for _, x := range vehicles {
		if x.ID != v.ID {
			out = append(out, x)
		}
	}
	return out
}

// nearestFeasibleRobot scans robots for the closest one feasible for v,
// or nil if none qualify.
func nearestFeasibleRobot(ctx *Context, robots []*core.Robot, v *core.Vehicle) *core.Robot {
	var best *core.Robot
	bestDist := 0.0
	for _, r := range robots {
		if !Feasible(ctx, r, v) {
			continue
		}
		d := core.Dist(r.Pos, v.Pos)
		if best == nil || d < bestDist {
			best, bestDist = r, d
		}
	}
	return best
}

// assignNearestRobotPerVehicle is the shared inner loop for every
// policy that orders waiting vehicles by some key and, for each in
// order, assigns the nearest still-idle feasible robot.
func assignNearestRobotPerVehicle(ctx *Context, robots []*core.Robot, orderedVehicles []*core.Vehicle) []Assignment {
	var assignments []Assignment
	pool := robots
	for _, v := range orderedVehicles {
		r := nearestFeasibleRobot(ctx, pool, v)
		if r == nil {
			continue
		}
		assignments = append(assignments, Assignment{Robot: r.ID, Vehicle: v.ID})
		pool = removeRobot(pool, r)
	}
	return assignments
}
