package dispatch

import "github.com/stickysnack/ev-fleet-sim/internal/core"

// Emergency attempts to assign the nearest feasible idle robot to v
// immediately, bypassing the periodic assignment pass. Called on arrival
// of a vehicle whose remaining dwell is under the emergency threshold
// (60 minutes); returns nil if no idle robot currently qualifies.
func Emergency(ctx *Context, idleRobots []*core.Robot, v *core.Vehicle) *core.Robot {
	return nearestFeasibleRobot(ctx, idleRobots, v)
}
