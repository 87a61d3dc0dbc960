// Package dispatch implements the pluggable assignment policies that
// match idle robots to waiting vehicles: five heuristics plus a
// Q-learning policy, all built on one shared feasibility predicate.
package dispatch

import (
	"math/rand"

	"github.com/stickysnack/ev-fleet-sim/internal/core"
	"github.com/stickysnack/ev-fleet-sim/internal/stats"
)

// Context carries the read access a policy needs beyond the robot and
// vehicle lists passed directly to Assign: the park geometry for travel
// and station lookups, the run's shared RNG, and the stats aggregate the
// hybrid policy's area-balance term reads from.
type Context struct {
	Now       core.Minute
	Park      *core.Park
	Stats     *stats.Stats
	Rng       *rand.Rand
	BatteryOf func(core.BatteryID) *core.Battery
}

// Assignment pairs a robot with the vehicle a policy has selected for
// it.
type Assignment struct {
	Robot   core.RobotID
	Vehicle core.VehicleID
}
