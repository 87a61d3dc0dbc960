// Package rl implements the tabular Q-learning dispatch policy: state
// discretization, epsilon-greedy/softmax action selection, the Q-table,
// and the multi-term reward function.
package rl

import "github.com/stickysnack/ev-fleet-sim/internal/core"

// cellSize is the bin width for the position grid.
const cellSize = 200.0

// State is the discretized world view a robot bases its action on.
type State struct {
	PosXCell     int
	PosYCell     int
	BatteryLevel int
	NearbyCount  int
	UrgentCount  int
	TimePeriod   core.TimePeriod
}

// batteryLevel buckets a battery charge into {0..5}; 0 means no battery,
// otherwise it is the index of the first threshold in {10,20,30,45,+Inf}
// the charge is strictly under.
func batteryLevel(hasBattery bool, charge float64) int {
	if !hasBattery {
		return 0
	}
	thresholds := []float64{10, 20, 30, 45}
	for i, th := range thresholds {
		if charge < th {
			return i + 1
		}
	}
	return 5
}

func clip(n, max int) int {
	if n > max {
		return max
	}
	return n
}

// Encode builds the discretized State for a robot at the given
// simulated minute, given the waiting vehicles within its nearby
// radius.
func Encode(pos core.Pos, hasBattery bool, batteryCharge float64, waiting []*core.Vehicle, t core.Minute) State {
	nearby := 0
	urgent := 0
	for _, v := range waiting {
		if core.Dist(pos, v.Pos) <= 300 {
			nearby++
			if v.RemainingDwell(t) < 30 {
				urgent++
			}
		}
	}
	return State{
		PosXCell:     int(pos.X / cellSize),
		PosYCell:     int(pos.Y / cellSize),
		BatteryLevel: batteryLevel(hasBattery, batteryCharge),
		NearbyCount:  clip(nearby, 8),
		UrgentCount:  clip(urgent, 3),
		TimePeriod:   core.PeriodOf(core.HourOfDay(t)),
	}
}
