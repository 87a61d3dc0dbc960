package dispatch

import "github.com/stickysnack/ev-fleet-sim/internal/core"

// Policy is the capability set every dispatch strategy implements: batch
// assignment over the current pools, plus hooks the learned policy uses
// to record state-action pairs and close the reward loop. Heuristic
// policies embed BasePolicy to get no-op hooks for free.
type Policy interface {
	Name() string
	// Assign consumes from robots and vehicles as it commits pairings,
	// returning every assignment it made this pass.
	Assign(ctx *Context, robots []*core.Robot, vehicles []*core.Vehicle) []Assignment
	// PostAssignment is called once per Assignment returned by Assign,
	// after the caller has applied it to simulator state.
	PostAssignment(ctx *Context, a Assignment)
	// OnCompletion is called when a's vehicle finishes charging.
	OnCompletion(ctx *Context, a Assignment, energyAdded, chargingTime float64, timeLeftAtStart int, wait float64)
	// OnFailure is called when a's vehicle departs unmet.
	OnFailure(ctx *Context, a Assignment)
}

// BasePolicy supplies no-op hook implementations for policies that don't
// need to react to assignment outcomes.
type BasePolicy struct{}

func (BasePolicy) PostAssignment(*Context, Assignment) {}
func (BasePolicy) OnCompletion(*Context, Assignment, float64, float64, int, float64) {}
func (BasePolicy) OnFailure(*Context, Assignment) {}

// ByName constructs the policy registered under name, or nil if
// unrecognized. Kept in sync with internal/config's Policy constants.
func ByName(name string) Policy {
	switch name {
	case "nearest_first":
		return &NearestFirst{}
	case "max_charge_need_first":
		return &MaxChargeNeedFirst{}
	case "earliest_deadline_first":
		return &EarliestDeadlineFirst{}
	case "most_urgent_first":
		return &MostUrgentFirst{}
	case "hybrid_strategy":
		return &HybridStrategy{}
	case "rl":
		return NewRLPolicy()
	default:
		return nil
	}
}
