package dispatch

import "github.com/stickysnack/ev-fleet-sim/internal/core"

// defaultSafetyMargin is the 1.3x energy-budget multiplier every policy
// but hybrid uses; hybrid substitutes a robot-specific margin.
const defaultSafetyMargin = 1.3

// MinHoldableCharge is the charge a robot's held battery must exceed to
// be offered to the dispatcher at all.
const MinHoldableCharge = 15.0

// Feasible is the shared feasibility predicate: the time budget (travel
// plus charging fits before departure) and the energy budget (the held
// battery clears a 1.3x margin over the estimated trip cost) must both
// hold, and the battery itself must carry more than MinHoldableCharge.
func Feasible(ctx *Context, r *core.Robot, v *core.Vehicle) bool {
	return FeasibleWithMargin(ctx, r, v, defaultSafetyMargin)
}

// FeasibleWithMargin is Feasible parameterized on the energy-budget
// safety margin, used by the hybrid policy's per-robot margin.
func FeasibleWithMargin(ctx *Context, r *core.Robot, v *core.Vehicle, margin float64) bool {
	if !r.HasBattery() {
		return false
	}
	battery := ctx.BatteryOf(r.HeldBattery)
	if battery == nil || battery.CurrentCharge <= MinHoldableCharge {
		return false
	}
	travel := r.TravelTimeTo(v.Pos)
	needed := v.NeededChargeTime()
	if float64(ctx.Now)+travel+needed > float64(v.Departure) {
		return false
	}
	required := r.BatteryNeededForTrip(v, ctx.Park)
	return battery.CurrentCharge > margin*required
}
