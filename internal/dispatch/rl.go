package dispatch

import (
	"github.com/stickysnack/ev-fleet-sim/internal/core"
	"github.com/stickysnack/ev-fleet-sim/internal/rl"
)

// pendingSelection remembers the state-action pair a robot's assignment
// was drawn from, along with the reward already accrued at selection
// time, so OnCompletion/OnFailure can close the loop once the outcome is
// known.
type pendingSelection struct {
	state      rl.State
	action     core.VehicleID
	baseReward float64
}

// RLPolicy adapts internal/rl's tabular Q-learning policy to the
// dispatch.Policy interface.
type RLPolicy struct {
	inner   *rl.Policy
	pending map[core.RobotID]pendingSelection
}

// NewRLPolicy returns a fresh RL policy with an empty Q-table.
func NewRLPolicy() *RLPolicy {
	return &RLPolicy{inner: rl.NewPolicy(), pending: make(map[core.RobotID]pendingSelection)}
}

func (*RLPolicy) Name() string { return "rl" }

// EndEpisode closes out the current training episode (reward log,
// epsilon decay), for callers running repeated simulations to train the
// policy across episodes.
func (p *RLPolicy) EndEpisode() { p.inner.EndEpisode() }

// Episodes returns the episode history accumulated so far.
func (p *RLPolicy) Episodes() []rl.EpisodeLog { return p.inner.Episodes }

func (p *RLPolicy) Assign(ctx *Context, robots []*core.Robot, vehicles []*core.Vehicle) []Assignment {
	var assignments []Assignment
	pool := vehicles
	for _, r := range robots {
		if len(pool) == 0 {
			break
		}
		battery := ctx.BatteryOf(r.HeldBattery)
		if battery == nil || battery.CurrentCharge <= MinHoldableCharge {
			continue
		}

		state := rl.Encode(r.Pos, true, battery.CurrentCharge, pool, ctx.Now)
		v := p.inner.Select(ctx.Rng, state, pool, ctx.Now)
		if v == nil {
			continue
		}

		travel := r.TravelTimeTo(v.Pos)
		neededTime := v.NeededChargeTime()
		if float64(ctx.Now)+travel+neededTime > float64(v.Departure) {
			p.inner.Update(state, v.ID, rl.InfeasibleTimeReward, state, nil)
			p.inner.AccumulateReward(rl.InfeasibleTimeReward)
			continue
		}

		neededEnergy := r.BatteryNeededForTrip(v, ctx.Park)
		if battery.CurrentCharge <= defaultSafetyMargin*neededEnergy {
			p.inner.Update(state, v.ID, rl.InfeasibleEnergyReward, state, nil)
			p.inner.AccumulateReward(rl.InfeasibleEnergyReward)
			continue
		}

		distPenalty := rl.SelectionDistancePenalty(core.Dist(r.Pos, v.Pos))
		batteryPenalty := rl.BatteryPenalty(battery.CurrentCharge, neededEnergy)

		assignments = append(assignments, Assignment{Robot: r.ID, Vehicle: v.ID})
		p.pending[r.ID] = pendingSelection{state: state, action: v.ID, baseReward: distPenalty + batteryPenalty}
		pool = removeVehicle(pool, v)
	}
	return assignments
}

func (*RLPolicy) PostAssignment(*Context, Assignment) {}

// OnCompletion closes the pending state-action pair with the completion
// reward. The selection's own state is reused as the bootstrap state:
// the interface surfaces only the assignment outcome, not the robot's
// position at completion time, so there is no richer next-state to
// encode here.
func (p *RLPolicy) OnCompletion(ctx *Context, a Assignment, energyAdded, chargingTime float64, timeLeftAtStart int, wait float64) {
	entry, ok := p.pending[a.Robot]
	if !ok {
		return
	}
	reward := entry.baseReward + rl.CompletionReward(energyAdded, chargingTime, timeLeftAtStart, wait)
	p.inner.Update(entry.state, entry.action, reward, entry.state, nil)
	p.inner.AccumulateReward(reward)
	delete(p.pending, a.Robot)
}

func (p *RLPolicy) OnFailure(ctx *Context, a Assignment) {
	entry, ok := p.pending[a.Robot]
	if !ok {
		return
	}
	reward := entry.baseReward + rl.FailureReward
	p.inner.Update(entry.state, entry.action, reward, entry.state, nil)
	p.inner.AccumulateReward(reward)
	delete(p.pending, a.Robot)
}
