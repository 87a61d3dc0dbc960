package dispatch

import (
	"math"
	"sort"

	"github.com/stickysnack/ev-fleet-sim/internal/core"
)

// HybridStrategy scores every waiting vehicle against urgency, patience,
// and fairness-across-zones terms, then greedily matches robots (best
// battery first) to their highest-scoring still-feasible vehicle.
type HybridStrategy struct{ BasePolicy }

func (*HybridStrategy) Name() string { return "hybrid_strategy" }

func hybridScore(ctx *Context, v *core.Vehicle) float64 {
	timeLeft := float64(v.RemainingDwell(ctx.Now))
	if timeLeft < 1 {
		timeLeft = 1
	}
	need := v.NeedEnergy()

	urgencyFactor := 1.0
	if timeLeft < 60 {
		urgencyFactor = 5 * (60 / timeLeft)
	}

	waitMinutes := float64(ctx.Now - v.Arrival)
	waitingFactor := math.Min(3, waitMinutes/60)

	zone := core.ZoneOf(v.Pos, ctx.Park.Width, ctx.Park.Height)
	areaBalance := 1.0
	if ctx.Stats != nil && ctx.Stats.FairShare(zone) < 0.8*(1.0/float64(len(core.AllZones()))) {
		areaBalance = 1.5
	}

	return (need / timeLeft) * urgencyFactor * waitingFactor * areaBalance
}

// hybridSafetyMargin is the robot-specific margin clip(1.5-battery/60, 1.2, 1.5).
func hybridSafetyMargin(batteryCharge float64) float64 {
	m := 1.5 - batteryCharge/60
	if m < 1.2 {
		return 1.2
	}
	if m > 1.5 {
		return 1.5
	}
	return m
}

func (*HybridStrategy) Assign(ctx *Context, robots []*core.Robot, vehicles []*core.Vehicle) []Assignment {
	orderedRobots := append([]*core.Robot(nil), robots...)
	sort.Slice(orderedRobots, func(i, j int) bool {
		bi := ctx.BatteryOf(orderedRobots[i].HeldBattery)
		bj := ctx.BatteryOf(orderedRobots[j].HeldBattery)
		var ci, cj float64
		if bi != nil {
			ci = bi.CurrentCharge
		}
		if bj != nil {
			cj = bj.CurrentCharge
		}
		return ci > cj
	})

	scores := make(map[core.VehicleID]float64, len(vehicles))
	for _, v := range vehicles {
		scores[v.ID] = hybridScore(ctx, v)
	}

	var assignments []Assignment
	pool := vehicles
	for _, r := range orderedRobots {
		if len(pool) == 0 {
			break
		}
		battery := ctx.BatteryOf(r.HeldBattery)
		if battery == nil {
			continue
		}
		margin := hybridSafetyMargin(battery.CurrentCharge)

		var best *core.Vehicle
		bestValue := math.Inf(-1)
		for _, v := range pool {
			if !FeasibleWithMargin(ctx, r, v, margin) {
				continue
			}
			distanceDiscount := 1 - math.Min(0.4, core.Dist(r.Pos, v.Pos)/1000)
			value := scores[v.ID] * distanceDiscount
			if value > bestValue {
				best, bestValue = v, value
			}
		}
		if best == nil {
			continue
		}
		assignments = append(assignments, Assignment{Robot: r.ID, Vehicle: best.ID})
		pool = removeVehicle(pool, best)
	}
	return assignments
}
