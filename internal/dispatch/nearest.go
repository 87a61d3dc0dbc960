package dispatch

import (
	"sort"

	"github.com/stickysnack/ev-fleet-sim/internal/core"
)

// NearestFirst assigns each robot, taken in ascending id order, to the
// closest waiting vehicle it can feasibly serve.
type NearestFirst struct{ BasePolicy }

func (*NearestFirst) Name() string { return "nearest_first" }

func (*NearestFirst) Assign(ctx *Context, robots []*core.Robot, vehicles []*core.Vehicle) []Assignment {
	ordered := append([]*core.Robot(nil), robots...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	var assignments []Assignment
	pool := vehicles
	for _, r := range ordered {
		byDist := append([]*core.Vehicle(nil), pool...)
		sort.Slice(byDist, func(i, j int) bool {
			return core.Dist(r.Pos, byDist[i].Pos) < core.Dist(r.Pos, byDist[j].Pos)
		})
		var chosen *core.Vehicle
		for _, v := range byDist {
			if Feasible(ctx, r, v) {
				chosen = v
				break
			}
		}
		if chosen == nil {
			continue
		}
		assignments = append(assignments, Assignment{Robot: r.ID, Vehicle: chosen.ID})
		pool = removeVehicle(pool, chosen)
	}
	return assignments
}
