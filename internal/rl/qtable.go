package rl

import "github.com/stickysnack/ev-fleet-sim/internal/core"

// Alpha is the Q-learning step size.
const Alpha = 0.2

// Gamma is the discount factor.
const Gamma = 0.8

// QTable stores Q(s, v.id) for every state-action pair visited. Actions
// are keyed by vehicle id, matching the reference: the action space is
// "which waiting vehicle to pick," not a fixed discrete set.
type QTable struct {
	values map[State]map[core.VehicleID]float64
}

// NewQTable returns an empty table.
func NewQTable() *QTable {
	return &QTable{values: make(map[State]map[core.VehicleID]float64)}
}

// Get returns the stored Q-value, defaulting to 0 for an unseen pair.
func (q *QTable) Get(s State, a core.VehicleID) float64 {
	row, ok := q.values[s]
	if !ok {
		return 0
	}
	return row[a]
}

// Set stores a Q-value.
func (q *QTable) Set(s State, a core.VehicleID, v float64) {
	row, ok := q.values[s]
	if !ok {
		row = make(map[core.VehicleID]float64)
		q.values[s] = row
	}
	row[a] = v
}

// MaxOver returns the highest Q-value among the given actions at state s,
// 0 if actions is empty (a terminal next-state has no bootstrapped
// value).
func (q *QTable) MaxOver(s State, actions []core.VehicleID) float64 {
	if len(actions) == 0 {
		return 0
	}
	max := q.Get(s, actions[0])
	for _, a := range actions[1:] {
		if v := q.Get(s, a); v > max {
			max = v
		}
	}
	return max
}

// Update applies the Bellman update Q <- Q + alpha*(r + gamma*max_a'
// Q(s',a') - Q) for the (s,a) pair just taken, bootstrapping off the
// best known value among nextActions at s'.
func (q *QTable) Update(s State, a core.VehicleID, reward float64, sNext State, nextActions []core.VehicleID) {
	current := q.Get(s, a)
	target := reward + Gamma*q.MaxOver(sNext, nextActions)
	q.Set(s, a, current+Alpha*(target-current))
}
