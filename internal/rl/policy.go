package rl

import (
	"math"
	"math/rand"

	"github.com/stickysnack/ev-fleet-sim/internal/core"
)

// InitialEpsilon, DecayFactor, DecayEvery, and EpsilonFloor govern the
// exploration schedule: epsilon decays by DecayFactor every DecayEvery
// episodes, never going below EpsilonFloor.
const (
	InitialEpsilon = 0.15
	DecayFactor    = 0.95
	DecayEvery     = 5
	EpsilonFloor   = 0.05

	softmaxExponent = 2.0 // temperature 1/2
)

// EpisodeLog records one completed training episode's outcome, the
// per-run tracking original_source's RLChargingSimulation keeps across
// repeated simulator runs against the same policy instance.
type EpisodeLog struct {
	RewardSum float64
	Epsilon   float64
}

// Policy is the tabular Q-learning dispatch policy. It shares the
// simulator's seeded RNG rather than owning one, per the global-RNG
// design note.
type Policy struct {
	Q       *QTable
	Epsilon float64

	episodeCount  int
	episodeReward float64
	Episodes      []EpisodeLog
}

// NewPolicy returns a fresh policy at the initial exploration rate.
func NewPolicy() *Policy {
	return &Policy{Q: NewQTable(), Epsilon: InitialEpsilon}
}

// AccumulateReward adds to the running total for the episode in
// progress.
func (p *Policy) AccumulateReward(r float64) {
	p.episodeReward += r
}

// EndEpisode closes out the current episode: logs its reward and
// epsilon, decays epsilon every DecayEvery episodes, and resets the
// running total.
func (p *Policy) EndEpisode() {
	p.episodeCount++
	p.Episodes = append(p.Episodes, EpisodeLog{RewardSum: p.episodeReward, Epsilon: p.Epsilon})
	p.episodeReward = 0
	if p.episodeCount%DecayEvery == 0 {
		p.Epsilon = math.Max(EpsilonFloor, p.Epsilon*DecayFactor)
	}
}

// selectionWeight is the exploration weight for weighted-random choice
// among waiting vehicles: more urgent vehicles are favored even while
// exploring.
func selectionWeight(timeLeft int) float64 {
	switch {
	case timeLeft < 30:
		return 5
	case timeLeft < 60:
		return 3
	default:
		return 1
	}
}

func weightedRandom(rng *rand.Rand, vehicles []*core.Vehicle, weights []float64) *core.Vehicle {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return vehicles[rng.Intn(len(vehicles))]
	}
	r := rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r <= 0 {
			return vehicles[i]
		}
	}
	return vehicles[len(vehicles)-1]
}

// softmaxPick chooses among vehicles by softmax over their stored
// Q-values at state s, with the (q - max_q) shift spec.md names to keep
// the exponent bounded.
func (p *Policy) softmaxPick(rng *rand.Rand, s State, vehicles []*core.Vehicle) *core.Vehicle {
	qs := make([]float64, len(vehicles))
	maxQ := math.Inf(-1)
	for i, v := range vehicles {
		qs[i] = p.Q.Get(s, v.ID)
		if qs[i] > maxQ {
			maxQ = qs[i]
		}
	}
	weights := make([]float64, len(vehicles))
	total := 0.0
	for i, q := range qs {
		w := math.Exp((q - maxQ) * softmaxExponent)
		weights[i] = w
		total += w
	}
	r := rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r <= 0 {
			return vehicles[i]
		}
	}
	return vehicles[len(vehicles)-1]
}

// Select chooses a waiting vehicle to target from state s, epsilon-greedy
// between weighted-random exploration and softmax exploitation. Returns
// nil if vehicles is empty.
func (p *Policy) Select(rng *rand.Rand, s State, vehicles []*core.Vehicle, t core.Minute) *core.Vehicle {
	if len(vehicles) == 0 {
		return nil
	}
	if rng.Float64() < p.Epsilon {
		weights := make([]float64, len(vehicles))
		for i, v := range vehicles {
			weights[i] = selectionWeight(v.RemainingDwell(t))
		}
		return weightedRandom(rng, vehicles, weights)
	}
	return p.softmaxPick(rng, s, vehicles)
}

// Update applies the Bellman update for the (s,a) pair just resolved.
func (p *Policy) Update(s State, a core.VehicleID, reward float64, sNext State, nextActions []core.VehicleID) {
	p.Q.Update(s, a, reward, sNext, nextActions)
}
