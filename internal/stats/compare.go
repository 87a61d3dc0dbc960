package stats

import "sort"

// Ranked is one policy's Final stats alongside the policy name that
// produced it, as reported by cmd/evsim's comparison mode.
type Ranked struct {
	Policy string
	Final  Final
}

// Ranking is a comparison across policies run against the same scale and
// seed, ordered best-to-worst by completion rate with average waiting
// time as the tiebreaker. This is the Go-native analogue of
// compare_strategies.py's run_comparative_simulation/run_all_comparisons,
// minus the matplotlib figure.
type Ranking struct {
	Entries []Ranked
}

// Compare builds a Ranking from one Final result per named policy.
func Compare(byPolicy map[string]Final) Ranking {
	entries := make([]Ranked, 0, len(byPolicy))
	for name, f := range byPolicy {
		entries = append(entries, Ranked{Policy: name, Final: f})
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i].Final, entries[j].Final
		if a.CompletionRate != b.CompletionRate {
			return a.CompletionRate > b.CompletionRate
		}
		return a.AvgWaitingTime < b.AvgWaitingTime
	})
	return Ranking{Entries: entries}
}
