// Package stats accumulates and finalizes the run statistics the kernel
// reports: completion/failure counts, waiting and charging time, robot
// utilization, battery swaps, and zone coverage.
package stats

import "github.com/stickysnack/ev-fleet-sim/internal/core"

// Stats is the mutable aggregate the simulator updates as events occur.
// Construct it with New: the zero value's maps are nil, so the
// recording methods panic on it.
type Stats struct {
	RunID string

	CompletedCount int
	FailedCount    int

	totalWaiting  float64
	totalCharging float64

	BatterySwaps int

	busyMinutes map[core.RobotID]float64
	robotSeen   map[core.RobotID]bool

	zoneServed map[core.Zone]int
}

// New returns an empty Stats tagged with runID.
func New(runID string) *Stats {
	return &Stats{
		RunID:       runID,
		busyMinutes: make(map[core.RobotID]float64),
		robotSeen:   make(map[core.RobotID]bool),
		zoneServed:  make(map[core.Zone]int),
	}
}

// RecordCompletion accounts for a vehicle that finished charging: waiting
// time is charging-start minus arrival, charging time is end minus
// charging-start.
func (s *Stats) RecordCompletion(v *core.Vehicle, zone core.Zone) {
	s.CompletedCount++
	s.totalWaiting += float64(v.ChargingStart - v.Arrival)
	s.totalCharging += float64(v.ChargingEnd - v.ChargingStart)
	s.zoneServed[zone]++
}

// RecordFailure accounts for a vehicle that departed unmet.
func (s *Stats) RecordFailure() {
	s.FailedCount++
}

// RecordBatterySwap increments the swap counter.
func (s *Stats) RecordBatterySwap() {
	s.BatterySwaps++
}

// AccrueBusyMinute marks one minute of robot r as not idle, for
// utilization accounting.
func (s *Stats) AccrueBusyMinute(r core.RobotID) {
	s.robotSeen[r] = true
	s.busyMinutes[r]++
}

// TrackRobot registers a robot so it appears with zero utilization even
// if it was never busy.
func (s *Stats) TrackRobot(r core.RobotID) {
	s.robotSeen[r] = true
}

// CompletionRate returns the percentage of terminal vehicles that
// completed, 0 if none reached a terminal state.
func (s *Stats) CompletionRate() float64 {
	total := s.CompletedCount + s.FailedCount
	if total == 0 {
		return 0
	}
	return 100 * float64(s.CompletedCount) / float64(total)
}

// AvgWaitingTime returns the mean wait (arrival to charging-start) over
// completed vehicles, 0 if none completed.
func (s *Stats) AvgWaitingTime() float64 {
	if s.CompletedCount == 0 {
		return 0
	}
	return s.totalWaiting / float64(s.CompletedCount)
}

// AvgChargingTime returns the mean charging duration over completed
// vehicles, 0 if none completed.
func (s *Stats) AvgChargingTime() float64 {
	if s.CompletedCount == 0 {
		return 0
	}
	return s.totalCharging / float64(s.CompletedCount)
}

// Utilization returns each tracked robot's busy-minute fraction of
// elapsed minutes.
func (s *Stats) Utilization(elapsedMinutes int) map[core.RobotID]float64 {
	out := make(map[core.RobotID]float64, len(s.robotSeen))
	if elapsedMinutes <= 0 {
		for r := range s.robotSeen {
			out[r] = 0
		}
		return out
	}
	for r := range s.robotSeen {
		out[r] = s.busyMinutes[r] / float64(elapsedMinutes)
	}
	return out
}

// AvgUtilization returns the mean of Utilization's per-robot values, 0 if
// no robots are tracked.
func (s *Stats) AvgUtilization(elapsedMinutes int) float64 {
	util := s.Utilization(elapsedMinutes)
	if len(util) == 0 {
		return 0
	}
	sum := 0.0
	for _, u := range util {
		sum += u
	}
	return sum / float64(len(util))
}

// ZoneCoverage returns the number of vehicles served per quadrant.
func (s *Stats) ZoneCoverage() map[core.Zone]int {
	out := make(map[core.Zone]int, len(s.zoneServed))
	for z, n := range s.zoneServed {
		out[z] = n
	}
	return out
}

// FairShare returns the fraction of total completions zone z has
// received, used by the hybrid policy's area-balance term. Returns 1
// (fully served) when nothing has completed yet, so the term never
// divides by zero.
func (s *Stats) FairShare(z core.Zone) float64 {
	if s.CompletedCount == 0 {
		return 1
	}
	return float64(s.zoneServed[z]) / float64(s.CompletedCount)
}

// Final is the immutable snapshot of Stats reported at run end and over
// the snapshot API.
type Final struct {
	RunID             string
	CompletedCount    int
	FailedCount       int
	CompletionRate    float64
	AvgWaitingTime    float64
	AvgChargingTime   float64
	BatterySwaps      int
	Utilization       map[core.RobotID]float64
	AvgUtilization    float64
	ZoneCoverage      map[core.Zone]int
}

// Finalize computes the Final snapshot given how many minutes the run
// actually covered.
func (s *Stats) Finalize(elapsedMinutes int) Final {
	return Final{
		RunID:           s.RunID,
		CompletedCount:  s.CompletedCount,
		FailedCount:     s.FailedCount,
		CompletionRate:  s.CompletionRate(),
		AvgWaitingTime:  s.AvgWaitingTime(),
		AvgChargingTime: s.AvgChargingTime(),
		BatterySwaps:    s.BatterySwaps,
		Utilization:     s.Utilization(elapsedMinutes),
		AvgUtilization:  s.AvgUtilization(elapsedMinutes),
		ZoneCoverage:    s.ZoneCoverage(),
	}
}
