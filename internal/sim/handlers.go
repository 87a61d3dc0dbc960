package sim

import (
	"fmt"
	"sort"

	"github.com/stickysnack/ev-fleet-sim/internal/core"
	"github.com/stickysnack/ev-fleet-sim/internal/dispatch"
	"github.com/stickysnack/ev-fleet-sim/internal/eventqueue"
)

func (s *Simulator) scheduleArrival(id core.VehicleID, at core.Minute) {
	s.queue.Push(&eventqueue.Event{Time: at, Kind: eventqueue.KindVehicleArrival, Vehicle: id})
}

func (s *Simulator) scheduleDeparture(id core.VehicleID, at core.Minute) {
	s.queue.Push(&eventqueue.Event{Time: at, Kind: eventqueue.KindVehicleDeparture, Vehicle: id})
}

// handleArrival materializes the pending arrival record into a real
// Vehicle, enqueues it as waiting, and runs the emergency fast path for
// vehicles with a short dwell.
func (s *Simulator) handleArrival(id core.VehicleID) {
	p, ok := s.pending[id]
	if !ok {
		return // no pending record for this id; nothing to do
	}
	delete(s.pending, id)

	v := &core.Vehicle{
		ID:             id,
		Pos:            p.pos,
		Arrival:        s.now,
		Departure:      s.now + core.Minute(p.dwell),
		InitialEnergy:  p.initialEnergy,
		CurrentEnergy:  p.initialEnergy,
		RequiredEnergy: p.requiredEnergy,
		Status:         core.VehicleWaiting,
	}
	v.UpdatePriority(s.now)
	s.vehicles[id] = v
	s.waiting = append(s.waiting, id)

	if v.IsEmergency(s.now) {
		ctx := s.dispatchContext()
		idle := s.idleRobotsWithCharge()
		if r := dispatch.Emergency(ctx, idle, v); r != nil {
			s.commitAssignment(ctx, dispatch.Assignment{Robot: r.ID, Vehicle: v.ID})
		}
	}
}

// handleDeparture marks an unmet vehicle failed and releases any robot
// still targeting it.
func (s *Simulator) handleDeparture(id core.VehicleID) {
	v, ok := s.vehicles[id]
	if !ok {
		return
	}
	if v.Status == core.VehicleCompleted {
		return
	}
	v.Status = core.VehicleFailed
	s.stats.RecordFailure()
	s.removeFromWaiting(id)

	if v.HasAssignedRobot() {
		if r, ok := s.robots[v.AssignedRobot]; ok && r.TargetVehicle == id {
			r.TargetVehicle = 0
			r.Status = core.RobotReturning
		}
	}
	if a, ok := s.activeAssignment[v.AssignedRobot]; ok && a.Vehicle == id {
		s.policy.OnFailure(s.dispatchContext(), a)
		delete(s.activeAssignment, a.Robot)
	}
}

func (s *Simulator) removeFromWaiting(id core.VehicleID) {
	for i, w := range s.waiting {
		if w == id {
			s.waiting = append(s.waiting[:i], s.waiting[i+1:]...)
			return
		}
	}
}

// handleUpdatePriorities recomputes every non-terminal vehicle's
// dispatch priority score.
func (s *Simulator) handleUpdatePriorities() {
	for _, v := range s.vehicles {
		if v.Status == core.VehicleCompleted || v.Status == core.VehicleFailed {
			continue
		}
		v.UpdatePriority(s.now)
	}
}

// handleAssignTasks runs the periodic dispatch pass, guarded by the
// fresh-cache check: skip if the clock is within 2 minutes of the last
// pass and the waiting set hasn't changed.
func (s *Simulator) handleAssignTasks() {
	sig := s.waitingSignature()
	if s.hasAssignedBefore && s.now-s.lastAssignAt < 2 && sig == s.lastWaitingSig {
		return
	}
	s.lastAssignAt = s.now
	s.lastWaitingSig = sig
	s.hasAssignedBefore = true

	ctx := s.dispatchContext()
	idle := s.idleRobotsWithCharge()
	waiting := s.waitingVehicles()
	if len(idle) == 0 || len(waiting) == 0 {
		return
	}
	assignments := s.policy.Assign(ctx, idle, waiting)
	for _, a := range assignments {
		s.commitAssignment(ctx, a)
	}
}

func (s *Simulator) commitAssignment(ctx *dispatch.Context, a dispatch.Assignment) {
	r, ok := s.robots[a.Robot]
	if !ok {
		return
	}
	v, ok := s.vehicles[a.Vehicle]
	if !ok {
		return
	}
	r.TargetVehicle = v.ID
	r.Status = core.RobotMovingToVehicle
	r.LastAssigned = s.now
	v.Status = core.VehicleAssigned
	v.AssignedRobot = r.ID
	s.removeFromWaiting(v.ID)
	s.policy.PostAssignment(ctx, a)
	s.activeAssignment[r.ID] = a
}

func (s *Simulator) waitingVehicles() []*core.Vehicle {
	out := make([]*core.Vehicle, 0, len(s.waiting))
	for _, id := range s.waiting {
		if v, ok := s.vehicles[id]; ok {
			out = append(out, v)
		}
	}
	return out
}

func (s *Simulator) idleRobotsWithCharge() []*core.Robot {
	var out []*core.Robot
	for _, r := range s.robots {
		if r.Status != core.RobotIdle || !r.HasBattery() {
			continue
		}
		if b := s.batteries[r.HeldBattery]; b != nil && b.CurrentCharge > dispatch.MinHoldableCharge {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Simulator) waitingSignature() string {
	// Cheap order-independent signature: sum and count identify the set
	// well enough to detect "unchanged" for the cache guard without
	// allocating a sorted copy every 2 minutes.
	sum := 0
	for _, id := range s.waiting {
		sum += int(id)
	}
	return fmt.Sprintf("%d:%d", len(s.waiting), sum)
}

func (s *Simulator) dispatchContext() *dispatch.Context {
	return &dispatch.Context{
		Now:   s.now,
		Park:  s.Park,
		Stats: s.stats,
		Rng:   s.rng,
		BatteryOf: func(id core.BatteryID) *core.Battery {
			return s.batteries[id]
		},
	}
}
