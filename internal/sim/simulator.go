// Package sim implements the discrete-event kernel: the event queue
// loop, the per-tick state updater, the arrival generator, and the
// departure/completion handlers that drive the entity state machines.
package sim

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/stickysnack/ev-fleet-sim/internal/config"
	"github.com/stickysnack/ev-fleet-sim/internal/core"
	"github.com/stickysnack/ev-fleet-sim/internal/dispatch"
	"github.com/stickysnack/ev-fleet-sim/internal/eventqueue"
	"github.com/stickysnack/ev-fleet-sim/internal/stats"
)

// Periodic event periods in minutes.
const (
	updateStatusPeriod     = 1
	updatePrioritiesPeriod = 5
	assignTasksPeriod      = 2
)

// Simulator is the kernel: a single-threaded, cooperative, event-ordered
// loop over the fleet's entities. Every mutation happens inside an event
// handler that runs to completion before the next event is popped, so no
// locking is required internally. A caller embedding the simulator
// behind a concurrent surface, such as internal/api, is responsible for
// serializing its own access to it.
type Simulator struct {
	runID string

	Park    *core.Park
	horizon core.Minute
	now     core.Minute

	scale      config.ScaleParams
	policyName config.Policy
	policy     dispatch.Policy
	rng        *rand.Rand

	vehicles  map[core.VehicleID]*core.Vehicle
	robots    map[core.RobotID]*core.Robot
	batteries map[core.BatteryID]*core.Battery

	waiting []core.VehicleID
	pending map[core.VehicleID]pendingArrival

	queue *eventqueue.Queue
	stats *stats.Stats

	activeAssignment map[core.RobotID]dispatch.Assignment

	lastAssignAt      core.Minute
	lastWaitingSig    string
	hasAssignedBefore bool

	nextVehicleID core.VehicleID
	nextBatteryID core.BatteryID
}

// New constructs a simulator for cfg, validating the scale and policy
// names; an unknown value is a fatal configuration error at setup.
func New(cfg config.Config) (*Simulator, error) {
	scaleParams, err := cfg.Scale.Params()
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	policy := dispatch.ByName(string(cfg.Policy))
	if policy == nil {
		return nil, fmt.Errorf("configuration error: unknown policy %q", cfg.Policy)
	}

	s := &Simulator{
		runID:            uuid.NewString(),
		Park:             core.NewPark(cfg.Park.Width, cfg.Park.Height),
		horizon:          core.Minute(cfg.Horizon),
		scale:            scaleParams,
		policyName:       cfg.Policy,
		policy:           policy,
		rng:              rand.New(rand.NewSource(cfg.Seed)),
		vehicles:         make(map[core.VehicleID]*core.Vehicle),
		robots:           make(map[core.RobotID]*core.Robot),
		batteries:        make(map[core.BatteryID]*core.Battery),
		pending:          make(map[core.VehicleID]pendingArrival),
		queue:            eventqueue.New(),
		activeAssignment: make(map[core.RobotID]dispatch.Assignment),
	}
	s.stats = stats.New(s.runID)
	s.setup()
	return s, nil
}

// RunID returns this run's unique identifier.
func (s *Simulator) RunID() string { return s.runID }

// PolicyName returns the configured dispatch policy's name.
func (s *Simulator) PolicyName() config.Policy { return s.policyName }

// RLPolicy returns the underlying RL policy for episode-tracking callers,
// or nil if this run isn't using the learned policy.
func (s *Simulator) RLPolicy() *dispatch.RLPolicy {
	rl, _ := s.policy.(*dispatch.RLPolicy)
	return rl
}

// setup places robots at their home stations with an initial battery
// each, builds the remaining battery pool, seeds the periodic events,
// and generates the full horizon's worth of arrivals.
func (s *Simulator) setup() {
	stations := s.Park.Stations
	robotCount := s.scale.Robots
	batteryCount := s.scale.Batteries
	if batteryCount < robotCount {
		batteryCount = robotCount
	}

	batteryID := core.BatteryID(1)
	pool := make([]*core.Battery, 0, batteryCount)
	for i := 0; i < batteryCount; i++ {
		home := stations[i%len(stations)]
		b := core.NewBattery(batteryID, home)
		s.batteries[batteryID] = b
		pool = append(pool, b)
		batteryID++
	}
	s.nextBatteryID = batteryID

	for i := 0; i < robotCount; i++ {
		home := stations[i%len(stations)]
		r := &core.Robot{
			ID:          core.RobotID(i + 1),
			HomeStation: home.ID,
			Pos:         home.Pos,
			Speed:       8.0,
			MovingRate:  0.04,
			IdlingRate:  0.005,
			Status:      core.RobotIdle,
		}
		if i < len(pool) {
			b := pool[i]
			b.Status = core.BatteryInUse
			b.AssignedRobot = r.ID
			r.HeldBattery = b.ID
		}
		s.robots[r.ID] = r
		s.stats.TrackRobot(r.ID)
	}

	s.nextVehicleID = 1
	s.generateArrivals()

	s.queue.Push(&eventqueue.Event{Time: updateStatusPeriod, Kind: eventqueue.KindUpdateStatus})
	s.queue.Push(&eventqueue.Event{Time: updatePrioritiesPeriod, Kind: eventqueue.KindUpdatePriorities})
	s.queue.Push(&eventqueue.Event{Time: assignTasksPeriod, Kind: eventqueue.KindAssignTasks})
}

// Step advances the simulation by exactly one event, for interactive
// embedding (e.g. cmd/evviewer). It returns false once the queue has
// drained or the clock has reached the horizon.
func (s *Simulator) Step() bool {
	e := s.queue.Peek()
	if e == nil || e.Time >= s.horizon {
		return false
	}
	e = s.queue.Pop()
	s.now = e.Time
	s.handle(e)
	return true
}

// Run advances the simulation to termination and returns the final
// statistics.
func (s *Simulator) Run() stats.Final {
	for s.Step() {
	}
	return s.stats.Finalize(int(s.now))
}

func (s *Simulator) handle(e *eventqueue.Event) {
	switch e.Kind {
	case eventqueue.KindUpdateStatus:
		s.handleUpdateStatus()
		s.queue.Push(&eventqueue.Event{Time: s.now + updateStatusPeriod, Kind: eventqueue.KindUpdateStatus})
	case eventqueue.KindUpdatePriorities:
		s.handleUpdatePriorities()
		s.queue.Push(&eventqueue.Event{Time: s.now + updatePrioritiesPeriod, Kind: eventqueue.KindUpdatePriorities})
	case eventqueue.KindAssignTasks:
		s.handleAssignTasks()
		s.queue.Push(&eventqueue.Event{Time: s.now + assignTasksPeriod, Kind: eventqueue.KindAssignTasks})
	case eventqueue.KindVehicleArrival:
		s.handleArrival(e.Vehicle)
	case eventqueue.KindVehicleDeparture:
		s.handleDeparture(e.Vehicle)
	}
}

// CurrentTime returns the simulated clock, in minutes since horizon
// start.
func (s *Simulator) CurrentTime() core.Minute { return s.now }

// Vehicles returns every vehicle the simulator has materialized so far.
func (s *Simulator) Vehicles() []*core.Vehicle {
	out := make([]*core.Vehicle, 0, len(s.vehicles))
	for _, v := range s.vehicles {
		out = append(out, v)
	}
	return out
}

// Robots returns the fleet.
func (s *Simulator) Robots() []*core.Robot {
	out := make([]*core.Robot, 0, len(s.robots))
	for _, r := range s.robots {
		out = append(out, r)
	}
	return out
}

// Batteries returns the battery pool.
func (s *Simulator) Batteries() []*core.Battery {
	out := make([]*core.Battery, 0, len(s.batteries))
	for _, b := range s.batteries {
		out = append(out, b)
	}
	return out
}

// Stats returns the live statistics finalized as of the current clock.
func (s *Simulator) Stats() stats.Final {
	return s.stats.Finalize(int(s.now))
}
