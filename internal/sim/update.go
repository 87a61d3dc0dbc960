package sim

import (
	"sort"

	"github.com/stickysnack/ev-fleet-sim/internal/core"
)

// lowBatteryThreshold triggers a station detour (step 2 of §4.4).
const lowBatteryThreshold = 10.0

// swapMinCharge is the minimum charge a replacement battery must carry
// at a station to be picked up.
const swapMinCharge = 45.0

// abandonThreshold is the charge below which a robot abandons its
// current charging task mid-session.
const abandonThreshold = 8.0

// handleUpdateStatus advances the whole fleet by one simulated minute:
// robot motion, battery drain, vehicle charging, and battery recharging,
// robots processed in ascending id order and batteries after robots.
func (s *Simulator) handleUpdateStatus() {
	ids := make([]core.RobotID, 0, len(s.robots))
	for id := range s.robots {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		s.updateRobot(s.robots[id])
	}
	for _, b := range s.batteries {
		s.updateBattery(b)
	}
}

func (s *Simulator) updateRobot(r *core.Robot) {
	// Step 1: pick up an available battery sitting at the robot's
	// position if it has none.
	if !r.HasBattery() {
		if b := s.availableBatteryAt(r.Pos); b != nil {
			b.Status = core.BatteryInUse
			b.AssignedRobot = r.ID
			r.HeldBattery = b.ID
		} else {
			r.Status = core.RobotIdle
			return
		}
	}

	battery := s.batteries[r.HeldBattery]

	// Step 2: critically low battery forces a detour to a station.
	if battery.CurrentCharge < lowBatteryThreshold {
		if station, ok := s.Park.IsAtStation(r.Pos); ok {
			battery.Status = core.BatteryCharging
			battery.ChargeStart = s.now
			battery.AssignedRobot = 0
			r.HeldBattery = 0

			if replacement := s.swapCandidateAt(station.ID); replacement != nil {
				replacement.Status = core.BatteryInUse
				replacement.AssignedRobot = r.ID
				r.HeldBattery = replacement.ID
				s.stats.RecordBatterySwap()
				r.Status = core.RobotIdle
			} else {
				r.Status = core.RobotIdle
			}
		} else {
			nearest := s.Park.NearestStation(r.Pos)
			r.Pos = core.StepToward(r.Pos, nearest.Pos, r.Speed)
			r.Status = core.RobotReturning
		}
		return
	}

	switch r.Status {
	case core.RobotIdle:
		battery.CurrentCharge -= r.IdlingRate
	case core.RobotMovingToVehicle:
		s.stats.AccrueBusyMinute(r.ID)
		s.updateMovingToVehicle(r, battery)
	case core.RobotChargingVehicle:
		s.stats.AccrueBusyMinute(r.ID)
		s.updateChargingVehicle(r, battery)
	case core.RobotReturning:
		s.stats.AccrueBusyMinute(r.ID)
		s.updateReturning(r)
	}

	if battery.CurrentCharge < 0 {
		battery.CurrentCharge = 0
	}
}

func (s *Simulator) updateMovingToVehicle(r *core.Robot, battery *core.Battery) {
	v := s.vehicles[r.TargetVehicle]
	if v == nil || v.Status == core.VehicleCompleted || v.Status == core.VehicleFailed {
		r.TargetVehicle = 0
		r.Status = core.RobotReturning
		return
	}

	r.Pos = core.StepToward(r.Pos, v.Pos, r.Speed)
	// Open question #1: the reference debits a full minute of moving
	// energy even when the step only covers a fraction of it; followed
	// here as specified rather than prorated.
	battery.CurrentCharge -= r.MovingRate

	if r.Pos == v.Pos {
		r.Status = core.RobotChargingVehicle
		v.Status = core.VehicleCharging
		v.ChargingStart = s.now
	}
}

func (s *Simulator) updateChargingVehicle(r *core.Robot, battery *core.Battery) {
	v := s.vehicles[r.TargetVehicle]
	if v == nil {
		r.Status = core.RobotReturning
		return
	}

	if battery.CurrentCharge < abandonThreshold {
		v.Status = core.VehicleWaiting
		v.AssignedRobot = 0
		s.waiting = append(s.waiting, v.ID)
		r.TargetVehicle = 0
		r.Status = core.RobotReturning
		delete(s.activeAssignment, r.ID)
		return
	}

	transfer := v.ChargeRate()
	if headroom := battery.CurrentCharge - abandonThreshold; transfer > headroom {
		transfer = headroom
	}
	noise := 0.95 + s.rng.Float64()*0.10
	delivered := transfer * noise
	v.CurrentEnergy += delivered
	if v.CurrentEnergy > core.MaxCapacity {
		v.CurrentEnergy = core.MaxCapacity
	}
	battery.CurrentCharge -= transfer

	if v.CurrentEnergy >= v.RequiredEnergy {
		s.finalizeCompletion(r, v, battery)
	}
}

func (s *Simulator) updateReturning(r *core.Robot) {
	nearest := s.Park.NearestStation(r.Pos)
	r.Pos = core.StepToward(r.Pos, nearest.Pos, r.Speed)
	if r.Pos == nearest.Pos {
		r.Status = core.RobotIdle
	}
}

// finalizeCompletion implements §4.6: record completion stats, release
// the robot, and force a forced retreat if its battery is nearly spent.
func (s *Simulator) finalizeCompletion(r *core.Robot, v *core.Vehicle, battery *core.Battery) {
	v.Status = core.VehicleCompleted
	v.ChargingEnd = s.now
	zone := core.ZoneOf(v.Pos, s.Park.Width, s.Park.Height)
	s.stats.RecordCompletion(v, zone)

	r.TargetVehicle = 0
	r.Status = core.RobotReturning

	if battery.CurrentCharge < lowBatteryThreshold {
		nearest := s.Park.NearestStation(r.Pos)
		r.Pos = nearest.Pos
	}

	if a, ok := s.activeAssignment[r.ID]; ok {
		energyAdded := v.CurrentEnergy - v.InitialEnergy
		chargingTime := float64(v.ChargingEnd - v.ChargingStart)
		timeLeftAtStart := int(v.Departure - v.ChargingStart)
		wait := float64(v.ChargingStart - v.Arrival)
		s.policy.OnCompletion(s.dispatchContext(), a, energyAdded, chargingTime, timeLeftAtStart, wait)
		delete(s.activeAssignment, r.ID)
	}
}

func (s *Simulator) updateBattery(b *core.Battery) {
	if b.Status != core.BatteryCharging {
		return
	}
	if _, atStation := s.Park.IsAtStation(b.Pos); !atStation {
		return
	}
	b.CurrentCharge += b.StationChargeRate()
	if b.CurrentCharge > b.MaxCapacity {
		b.CurrentCharge = b.MaxCapacity
	}
	if b.IsFull() {
		b.Status = core.BatteryAvailable
	}
}

func (s *Simulator) availableBatteryAt(pos core.Pos) *core.Battery {
	var found *core.Battery
	for _, b := range s.batteries {
		if b.Status == core.BatteryAvailable && b.Pos == pos {
			if found == nil || b.ID < found.ID {
				found = b
			}
		}
	}
	return found
}

func (s *Simulator) swapCandidateAt(stationID int) *core.Battery {
	var best *core.Battery
	for _, b := range s.batteries {
		if b.Status != core.BatteryAvailable || b.HomeStation != stationID {
			continue
		}
		if b.CurrentCharge <= swapMinCharge {
			continue
		}
		if best == nil || b.CurrentCharge > best.CurrentCharge ||
			(b.CurrentCharge == best.CurrentCharge && b.ID < best.ID) {
			best = b
		}
	}
	return best
}
