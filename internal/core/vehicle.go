package core

// VehicleID is a unique vehicle identifier.
type VehicleID int

// VehicleStatus is the vehicle's position in its lifecycle.
type VehicleStatus int

const (
	VehicleWaiting VehicleStatus = iota
	VehicleAssigned
	VehicleCharging
	VehicleCompleted
	VehicleFailed
)

func (s VehicleStatus) String() string {
	switch s {
	case VehicleWaiting:
		return "waiting"
	case VehicleAssigned:
		return "assigned"
	case VehicleCharging:
		return "charging"
	case VehicleCompleted:
		return "completed"
	case VehicleFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MaxCapacity is the energy capacity every vehicle shares (percent units,
// matching the reference's 0-100 energy scale).
const MaxCapacity = 100.0

// Vehicle is an electric vehicle parked somewhere in the park, waiting to
// be charged before it departs.
type Vehicle struct {
	ID       VehicleID
	Pos      Pos
	Arrival  Minute
	Departure Minute

	InitialEnergy  float64
	CurrentEnergy  float64
	RequiredEnergy float64

	Priority float64
	Status   VehicleStatus

	AssignedRobot RobotID // 0 = none; robots are numbered from 1
	ChargingStart Minute
	ChargingEnd   Minute
}

// HasAssignedRobot reports whether a robot currently targets this vehicle.
func (v *Vehicle) HasAssignedRobot() bool { return v.AssignedRobot != 0 }

// RemainingDwell returns the minutes left until departure, from t.
func (v *Vehicle) RemainingDwell(t Minute) int { return int(v.Departure - t) }

// IsEmergency reports whether, at time t, this vehicle's remaining dwell
// is under the emergency threshold (60 minutes).
func (v *Vehicle) IsEmergency(t Minute) bool { return v.RemainingDwell(t) < 60 }

// NeedEnergy returns the outstanding energy required, never negative.
func (v *Vehicle) NeedEnergy() float64 {
	need := v.RequiredEnergy - v.CurrentEnergy
	if need < 0 {
		return 0
	}
	return need
}

// chargeRate is the charge-rate curve f(e): energy delivered per minute as
// a function of current state of charge, over three bands of MaxCapacity.
func chargeRate(energy float64) float64 {
	soc := energy / MaxCapacity
	switch {
	case soc < 0.5:
		return 2.5
	case soc < 0.8:
		return 1.8
	default:
		return 0.8
	}
}

// ChargeRate exposes the curve for a vehicle at its current energy level.
func (v *Vehicle) ChargeRate() float64 { return chargeRate(v.CurrentEnergy) }

// NeededChargeTime integrates the piecewise charge-rate curve from
// 'current' to 'required' energy, returning the minutes needed. It is a
// pure function of the two energy levels, independent of any vehicle
// instance, so it also serves the round-trip law in isolation.
func NeededChargeTime(current, required float64) float64 {
	if required <= current {
		return 0
	}
	bounds := []float64{0.5 * MaxCapacity, 0.8 * MaxCapacity, MaxCapacity}
	rates := []float64{2.5, 1.8, 0.8}

	minutes := 0.0
	from := current
	lower := 0.0
	for i, upper := range bounds {
		if from >= required {
			break
		}
		segStart := lower
		segEnd := upper
		if segStart < from {
			segStart = from
		}
		if segEnd > required {
			segEnd = required
		}
		if segEnd > segStart {
			minutes += (segEnd - segStart) / rates[i]
			from = segEnd
		}
		lower = upper
	}
	return minutes
}

// NeededChargeTime returns the minutes needed to reach RequiredEnergy from
// CurrentEnergy at this vehicle's present state of charge.
func (v *Vehicle) NeededChargeTime() float64 {
	return NeededChargeTime(v.CurrentEnergy, v.RequiredEnergy)
}

// UpdatePriority recomputes the dispatch priority score at time t, per the
// urgency/need/wait formula.
func (v *Vehicle) UpdatePriority(t Minute) {
	urgency := float64(v.Departure - t)
	if urgency < 1 {
		urgency = 1
	}
	need := v.NeedEnergy()
	wait := float64(t - v.Arrival)

	factor := 1.0
	if urgency < 30 {
		factor = 10.0
	}
	v.Priority = (need/urgency)*factor + wait/60.0
}
