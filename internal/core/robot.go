package core

// RobotID is a unique robot identifier.
type RobotID int

// RobotStatus is the robot's position in its state machine.
type RobotStatus int

const (
	RobotIdle RobotStatus = iota
	RobotMovingToVehicle
	RobotChargingVehicle
	RobotReturning
	RobotSwappingBattery
)

func (s RobotStatus) String() string {
	switch s {
	case RobotIdle:
		return "idle"
	case RobotMovingToVehicle:
		return "moving_to_vehicle"
	case RobotChargingVehicle:
		return "charging_vehicle"
	case RobotReturning:
		return "returning"
	case RobotSwappingBattery:
		return "swapping_battery"
	default:
		return "unknown"
	}
}

// Robot is a mobile charging unit: it carries one battery at a time,
// travels to a target vehicle, transfers energy, and returns to a
// charging station to swap batteries when depleted.
type Robot struct {
	ID          RobotID
	HomeStation int
	Pos         Pos

	HeldBattery   BatteryID // 0 = none
	TargetVehicle VehicleID // 0 = none

	Speed      float64 // distance units per minute
	MovingRate float64 // energy per minute while moving
	IdlingRate float64 // energy per minute while idle

	Status        RobotStatus
	LastAssigned  Minute
}

// HasBattery reports whether the robot currently holds a battery.
func (r *Robot) HasBattery() bool { return r.HeldBattery != 0 }

// HasTarget reports whether the robot currently targets a vehicle.
func (r *Robot) HasTarget() bool { return r.TargetVehicle != 0 }

// TravelTime returns the minutes needed to cover dist at this robot's
// speed.
func (r *Robot) TravelTime(dist float64) float64 {
	if r.Speed <= 0 {
		return 0
	}
	return dist / r.Speed
}

// TravelTimeTo returns the minutes needed to reach 'to' from the robot's
// current position.
func (r *Robot) TravelTimeTo(to Pos) float64 {
	return r.TravelTime(Dist(r.Pos, to))
}

// TripEnergy returns the energy consumed moving for 'minutes' minutes.
func (r *Robot) TripEnergy(minutes float64) float64 {
	return minutes * r.MovingRate
}

// EnergyToTravel returns the energy consumed covering dist at this
// robot's speed and moving-energy rate.
func (r *Robot) EnergyToTravel(dist float64) float64 {
	return r.TripEnergy(r.TravelTime(dist))
}

// BatteryNeededForTrip estimates the held battery's energy budget for
// serving vehicle v from the robot's current position: energy to reach
// the vehicle, half the energy it will transfer, and energy to return to
// the nearest station afterward.
func (r *Robot) BatteryNeededForTrip(v *Vehicle, park *Park) float64 {
	tripOut := r.EnergyToTravel(Dist(r.Pos, v.Pos))
	transferHalf := 0.5 * v.NeedEnergy()
	nearest := park.NearestStation(v.Pos)
	tripBack := r.EnergyToTravel(Dist(v.Pos, nearest.Pos))
	return tripOut + transferHalf + tripBack
}
