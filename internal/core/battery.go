package core

// BatteryID is a unique battery identifier.
type BatteryID int

// BatteryStatus tracks where a battery sits in its own small lifecycle.
type BatteryStatus int

const (
	BatteryAvailable BatteryStatus = iota
	BatteryInUse
	BatteryCharging
)

func (s BatteryStatus) String() string {
	switch s {
	case BatteryAvailable:
		return "available"
	case BatteryInUse:
		return "in-use"
	case BatteryCharging:
		return "charging"
	default:
		return "unknown"
	}
}

// BatteryMaxCapacity is the energy capacity of every battery, matching
// original_source/charging_robots_simulation.py's max_capacity=60.0. The
// absolute thresholds in spec.md §4.4/§4.5 (low-battery detour <10,
// swap-candidate >45, abandon <8, MinHoldableCharge=15) are calibrated
// against this capacity and must not be re-derived for a different one.
const BatteryMaxCapacity = 60.0

// Battery is a swappable power source a robot carries to deliver energy to
// vehicles, and returns to its home station to recharge.
type Battery struct {
	ID             BatteryID
	MaxCapacity    float64
	CurrentCharge  float64
	Status         BatteryStatus
	Pos            Pos
	AssignedRobot  RobotID // 0 = none
	HomeStation    int
	ChargeStart    Minute
}

// NewBattery creates a fully-charged battery at its home station.
func NewBattery(id BatteryID, home Station) *Battery {
	return &Battery{
		ID:            id,
		MaxCapacity:   BatteryMaxCapacity,
		CurrentCharge: BatteryMaxCapacity,
		Status:        BatteryAvailable,
		Pos:           home.Pos,
		HomeStation:   home.ID,
	}
}

// chargeRateCurve is g(c): the station charge-rate curve for a battery,
// distinct from the vehicle charge-rate curve f(e) though shaped the same
// way in the reference.
func chargeRateCurve(charge, capacity float64) float64 {
	soc := charge / capacity
	switch {
	case soc < 0.5:
		return 2.0
	case soc < 0.8:
		return 1.5
	default:
		return 1.0
	}
}

// StationChargeRate returns this battery's current charge-rate g(c).
func (b *Battery) StationChargeRate() float64 {
	return chargeRateCurve(b.CurrentCharge, b.MaxCapacity)
}

// IsFull reports whether the battery has reached the 95% threshold that
// returns it to available.
func (b *Battery) IsFull() bool {
	return b.CurrentCharge >= 0.95*b.MaxCapacity
}

// SoC returns the battery's state of charge as a fraction in [0,1].
func (b *Battery) SoC() float64 {
	if b.MaxCapacity == 0 {
		return 0
	}
	return b.CurrentCharge / b.MaxCapacity
}
