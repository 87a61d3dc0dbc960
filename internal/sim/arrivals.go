package sim

import (
	"math"
	"math/rand"

	"github.com/stickysnack/ev-fleet-sim/internal/core"
)

// pendingArrival holds the attributes the generator has already decided
// for a future vehicle, materialized into a core.Vehicle only when its
// vehicle_arrival event actually fires.
type pendingArrival struct {
	pos            core.Pos
	initialEnergy  float64
	requiredEnergy float64
	dwell          int
}

// arrivalLambda is lambda(m): the Poisson mean for minute m, peaking
// 1.5x over the base rate in the morning and evening peaks and dropping
// to a third of the off-peak base overnight.
func arrivalLambda(m core.Minute, vehiclesPerHour float64) float64 {
	h := core.HourOfDay(m)
	switch {
	case core.IsMorningPeak(h) || core.IsEveningPeak(h):
		return (vehiclesPerHour / 60) * 1.5
	case core.IsDeepNight(h):
		return vehiclesPerHour / 180
	default:
		return vehiclesPerHour / 60
	}
}

// poisson draws from a Poisson distribution with the given mean via
// Knuth's algorithm.
func poisson(rng *rand.Rand, lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	l := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		k++
		p *= rng.Float64()
		if p <= l {
			return k - 1
		}
	}
}

func uniformInt(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}

func uniformFloat(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// sampleDwell picks a dwell duration in minutes per the time-of-day
// bands.
func sampleDwell(rng *rand.Rand, h int) int {
	switch {
	case core.IsMorningPeak(h):
		return uniformInt(rng, 180, 480)
	case core.IsEveningPeak(h):
		return uniformInt(rng, 60, 240)
	default:
		return uniformInt(rng, 30, 360)
	}
}

// sampleEnergies picks initial and required energy for a dwell: vehicles
// staying longer than 240 minutes arrive lower and demand more.
func sampleEnergies(rng *rand.Rand, dwell int) (initial, required float64) {
	if dwell > 240 {
		return uniformFloat(rng, 5, 30), uniformFloat(rng, 70, 95)
	}
	return uniformFloat(rng, 15, 50), uniformFloat(rng, 60, 85)
}

// samplePosition picks a vehicle's arrival position: 40% of the time
// near one of the park's road intersections (jittered +-100 units and
// clamped to bounds), otherwise uniform in the park.
func samplePosition(rng *rand.Rand, park *core.Park) core.Pos {
	if rng.Float64() < 0.4 {
		intersections := park.RoadIntersections()
		base := intersections[rng.Intn(len(intersections))]
		jittered := core.Pos{
			X: base.X + uniformFloat(rng, -100, 100),
			Y: base.Y + uniformFloat(rng, -100, 100),
		}
		return park.Clamp(jittered)
	}
	return core.Pos{
		X: rng.Float64() * park.Width,
		Y: rng.Float64() * park.Height,
	}
}

// generateArrivals draws a time-inhomogeneous Poisson process of vehicle
// arrivals over [0, horizon) and schedules a vehicle_arrival and
// vehicle_departure event for each one.
func (s *Simulator) generateArrivals() {
	for m := core.Minute(0); m < s.horizon; m++ {
		lambda := arrivalLambda(m, float64(s.scale.VehiclesPerHour))
		n := poisson(s.rng, lambda)
		for i := 0; i < n; i++ {
			h := core.HourOfDay(m)
			dwell := sampleDwell(s.rng, h)
			initial, required := sampleEnergies(s.rng, dwell)
			pos := samplePosition(s.rng, s.Park)

			id := s.nextVehicleID
			s.nextVehicleID++
			s.pending[id] = pendingArrival{
				pos:            pos,
				initialEnergy:  initial,
				requiredEnergy: required,
				dwell:          dwell,
			}
			s.scheduleArrival(id, m)
			s.scheduleDeparture(id, m+core.Minute(dwell))
		}
	}
}
