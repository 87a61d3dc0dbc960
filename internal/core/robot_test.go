package core

import (
	"math"
	"testing"
)

func TestTravelTime(t *testing.T) {
	r := &Robot{Speed: 10}
	if got := r.TravelTime(50); got != 5 {
		t.Errorf("TravelTime(50) = %v, want 5", got)
	}
}

func TestTravelTimeZeroSpeed(t *testing.T) {
	r := &Robot{Speed: 0}
	if got := r.TravelTime(50); got != 0 {
		t.Errorf("TravelTime with zero speed = %v, want 0", got)
	}
}

func TestBatteryNeededForTrip(t *testing.T) {
	park := NewPark(1000, 1000)
	r := &Robot{Pos: Pos{X: 0, Y: 0}, Speed: 10, MovingRate: 1}
	v := &Vehicle{Pos: Pos{X: 100, Y: 0}, CurrentEnergy: 20, RequiredEnergy: 80}

	got := r.BatteryNeededForTrip(v, park)
	nearest := park.NearestStation(v.Pos)
	wantOut := r.EnergyToTravel(Dist(r.Pos, v.Pos))
	wantBack := r.EnergyToTravel(Dist(v.Pos, nearest.Pos))
	want := wantOut + 0.5*60 + wantBack
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("BatteryNeededForTrip = %v, want %v", got, want)
	}
}
