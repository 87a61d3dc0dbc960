package core

import (
	"math"
	"testing"
)

func TestNeededChargeTimeSingleBand(t *testing.T) {
	// Entirely within the first band (<50%): rate is a flat 2.5/min.
	got := NeededChargeTime(10, 20)
	want := 10.0 / 2.5
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("NeededChargeTime(10,20) = %v, want %v", got, want)
	}
}

func TestNeededChargeTimeCrossesBands(t *testing.T) {
	// 40 -> 90 crosses all three bands: [40,50) at 2.5, [50,80) at 1.8, [80,90) at 0.8.
	got := NeededChargeTime(40, 90)
	want := (50-40)/2.5 + (80-50)/1.8 + (90-80)/0.8
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("NeededChargeTime(40,90) = %v, want %v", got, want)
	}
}

func TestNeededChargeTimeAlreadyMet(t *testing.T) {
	if got := NeededChargeTime(80, 50); got != 0 {
		t.Errorf("NeededChargeTime(80,50) = %v, want 0", got)
	}
}

func TestUpdatePriorityUrgentFactor(t *testing.T) {
	v := &Vehicle{Arrival: 0, Departure: 20, CurrentEnergy: 40, RequiredEnergy: 80}
	v.UpdatePriority(10)
	// urgency = 10 (<30 -> factor 10), need = 40, wait = 10.
	want := (40.0/10.0)*10.0 + 10.0/60.0
	if math.Abs(v.Priority-want) > 1e-9 {
		t.Errorf("Priority = %v, want %v", v.Priority, want)
	}
}

func TestUpdatePriorityUrgencyFloor(t *testing.T) {
	// departure already passed: urgency floors at 1, never divides by <=0.
	v := &Vehicle{Arrival: 0, Departure: 5, CurrentEnergy: 0, RequiredEnergy: 10}
	v.UpdatePriority(50)
	if math.IsInf(v.Priority, 0) || math.IsNaN(v.Priority) {
		t.Fatalf("Priority is not finite: %v", v.Priority)
	}
}

func TestIsEmergency(t *testing.T) {
	v := &Vehicle{Arrival: 0, Departure: 40}
	if !v.IsEmergency(0) {
		t.Error("dwell 40 should be an emergency")
	}
	v.Departure = 100
	if v.IsEmergency(0) {
		t.Error("dwell 100 should not be an emergency")
	}
}
