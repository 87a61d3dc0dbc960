package core

import "testing"

func TestStationChargeRateBands(t *testing.T) {
	cases := []struct {
		charge float64
		want   float64
	}{
		{10, 2.0},
		{60, 1.5},
		{90, 1.0},
	}
	for _, c := range cases {
		b := &Battery{MaxCapacity: 100, CurrentCharge: c.charge}
		if got := b.StationChargeRate(); got != c.want {
			t.Errorf("StationChargeRate(%v) = %v, want %v", c.charge, got, c.want)
		}
	}
}

func TestIsFullThreshold(t *testing.T) {
	b := &Battery{MaxCapacity: 100, CurrentCharge: 94.9}
	if b.IsFull() {
		t.Error("94.9 should not count as full")
	}
	b.CurrentCharge = 95
	if !b.IsFull() {
		t.Error("95 should count as full")
	}
}

func TestNewBatteryStartsAtHomeStation(t *testing.T) {
	st := Station{ID: 2, Pos: Pos{X: 3, Y: 4}}
	b := NewBattery(1, st)
	if b.Pos != st.Pos || b.HomeStation != st.ID {
		t.Fatalf("new battery not placed at home station: %+v", b)
	}
	if b.Status != BatteryAvailable || b.CurrentCharge != b.MaxCapacity {
		t.Fatalf("new battery should start full and available: %+v", b)
	}
}
