package core

import "testing"

func TestNewParkStationsInBounds(t *testing.T) {
	p := NewPark(1000, 800)
	if len(p.Stations) != 5 {
		t.Fatalf("expected 5 stations, got %d", len(p.Stations))
	}
	for _, s := range p.Stations {
		if !p.InBounds(s.Pos) {
			t.Errorf("station %d out of bounds: %+v", s.ID, s.Pos)
		}
	}
}

func TestNearestStation(t *testing.T) {
	p := NewPark(1000, 1000)
	center := Pos{X: 500, Y: 500}
	nearest := p.NearestStation(center)
	if nearest.Pos != (Pos{X: 500, Y: 500}) {
		t.Errorf("expected central station nearest to center, got %+v", nearest)
	}
}

func TestClamp(t *testing.T) {
	p := NewPark(100, 100)
	got := p.Clamp(Pos{X: -10, Y: 150})
	if got != (Pos{X: 0, Y: 100}) {
		t.Errorf("Clamp = %+v, want (0,100)", got)
	}
}

func TestZoneOf(t *testing.T) {
	cases := []struct {
		p    Pos
		want Zone
	}{
		{Pos{X: 1, Y: 1}, ZoneSW},
		{Pos{X: 99, Y: 1}, ZoneSE},
		{Pos{X: 1, Y: 99}, ZoneNW},
		{Pos{X: 99, Y: 99}, ZoneNE},
	}
	for _, c := range cases {
		if got := ZoneOf(c.p, 100, 100); got != c.want {
			t.Errorf("ZoneOf(%+v) = %v, want %v", c.p, got, c.want)
		}
	}
}
