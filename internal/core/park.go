package core

// Station is a fixed point where batteries recharge and robots swap them.
type Station struct {
	ID  int
	Pos Pos
}

// Park is the closed rectangle [0,W]x[0,H] vehicles and robots live in,
// together with its fixed charging stations.
type Park struct {
	Width, Height float64
	Stations      []Station
}

// NewPark builds a park with the canonical station layout: one inset
// station near each corner plus one at the center.
func NewPark(width, height float64) *Park {
	inset := 0.1
	ix, iy := width*inset, height*inset
	stations := []Station{
		{ID: 0, Pos: Pos{X: ix, Y: iy}},                   // canonical
		{ID: 1, Pos: Pos{X: width - ix, Y: iy}},            // SE corner
		{ID: 2, Pos: Pos{X: ix, Y: height - iy}},           // NW corner
		{ID: 3, Pos: Pos{X: width - ix, Y: height - iy}},   // NE corner
		{ID: 4, Pos: Pos{X: width / 2, Y: height / 2}},     // central
	}
	return &Park{Width: width, Height: height, Stations: stations}
}

// Clamp pulls a point back inside the park's bounds.
func (p *Park) Clamp(pt Pos) Pos {
	x, y := pt.X, pt.Y
	if x < 0 {
		x = 0
	} else if x > p.Width {
		x = p.Width
	}
	if y < 0 {
		y = 0
	} else if y > p.Height {
		y = p.Height
	}
	return Pos{X: x, Y: y}
}

// InBounds reports whether pt lies within the park's rectangle.
func (p *Park) InBounds(pt Pos) bool {
	return pt.X >= 0 && pt.X <= p.Width && pt.Y >= 0 && pt.Y <= p.Height
}

// NearestStation returns the station closest to pt.
func (p *Park) NearestStation(pt Pos) Station {
	best := p.Stations[0]
	bestDist := Dist(pt, best.Pos)
	for _, s := range p.Stations[1:] {
		if d := Dist(pt, s.Pos); d < bestDist {
			best, bestDist = s, d
		}
	}
	return best
}

// IsAtStation reports whether pt coincides with a station's point.
func (p *Park) IsAtStation(pt Pos) (Station, bool) {
	for _, s := range p.Stations {
		if s.Pos == pt {
			return s, true
		}
	}
	return Station{}, false
}

// RoadIntersections returns the {1/4, 1/2, 3/4} x {1/4, 1/2, 3/4} grid
// points the arrival generator samples vehicle positions near.
func (p *Park) RoadIntersections() []Pos {
	fracs := []float64{0.25, 0.5, 0.75}
	pts := make([]Pos, 0, len(fracs)*len(fracs))
	for _, fx := range fracs {
		for _, fy := range fracs {
			pts = append(pts, Pos{X: p.Width * fx, Y: p.Height * fy})
		}
	}
	return pts
}
