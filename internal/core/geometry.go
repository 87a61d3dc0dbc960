// Package core implements the entity model for the charging-robot fleet:
// vehicles, batteries, robots, and the park they occupy.
package core

import "math"

// Pos is a point in the park's 2D plane.
type Pos struct {
	X, Y float64
}

// Dist returns the Euclidean distance between two points.
func Dist(a, b Pos) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Lerp returns the point a fraction t of the way from a to b (t is not
// clamped; callers pass t in [0,1] for interpolation between two ticks).
func Lerp(a, b Pos, t float64) Pos {
	return Pos{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

// StepToward moves from 'from' toward 'to' by at most 'dist' units,
// returning 'to' itself if it is already within reach.
func StepToward(from, to Pos, dist float64) Pos {
	d := Dist(from, to)
	if d <= dist || d == 0 {
		return to
	}
	return Lerp(from, to, dist/d)
}

// Zone is one of the park's four equal-area quadrants, used by the hybrid
// dispatch policy's area-balance term.
type Zone int

const (
	ZoneSW Zone = iota
	ZoneSE
	ZoneNW
	ZoneNE
)

// AllZones returns the four quadrants in a fixed order.
func AllZones() []Zone {
	return []Zone{ZoneSW, ZoneSE, ZoneNW, ZoneNE}
}

// ZoneOf classifies a position into one of the park's four quadrants.
func ZoneOf(p Pos, width, height float64) Zone {
	switch {
	case p.X < width/2 && p.Y < height/2:
		return ZoneSW
	case p.X >= width/2 && p.Y < height/2:
		return ZoneSE
	case p.X < width/2 && p.Y >= height/2:
		return ZoneNW
	default:
		return ZoneNE
	}
}

func (z Zone) String() string {
	switch z {
	case ZoneSW:
		return "SW"
	case ZoneSE:
		return "SE"
	case ZoneNW:
		return "NW"
	case ZoneNE:
		return "NE"
	default:
		return "unknown"
	}
}
