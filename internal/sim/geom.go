// Package sim is the shared 2D simulation kernel used by every game:
// float geometry with AABB and circle tests, entity pools with in-place
// removal, pairwise collision, tick cooldowns and the fixed-step loop driver.
package sim

import "math"

// Vec is a 2D vector in world units (screen cells).
type Vec struct {
	X, Y float64
}

// V is shorthand for Vec{x, y}.
func V(x, y float64) Vec { return Vec{X: x, Y: y} }

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(k float64) Vec { return Vec{v.X * k, v.Y * k} }
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec) Dist(o Vec) float64 { return v.Sub(o).Len() }
func (v Vec) Angle() float64 { return math.Atan2(v.Y, v.X) }
func (v Vec) IsZero() bool { return v.X == 0 && v.Y == 0 }
func FromAngle(rad, l float64) Vec { return Vec{math.Cos(rad) * l, math.Sin(rad) * l} }

// Norm returns the unit vector, or the zero vector for zero input.
func (v Vec) Norm() Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return Vec{v.X / l, v.Y / l}
}

// Box is an axis-aligned rectangle with float coordinates; X, Y is the top-left corner.
type Box struct {
	X, Y, W, H float64
}

func (b Box) Right() float64 { return b.X + b.W }
func (b Box) Bottom() float64 { return b.Y + b.H }
func (b Box) Center() Vec { return Vec{b.X + b.W/2, b.Y + b.H/2} }

// Intersects reports strict overlap. Boxes that only share an edge do not collide.
func (b Box) Intersects(o Box) bool {
	return b.X < o.Right() && b.Right() > o.X &&
		b.Y < o.Bottom() && b.Bottom() > o.Y
}

// Contains reports whether the point lies inside the box.
func (b Box) Contains(p Vec) bool {
	return p.X >= b.X && p.X < b.Right() && p.Y >= b.Y && p.Y < b.Bottom()
}

// Moved returns the box translated by d.
func (b Box) Moved(d Vec) Box {
	return Box{b.X + d.X, b.Y + d.Y, b.W, b.H}
}

// ClampInto keeps b entirely inside bounds. A box larger than bounds is
// pinned to the bounds' top-left corner.
func (b Box) ClampInto(bounds Box) Box {
	b.X = Clamp(b.X, bounds.X, bounds.Right()-b.W)
	b.Y = Clamp(b.Y, bounds.Y, bounds.Bottom()-b.H)
	return b
}

// Outside reports whether b lies completely outside bounds.
func (b Box) Outside(bounds Box) bool {
	return !b.Intersects(bounds)
}

// Circle is a disc used for round entities (balls, fireballs, skulls).
type Circle struct {
	C Vec
	R float64
}

// Intersects reports whether two circles overlap (distance < r1 + r2).
func (c Circle) Intersects(o Circle) bool {
	return c.C.Dist(o.C) < c.R+o.R
}

// IntersectsBox reports whether the circle overlaps the box.
func (c Circle) IntersectsBox(b Box) bool {
	nearest := Vec{Clamp(c.C.X, b.X, b.Right()), Clamp(c.C.Y, b.Y, b.Bottom())}
	return c.C.Dist(nearest) < c.R
}

// Clamp restricts v to [lo, hi]. When lo > hi the result is lo.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
