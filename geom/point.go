// Package geom provides the 2D vector primitives used by the entity model and
// the converter. Points are value types; every operation returns a new Point.
package geom

import "math"

// Epsilon is the tolerance below which lengths and components are treated as zero.
const Epsilon = 1e-9

// Point represents a point or direction vector in the drawing plane.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Add returns the sum of two vectors.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the difference p - other.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Scale multiplies the vector by a scalar.
func (p Point) Scale(factor float64) Point {
	return Point{X: p.X * factor, Y: p.Y * factor}
}

// Dot returns the dot product of p and other.
func (p Point) Dot(other Point) float64 {
	return p.X*other.X + p.Y*other.Y
}

// Cross returns the z component of the 3D cross product of p and other.
// Its sign gives the orientation of the turn from p to other: positive
// means counter-clockwise.
func (p Point) Cross(other Point) float64 {
	return p.X*other.Y - p.Y*other.X
}

// Length returns the Euclidean length of the vector.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// IsZero reports whether the vector length is below Epsilon.
func (p Point) IsZero() bool {
	return p.Length() < Epsilon
}

// Normalize returns a unit vector with the same direction. The zero vector
// normalizes to the zero vector; callers that cannot tolerate that must check
// IsZero first.
func (p Point) Normalize() Point {
	length := p.Length()
	if length < Epsilon {
		return Point{}
	}
	return Point{X: p.X / length, Y: p.Y / length}
}

// Angle returns the direction of the vector in radians, in (-π, π].
func (p Point) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// Rotate returns the vector rotated counter-clockwise by the given angle in radians.
func (p Point) Rotate(rad float64) Point {
	sin, cos := math.Sincos(rad)
	return Point{X: p.X*cos - p.Y*sin, Y: p.X*sin + p.Y*cos}
}

// Perp returns the vector rotated by +90 degrees (counter-clockwise).
func (p Point) Perp() Point {
	return Point{X: -p.Y, Y: p.X}
}

// Neg returns the vector scaled by -1.
func (p Point) Neg() Point {
	return Point{X: -p.X, Y: -p.Y}
}

// Distance returns the distance between the points p and other.
func (p Point) Distance(other Point) float64 {
	return p.Sub(other).Length()
}

// Midpoint returns the point halfway between p and other.
func (p Point) Midpoint(other Point) Point {
	return Point{X: (p.X + other.X) / 2, Y: (p.Y + other.Y) / 2}
}

// Degrees converts an angle in radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Radians converts an angle in degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}
