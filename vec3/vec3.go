// Package vec3 provides a lightweight, value-semantics 3D vector used
// throughout the PME kernels for per-atom and per-pair scalar vector
// algebra (frame construction, pair displacements, torque/force
// accumulation). Bulk per-image coordinate storage uses v3.Matrix
// instead; vec3.Vector is for the hot inner loops where allocation and
// gonum's matrix machinery would only get in the way.
package vec3

import "math"

// Vector is a 3D vector with value semantics: every operation returns a
// new Vector rather than mutating the receiver.
type Vector struct {
	X, Y, Z float64
}

// New builds a Vector from three components.
func New(x, y, z float64) Vector { return Vector{x, y, z} }

// FromArray builds a Vector from a [3]float64.
func FromArray(a [3]float64) Vector { return Vector{a[0], a[1], a[2]} }

// Array returns the vector as a [3]float64.
func (v Vector) Array() [3]float64 { return [3]float64{v.X, v.Y, v.Z} }

// Add returns v + o.
func (v Vector) Add(o Vector) Vector { return Vector{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vector) Sub(o Vector) Vector { return Vector{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v*s.
func (v Vector) Scale(s float64) Vector { return Vector{v.X * s, v.Y * s, v.Z * s} }

// Neg returns -v.
func (v Vector) Neg() Vector { return Vector{-v.X, -v.Y, -v.Z} }

// Dot returns v . o.
func (v Vector) Dot(o Vector) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns v x o.
func (v Vector) Cross(o Vector) Vector {
	return Vector{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// NormSq returns |v|^2.
func (v Vector) NormSq() float64 { return v.Dot(v) }

// Norm returns |v|.
func (v Vector) Norm() float64 { return math.Sqrt(v.NormSq()) }

// Unit returns v normalized to unit length. The zero vector is returned
// unchanged rather than producing NaNs, mirroring how axis-less frames
// (AxisNone) are handled upstream.
func (v Vector) Unit() Vector {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.Scale(1 / n)
}

// Zero is the additive identity.
var Zero = Vector{}
