// Package geom holds the vector, rotation and pose types shared by the placement engine.
// The world is Z-up and right-handed: X is forward, Y is right, Z is up.
package geom

import "github.com/go-gl/mathgl/mgl64"

// Vec3 and Quat are the mathgl double-precision types.
type (
	Vec3 = mgl64.Vec3
	Quat = mgl64.Quat
)

// Epsilon is the tolerance used when comparing derived positions and rotations.
const Epsilon = 1e-6

var (
	Zero    = Vec3{0, 0, 0}
	One     = Vec3{1, 1, 1}
	Forward = Vec3{1, 0, 0}
	Right   = Vec3{0, 1, 0}
	Up      = Vec3{0, 0, 1}
)

// Identity returns the identity rotation.
func Identity() Quat {
	return mgl64.QuatIdent()
}

// Ray is a half-line in world or grid space. Direction need not be normalized.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// ProjectPointOnPlane projects p onto the plane through planePoint with the given normal.
// normal is normalized here; a zero normal returns p unchanged.
func ProjectPointOnPlane(p, planePoint, normal Vec3) Vec3 {
	if normal.Len() == 0 {
		return p
	}
	n := normal.Normalize()
	return p.Sub(n.Mul(p.Sub(planePoint).Dot(n)))
}

// RotationFromXZ builds the rotation whose local X axis points along x and whose local Z axis
// is as close to z as possible while staying orthogonal to x. x takes priority.
func RotationFromXZ(x, z Vec3) Quat {
	if x.Len() == 0 || z.Len() == 0 {
		return Identity()
	}
	newX := x.Normalize()
	newY := z.Normalize().Cross(newX)
	if newY.Len() < Epsilon {
		return Identity()
	}
	newY = newY.Normalize()
	newZ := newX.Cross(newY)
	m := mgl64.Mat3FromCols(newX, newY, newZ)
	return mgl64.Mat4ToQuat(m.Mat4()).Normalize()
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b Vec3) float64 {
	return a.Sub(b).Len()
}

// ApproxEqual reports whether a and b differ by less than Epsilon on every axis.
func ApproxEqual(a, b Vec3) bool {
	return a.ApproxEqualThreshold(b, Epsilon)
}
