// Package grid converts between world space and the placement grid, keeps the grid's pose up
// to date, and snaps grid-space points to cells.
package grid

import (
	"math"

	"grid-placer/internal/geom"
)

// CellSize is the width (along grid X) and height (along grid Y) of one cell.
type CellSize struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Frame is the grid's pose and cell size. The grid plane is grid-space Z = 0.
type Frame struct {
	Origin   geom.Vec3
	Rotation geom.Quat
	Cell     CellSize
}

// NewFrame returns a frame at origin with the given rotation and cell size.
func NewFrame(origin geom.Vec3, rotation geom.Quat, cell CellSize) *Frame {
	f := &Frame{Origin: origin, Cell: cell}
	f.SetRotation(rotation)
	return f
}

// SetRotation stores q normalized. A degenerate quaternion resets to identity.
func (f *Frame) SetRotation(q geom.Quat) {
	if l := q.Len(); l == 0 || math.IsNaN(l) {
		f.Rotation = geom.Identity()
		return
	}
	f.Rotation = q.Normalize()
}

// SetPose copies a pose into the frame.
func (f *Frame) SetPose(p geom.Pose) {
	f.Origin = p.Position
	f.SetRotation(p.Rotation)
}

// Pose returns the frame's origin and rotation.
func (f *Frame) Pose() geom.Pose {
	return geom.Pose{Position: f.Origin, Rotation: f.Rotation}
}

// WorldToGrid converts a world position to grid space.
func (f *Frame) WorldToGrid(p geom.Vec3) geom.Vec3 {
	return f.Rotation.Inverse().Rotate(p.Sub(f.Origin))
}

// GridToWorld converts a grid position to world space.
func (f *Frame) GridToWorld(p geom.Vec3) geom.Vec3 {
	return f.Rotation.Rotate(p).Add(f.Origin)
}

// WorldToGridDir rotates a world direction into grid space without translating it.
func (f *Frame) WorldToGridDir(d geom.Vec3) geom.Vec3 {
	return f.Rotation.Inverse().Rotate(d)
}

// GridToWorldDir rotates a grid direction into world space without translating it.
func (f *Frame) GridToWorldDir(d geom.Vec3) geom.Vec3 {
	return f.Rotation.Rotate(d)
}

// Intersect returns where a world ray meets the grid plane, in grid space. It fails only when
// the ray runs exactly parallel to the plane.
func (f *Frame) Intersect(ray geom.Ray) (geom.Vec3, bool) {
	origin := f.WorldToGrid(ray.Origin)
	dir := f.WorldToGridDir(ray.Direction)
	if dir.Z() == 0 {
		return geom.Vec3{}, false
	}
	p := origin.Sub(dir.Mul(origin.Z() / dir.Z()))
	// the plane is Z = 0 by construction; drop rounding noise
	p[2] = 0
	return p, true
}
