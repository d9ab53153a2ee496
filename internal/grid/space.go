package grid

import (
	"fmt"

	"grid-placer/internal/geom"
	"grid-placer/internal/world"
)

// Space says where a grid pose, rotation or height offset comes from.
type Space uint8

const (
	// Global uses fixed world-space values.
	Global Space = iota
	// Local follows the grid (or, for the grid itself, the surface under the cursor).
	Local
	// Custom follows a designated reference object.
	Custom
)

var spaceNames = [...]string{"global", "local", "custom"}

func (s Space) String() string {
	if int(s) < len(spaceNames) {
		return spaceNames[s]
	}
	return fmt.Sprintf("space(%d)", uint8(s))
}

// ParseSpace maps a name from String back to its space.
func ParseSpace(s string) (Space, error) {
	for i, n := range spaceNames {
		if n == s {
			return Space(i), nil
		}
	}
	return 0, fmt.Errorf("unknown space %q", s)
}

// MaxTraceDistance bounds the line trace used by the Local grid space.
const MaxTraceDistance = 100000

// upAlignmentLimit is the dot(normal, up) above which the tangent is built from world right
// instead of world up.
const upAlignmentLimit = 0.9

// Source describes how the frame follows the scene.
type Source struct {
	Mode    Space
	Channel world.Channel
	// Target is the reference object for Custom mode.
	Target world.ObjectID
}

// Update moves the frame according to src. Global leaves it alone. Local traces ray into the
// scene, skipping ignore, and aligns the grid to the hit surface. Custom copies the target's
// pose. A miss or a missing target leaves the last pose in place. It reports whether the pose
// changed.
func (f *Frame) Update(src Source, ray geom.Ray, tracer world.Tracer, locator world.Locator, ignore ...world.ObjectID) bool {
	switch src.Mode {
	case Local:
		if tracer == nil {
			return false
		}
		dir := ray.Direction
		if dir.Len() == 0 {
			return false
		}
		hit, ok := tracer.LineTrace(geom.Ray{Origin: ray.Origin, Direction: dir.Normalize()}, MaxTraceDistance, src.Channel, ignore...)
		if !ok || hit.Object == world.None {
			return false
		}
		f.SetPose(SurfacePose(hit))
		return true
	case Custom:
		if locator == nil || src.Target == world.None {
			return false
		}
		pose, ok := locator.Locate(src.Target)
		if !ok {
			return false
		}
		f.SetPose(pose)
		return true
	}
	return false
}

// SurfacePose derives a grid pose lying on the hit surface. The origin is the hit object's
// position projected onto the hit plane; the rotation puts grid Z along the surface normal,
// expressed relative to the hit object and then composed with the object's rotation.
func SurfacePose(hit world.Hit) geom.Pose {
	normal := hit.Normal
	if normal.Len() == 0 {
		normal = geom.Up
	}
	normal = normal.Normalize()
	var tangent geom.Vec3
	if normal.Dot(geom.Up) > upAlignmentLimit {
		tangent = normal.Cross(geom.Right)
	} else {
		tangent = normal.Cross(geom.Up)
	}
	targetRot := hit.Pose.Rotation
	if targetRot.Len() == 0 {
		targetRot = geom.Identity()
	}
	inv := targetRot.Inverse()
	local := geom.RotationFromXZ(inv.Rotate(tangent), inv.Rotate(normal))
	return geom.Pose{
		Position: geom.ProjectPointOnPlane(hit.Pose.Position, hit.Point, normal),
		Rotation: targetRot.Mul(local).Normalize(),
	}
}

func (s Space) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Space) UnmarshalText(b []byte) error {
	v, err := ParseSpace(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
