package session

import (
	"grid-placer/internal/geom"
	"grid-placer/internal/grid"
	"grid-placer/internal/placement"
	"grid-placer/internal/world"
)

// HeightOffsetVector is the world-space offset from the snapped grid point to the object pivot.
// Global offsets along world up, Local along the grid normal, Custom along the reference
// object's up axis (world up when there is no reference).
func (s *Session) HeightOffsetVector() geom.Vec3 {
	offset := s.State.HeightOffset
	switch s.State.HeightOffsetSpace {
	case grid.Global:
		return geom.Up.Mul(offset)
	case grid.Custom:
		if pose, ok := s.reference(s.Config.HeightOffsetTarget); ok {
			return pose.Up().Mul(offset)
		}
		return geom.Up.Mul(offset)
	default:
		return s.frame.GridToWorldDir(geom.Up.Mul(offset))
	}
}

// PlacementRotation is the world rotation given to the preview. Global uses the placement
// angles as they are; Local applies them on top of the grid rotation; Custom on top of the
// reference object's rotation, or as they are without a reference.
func (s *Session) PlacementRotation() geom.Quat {
	local := s.State.Rotation.Quat()
	switch s.State.RotationSpace {
	case grid.Local:
		return s.frame.Rotation.Mul(local).Normalize()
	case grid.Custom:
		if pose, ok := s.reference(s.Config.RotationTarget); ok {
			return pose.Rotation.Mul(local).Normalize()
		}
	}
	return local
}

// placementTransform composes the snapped point, height offset, rotation, pivot and scale.
func (s *Session) placementTransform() geom.Transform {
	base := s.frame.GridToWorld(s.snapped)
	rot := s.PlacementRotation()
	pos := base.Add(s.HeightOffsetVector())
	if s.State.Pivot == placement.GridPivot {
		// the offset is measured along the object's own up axis from the grid point
		pos = base.Add(rot.Rotate(geom.Up).Mul(s.State.HeightOffset))
	}
	return geom.Transform{Position: pos, Rotation: rot, Scale: s.State.UniformScale()}
}

func (s *Session) reference(id world.ObjectID) (geom.Pose, bool) {
	if s.locator == nil || id == world.None {
		return geom.Pose{}, false
	}
	return s.locator.Locate(id)
}
