package geom

// Pose is a position and orientation in world space.
type Pose struct {
	Position Vec3
	Rotation Quat
}

// Up returns the pose's local up axis in world space.
func (p Pose) Up() Vec3 {
	return p.Rotation.Rotate(Up)
}

// Transform is a pose plus a per-axis scale.
type Transform struct {
	Position Vec3
	Rotation Quat
	Scale    Vec3
}

// NewTransform returns an identity transform at position with unit scale.
func NewTransform(position Vec3) Transform {
	return Transform{Position: position, Rotation: Identity(), Scale: One}
}

// Pose drops the scale.
func (t Transform) Pose() Pose {
	return Pose{Position: t.Position, Rotation: t.Rotation}
}
