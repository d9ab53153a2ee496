package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"grid-placer/internal/geom"
	"grid-placer/internal/session"
)

var overlayColors = map[session.Color]rl.Color{
	session.ColorCell:       rl.Orange,
	session.ColorSnapTarget: rl.Red,
	session.ColorOrigin:     rl.Green,
	session.ColorRaw:        rl.Blue,
	session.ColorOffset:     rl.Yellow,
	session.ColorAxisX:      rl.Red,
	session.ColorAxisY:      rl.Green,
	session.ColorAxisZ:      rl.Blue,
}

// drawOverlay draws the tool overlay. Thick lines are drawn as thin cylinders and points as
// small spheres, sized in world units.
func drawOverlay(ov session.Overlay) {
	for _, l := range ov.Lines {
		c := overlayColors[l.Color]
		from, to := toRL(l.From), toRL(l.To)
		if l.Thickness <= 1 {
			rl.DrawLine3D(from, to, c)
			continue
		}
		r := float32(l.Thickness)
		rl.DrawCylinderEx(from, to, r, r, 6, c)
	}
	for _, p := range ov.Points {
		rl.DrawSphereEx(toRL(p.At), float32(p.Size)/2, 6, 6, overlayColors[p.Color])
	}
}

func toRL(v geom.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X()), float32(v.Y()), float32(v.Z()))
}

func toVec(v rl.Vector3) geom.Vec3 {
	return geom.Vec3{float64(v.X), float64(v.Y), float64(v.Z)}
}

func rotation(q geom.Quat) rl.Matrix {
	if q.Len() == 0 {
		return rl.MatrixIdentity()
	}
	q = q.Normalize()
	return rl.QuaternionToMatrix(rl.NewQuaternion(float32(q.V[0]), float32(q.V[1]), float32(q.V[2]), float32(q.W)))
}
