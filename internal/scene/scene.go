// Package scene is the raylib viewport of the placement tool: a Z-up orbit camera, pointer
// rays, input polling and drawing of the level, the grid and the tool overlay.
package scene

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"grid-placer/internal/geom"
	"grid-placer/internal/grid"
	"grid-placer/internal/input"
	"grid-placer/internal/level"
	"grid-placer/internal/prefab"
	"grid-placer/internal/primitives"
	"grid-placer/internal/session"
)

const (
	// gridRadius is how many cells around the pointer cell are drawn.
	gridRadius   = 8
	gridAlpha    = 60
	axisLength   = 400
	minDistance  = 200
	maxDistance  = 20000
	orbitSpeed   = 0.005
	zoomFactor   = 0.1
	panSpeed     = 800 // world units per second at distance 1000
	maxPitch     = 1.5
	previewAlpha = 150
)

// Scene holds the camera and draws the 3D world.
type Scene struct {
	Camera      rl.Camera3D
	GridVisible bool

	prims  *primitives.Registry
	target rl.Vector3
	yaw    float32
	pitch  float32
	dist   float32
	last   rl.Vector2
}

// New returns a scene whose camera looks down at the origin from the south-west with Z up.
func New(prims *primitives.Registry) *Scene {
	s := &Scene{prims: prims, GridVisible: true, yaw: -2.4, pitch: 0.6, dist: 2500}
	s.Camera.Up = rl.NewVector3(0, 0, 1)
	s.Camera.Fovy = 45
	s.Camera.Projection = rl.CameraPerspective
	s.placeCamera()
	return s
}

func (s *Scene) placeCamera() {
	cp, sp := math32.Cos(s.pitch), math32.Sin(s.pitch)
	cy, sy := math32.Cos(s.yaw), math32.Sin(s.yaw)
	s.Camera.Target = s.target
	s.Camera.Position = rl.NewVector3(
		s.target.X+s.dist*cp*cy,
		s.target.Y+s.dist*cp*sy,
		s.target.Z+s.dist*sp,
	)
}

// Update moves the camera: right drag orbits, middle drag pans, ctrl+wheel zooms and, when
// keys is true, WASD pans along the ground.
func (s *Scene) Update(keys bool) {
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		s.yaw -= d.X * orbitSpeed
		s.pitch = min(max(s.pitch+d.Y*orbitSpeed, -maxPitch), maxPitch)
	}
	if ctrlDown() {
		if w := rl.GetMouseWheelMove(); w != 0 {
			s.dist = min(max(s.dist*(1-w*zoomFactor), minDistance), maxDistance)
		}
	}
	// ground-plane forward and right of the view
	fwd := rl.NewVector2(-math32.Cos(s.yaw), -math32.Sin(s.yaw))
	right := rl.NewVector2(fwd.Y, -fwd.X)
	var move rl.Vector2
	if rl.IsMouseButtonDown(rl.MouseButtonMiddle) {
		d := rl.GetMouseDelta()
		k := s.dist / 1000
		move.X += (-d.X*right.X + d.Y*fwd.X) * k
		move.Y += (-d.X*right.Y + d.Y*fwd.Y) * k
	}
	if keys {
		step := panSpeed * s.dist / 1000 * rl.GetFrameTime()
		axis := func(pos, neg int32) float32 {
			v := float32(0)
			if rl.IsKeyDown(pos) {
				v++
			}
			if rl.IsKeyDown(neg) {
				v--
			}
			return v
		}
		f, r := axis(rl.KeyW, rl.KeyS), axis(rl.KeyD, rl.KeyA)
		move.X += (f*fwd.X + r*right.X) * step
		move.Y += (f*fwd.Y + r*right.Y) * step
	}
	s.target.X += move.X
	s.target.Y += move.Y
	s.placeCamera()
}

func ctrlDown() bool {
	return rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
}

func shiftDown() bool {
	return rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
}

// PointerRay is the camera ray through the mouse cursor.
func (s *Scene) PointerRay() geom.Ray {
	r := rl.GetScreenToWorldRay(rl.GetMousePosition(), s.Camera)
	return geom.Ray{Origin: toVec(r.Position), Direction: toVec(r.Direction)}
}

var toolKeys = map[input.Key]int32{
	input.KeyE: rl.KeyE,
	input.KeyQ: rl.KeyQ,
	input.Key1: rl.KeyOne,
	input.Key2: rl.KeyTwo,
	input.Key3: rl.KeyThree,
	input.Key4: rl.KeyFour,
	input.KeyX: rl.KeyX,
}

// Events polls this frame's tool input. When keys is false the terminal owns the keyboard and
// mouse buttons, and only pointer movement is reported.
func (s *Scene) Events(keys bool) []input.Event {
	pos := rl.GetMousePosition()
	p := input.Poll{
		Captured: !keys,
		Moved:    pos != s.last,
		Ray:      s.PointerRay(),
		Pressed:  func(k input.Key) bool { return rl.IsKeyPressed(toolKeys[k]) },
		Shift:    shiftDown(),
		Confirm:  rl.IsMouseButtonPressed(rl.MouseButtonLeft),
	}
	s.last = pos
	if !ctrlDown() {
		p.Wheel = float64(rl.GetMouseWheelMove())
	}
	return p.Events()
}

// Draw renders the level objects, the grid patch around cell and the overlay.
func (s *Scene) Draw(objects []*level.Object, frame *grid.Frame, cell geom.Vec3, ov session.Overlay) {
	pos := s.Camera.Position
	s.prims.SetView([3]float32{pos.X, pos.Y, pos.Z}, [3]float32{0.4, 0.3, 1})

	rl.BeginMode3D(s.Camera)
	drawAxes()
	for _, o := range objects {
		if !o.Preview {
			s.drawObject(o)
		}
	}
	if s.GridVisible {
		drawGrid(frame, cell)
	}
	drawOverlay(ov)
	// previews last so they blend over everything else
	for _, o := range objects {
		if o.Preview {
			s.drawObject(o)
		}
	}
	rl.EndMode3D()
}

func (s *Scene) drawObject(o *level.Object) {
	tr := o.Transform
	at := toRL(tr.Position)
	model := rl.MatrixMultiply(
		rl.MatrixScale(float32(tr.Scale.X()), float32(tr.Scale.Y()), float32(tr.Scale.Z())),
		rl.MatrixMultiply(rotation(tr.Rotation), rl.MatrixTranslate(at.X, at.Y, at.Z)),
	)
	for _, p := range o.Parts {
		c, err := prefab.ParseColor(p.Color)
		if err != nil {
			continue
		}
		color := rl.NewColor(c[0], c[1], c[2], c[3])
		if o.Preview {
			color.A = previewAlpha
		}
		local := rl.MatrixMultiply(
			rl.MatrixScale(float32(p.Size.X()), float32(p.Size.Y()), float32(p.Size.Z())),
			rl.MatrixTranslate(float32(p.Offset.X()), float32(p.Offset.Y()), float32(p.Offset.Z())),
		)
		s.prims.Draw(p.Shape, rl.MatrixMultiply(local, model), color)
	}
}

// drawGrid draws cell lines of the frame's plane around the pointer cell.
func drawGrid(frame *grid.Frame, cell geom.Vec3) {
	w, h := frame.Cell.Width, frame.Cell.Height
	color := rl.NewColor(170, 170, 170, gridAlpha)
	x0, x1 := cell.X()-gridRadius*w, cell.X()+(gridRadius+1)*w
	y0, y1 := cell.Y()-gridRadius*h, cell.Y()+(gridRadius+1)*h
	for i := -gridRadius; i <= gridRadius+1; i++ {
		x := cell.X() + float64(i)*w
		rl.DrawLine3D(toRL(frame.GridToWorld(geom.Vec3{x, y0, 0})), toRL(frame.GridToWorld(geom.Vec3{x, y1, 0})), color)
		y := cell.Y() + float64(i)*h
		rl.DrawLine3D(toRL(frame.GridToWorld(geom.Vec3{x0, y, 0})), toRL(frame.GridToWorld(geom.Vec3{x1, y, 0})), color)
	}
}

// drawAxes draws the world axes through the origin (X=red, Y=green, Z=blue).
func drawAxes() {
	o := rl.NewVector3(0, 0, 0)
	rl.DrawLine3D(o, rl.NewVector3(axisLength, 0, 0), rl.NewColor(220, 80, 80, 220))
	rl.DrawLine3D(o, rl.NewVector3(0, axisLength, 0), rl.NewColor(80, 220, 80, 220))
	rl.DrawLine3D(o, rl.NewVector3(0, 0, axisLength), rl.NewColor(80, 80, 220, 220))
}
