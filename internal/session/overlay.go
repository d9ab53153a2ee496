package session

import (
	"math"

	"grid-placer/internal/geom"
	"grid-placer/internal/grid"
	"grid-placer/internal/placement"
)

// Color names an overlay role; the host maps it to a real color.
type Color uint8

const (
	ColorCell Color = iota
	ColorSnapTarget
	ColorOrigin
	ColorRaw
	ColorOffset
	ColorAxisX
	ColorAxisY
	ColorAxisZ
)

// Line is a world-space overlay segment.
type Line struct {
	From, To  geom.Vec3
	Color     Color
	Thickness float64
}

// Point is a world-space overlay marker.
type Point struct {
	At    geom.Vec3
	Color Color
	Size  float64
}

// Overlay is the tool's per-frame visual feedback.
type Overlay struct {
	Lines  []Line
	Points []Point
}

// axisPadding lengthens the rotation axis gizmo beyond the larger cell side.
const axisPadding = 50

// Overlay returns the cell outline with its snap targets, the rotation axis gizmo, the grid
// origin, the raw pointer point and the snapped point with its height offset.
func (s *Session) Overlay() Overlay {
	var o Overlay
	s.cellOverlay(&o)
	s.axisOverlay(&o)

	snapped := s.frame.GridToWorld(s.snapped)
	offset := s.HeightOffsetVector()
	o.Points = append(o.Points,
		Point{At: s.frame.Origin, Color: ColorOrigin, Size: 20},
		Point{At: s.frame.GridToWorld(s.raw), Color: ColorRaw, Size: 10},
		Point{At: snapped.Add(offset), Color: ColorOffset, Size: 20},
	)
	o.Lines = append(o.Lines, Line{From: snapped, To: snapped.Add(offset), Color: ColorOffset, Thickness: 2})
	return o
}

func (s *Session) cellOverlay(o *Overlay) {
	c := grid.Corners(s.cell, s.frame.Cell)
	var w [4]geom.Vec3
	for i := range c {
		w[i] = s.frame.GridToWorld(c[i])
	}
	p00, p10, p01, p11 := w[0], w[1], w[2], w[3]
	o.Lines = append(o.Lines,
		Line{From: p00, To: p01, Color: ColorCell, Thickness: 2},
		Line{From: p00, To: p10, Color: ColorCell, Thickness: 2},
		Line{From: p11, To: p01, Color: ColorCell, Thickness: 2},
		Line{From: p11, To: p10, Color: ColorCell, Thickness: 2},
	)
	mid := func(a, b geom.Vec3) geom.Vec3 { return a.Add(b).Mul(0.5) }
	var targets []geom.Vec3
	switch s.Config.Snap {
	case grid.SnapCenter:
		targets = []geom.Vec3{mid(mid(p00, p01), mid(p10, p11))}
	case grid.SnapEdges:
		targets = []geom.Vec3{mid(p00, p01), mid(p00, p10), mid(p11, p01), mid(p11, p10)}
	case grid.SnapCorners:
		targets = []geom.Vec3{p00, p10, p01, p11}
	}
	for _, t := range targets {
		o.Points = append(o.Points, Point{At: t, Color: ColorSnapTarget, Size: 10})
	}
}

func (s *Session) axisOverlay(o *Overlay) {
	half := (math.Max(s.frame.Cell.Width, s.frame.Cell.Height) + axisPadding) * 0.5
	var dir geom.Vec3
	var color Color
	switch s.State.Axis {
	case placement.AxisX:
		dir, color = geom.Forward, ColorAxisX
	case placement.AxisY:
		dir, color = geom.Right, ColorAxisY
	default:
		dir, color = geom.Up, ColorAxisZ
	}
	start, end := dir.Mul(-half), dir.Mul(half)

	base := s.frame.GridToWorld(s.snapped)
	switch s.State.RotationSpace {
	case grid.Local:
		start = s.frame.GridToWorld(s.snapped.Add(start))
		end = s.frame.GridToWorld(s.snapped.Add(end))
	case grid.Custom:
		if pose, ok := s.reference(s.Config.RotationTarget); ok {
			start = base.Add(pose.Rotation.Rotate(start))
			end = base.Add(pose.Rotation.Rotate(end))
			break
		}
		start, end = base.Add(start), base.Add(end)
	default:
		start, end = base.Add(start), base.Add(end)
	}
	if s.State.Pivot == placement.ObjectPivot {
		off := s.HeightOffsetVector()
		start, end = start.Add(off), end.Add(off)
	}
	o.Lines = append(o.Lines, Line{From: start, To: end, Color: color, Thickness: 3})
}
