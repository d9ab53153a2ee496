package grid

import (
	"fmt"
	"math"

	"grid-placer/internal/geom"
)

// SnapMode selects which part of a cell a point snaps to.
type SnapMode uint8

const (
	SnapCenter SnapMode = iota
	SnapEdges
	SnapCorners
	SnapNone
)

var snapNames = [...]string{"center", "edges", "corners", "none"}

func (m SnapMode) String() string {
	if int(m) < len(snapNames) {
		return snapNames[m]
	}
	return fmt.Sprintf("snap(%d)", uint8(m))
}

// ParseSnapMode maps a name from String back to its mode.
func ParseSnapMode(s string) (SnapMode, error) {
	for i, n := range snapNames {
		if n == s {
			return SnapMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown snapping mode %q", s)
}

// roundHalfUp rounds to the nearest integer, halves towards +Inf.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// centerOf returns the center coordinate of the cell nearest to v along one axis.
func centerOf(v, size float64) float64 {
	return (roundHalfUp(v/size+0.5) - 0.5) * size
}

// CellOf returns the minimum corner of the cell containing p. Z is kept as is.
func CellOf(p geom.Vec3, cell CellSize) geom.Vec3 {
	return geom.Vec3{
		math.Floor(p.X()/cell.Width) * cell.Width,
		math.Floor(p.Y()/cell.Height) * cell.Height,
		p.Z(),
	}
}

// Snap quantizes the X/Y of a grid-space point according to mode and also returns the cell
// containing the raw point. The cell does not depend on mode.
func Snap(raw geom.Vec3, cell CellSize, mode SnapMode) (snapped, corner geom.Vec3) {
	corner = CellOf(raw, cell)
	snapped = raw
	switch mode {
	case SnapCenter:
		snapped[0] = centerOf(raw.X(), cell.Width)
		snapped[1] = centerOf(raw.Y(), cell.Height)
	case SnapEdges:
		snapped = nearestEdge(raw, cell)
	case SnapCorners:
		snapped[0] = roundHalfUp(raw.X()/cell.Width) * cell.Width
		snapped[1] = roundHalfUp(raw.Y()/cell.Height) * cell.Height
	case SnapNone:
	}
	return snapped, corner
}

// EdgeMidpoints returns the four edge midpoints around a cell center, ordered forward, back,
// right, left.
func EdgeMidpoints(center geom.Vec3, cell CellSize) [4]geom.Vec3 {
	hx := geom.Forward.Mul(cell.Width * 0.5)
	hy := geom.Right.Mul(cell.Height * 0.5)
	return [4]geom.Vec3{
		center.Add(hx),
		center.Sub(hx),
		center.Add(hy),
		center.Sub(hy),
	}
}

// nearestEdge picks the edge midpoint of the nearest cell closest to raw. On a tie the first
// candidate in EdgeMidpoints order wins.
func nearestEdge(raw geom.Vec3, cell CellSize) geom.Vec3 {
	center := raw
	center[0] = centerOf(raw.X(), cell.Width)
	center[1] = centerOf(raw.Y(), cell.Height)
	edges := EdgeMidpoints(center, cell)
	best, bestDist := 0, math.Inf(1)
	for i, e := range edges {
		if d := geom.Distance(raw, e); d < bestDist {
			best, bestDist = i, d
		}
	}
	return edges[best]
}

// Corners returns the four corners of the cell with minimum corner c: c, c+X, c+Y, c+X+Y.
func Corners(c geom.Vec3, cell CellSize) [4]geom.Vec3 {
	x := geom.Forward.Mul(cell.Width)
	y := geom.Right.Mul(cell.Height)
	return [4]geom.Vec3{c, c.Add(x), c.Add(y), c.Add(x).Add(y)}
}

func (m SnapMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *SnapMode) UnmarshalText(b []byte) error {
	v, err := ParseSnapMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
