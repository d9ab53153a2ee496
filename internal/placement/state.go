// Package placement holds the user-tunable transform applied to the next placed object:
// rotation, height offset and scale, with their increments and randomization.
package placement

import (
	"fmt"

	"grid-placer/internal/geom"
	"grid-placer/internal/grid"
)

// Axis is the rotation component that increments and randomization write to.
type Axis uint8

const (
	AxisX Axis = iota // roll
	AxisY             // pitch
	AxisZ             // yaw
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("axis(%d)", uint8(a))
}

// ParseAxis accepts "x", "y" or "z".
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return AxisX, nil
	case "y", "Y":
		return AxisY, nil
	case "z", "Z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("unknown rotation axis %q", s)
}

// Pivot is the point the placed object rotates around.
type Pivot uint8

const (
	// ObjectPivot rotates around the object's own pivot, which sits at the height offset.
	ObjectPivot Pivot = iota
	// GridPivot rotates around the snapped point on the grid, so the height offset turns with
	// the object.
	GridPivot
)

func (p Pivot) String() string {
	if p == GridPivot {
		return "grid"
	}
	return "object"
}

// ParsePivot accepts "object" or "grid".
func ParsePivot(s string) (Pivot, error) {
	switch s {
	case "object":
		return ObjectPivot, nil
	case "grid":
		return GridPivot, nil
	}
	return 0, fmt.Errorf("unknown rotation pivot %q", s)
}

// Step is one discrete change command.
type Step uint8

const (
	IncreaseMajor Step = iota
	DecreaseMajor
	IncreaseMinor
	DecreaseMinor
)

// Increment is the pair of step sizes for one parameter.
type Increment struct {
	Major float64 `yaml:"major"`
	Minor float64 `yaml:"minor"`
}

func (i Increment) delta(s Step) float64 {
	switch s {
	case IncreaseMajor:
		return i.Major
	case DecreaseMajor:
		return -i.Major
	case IncreaseMinor:
		return i.Minor
	case DecreaseMinor:
		return -i.Minor
	}
	return 0
}

// State is the current placement transform and its tuning.
type State struct {
	Rotation          geom.Rotator `yaml:"rotation"`
	HeightOffset      float64      `yaml:"height_offset"`
	Scale             float64      `yaml:"scale"`
	Axis              Axis         `yaml:"axis"`
	RotationSpace     grid.Space   `yaml:"rotation_space"`
	HeightOffsetSpace grid.Space   `yaml:"height_offset_space"`
	Pivot             Pivot        `yaml:"pivot"`

	HeightOffsetStep Increment `yaml:"height_offset_step"`
	RotationStep     Increment `yaml:"rotation_step"`

	RandomHeightOffset Randomization `yaml:"random_height_offset"`
	RandomRotation     Randomization `yaml:"random_rotation"`
	RandomScale        Randomization `yaml:"random_scale"`
}

// Default returns the tool's starting state.
func Default() State {
	return State{
		Scale:              1,
		Axis:               AxisZ,
		RotationSpace:      grid.Local,
		HeightOffsetSpace:  grid.Local,
		Pivot:              ObjectPivot,
		HeightOffsetStep:   Increment{Major: 100, Minor: 10},
		RotationStep:       Increment{Major: 90, Minor: 45},
		RandomHeightOffset: Randomization{Range: Range{Min: -100, Max: 100}},
		RandomRotation:     Randomization{Range: Range{Min: 0, Max: 360}},
		RandomScale:        Randomization{Range: Range{Min: 0.5, Max: 2}},
	}
}

// ChangeHeightOffset adds or subtracts the major or minor height offset increment.
func (s *State) ChangeHeightOffset(step Step) {
	s.HeightOffset += s.HeightOffsetStep.delta(step)
}

// ChangeRotation adds or subtracts the major or minor rotation increment on the active axis
// and wraps the result into [0,360). Increments stay within one turn, so one wrap suffices.
func (s *State) ChangeRotation(step Step) {
	v := s.AxisAngle() + s.RotationStep.delta(step)
	if v >= 360 {
		v -= 360
	} else if v < 0 {
		v += 360
	}
	s.SetAxisAngle(v)
}

// CycleAxis advances the active rotation axis X -> Y -> Z -> X.
func (s *State) CycleAxis() {
	s.Axis = (s.Axis + 1) % 3
}

// AxisAngle returns the rotation component selected by Axis.
func (s *State) AxisAngle() float64 {
	switch s.Axis {
	case AxisX:
		return s.Rotation.Roll
	case AxisY:
		return s.Rotation.Pitch
	default:
		return s.Rotation.Yaw
	}
}

// SetAxisAngle writes the rotation component selected by Axis.
func (s *State) SetAxisAngle(deg float64) {
	switch s.Axis {
	case AxisX:
		s.Rotation.Roll = deg
	case AxisY:
		s.Rotation.Pitch = deg
	default:
		s.Rotation.Yaw = deg
	}
}

// UniformScale returns Scale on all three axes.
func (s *State) UniformScale() geom.Vec3 {
	return geom.One.Mul(s.Scale)
}

func (a Axis) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Axis) UnmarshalText(b []byte) error {
	v, err := ParseAxis(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

func (p Pivot) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Pivot) UnmarshalText(b []byte) error {
	v, err := ParsePivot(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
