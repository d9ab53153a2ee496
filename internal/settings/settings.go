package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"

	"grid-placer/internal/geom"
	"grid-placer/internal/grid"
	"grid-placer/internal/palette"
	"grid-placer/internal/placement"
	"grid-placer/internal/world"
)

// DefaultPath is the settings file, relative to the process working directory.
const DefaultPath = "config/gridplacer.yaml"

// Grid holds the persisted grid parameters. Origin and Rotation only apply in the Global space.
type Grid struct {
	Space    grid.Space    `yaml:"space"`
	Channel  world.Channel `yaml:"channel"`
	Origin   geom.Vec3     `yaml:"origin,flow"`
	Rotation geom.Rotator  `yaml:"rotation"`
	Cell     grid.CellSize `yaml:"cell"`
}

// Settings is everything the tool restores at start and saves at shutdown.
type Settings struct {
	Grid      Grid             `yaml:"grid"`
	Snap      grid.SnapMode    `yaml:"snap"`
	PickMode  palette.PickMode `yaml:"pick_mode"`
	Placement placement.State  `yaml:"placement"`
	// ShowHUD toggles the debug overlay.
	ShowHUD bool `yaml:"show_hud"`
}

// Default returns the settings used when no file exists.
func Default() Settings {
	return Settings{
		Grid: Grid{
			Space:   grid.Global,
			Channel: world.ChannelVisibility,
			Cell:    grid.CellSize{Width: 100, Height: 100},
		},
		Snap:      grid.SnapCenter,
		PickMode:  palette.Random,
		Placement: placement.Default(),
		ShowHUD:   true,
	}
}

// Limit is the accepted closed range of a numeric setting.
type Limit struct {
	Field    string
	Min, Max float64
}

// Limits lists every range-checked setting.
var Limits = []Limit{
	{"placement.scale", placement.MinScale, placement.MaxScale},
	{"placement.random_scale.range.min", placement.MinScale, placement.MaxScale},
	{"placement.random_scale.range.max", placement.MinScale, placement.MaxScale},
	{"placement.height_offset_step.major", 1, 1000},
	{"placement.height_offset_step.minor", 0.1, 100},
	{"placement.rotation_step.major", 0, 180},
	{"placement.rotation_step.minor", 0, 90},
}

func (s *Settings) limited() []*float64 {
	p := &s.Placement
	return []*float64{
		&p.Scale,
		&p.RandomScale.Range.Min,
		&p.RandomScale.Range.Max,
		&p.HeightOffsetStep.Major,
		&p.HeightOffsetStep.Minor,
		&p.RotationStep.Major,
		&p.RotationStep.Minor,
	}
}

// Validate reports every out-of-range field in one joined error.
func (s Settings) Validate() error {
	var errs []error
	for i, v := range s.limited() {
		l := Limits[i]
		if *v < l.Min || *v > l.Max {
			errs = append(errs, fmt.Errorf("%s: %g outside [%g, %g]", l.Field, *v, l.Min, l.Max))
		}
	}
	if s.Grid.Cell.Width <= 0 || s.Grid.Cell.Height <= 0 {
		errs = append(errs, fmt.Errorf("grid.cell: size %gx%g must be positive", s.Grid.Cell.Width, s.Grid.Cell.Height))
	}
	return errors.Join(errs...)
}

// Clamp pulls every range-checked field into its limits. A non-positive cell side falls back
// to the default.
func (s *Settings) Clamp() {
	for i, v := range s.limited() {
		l := Limits[i]
		*v = min(max(*v, l.Min), l.Max)
	}
	def := Default().Grid.Cell
	if s.Grid.Cell.Width <= 0 {
		s.Grid.Cell.Width = def.Width
	}
	if s.Grid.Cell.Height <= 0 {
		s.Grid.Cell.Height = def.Height
	}
}

// Visible reports whether a field is meaningful under the current modes. Presentation layers
// hide the rest. Unknown fields are visible.
func (s Settings) Visible(field string) bool {
	p := s.Placement
	switch field {
	case "grid.origin", "grid.rotation":
		return s.Grid.Space == grid.Global
	case "grid.channel":
		return s.Grid.Space == grid.Local
	case "grid.target":
		return s.Grid.Space == grid.Custom
	case "placement.rotation_target":
		return p.RotationSpace == grid.Custom
	case "placement.height_offset_target":
		return p.HeightOffsetSpace == grid.Custom
	case "placement.random_height_offset.range", "placement.random_height_offset.divisions":
		return p.RandomHeightOffset.Enabled
	case "placement.random_rotation.range", "placement.random_rotation.divisions":
		return p.RandomRotation.Enabled
	case "placement.random_scale.range", "placement.random_scale.divisions":
		return p.RandomScale.Enabled
	}
	return true
}

// Clone returns a deep copy of s.
func (s Settings) Clone() (Settings, error) {
	var out Settings
	if err := copier.CopyWithOption(&out, &s, copier.Option{DeepCopy: true}); err != nil {
		return Settings{}, fmt.Errorf("clone settings: %w", err)
	}
	return out, nil
}

// Frame builds the grid frame described by the Global parameters.
func (s Settings) Frame() *grid.Frame {
	return grid.NewFrame(s.Grid.Origin, s.Grid.Rotation.Quat(), s.Grid.Cell)
}

// Load reads settings from path. A missing file yields Default() and no error. A malformed file
// yields Default() and the parse error. Fields absent from the file keep their defaults.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("read settings: %w", err)
	}
	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("parse settings %s: %w", path, err)
	}
	return s, nil
}

// Save writes s to path, creating the directory if needed.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
