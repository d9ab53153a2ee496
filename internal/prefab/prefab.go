// Package prefab describes placeable assets as lists of primitive parts. Static meshes map to a
// single built-in shape; actor classes are YAML prefab files under assets/prefabs.
package prefab

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"grid-placer/internal/geom"
	"grid-placer/internal/palette"
)

// DefaultDir holds the prefab files, relative to the working directory.
const DefaultDir = "assets/prefabs"

// MeshSize is the edge length of a built-in shape, in world units.
const MeshSize = 100

// Shapes are the built-in mesh names a static mesh entry or a part may use.
var Shapes = []string{"cube", "sphere", "cylinder", "plane"}

// Part is one primitive of an asset. Offset is the part center relative to the object pivot.
type Part struct {
	Shape  string    `yaml:"shape"`
	Offset geom.Vec3 `yaml:"offset,flow"`
	Size   geom.Vec3 `yaml:"size,flow"`
	Color  string    `yaml:"color,omitempty"`
}

// Prefab is the YAML definition of an actor class (e.g. assets/prefabs/lamp.yaml).
type Prefab struct {
	Name  string `yaml:"name"`
	Parts []Part `yaml:"parts"`
}

func (p Prefab) validate() error {
	if p.Name == "" {
		return errors.New("missing name")
	}
	if len(p.Parts) == 0 {
		return errors.New("no parts")
	}
	for i, part := range p.Parts {
		if !slices.Contains(Shapes, part.Shape) {
			return fmt.Errorf("part %d: unknown shape %q", i, part.Shape)
		}
		if part.Size.X() <= 0 || part.Size.Y() <= 0 || part.Size.Z() <= 0 {
			return fmt.Errorf("part %d: size must be positive", i)
		}
		if _, err := ParseColor(part.Color); err != nil {
			return fmt.Errorf("part %d: %w", i, err)
		}
	}
	return nil
}

// Load reads and validates one prefab file. The name defaults to the file's base name.
func Load(path string) (Prefab, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Prefab{}, err
	}
	var p Prefab
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Prefab{}, fmt.Errorf("parse prefab %s: %w", path, err)
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := p.validate(); err != nil {
		return Prefab{}, fmt.Errorf("prefab %s: %w", path, err)
	}
	return p, nil
}

// Library resolves palette entries into parts.
type Library struct {
	prefabs map[string]Prefab
}

// NewLibrary returns a library holding only the built-in shapes.
func NewLibrary() *Library {
	return &Library{prefabs: make(map[string]Prefab)}
}

// LoadDir loads every *.yaml file in dir. A missing directory gives an empty library. Files that
// fail to load are skipped and reported together.
func LoadDir(dir string) (*Library, error) {
	lib := NewLibrary()
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return lib, err
	}
	var errs []error
	for _, path := range paths {
		p, err := Load(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		lib.Add(p)
	}
	return lib, errors.Join(errs...)
}

// Add registers p, replacing any prefab with the same name.
func (l *Library) Add(p Prefab) {
	l.prefabs[p.Name] = p
}

// Names returns the prefab names in sorted order.
func (l *Library) Names() []string {
	out := make([]string, 0, len(l.prefabs))
	for n := range l.prefabs {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Has reports whether e can be resolved.
func (l *Library) Has(e palette.Entry) bool {
	_, err := l.Resolve(e)
	return err == nil
}

// Resolve returns the parts of e. A static mesh is one MeshSize shape resting on its pivot.
func (l *Library) Resolve(e palette.Entry) ([]Part, error) {
	switch e.Kind {
	case palette.StaticMesh:
		if !slices.Contains(Shapes, e.Asset) {
			return nil, fmt.Errorf("unknown mesh %q", e.Asset)
		}
		return []Part{{
			Shape:  e.Asset,
			Offset: geom.Vec3{0, 0, MeshSize / 2},
			Size:   geom.Vec3{MeshSize, MeshSize, MeshSize},
		}}, nil
	case palette.ActorClass:
		p, ok := l.prefabs[e.Asset]
		if !ok {
			return nil, fmt.Errorf("unknown prefab %q", e.Asset)
		}
		return slices.Clone(p.Parts), nil
	}
	return nil, fmt.Errorf("unsupported kind %v", e.Kind)
}

// Bounds returns the local axis-aligned box around parts.
func Bounds(parts []Part) (lo, hi geom.Vec3) {
	for i, p := range parts {
		half := p.Size.Mul(0.5)
		plo, phi := p.Offset.Sub(half), p.Offset.Add(half)
		if i == 0 {
			lo, hi = plo, phi
			continue
		}
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], plo[k])
			hi[k] = max(hi[k], phi[k])
		}
	}
	return lo, hi
}

// ParseColor parses "#rrggbb" or "#rrggbbaa". An empty string is the default grey.
func ParseColor(s string) ([4]uint8, error) {
	if s == "" {
		return [4]uint8{128, 128, 128, 255}, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return [4]uint8{}, fmt.Errorf("bad color %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return [4]uint8{}, fmt.Errorf("bad color %q", s)
	}
	return [4]uint8{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}
