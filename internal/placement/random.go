package placement

import (
	"math"

	"grid-placer/internal/geom"
)

// MinScale and MaxScale bound the uniform scale.
const (
	MinScale = 0.1
	MaxScale = 10
)

// Range is a closed interval.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Size returns Max - Min.
func (r Range) Size() float64 {
	return r.Max - r.Min
}

// Randomization configures how a parameter is re-rolled after each placement.
// Divisions splits the range into |Divisions| equal steps whose endpoints, both range bounds
// included, are the only values drawn. Zero draws from the continuous range.
type Randomization struct {
	Enabled   bool  `yaml:"enabled"`
	Range     Range `yaml:"range"`
	Divisions int   `yaml:"divisions"`
}

// Rand is the subset of *math/rand/v2.Rand used for sampling.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Sample draws one value.
func (r Randomization) Sample(rng Rand) float64 {
	return r.sample(rng, false)
}

// sample draws k from [0,|d|], or from [0,|d|-1] when skipLast is set.
func (r Randomization) sample(rng Rand, skipLast bool) float64 {
	d := r.Divisions
	if d < 0 {
		d = -d
	}
	if d > 0 {
		n := d + 1
		if skipLast {
			n = d
		}
		k := rng.IntN(n)
		return r.Range.Min + r.Range.Size()/float64(d)*float64(k)
	}
	return r.Range.Min + rng.Float64()*r.Range.Size()
}

// wrapsOntoItself reports whether both range ends name the same angle, as in [0,360].
func (r Range) wrapsOntoItself() bool {
	if r.Size() == 0 {
		return false
	}
	return math.Abs(geom.NormalizeAngle(r.Min)-geom.NormalizeAngle(r.Max)) < 1e-9
}

// RandomizeHeightOffset re-rolls the height offset.
func (s *State) RandomizeHeightOffset(rng Rand) {
	s.HeightOffset = s.RandomHeightOffset.Sample(rng)
}

// RandomizeRotation re-rolls the active axis angle, wrapped into [0,360). When the range covers
// whole turns its last step equals its first, so that step is never drawn.
func (s *State) RandomizeRotation(rng Rand) {
	r := s.RandomRotation
	s.SetAxisAngle(geom.NormalizeAngle(r.sample(rng, r.Range.wrapsOntoItself())))
}

// RandomizeScale re-rolls the uniform scale, clamped to [MinScale, MaxScale].
func (s *State) RandomizeScale(rng Rand) {
	s.Scale = min(max(s.RandomScale.Sample(rng), MinScale), MaxScale)
}

// Randomize re-rolls every parameter whose randomization is enabled.
func (s *State) Randomize(rng Rand) {
	if s.RandomHeightOffset.Enabled {
		s.RandomizeHeightOffset(rng)
	}
	if s.RandomRotation.Enabled {
		s.RandomizeRotation(rng)
	}
	if s.RandomScale.Enabled {
		s.RandomizeScale(rng)
	}
}
