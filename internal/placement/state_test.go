package placement

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"grid-placer/internal/geom"
	"grid-placer/internal/grid"
)

func TestChangeRotation_Wraps(t *testing.T) {
	s := Default()
	s.Rotation.Yaw = 350
	s.ChangeRotation(IncreaseMajor)
	assert.Equal(t, 80.0, s.Rotation.Yaw)

	s.Rotation.Yaw = 10
	s.ChangeRotation(DecreaseMajor)
	assert.Equal(t, 280.0, s.Rotation.Yaw)

	s.Rotation.Yaw = 315
	s.ChangeRotation(IncreaseMinor)
	assert.Equal(t, 0.0, s.Rotation.Yaw, "360 wraps to 0")

	s.Rotation.Yaw = 0
	s.ChangeRotation(DecreaseMinor)
	assert.Equal(t, 315.0, s.Rotation.Yaw)
}

func TestChangeRotation_OnlyActiveAxis(t *testing.T) {
	s := Default()
	s.Axis = AxisX
	s.ChangeRotation(IncreaseMajor)
	s.CycleAxis()
	s.ChangeRotation(IncreaseMinor)
	assert.Equal(t, geom.Rotator{Roll: 90, Pitch: 45, Yaw: 0}, s.Rotation)
}

func TestCycleAxis(t *testing.T) {
	s := Default()
	require.Equal(t, AxisZ, s.Axis)
	var got []Axis
	for i := 0; i < 4; i++ {
		s.CycleAxis()
		got = append(got, s.Axis)
	}
	assert.Equal(t, []Axis{AxisX, AxisY, AxisZ, AxisX}, got)
}

func TestChangeHeightOffset(t *testing.T) {
	s := Default()
	s.ChangeHeightOffset(IncreaseMajor)
	s.ChangeHeightOffset(IncreaseMinor)
	s.ChangeHeightOffset(IncreaseMinor)
	s.ChangeHeightOffset(DecreaseMinor)
	assert.Equal(t, 110.0, s.HeightOffset)
	s.ChangeHeightOffset(DecreaseMajor)
	s.ChangeHeightOffset(DecreaseMajor)
	assert.Equal(t, -90.0, s.HeightOffset)
}

func TestRandomizeHeightOffset_Divisions(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	s := Default()
	s.RandomHeightOffset = Randomization{Enabled: true, Range: Range{Min: -100, Max: 100}, Divisions: 4}
	allowed := map[float64]bool{-100: true, -50: true, 0: true, 50: true, 100: true}
	seen := map[float64]bool{}
	for i := 0; i < 1000; i++ {
		s.RandomizeHeightOffset(rng)
		require.True(t, allowed[s.HeightOffset], "unexpected offset %v", s.HeightOffset)
		seen[s.HeightOffset] = true
	}
	assert.Len(t, seen, 5, "both range endpoints are reachable")
}

func TestRandomization_NegativeDivisionsUseMagnitude(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	r := Randomization{Range: Range{Min: 0, Max: 10}, Divisions: -2}
	for i := 0; i < 200; i++ {
		v := r.Sample(rng)
		assert.Contains(t, []float64{0, 5, 10}, v)
	}
}

func TestRandomization_Continuous(t *testing.T) {
	rng := rand.New(rand.NewPCG(8, 9))
	r := Randomization{Range: Range{Min: 0.5, Max: 2}}
	for i := 0; i < 500; i++ {
		v := r.Sample(rng)
		assert.GreaterOrEqual(t, v, 0.5)
		assert.LessOrEqual(t, v, 2.0)
	}
}

func TestRandomizeRotation_WrapsIntoTurn(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	s := Default()
	s.Axis = AxisY
	s.RandomRotation = Randomization{Enabled: true, Range: Range{Min: 0, Max: 360}, Divisions: 4}
	for i := 0; i < 200; i++ {
		s.RandomizeRotation(rng)
		assert.Contains(t, []float64{0, 90, 180, 270}, s.Rotation.Pitch)
		assert.Zero(t, s.Rotation.Yaw)
	}
}

func TestRandomizeRotation_FullTurnStepsAreUniform(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	s := Default()
	s.RandomRotation = Randomization{Enabled: true, Range: Range{Min: 0, Max: 360}, Divisions: 4}
	const draws = 40000
	counts := map[float64]int{}
	for i := 0; i < draws; i++ {
		s.RandomizeRotation(rng)
		counts[s.Rotation.Yaw]++
	}
	require.Len(t, counts, 4)
	for _, yaw := range []float64{0, 90, 180, 270} {
		share := float64(counts[yaw]) / draws
		assert.InDelta(t, 0.25, share, 0.02, "yaw %v", yaw)
	}
}

func TestRandomizeRotation_PartialRangeKeepsBothEnds(t *testing.T) {
	rng := rand.New(rand.NewPCG(4, 4))
	s := Default()
	s.RandomRotation = Randomization{Enabled: true, Range: Range{Min: 0, Max: 180}, Divisions: 2}
	seen := map[float64]bool{}
	for i := 0; i < 300; i++ {
		s.RandomizeRotation(rng)
		seen[s.Rotation.Yaw] = true
	}
	assert.Equal(t, map[float64]bool{0: true, 90: true, 180: true}, seen)
}

func TestRandomizeScale_Clamped(t *testing.T) {
	rng := rand.New(rand.NewPCG(6, 6))
	s := Default()
	s.RandomScale = Randomization{Enabled: true, Range: Range{Min: -5, Max: -1}}
	s.RandomizeScale(rng)
	assert.Equal(t, MinScale, s.Scale)

	s.RandomScale.Range = Range{Min: 20, Max: 30}
	s.RandomizeScale(rng)
	assert.Equal(t, float64(MaxScale), s.Scale)
}

func TestRandomize_RespectsEnableFlags(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 2))
	s := Default()
	s.HeightOffset = 7
	s.RandomScale.Enabled = true
	s.Randomize(rng)
	assert.Equal(t, 7.0, s.HeightOffset)
	assert.Zero(t, s.Rotation.Yaw)
	assert.GreaterOrEqual(t, s.Scale, 0.5)
	assert.LessOrEqual(t, s.Scale, 2.0)
}

func TestState_YAMLUsesNames(t *testing.T) {
	s := Default()
	s.Axis = AxisY
	s.Pivot = GridPivot
	s.RotationSpace = grid.Custom
	out, err := yaml.Marshal(&s)
	require.NoError(t, err)
	assert.Contains(t, string(out), "pivot: grid")
	assert.Contains(t, string(out), "rotation_space: custom")

	var back State
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, s, back)
}
