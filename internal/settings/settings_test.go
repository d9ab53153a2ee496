package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grid-placer/internal/geom"
	"grid-placer/internal/grid"
	"grid-placer/internal/palette"
	"grid-placer/internal/placement"
)

func TestDefault_IsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidate_ReportsEveryField(t *testing.T) {
	s := Default()
	s.Placement.Scale = 20
	s.Placement.RotationStep.Minor = -1
	s.Grid.Cell.Width = 0

	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "placement.scale")
	assert.Contains(t, err.Error(), "placement.rotation_step.minor")
	assert.Contains(t, err.Error(), "grid.cell")
	assert.NotContains(t, err.Error(), "height_offset_step")
}

func TestValidate_RandomScaleRange(t *testing.T) {
	s := Default()
	s.Placement.RandomScale.Range = placement.Range{Min: -5, Max: -1}
	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "placement.random_scale.range.min")
	assert.Contains(t, err.Error(), "placement.random_scale.range.max")

	s.Clamp()
	assert.Equal(t, placement.Range{Min: 0.1, Max: 0.1}, s.Placement.RandomScale.Range)
	assert.NoError(t, s.Validate())
}

func TestClamp(t *testing.T) {
	s := Default()
	s.Placement.Scale = 0
	s.Placement.HeightOffsetStep.Major = 5000
	s.Grid.Cell.Height = -3
	s.Clamp()

	assert.Equal(t, 0.1, s.Placement.Scale)
	assert.Equal(t, 1000.0, s.Placement.HeightOffsetStep.Major)
	assert.Equal(t, 100.0, s.Grid.Cell.Height)
	assert.NoError(t, s.Validate())
}

func TestVisible(t *testing.T) {
	s := Default()
	assert.True(t, s.Visible("grid.origin"))
	assert.False(t, s.Visible("grid.target"))
	assert.False(t, s.Visible("placement.rotation_target"))
	assert.False(t, s.Visible("placement.random_scale.range"))
	assert.True(t, s.Visible("snap"))

	s.Grid.Space = grid.Custom
	s.Placement.RotationSpace = grid.Custom
	s.Placement.RandomScale.Enabled = true
	assert.False(t, s.Visible("grid.origin"))
	assert.True(t, s.Visible("grid.target"))
	assert.True(t, s.Visible("placement.rotation_target"))
	assert.False(t, s.Visible("placement.height_offset_target"))
	assert.True(t, s.Visible("placement.random_scale.divisions"))
}

func TestClone_IsIndependent(t *testing.T) {
	s := Default()
	s.Grid.Origin = geom.Vec3{1, 2, 3}
	c, err := s.Clone()
	require.NoError(t, err)
	if diff := cmp.Diff(s, c); diff != "" {
		t.Fatalf("clone differs (-want +got):\n%s", diff)
	}
	c.Grid.Origin[0] = 99
	c.Placement.Rotation.Yaw = 45
	assert.Equal(t, 1.0, s.Grid.Origin.X())
	assert.Equal(t, 0.0, s.Placement.Rotation.Yaw)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "gridplacer.yaml")
	s := Default()
	s.Snap = grid.SnapCorners
	s.PickMode = palette.Cycle
	s.Grid.Space = grid.Local
	s.Grid.Origin = geom.Vec3{10, 20, 30}
	s.Placement.Pivot = placement.GridPivot
	s.Placement.Axis = placement.AxisY
	s.Placement.RandomRotation = placement.Randomization{Enabled: true, Range: placement.Range{Min: 0, Max: 180}, Divisions: 2}

	require.NoError(t, Save(path, s))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "snap: corners")
	assert.Contains(t, string(data), "pick_mode: cycle")
	assert.Contains(t, string(data), "pivot: grid")

	got, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(s, got); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), got)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte("snap: edges\ngrid:\n  cell:\n    width: 50\n    height: 25\n"), 0644))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, grid.SnapEdges, got.Snap)
	assert.Equal(t, grid.CellSize{Width: 50, Height: 25}, got.Grid.Cell)
	assert.Equal(t, 1.0, got.Placement.Scale)
	assert.Equal(t, placement.Default().RotationStep, got.Placement.RotationStep)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte("snap: diagonal\n"), 0644))
	got, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, Default(), got)
}

func TestFrame(t *testing.T) {
	s := Default()
	s.Grid.Origin = geom.Vec3{0, 0, 100}
	f := s.Frame()
	assert.Equal(t, geom.Vec3{0, 0, 100}, f.Origin)
	assert.Equal(t, s.Grid.Cell, f.Cell)
}
