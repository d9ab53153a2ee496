package editor

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grid-placer/internal/geom"
	"grid-placer/internal/grid"
	"grid-placer/internal/input"
	"grid-placer/internal/logger"
	"grid-placer/internal/palette"
	"grid-placer/internal/placement"
	"grid-placer/internal/session"
)

func testPaths(t *testing.T) Paths {
	dir := t.TempDir()
	return Paths{
		Settings: filepath.Join(dir, "config", "gridplacer.yaml"),
		Palette:  filepath.Join(dir, "config", "palette.yaml"),
		Prefabs:  filepath.Join(dir, "prefabs"),
	}
}

func open(t *testing.T, paths Paths) *Tool {
	t.Helper()
	tool, err := Open(paths, logger.New(""))
	require.NoError(t, err)
	return tool
}

func run(t *testing.T, tool *Tool, args ...string) {
	t.Helper()
	require.NoError(t, tool.Run(args))
}

func down(x, y float64) geom.Ray {
	return geom.Ray{Origin: geom.Vec3{x, y, 1000}, Direction: geom.Vec3{0, 0, -1}}
}

func TestTool_PlaceAndUndo(t *testing.T) {
	tool := open(t, testPaths(t))
	assert.Equal(t, session.Idle, tool.Session.Phase())
	assert.Equal(t, 2, tool.Level.Len(), "floor and wall")

	run(t, tool, "palette", "add", "mesh", "cube")
	assert.Equal(t, session.Previewing, tool.Session.Phase())
	assert.Error(t, tool.Run([]string{"palette", "add", "actor", "ghost"}))
	assert.Equal(t, 1, tool.Palette.Len())

	run(t, tool, "snap", "corners")
	tool.Input.Dispatch(input.Event{Kind: input.PointerMove, Ray: down(130, 60)})
	assert.Equal(t, geom.Vec3{100, 100, 0}, tool.Session.PreviewTransform().Position)

	tool.Input.Dispatch(input.Event{Kind: input.PointerConfirm, Ray: down(130, 60)})
	assert.Equal(t, 1, tool.Session.Placed())
	assert.Equal(t, 4, tool.Level.Len())
	assert.Equal(t, 1, tool.Level.UndoDepth())

	run(t, tool, "undo")
	assert.Equal(t, 3, tool.Level.Len())
	assert.Error(t, tool.Run([]string{"undo"}))
}

func TestTool_SettingsCommands(t *testing.T) {
	tool := open(t, testPaths(t))
	st := &tool.Settings.Placement

	assert.Error(t, tool.Run([]string{"scale", "50"}))
	assert.Equal(t, 1.0, st.Scale, "out-of-range edits are rolled back")
	run(t, tool, "scale", "2")
	assert.Equal(t, 2.0, st.Scale)

	run(t, tool, "cell", "50")
	assert.Equal(t, grid.CellSize{Width: 50, Height: 50}, tool.Session.Frame().Cell)
	assert.Error(t, tool.Run([]string{"cell", "0", "10"}))
	assert.Equal(t, grid.CellSize{Width: 50, Height: 50}, tool.Session.Frame().Cell)

	run(t, tool, "random", "-min", "-10", "-max", "10", "-div", "2", "offset", "on")
	assert.Equal(t, placement.Randomization{Enabled: true, Range: placement.Range{Min: -10, Max: 10}, Divisions: 2}, st.RandomHeightOffset)
	run(t, tool, "random", "offset", "off")
	assert.Equal(t, placement.Randomization{Range: placement.Range{Min: -10, Max: 10}, Divisions: 2}, st.RandomHeightOffset)

	run(t, tool, "axis", "y")
	run(t, tool, "rotate", "-90")
	assert.Equal(t, 270.0, st.Rotation.Pitch)
	run(t, tool, "pivot", "grid")
	assert.Equal(t, placement.GridPivot, st.Pivot)
	run(t, tool, "space", "offset", "global")
	assert.Equal(t, grid.Global, st.HeightOffsetSpace)
	run(t, tool, "pick", "cycle")
	assert.Equal(t, palette.Cycle, tool.Picker.Mode)

	assert.Error(t, tool.Run([]string{"target", "rotation", "999"}))
	run(t, tool, "target", "rotation", "2")
	assert.EqualValues(t, 2, tool.Session.Config.RotationTarget)
	assert.Error(t, tool.Run([]string{"space", "sideways", "local"}))
	assert.Error(t, tool.Run([]string{"snap"}))
}

func TestTool_RandomCommand(t *testing.T) {
	tool := open(t, testPaths(t))
	st := &tool.Settings.Placement

	assert.ErrorContains(t, tool.Run([]string{"random", "-min", "45", "-div", "x", "rotation", "on"}), "invalid value")
	run(t, tool, "random", "rotation", "on")
	assert.Equal(t, placement.Range{Min: 0, Max: 360}, st.RandomRotation.Range, "values from a rejected line do not stick")

	err := tool.Run([]string{"random", "-min", "-5", "-max", "-1", "scale", "on"})
	assert.ErrorContains(t, err, "placement.random_scale.range")
	assert.Equal(t, placement.Default().RandomScale, st.RandomScale)

	run(t, tool, "palette", "add", "mesh", "cube")
	run(t, tool, "random", "-min", "2", "-max", "3", "scale", "on")
	require.NoError(t, tool.Session.OnCommit(down(130, 270)))
	assert.GreaterOrEqual(t, st.Scale, 2.0)
	assert.LessOrEqual(t, st.Scale, 3.0)
	run(t, tool, "cell", "50")
}

func TestTool_PaletteCommands(t *testing.T) {
	tool := open(t, testPaths(t))
	run(t, tool, "palette", "add", "mesh", "cube")
	run(t, tool, "palette", "add", "mesh", "sphere")
	run(t, tool, "palette", "toggle", "1")

	active := tool.Palette.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "sphere", active[0].Asset)
	_, entry, ok := tool.Session.Preview()
	require.True(t, ok)
	assert.Equal(t, active[0].ID, entry)

	run(t, tool, "palette", "deselect")
	assert.Equal(t, session.Idle, tool.Session.Phase())
	run(t, tool, "palette", "select")
	assert.Len(t, tool.Palette.Active(), 2)
	run(t, tool, "palette", "remove", "2")
	assert.Equal(t, 1, tool.Palette.Len())
	assert.Error(t, tool.Run([]string{"palette", "remove", "5"}))
	run(t, tool, "palette", "clear")
	assert.Zero(t, tool.Palette.Len())
	assert.Equal(t, 2, tool.Level.Len(), "no preview left behind")
}

func TestTool_LocalGridOnWall(t *testing.T) {
	tool := open(t, testPaths(t))
	run(t, tool, "palette", "add", "mesh", "cube")
	run(t, tool, "space", "grid", "local")

	ray := geom.Ray{Origin: geom.Vec3{0, 0, 200}, Direction: geom.Vec3{1, 0, 0}}
	tool.Input.Dispatch(input.Event{Kind: input.PointerMove, Ray: ray})
	got := tool.Session.PreviewTransform().Position
	if diff := cmp.Diff(geom.Vec3{990, 50, 150}, got, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Errorf("preview on wall (-want +got):\n%s", diff)
	}

	run(t, tool, "space", "grid", "global")
	assert.Equal(t, geom.Vec3{}, tool.Session.Frame().Origin)
}

func TestTool_CloseRestores(t *testing.T) {
	paths := testPaths(t)
	tool := open(t, paths)
	run(t, tool, "palette", "add", "mesh", "cylinder")
	run(t, tool, "snap", "edges")
	run(t, tool, "pick", "cycle")
	run(t, tool, "cell", "200", "50")
	run(t, tool, "space", "rotation", "custom")
	run(t, tool, "hud", "off")
	require.NoError(t, tool.Close())
	assert.Equal(t, 2, tool.Level.Len(), "closing destroys the preview")

	again := open(t, paths)
	assert.Equal(t, grid.SnapEdges, again.Session.Config.Snap)
	assert.Equal(t, palette.Cycle, again.Picker.Mode)
	assert.Equal(t, grid.CellSize{Width: 200, Height: 50}, again.Session.Frame().Cell)
	assert.Equal(t, grid.Custom, again.Settings.Placement.RotationSpace)
	assert.False(t, again.Settings.ShowHUD)
	require.Equal(t, 1, again.Palette.Len())
	e, _ := again.Palette.At(0)
	assert.Equal(t, "cylinder", e.Asset)
	assert.Equal(t, session.Previewing, again.Session.Phase())
}

func TestTool_Help(t *testing.T) {
	hist := logger.New("")
	tool, err := Open(testPaths(t), hist)
	require.NoError(t, err)
	run(t, tool, "help")
	assert.Contains(t, hist.Lines()[len(hist.Lines())-1], "cmd undo")
}

func TestTool_Status(t *testing.T) {
	tool := open(t, testPaths(t))
	run(t, tool, "palette", "add", "mesh", "sphere")
	lines := tool.Status()
	require.Len(t, lines, 5)
	assert.Equal(t, "grid: global  cell 100x100  snap center", lines[0])
	assert.Contains(t, lines[1], "axis z  space local")
	assert.Equal(t, "palette: 1/1 active  pick random  preview mesh sphere", lines[3])
}
