// Package editor assembles the placement tool: settings, palette, prefab library, level,
// placement session, input dispatcher and terminal commands. It holds no rendering code.
package editor

import (
	"fmt"
	"log/slog"

	"grid-placer/internal/commands"
	"grid-placer/internal/geom"
	"grid-placer/internal/grid"
	"grid-placer/internal/input"
	"grid-placer/internal/level"
	"grid-placer/internal/logger"
	"grid-placer/internal/palette"
	"grid-placer/internal/prefab"
	"grid-placer/internal/session"
	"grid-placer/internal/settings"
	"grid-placer/internal/world"
)

// Paths locates the tool's files.
type Paths struct {
	Settings string
	Palette  string
	Prefabs  string
}

// DefaultPaths are relative to the working directory.
func DefaultPaths() Paths {
	return Paths{Settings: settings.DefaultPath, Palette: palette.DefaultPath, Prefabs: prefab.DefaultDir}
}

// floorSize is the edge length of the seeded floor, in world units.
const floorSize = 4000

// Tool is one editor run of the placement tool.
type Tool struct {
	Settings settings.Settings
	Palette  *palette.Palette
	Picker   *palette.Picker
	Library  *prefab.Library
	Level    *level.Level
	Session  *session.Session
	Input    *input.Dispatcher
	Commands *commands.Registry

	paths Paths
	hist  *logger.Logger
	log   *slog.Logger
	// Hovered is the last object under the pointer, set by the host.
	Hovered world.ObjectID
}

// Open restores settings and the palette from disk, seeds the level and starts a session.
// Unreadable files are logged and replaced by defaults; Open only fails when the level cannot
// be seeded.
func Open(paths Paths, hist *logger.Logger) (*Tool, error) {
	log := hist.Slog(slog.LevelInfo)
	t := &Tool{paths: paths, hist: hist, log: log, Palette: palette.New(), Commands: commands.NewRegistry()}

	s, err := settings.Load(paths.Settings)
	if err != nil {
		log.Warn("settings not loaded, using defaults", "err", err)
	}
	if err := s.Validate(); err != nil {
		log.Warn("settings out of range, clamped", "err", err)
		s.Clamp()
	}
	t.Settings = s

	lib, err := prefab.LoadDir(paths.Prefabs)
	if err != nil {
		log.Warn("some prefabs were skipped", "err", err)
	}
	t.Library = lib
	t.Level = level.New(lib, log)
	if err := t.seed(); err != nil {
		return nil, err
	}

	entries, err := palette.ReadFile(paths.Palette)
	if err != nil {
		log.Warn("palette not loaded", "err", err)
	}
	t.Palette.Restore(entries)

	t.Picker = palette.NewPicker(s.PickMode, nil)
	cfg := session.Config{
		Grid: grid.Source{Mode: s.Grid.Space, Channel: s.Grid.Channel},
		Snap: s.Snap,
	}
	t.Session = session.New(cfg, s.Frame(), &t.Settings.Placement, t.Palette, t.Picker, session.Deps{
		Tracer:     t.Level,
		Locator:    t.Level,
		Spawner:    t.Level,
		Transactor: t.Level,
		Logger:     log,
	})
	t.Input = input.NewDispatcher(t.Session, log)
	t.registerCommands()
	t.Session.Start()
	log.Info("placement tool started", "entries", t.Palette.Len(), "prefabs", len(lib.Names()))
	return t, nil
}

// seed adds a floor whose top face is the Z = 0 plane, and a wall to try the local grid on.
func (t *Tool) seed() error {
	cube := palette.Entry{Kind: palette.StaticMesh, Asset: "cube"}
	floor := geom.NewTransform(geom.Vec3{0, 0, -10})
	floor.Scale = geom.Vec3{floorSize / prefab.MeshSize, floorSize / prefab.MeshSize, 0.1}
	if _, err := t.Level.SpawnStatic(cube, floor); err != nil {
		return fmt.Errorf("seed floor: %w", err)
	}
	wall := geom.NewTransform(geom.Vec3{1000, 0, 0})
	wall.Scale = geom.Vec3{0.2, 10, 4}
	if _, err := t.Level.SpawnStatic(cube, wall); err != nil {
		return fmt.Errorf("seed wall: %w", err)
	}
	return nil
}

// Log is the tool's structured logger.
func (t *Tool) Log() *slog.Logger { return t.log }

// Snapshot returns the settings including the session's live modes.
func (t *Tool) Snapshot() settings.Settings {
	s := t.Settings
	s.Snap = t.Session.Config.Snap
	s.PickMode = t.Picker.Mode
	s.Grid.Space = t.Session.Config.Grid.Mode
	s.Grid.Channel = t.Session.Config.Grid.Channel
	s.Grid.Cell = t.Session.Frame().Cell
	return s
}

// Save writes the settings and the palette.
func (t *Tool) Save() error {
	if err := settings.Save(t.paths.Settings, t.Snapshot()); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	if err := palette.WriteFile(t.paths.Palette, t.Palette.Entries()); err != nil {
		return fmt.Errorf("save palette: %w", err)
	}
	return nil
}

// Close ends the session without committing the preview and saves the tool state.
func (t *Tool) Close() error {
	t.Session.Shutdown()
	return t.Save()
}

// resetGlobalFrame moves the frame back to the fixed global pose from the settings.
func (t *Tool) resetGlobalFrame() {
	t.Session.Frame().SetPose(geom.Pose{Position: t.Settings.Grid.Origin, Rotation: t.Settings.Grid.Rotation.Quat()})
}

// Status returns the HUD lines describing the tool's current modes.
func (t *Tool) Status() []string {
	st := t.Settings.Placement
	cfg := t.Session.Config
	preview := "none"
	if _, id, ok := t.Session.Preview(); ok {
		if e, found := t.Palette.Lookup(id); found {
			preview = fmt.Sprintf("%s %s", e.Kind, e.Asset)
		}
	}
	return []string{
		fmt.Sprintf("grid: %s  cell %gx%g  snap %s", cfg.Grid.Mode, t.Session.Frame().Cell.Width, t.Session.Frame().Cell.Height, cfg.Snap),
		fmt.Sprintf("rotation: roll %g pitch %g yaw %g  axis %s  space %s", st.Rotation.Roll, st.Rotation.Pitch, st.Rotation.Yaw, st.Axis, st.RotationSpace),
		fmt.Sprintf("offset: %g  space %s  pivot %s  scale %g", st.HeightOffset, st.HeightOffsetSpace, st.Pivot, st.Scale),
		fmt.Sprintf("palette: %d/%d active  pick %s  preview %s", len(t.Palette.Active()), t.Palette.Len(), t.Picker.Mode, preview),
		fmt.Sprintf("placed: %d  undo %d", t.Session.Placed(), t.Level.UndoDepth()),
	}
}
