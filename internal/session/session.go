// Package session runs one placement interaction: it tracks the pointer on the grid, keeps a
// single preview object in sync with the placement state, and turns the preview into a placed
// object on commit.
package session

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"

	"grid-placer/internal/geom"
	"grid-placer/internal/grid"
	"grid-placer/internal/palette"
	"grid-placer/internal/placement"
	"grid-placer/internal/world"
)

// Phase is the session's interaction state.
type Phase uint8

const (
	// Idle has no preview; pointer moves are ignored.
	Idle Phase = iota
	// Previewing has a live preview that follows the pointer.
	Previewing
	// Committing is held only while a commit runs.
	Committing
)

func (p Phase) String() string {
	switch p {
	case Previewing:
		return "previewing"
	case Committing:
		return "committing"
	}
	return "idle"
}

// TransactionName labels the host transaction wrapping each placement.
const TransactionName = "Place Object"

// Config holds the grid and reference settings that are not part of the placement state.
type Config struct {
	Grid grid.Source
	Snap grid.SnapMode
	// RotationTarget is the reference for grid.Custom rotation space.
	RotationTarget world.ObjectID
	// HeightOffsetTarget is the reference for grid.Custom height offset space.
	HeightOffsetTarget world.ObjectID
}

// Deps are the host services a session talks to. Tracer and Locator may be nil when the
// Local and Custom spaces are not used.
type Deps struct {
	Tracer     world.Tracer
	Locator    world.Locator
	Spawner    world.Spawner
	Transactor world.Transactor
	Logger     *slog.Logger
	Rand       *rand.Rand
}

// Session is the placement state machine. It is not safe for concurrent use; the host calls it
// from its input thread.
type Session struct {
	Config Config
	State  *placement.State

	frame   *grid.Frame
	palette *palette.Palette
	picker  *palette.Picker

	tracer  world.Tracer
	locator world.Locator
	spawner world.Spawner
	tx      world.Transactor
	log     *slog.Logger
	rng     *rand.Rand

	phase   Phase
	raw     geom.Vec3
	snapped geom.Vec3
	cell    geom.Vec3

	preview      world.ObjectID
	previewEntry uuid.UUID
	previewXform geom.Transform

	placed      int
	unsubscribe func()
	closed      bool
}

// New builds a session and subscribes it to pal. Call Start to spawn the first preview.
func New(cfg Config, frame *grid.Frame, state *placement.State, pal *palette.Palette, picker *palette.Picker, deps Deps) *Session {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if deps.Transactor == nil {
		deps.Transactor = world.NopTransactor{}
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s := &Session{
		Config:  cfg,
		State:   state,
		frame:   frame,
		palette: pal,
		picker:  picker,
		tracer:  deps.Tracer,
		locator: deps.Locator,
		spawner: deps.Spawner,
		tx:      deps.Transactor,
		log:     deps.Logger,
		rng:     deps.Rand,
	}
	s.previewXform = s.placementTransform()
	s.unsubscribe = pal.Subscribe(s.OnPaletteChanged)
	return s
}

// Start picks the first preview from the palette.
func (s *Session) Start() {
	s.OnPaletteChanged()
}

// OnPaletteChanged re-picks the preview after any palette mutation. The previous preview is
// always destroyed before the next one is spawned.
func (s *Session) OnPaletteChanged() {
	if s.closed {
		return
	}
	next, ok := s.picker.Pick(s.palette)
	if !ok {
		s.destroyPreview()
		return
	}
	s.spawnPreview(next)
}

// OnPointerMove tracks the pointer ray on the grid and moves the preview. It does nothing while
// idle, and leaves the last point in place when the ray runs parallel to the grid.
func (s *Session) OnPointerMove(ray geom.Ray) {
	if s.closed || s.phase == Idle {
		return
	}
	s.frame.Update(s.Config.Grid, ray, s.tracer, s.locator, s.preview)
	raw, ok := s.frame.Intersect(ray)
	if !ok {
		return
	}
	s.raw = raw
	s.snapped, s.cell = grid.Snap(raw, s.frame.Cell, s.Config.Snap)
	s.previewXform = s.placementTransform()
	if s.preview != world.None {
		s.spawner.Move(s.preview, s.previewXform)
	}
}

// OnCommit places a copy of the preview at its current transform inside a host transaction,
// then picks and randomizes the next preview and moves it to ray. Committing without a
// preview does nothing. A failed placement is rolled back and returned with the preview, its
// entry and the placement state left as they were.
func (s *Session) OnCommit(ray geom.Ray) error {
	if s.closed || s.phase != Previewing {
		return nil
	}
	s.phase = Committing
	err := s.realize()
	s.phase = Previewing
	if err != nil {
		return err
	}

	next, ok := s.picker.Pick(s.palette)
	if !ok {
		s.destroyPreview()
		return nil
	}
	s.State.Randomize(s.rng)
	s.spawnPreview(next)
	s.OnPointerMove(ray)
	return nil
}

// Shutdown destroys the preview and detaches from the palette. Nothing is committed.
func (s *Session) Shutdown() {
	if s.closed {
		return
	}
	s.destroyPreview()
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.closed = true
	s.log.Info("placement session closed", "placed", s.placed)
}

// SetSnapMode changes the snapping mode and re-snaps the last raw point.
func (s *Session) SetSnapMode(m grid.SnapMode) {
	s.Config.Snap = m
	s.snapped, s.cell = grid.Snap(s.raw, s.frame.Cell, m)
	s.Refresh()
}

// Refresh re-applies the placement state to the preview without a new pointer ray. Call it
// after changing the state from a key command.
func (s *Session) Refresh() {
	if s.closed || s.phase == Idle {
		return
	}
	s.previewXform = s.placementTransform()
	if s.preview != world.None {
		s.spawner.Move(s.preview, s.previewXform)
	}
}

func (s *Session) realize() error {
	if s.preview == world.None {
		return nil
	}
	entry, ok := s.palette.Lookup(s.previewEntry)
	if !ok {
		s.log.Warn("preview entry left the palette, nothing placed", "entry", s.previewEntry)
		return nil
	}
	tx := s.tx.Begin(TransactionName)
	id, err := s.spawner.Spawn(entry, s.previewXform, false)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("place %s %q: %w", entry.Kind, entry.Asset, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit placement of %q: %w", entry.Asset, err)
	}
	s.placed++
	s.log.Debug("placed object", "id", id, "asset", entry.Asset, "position", s.previewXform.Position)
	return nil
}

func (s *Session) spawnPreview(e palette.Entry) {
	s.destroyPreview()
	s.previewXform = s.placementTransform()
	id, err := s.spawner.Spawn(e, s.previewXform, true)
	if err != nil {
		s.log.Error("spawn preview", "asset", e.Asset, "err", err)
		return
	}
	s.preview = id
	s.previewEntry = e.ID
	s.phase = Previewing
}

func (s *Session) destroyPreview() {
	if s.preview != world.None {
		s.spawner.Destroy(s.preview)
	}
	s.preview = world.None
	s.previewEntry = uuid.Nil
	s.phase = Idle
}

// Phase returns the current interaction state.
func (s *Session) Phase() Phase { return s.phase }

// Frame returns the live grid frame.
func (s *Session) Frame() *grid.Frame { return s.frame }

// RawPoint is the last pointer/grid intersection, in grid space.
func (s *Session) RawPoint() geom.Vec3 { return s.raw }

// SnappedPoint is RawPoint after snapping, in grid space.
func (s *Session) SnappedPoint() geom.Vec3 { return s.snapped }

// Cell is the minimum corner of the cell under the pointer, in grid space.
func (s *Session) Cell() geom.Vec3 { return s.cell }

// Preview returns the live preview object and its palette entry, if any.
func (s *Session) Preview() (world.ObjectID, uuid.UUID, bool) {
	return s.preview, s.previewEntry, s.preview != world.None
}

// PreviewTransform is where the preview currently sits.
func (s *Session) PreviewTransform() geom.Transform { return s.previewXform }

// Placed counts committed objects.
func (s *Session) Placed() int { return s.placed }
