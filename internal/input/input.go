// Package input maps editor key, wheel and pointer events onto placement session commands.
package input

import (
	"io"
	"log/slog"

	"grid-placer/internal/geom"
	"grid-placer/internal/grid"
	"grid-placer/internal/placement"
	"grid-placer/internal/session"
)

// Kind is the type of an input event.
type Kind uint8

const (
	KeyDown Kind = iota
	Wheel
	PointerMove
	PointerConfirm
)

// Key is a tool key. Hosts translate their own key codes into these.
type Key uint8

const (
	KeyNone Key = iota
	KeyE
	KeyQ
	Key1
	Key2
	Key3
	Key4
	KeyX
)

// Event is one input event. Ray is set for pointer events, WheelDelta for wheel events.
type Event struct {
	Kind       Kind
	Key        Key
	WheelDelta float64
	Shift      bool
	Ray        geom.Ray
}

var snapKeys = map[Key]grid.SnapMode{
	Key1: grid.SnapCenter,
	Key2: grid.SnapEdges,
	Key3: grid.SnapCorners,
	Key4: grid.SnapNone,
}

// Dispatcher routes events to a session.
type Dispatcher struct {
	Session *session.Session
	Log     *slog.Logger
}

// NewDispatcher returns a dispatcher for s. A nil logger discards output.
func NewDispatcher(s *session.Session, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Dispatcher{Session: s, Log: log}
}

// Dispatch applies ev and reports whether it was consumed. Key and wheel commands change the
// placement state and then refresh the preview.
func (d *Dispatcher) Dispatch(ev Event) bool {
	s := d.Session
	switch ev.Kind {
	case PointerMove:
		s.OnPointerMove(ev.Ray)
		return true
	case PointerConfirm:
		if err := s.OnCommit(ev.Ray); err != nil {
			d.Log.Error("placement failed", "err", err)
		}
		return true
	case Wheel:
		switch {
		case ev.WheelDelta > 0:
			s.State.ChangeHeightOffset(step(true, ev.Shift))
		case ev.WheelDelta < 0:
			s.State.ChangeHeightOffset(step(false, ev.Shift))
		default:
			return false
		}
		s.Refresh()
		return true
	case KeyDown:
		return d.key(ev)
	}
	return false
}

func (d *Dispatcher) key(ev Event) bool {
	s := d.Session
	if m, ok := snapKeys[ev.Key]; ok {
		s.SetSnapMode(m)
		d.Log.Debug("snap mode", "mode", m)
		return true
	}
	switch ev.Key {
	case KeyE:
		s.State.ChangeRotation(step(true, ev.Shift))
	case KeyQ:
		s.State.ChangeRotation(step(false, ev.Shift))
	case KeyX:
		s.State.CycleAxis()
		d.Log.Debug("rotation axis", "axis", s.State.Axis)
	default:
		return false
	}
	s.Refresh()
	return true
}

// step picks the increment for a direction; shift selects the minor one.
func step(up, minor bool) placement.Step {
	switch {
	case up && minor:
		return placement.IncreaseMinor
	case up:
		return placement.IncreaseMajor
	case minor:
		return placement.DecreaseMinor
	}
	return placement.DecreaseMajor
}
