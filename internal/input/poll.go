package input

import "grid-placer/internal/geom"

// Keys lists the tool keys in the order they are polled each frame.
var Keys = []Key{KeyE, KeyQ, Key1, Key2, Key3, Key4, KeyX}

// Poll is one frame of device state read by the host.
type Poll struct {
	// Captured is set while another widget, such as the terminal, owns the keyboard and mouse
	// buttons. Only pointer movement is reported then.
	Captured bool
	Moved    bool
	Ray      geom.Ray
	Pressed  func(Key) bool
	Wheel    float64
	Shift    bool
	Confirm  bool
}

// Events turns the frame into events: pointer move, then keys in Keys order, then wheel, then
// confirm.
func (p Poll) Events() []Event {
	var out []Event
	if p.Moved {
		out = append(out, Event{Kind: PointerMove, Ray: p.Ray})
	}
	if p.Captured {
		return out
	}
	if p.Pressed != nil {
		for _, k := range Keys {
			if p.Pressed(k) {
				out = append(out, Event{Kind: KeyDown, Key: k, Shift: p.Shift})
			}
		}
	}
	if p.Wheel != 0 {
		out = append(out, Event{Kind: Wheel, WheelDelta: p.Wheel, Shift: p.Shift})
	}
	if p.Confirm {
		out = append(out, Event{Kind: PointerConfirm, Ray: p.Ray})
	}
	return out
}
