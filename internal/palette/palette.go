// Package palette holds the ordered set of placeable objects and picks the next one to preview.
package palette

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind is what a palette entry spawns. It is fixed when the entry is created.
type Kind uint8

const (
	// StaticMesh entries spawn a single primitive mesh ("cube", "sphere", ...).
	StaticMesh Kind = iota
	// ActorClass entries spawn a prefab made of several parts (assets/prefabs/<asset>.yaml).
	ActorClass
)

func (k Kind) String() string {
	switch k {
	case StaticMesh:
		return "mesh"
	case ActorClass:
		return "actor"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind accepts the names produced by Kind.String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "mesh", "static_mesh":
		return StaticMesh, nil
	case "actor", "actor_class":
		return ActorClass, nil
	}
	return 0, fmt.Errorf("unknown palette kind %q", s)
}

// Entry is one placeable object. Entries are handed out by value; use ID to refer back to one.
type Entry struct {
	ID     uuid.UUID
	Kind   Kind
	Asset  string
	Active bool
}

// Palette is an insertion-ordered list of entries. Every mutation notifies subscribers
// synchronously. A mutation made from inside a notification does not recurse: its
// notification is delivered once the current round has finished.
type Palette struct {
	entries []*Entry
	subs    map[int]func()
	nextSub int

	notifying bool
	pending   bool
}

// New returns an empty palette.
func New() *Palette {
	return &Palette{subs: make(map[int]func())}
}

// Subscribe registers fn to be called after every mutation. The returned func removes it.
func (p *Palette) Subscribe(fn func()) (unsubscribe func()) {
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	return func() { delete(p.subs, id) }
}

func (p *Palette) notify() {
	if p.notifying {
		p.pending = true
		return
	}
	p.notifying = true
	defer func() { p.notifying = false }()
	for {
		p.pending = false
		for _, fn := range p.subscribers() {
			fn()
		}
		if !p.pending {
			return
		}
	}
}

// subscribers returns the callbacks in registration order.
func (p *Palette) subscribers() []func() {
	out := make([]func(), 0, len(p.subs))
	for id := 0; id < p.nextSub; id++ {
		if fn, ok := p.subs[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}

// Add appends an active entry for asset and returns it.
func (p *Palette) Add(kind Kind, asset string) Entry {
	e := &Entry{ID: uuid.New(), Kind: kind, Asset: asset, Active: true}
	p.entries = append(p.entries, e)
	p.notify()
	return *e
}

// Remove deletes the entry with the given id. It reports whether the entry existed.
func (p *Palette) Remove(id uuid.UUID) bool {
	for i, e := range p.entries {
		if e.ID == id {
			p.entries = append(p.entries[:i], p.entries[i+1:]...)
			p.notify()
			return true
		}
	}
	return false
}

// SetActive toggles whether the entry is part of the active subset.
func (p *Palette) SetActive(id uuid.UUID, active bool) bool {
	e := p.find(id)
	if e == nil {
		return false
	}
	e.Active = active
	p.notify()
	return true
}

// SelectAll activates every entry.
func (p *Palette) SelectAll() {
	for _, e := range p.entries {
		e.Active = true
	}
	p.notify()
}

// DeselectAll deactivates every entry.
func (p *Palette) DeselectAll() {
	for _, e := range p.entries {
		e.Active = false
	}
	p.notify()
}

// Clear removes every entry.
func (p *Palette) Clear() {
	p.entries = nil
	p.notify()
}

// Lookup returns the entry with the given id.
func (p *Palette) Lookup(id uuid.UUID) (Entry, bool) {
	if e := p.find(id); e != nil {
		return *e, true
	}
	return Entry{}, false
}

// At returns the entry at index i in insertion order.
func (p *Palette) At(i int) (Entry, bool) {
	if i < 0 || i >= len(p.entries) {
		return Entry{}, false
	}
	return *p.entries[i], true
}

// Len returns the number of entries, active or not.
func (p *Palette) Len() int {
	return len(p.entries)
}

// Entries returns a copy of all entries in insertion order.
func (p *Palette) Entries() []Entry {
	out := make([]Entry, len(p.entries))
	for i, e := range p.entries {
		out[i] = *e
	}
	return out
}

// Active returns a copy of the active subset in insertion order.
func (p *Palette) Active() []Entry {
	var out []Entry
	for _, e := range p.entries {
		if e.Active {
			out = append(out, *e)
		}
	}
	return out
}

func (p *Palette) find(id uuid.UUID) *Entry {
	for _, e := range p.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}
