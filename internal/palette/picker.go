package palette

import (
	"fmt"
	"math/rand/v2"
)

// PickMode selects how the next entry is chosen from the active subset.
type PickMode uint8

const (
	// Random picks a uniformly random active entry.
	Random PickMode = iota
	// Cycle walks the active subset in order and wraps around.
	Cycle
)

func (m PickMode) String() string {
	if m == Cycle {
		return "cycle"
	}
	return "random"
}

// ParsePickMode accepts "random" or "cycle".
func ParsePickMode(s string) (PickMode, bool) {
	switch s {
	case "random":
		return Random, true
	case "cycle":
		return Cycle, true
	}
	return Random, false
}

// Picker chooses entries from a palette's active subset.
type Picker struct {
	Mode  PickMode
	index int
	rng   *rand.Rand
}

// NewPicker returns a picker using rng for random picks. A nil rng uses a fresh PCG source.
func NewPicker(mode PickMode, rng *rand.Rand) *Picker {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Picker{Mode: mode, rng: rng}
}

// Pick returns the next entry, or false when no entry is active.
// In Cycle mode the index is reduced modulo the active count before and after use, so a subset
// that shrank since the last pick never yields an out-of-range index.
func (k *Picker) Pick(p *Palette) (Entry, bool) {
	active := p.Active()
	if len(active) == 0 {
		return Entry{}, false
	}
	switch k.Mode {
	case Cycle:
		k.index %= len(active)
		e := active[k.index]
		k.index++
		k.index %= len(active)
		return e, true
	default:
		return active[k.rng.IntN(len(active))], true
	}
}

// Index is the position in the active subset the next cyclic pick will use.
func (k *Picker) Index() int {
	return k.index
}

// Reset starts the cycle over from the first active entry.
func (k *Picker) Reset() {
	k.index = 0
}

func (m PickMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *PickMode) UnmarshalText(b []byte) error {
	v, ok := ParsePickMode(string(b))
	if !ok {
		return fmt.Errorf("unknown picking mode %q", b)
	}
	*m = v
	return nil
}
