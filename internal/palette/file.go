package palette

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the editor keeps its palette, relative to the working directory.
const DefaultPath = "config/palette.yaml"

type fileEntry struct {
	ID     string `yaml:"id,omitempty"`
	Kind   string `yaml:"kind"`
	Asset  string `yaml:"asset"`
	Active bool   `yaml:"active"`
}

type file struct {
	Entries []fileEntry `yaml:"entries"`
}

// Restore replaces every entry with entries and notifies once. Entries without an ID, or
// repeating an earlier entry's ID, get a fresh one.
func (p *Palette) Restore(entries []Entry) {
	p.entries = make([]*Entry, 0, len(entries))
	seen := make(map[uuid.UUID]bool, len(entries))
	for _, e := range entries {
		if e.ID == uuid.Nil || seen[e.ID] {
			e.ID = uuid.New()
		}
		seen[e.ID] = true
		p.entries = append(p.entries, &e)
	}
	p.notify()
}

// ReadFile loads palette entries from a YAML file. A missing file yields no entries.
func ReadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("palette: %w", err)
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("palette: parse %s: %w", path, err)
	}
	out := make([]Entry, 0, len(f.Entries))
	seen := make(map[uuid.UUID]int, len(f.Entries))
	for i, fe := range f.Entries {
		kind, err := ParseKind(fe.Kind)
		if err != nil {
			return nil, fmt.Errorf("palette: entry %d: %w", i, err)
		}
		if fe.Asset == "" {
			return nil, fmt.Errorf("palette: entry %d: missing asset", i)
		}
		e := Entry{Kind: kind, Asset: fe.Asset, Active: fe.Active}
		if fe.ID != "" {
			id, err := uuid.Parse(fe.ID)
			if err != nil {
				return nil, fmt.Errorf("palette: entry %d: %w", i, err)
			}
			if first, dup := seen[id]; dup {
				return nil, fmt.Errorf("palette: entry %d: id %s already used by entry %d", i, id, first)
			}
			seen[id] = i
			e.ID = id
		}
		out = append(out, e)
	}
	return out, nil
}

// WriteFile saves entries as YAML, creating the directory if needed.
func WriteFile(path string, entries []Entry) error {
	f := file{Entries: make([]fileEntry, len(entries))}
	for i, e := range entries {
		f.Entries[i] = fileEntry{ID: e.ID.String(), Kind: e.Kind.String(), Asset: e.Asset, Active: e.Active}
	}
	data, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("palette: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("palette: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
