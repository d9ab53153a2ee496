package editor

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"strconv"
	"strings"

	"grid-placer/internal/geom"
	"grid-placer/internal/grid"
	"grid-placer/internal/palette"
	"grid-placer/internal/placement"
	"grid-placer/internal/settings"
	"grid-placer/internal/world"
)

var errUsage = errors.New("bad arguments")

const unsetDivisions = math.MinInt

func (t *Tool) registerCommands() {
	r := t.Commands
	r.Register("help", "", nil, t.cmdHelp)
	r.Register("snap", "center|edges|corners|none", nil, t.cmdSnap)
	r.Register("axis", "x|y|z", nil, t.cmdAxis)
	r.Register("space", "grid|rotation|offset global|local|custom", nil, t.cmdSpace)
	r.Register("target", "grid|rotation|offset <id>|hovered|none", nil, t.cmdTarget)
	r.Register("channel", "visibility|camera|placed", nil, t.cmdChannel)
	r.Register("pivot", "object|grid", nil, t.cmdPivot)
	r.Register("pick", "random|cycle", nil, t.cmdPick)
	r.Register("palette", "list|add <mesh|actor> <asset>|remove <n>|toggle <n>|select|deselect|clear", nil, t.cmdPalette)
	r.Register("cell", "<width> [height]", nil, t.cmdCell)
	r.Register("rotate", "<degrees>", nil, t.cmdRotate)
	r.Register("offset", "<value>", nil, t.cmdOffset)
	r.Register("scale", "<value>", nil, t.cmdScale)

	fs := flag.NewFlagSet("random", flag.ContinueOnError)
	rmin := fs.Float64("min", math.NaN(), "range minimum")
	rmax := fs.Float64("max", math.NaN(), "range maximum")
	div := fs.Int("div", unsetDivisions, "divisions (0 = continuous)")
	r.Register("random", "[-min v] [-max v] [-div n] offset|rotation|scale on|off", fs, func(args []string) error {
		return t.cmdRandom(args, *rmin, *rmax, *div)
	})
	r.Register("hud", "on|off", nil, t.cmdHUD)
	r.Register("save", "", nil, func([]string) error { return t.Save() })
	r.Register("undo", "", nil, t.cmdUndo)
}

// Run executes a parsed terminal command and refreshes the preview.
func (t *Tool) Run(args []string) error {
	err := t.Commands.Execute(args)
	t.Session.Refresh()
	return err
}

func (t *Tool) print(format string, args ...any) {
	t.hist.Log(fmt.Sprintf(format, args...))
}

func one(args []string) (string, error) {
	if len(args) != 1 {
		return "", errUsage
	}
	return strings.ToLower(args[0]), nil
}

func oneFloat(args []string) (float64, error) {
	s, err := one(args)
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(s, 64)
}

// edit applies fn to the settings and rolls back when the result does not validate.
func (t *Tool) edit(fn func(s *settings.Settings)) error {
	before, err := t.Settings.Clone()
	if err != nil {
		return err
	}
	fn(&t.Settings)
	if err := t.Settings.Validate(); err != nil {
		t.Settings = before
		return err
	}
	return nil
}

func (t *Tool) cmdHelp([]string) error {
	for _, line := range t.Commands.Help() {
		t.print("cmd %s", line)
	}
	return nil
}

func (t *Tool) cmdSnap(args []string) error {
	s, err := one(args)
	if err != nil {
		return err
	}
	m, err := grid.ParseSnapMode(s)
	if err != nil {
		return err
	}
	t.Session.SetSnapMode(m)
	return nil
}

func (t *Tool) cmdAxis(args []string) error {
	s, err := one(args)
	if err != nil {
		return err
	}
	a, err := placement.ParseAxis(s)
	if err != nil {
		return err
	}
	t.Settings.Placement.Axis = a
	return nil
}

func (t *Tool) cmdSpace(args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	sp, err := grid.ParseSpace(strings.ToLower(args[1]))
	if err != nil {
		return err
	}
	switch strings.ToLower(args[0]) {
	case "grid":
		t.Session.Config.Grid.Mode = sp
		if sp == grid.Global {
			t.resetGlobalFrame()
		}
	case "rotation":
		t.Settings.Placement.RotationSpace = sp
	case "offset":
		t.Settings.Placement.HeightOffsetSpace = sp
	default:
		return errUsage
	}
	return nil
}

func (t *Tool) cmdTarget(args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	var id world.ObjectID
	switch v := strings.ToLower(args[1]); v {
	case "hovered":
		id = t.Hovered
	case "none":
		id = world.None
	default:
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return err
		}
		id = world.ObjectID(n)
	}
	if id != world.None {
		if _, ok := t.Level.Locate(id); !ok {
			return fmt.Errorf("no object %d", id)
		}
	}
	switch strings.ToLower(args[0]) {
	case "grid":
		t.Session.Config.Grid.Target = id
	case "rotation":
		t.Session.Config.RotationTarget = id
	case "offset":
		t.Session.Config.HeightOffsetTarget = id
	default:
		return errUsage
	}
	t.print("%s target: %d", args[0], id)
	return nil
}

func (t *Tool) cmdChannel(args []string) error {
	s, err := one(args)
	if err != nil {
		return err
	}
	c, ok := world.ParseChannel(s)
	if !ok {
		return fmt.Errorf("unknown channel %q", s)
	}
	t.Session.Config.Grid.Channel = c
	return nil
}

func (t *Tool) cmdPivot(args []string) error {
	s, err := one(args)
	if err != nil {
		return err
	}
	p, err := placement.ParsePivot(s)
	if err != nil {
		return err
	}
	t.Settings.Placement.Pivot = p
	return nil
}

func (t *Tool) cmdPick(args []string) error {
	s, err := one(args)
	if err != nil {
		return err
	}
	m, ok := palette.ParsePickMode(s)
	if !ok {
		return fmt.Errorf("unknown pick mode %q", s)
	}
	t.Picker.Mode = m
	t.Picker.Reset()
	return nil
}

func (t *Tool) cmdPalette(args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	p := t.Palette
	sub := strings.ToLower(args[0])
	switch sub {
	case "list":
		for i, e := range p.Entries() {
			mark := " "
			if e.Active {
				mark = "x"
			}
			t.print("%d [%s] %s %s", i+1, mark, e.Kind, e.Asset)
		}
	case "add":
		if len(args) != 3 {
			return errUsage
		}
		kind, err := palette.ParseKind(strings.ToLower(args[1]))
		if err != nil {
			return err
		}
		if _, err := t.Library.Resolve(palette.Entry{Kind: kind, Asset: args[2]}); err != nil {
			return err
		}
		p.Add(kind, args[2])
	case "remove", "toggle":
		if len(args) != 2 {
			return errUsage
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}
		e, ok := p.At(n - 1)
		if !ok {
			return fmt.Errorf("no entry %d", n)
		}
		if sub == "remove" {
			p.Remove(e.ID)
		} else {
			p.SetActive(e.ID, !e.Active)
		}
	case "select":
		p.SelectAll()
	case "deselect":
		p.DeselectAll()
	case "clear":
		p.Clear()
	default:
		return errUsage
	}
	return nil
}

func (t *Tool) cmdCell(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errUsage
	}
	w, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return err
	}
	h := w
	if len(args) == 2 {
		if h, err = strconv.ParseFloat(args[1], 64); err != nil {
			return err
		}
	}
	err = t.edit(func(s *settings.Settings) {
		s.Grid.Cell = grid.CellSize{Width: w, Height: h}
	})
	if err != nil {
		return err
	}
	t.Session.Frame().Cell = t.Settings.Grid.Cell
	return nil
}

func (t *Tool) cmdRotate(args []string) error {
	v, err := oneFloat(args)
	if err != nil {
		return err
	}
	t.Settings.Placement.SetAxisAngle(geom.NormalizeAngle(v))
	return nil
}

func (t *Tool) cmdOffset(args []string) error {
	v, err := oneFloat(args)
	if err != nil {
		return err
	}
	t.Settings.Placement.HeightOffset = v
	return nil
}

func (t *Tool) cmdScale(args []string) error {
	v, err := oneFloat(args)
	if err != nil {
		return err
	}
	return t.edit(func(s *settings.Settings) { s.Placement.Scale = v })
}

func (t *Tool) cmdRandom(args []string, lo, hi float64, div int) error {
	if len(args) != 2 {
		return errUsage
	}
	var on bool
	switch strings.ToLower(args[1]) {
	case "on":
		on = true
	case "off":
	default:
		return errUsage
	}
	pick := map[string]func(s *settings.Settings) *placement.Randomization{
		"offset":   func(s *settings.Settings) *placement.Randomization { return &s.Placement.RandomHeightOffset },
		"rotation": func(s *settings.Settings) *placement.Randomization { return &s.Placement.RandomRotation },
		"scale":    func(s *settings.Settings) *placement.Randomization { return &s.Placement.RandomScale },
	}
	field, ok := pick[strings.ToLower(args[0])]
	if !ok {
		return errUsage
	}
	return t.edit(func(s *settings.Settings) {
		r := field(s)
		r.Enabled = on
		if !math.IsNaN(lo) {
			r.Range.Min = lo
		}
		if !math.IsNaN(hi) {
			r.Range.Max = hi
		}
		if div != unsetDivisions {
			r.Divisions = div
		}
	})
}

func (t *Tool) cmdHUD(args []string) error {
	s, err := one(args)
	if err != nil {
		return err
	}
	switch s {
	case "on":
		t.Settings.ShowHUD = true
	case "off":
		t.Settings.ShowHUD = false
	default:
		return errUsage
	}
	return nil
}

func (t *Tool) cmdUndo([]string) error {
	name, ok := t.Level.Undo()
	if !ok {
		return errors.New("nothing to undo")
	}
	t.print("undid %s", name)
	return nil
}
