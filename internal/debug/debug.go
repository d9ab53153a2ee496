package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
)

var hudBgColor = rl.NewColor(0, 0, 0, 140)

// HUD draws the tool status at the top-left and optional FPS and memory counters at the top-right.
type HUD struct {
	Visible      bool
	ShowFPS      bool
	ShowMemAlloc bool
	// Status supplies the tool lines each frame.
	Status func() []string

	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// New returns a visible HUD with the counters hidden.
func New(status func() []string) *HUD {
	return &HUD{Visible: true, Status: status}
}

// Draw renders the HUD. Call after the scene and before the terminal in the draw loop.
func (d *HUD) Draw() {
	if !d.Visible {
		return
	}
	d.drawStatus()
	d.drawCounters()
}

func (d *HUD) drawStatus() {
	if d.Status == nil {
		return
	}
	lines := d.Status()
	if len(lines) == 0 {
		return
	}
	width := int32(0)
	for _, l := range lines {
		width = max(width, rl.MeasureText(l, fontSize))
	}
	rl.DrawRectangle(0, 0, width+2*padding, int32(len(lines)*lineHeight+2*padding), hudBgColor)
	for i, l := range lines {
		rl.DrawText(l, padding, int32(padding+i*lineHeight), fontSize, rl.RayWhite)
	}
}

// drawCounters refreshes its text only every updateInterval frames to limit allocations.
func (d *HUD) drawCounters() {
	d.frameCount++
	update := d.frameCount%updateInterval == 0
	if d.ShowFPS && d.lastFpsText == "" || d.ShowMemAlloc && d.lastMemText == "" {
		update = true
	}
	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	right := func(text string) {
		rl.DrawText(text, screenW-rl.MeasureText(text, fontSize)-padding, y, fontSize, rl.Green)
		y += lineHeight
	}
	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		right(d.lastFpsText)
	}
	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", float64(d.lastMemStats.Alloc)/(1024*1024))
		}
		right(d.lastMemText)
	}
}
