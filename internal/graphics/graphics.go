package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window describes the main window.
type Window struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	// Done, when closed, ends the loop as if the window were closed.
	Done <-chan struct{}
}

func (w Window) done() bool {
	select {
	case <-w.Done:
		return true
	default:
		return false
	}
}

// Run opens the window and runs the main loop until it is closed. Each frame it calls update
// (input), then clears the screen and calls draw. ESC toggles the terminal, so the window only
// closes from its close button. onClose runs while the GPU context still exists.
func Run(w Window, update, draw, onClose func()) {
	width, height := int32(w.Width), int32(w.Height)
	if w.Fullscreen {
		rl.SetConfigFlags(rl.FlagFullscreenMode | rl.FlagMsaa4xHint)
		width, height = int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0))
	} else {
		rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	}
	rl.InitWindow(width, height, w.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() && !w.done() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(30, 32, 36, 255))
		draw()
		rl.EndDrawing()
	}
	if onClose != nil {
		onClose()
	}
}
