package terminal

import (
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"

	"grid-placer/internal/commands"
	"grid-placer/internal/logger"
)

const (
	BarHeight = 40
	// When windowed, move bar up by this many pixels so it stays visible (avoids being cut off by taskbar/window bounds).
	WindowedBarOffset = 56
	prompt            = "> "
	fontSize          = 20
	padding           = 8
	// Number of log lines drawn above the input bar when terminal is open.
	maxLinesOnScreen = 14
	lineHeight       = fontSize + 4
	maxLineLength    = 200
)

var (
	// Reused every frame when drawing the terminal bar to avoid per-frame color allocations.
	termBarColor    = rl.NewColor(40, 40, 40, 255)
	termLineColor   = rl.NewColor(80, 80, 80, 255)
	termHistBgColor = rl.NewColor(24, 24, 24, 240)
)

// Terminal is the command bar at the bottom of the screen. It is shown/hidden with ESC or the
// backtick key. Lines starting with "cmd " are parsed as subcommand + flags and passed to Run;
// anything else is echoed with a hint.
type Terminal struct {
	log      *logger.Logger
	run      func(args []string) error
	inputBuf string
	open     bool
}

// New returns a closed Terminal that logs lines to log and executes commands with run.
func New(log *logger.Logger, run func(args []string) error) *Terminal {
	return &Terminal{log: log, run: run}
}

// IsOpen returns true when the terminal is visible and capturing the keyboard.
func (t *Terminal) IsOpen() bool {
	return t.open
}

// Update handles the toggle key and, when open, typing, backspace, paste and enter. Call once per frame.
func (t *Terminal) Update() {
	if rl.IsKeyPressed(rl.KeyEscape) || rl.IsKeyPressed(rl.KeyGrave) {
		t.open = !t.open
		// drain the toggle character so it does not land in the buffer
		for rl.GetCharPressed() != 0 {
		}
		return
	}
	if !t.open {
		return
	}
	// Paste: Ctrl+V (Windows/Linux) or Cmd+V (macOS)
	if rl.IsKeyPressed(rl.KeyV) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)) {
		if pasted := rl.GetClipboardText(); pasted != "" {
			t.inputBuf += pasted
		}
	} else {
		for {
			c := rl.GetCharPressed()
			if c == 0 {
				break
			}
			t.inputBuf += string(rune(c))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(t.inputBuf) > 0 {
		_, size := utf8.DecodeLastRuneInString(t.inputBuf)
		t.inputBuf = t.inputBuf[:len(t.inputBuf)-size]
	}
	if (rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter)) && t.inputBuf != "" {
		line := t.inputBuf
		t.inputBuf = ""
		t.Submit(line)
	}
}

// Submit logs line and runs it when it is a command.
func (t *Terminal) Submit(line string) {
	t.log.Log(line)
	args, isCmd := commands.Parse(line)
	if !isCmd {
		t.log.Log(`commands start with "cmd "; try "cmd help"`)
		return
	}
	if err := t.run(args); err != nil {
		t.log.Log(err.Error())
	}
}

// Draw draws the terminal bar at the bottom when open, and the recent log lines above it.
// Uses GetScreenWidth/GetScreenHeight so the bar matches the 2D overlay coordinate system (correct in fullscreen).
func (t *Terminal) Draw() {
	if !t.open {
		return
	}
	screenW := int(rl.GetScreenWidth())
	screenH := int(rl.GetScreenHeight())
	barY := screenH - BarHeight
	if !rl.IsWindowFullscreen() {
		barY -= WindowedBarOffset
	}

	histHeight := maxLinesOnScreen * lineHeight
	histY := barY - histHeight
	if histY < 0 {
		histHeight = barY
		histY = 0
	}
	if histHeight > 0 {
		rl.DrawRectangle(0, int32(histY), int32(screenW), int32(histHeight), termHistBgColor)
	}
	for i, line := range t.log.Tail(maxLinesOnScreen) {
		if len(line) > maxLineLength {
			line = line[:maxLineLength-3] + "..."
		}
		rl.DrawText(line, int32(padding), int32(histY+i*lineHeight+padding), fontSize, rl.LightGray)
	}

	rl.DrawRectangle(0, int32(barY), int32(screenW), BarHeight, termBarColor)
	rl.DrawRectangle(0, int32(barY), int32(screenW), 1, termLineColor)
	rl.DrawText(prompt+t.inputBuf+"|", int32(padding), int32(barY+padding), fontSize, rl.White)
}
