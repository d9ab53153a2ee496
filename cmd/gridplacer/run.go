package main

import (
	"github.com/spf13/cobra"

	"grid-placer/internal/debug"
	"grid-placer/internal/editor"
	"grid-placer/internal/graphics"
	"grid-placer/internal/grid"
	"grid-placer/internal/logger"
	"grid-placer/internal/primitives"
	"grid-placer/internal/scene"
	"grid-placer/internal/terminal"
	"grid-placer/internal/world"
)

var window = graphics.Window{Title: "gridplacer", Width: 1600, Height: 900}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the editor viewport",
	Long: `Open the editor viewport with the placement tool active.

  left click      place the preview        E / Q       rotate (shift: minor step)
  wheel           height offset            X           cycle rotation axis
  1 2 3 4         snap center/edges/corners/none
  right drag      orbit                    middle drag / WASD   pan
  ctrl+wheel      zoom                     ESC or ` + "`" + `       terminal ("cmd help")`,
	RunE: runEditor,
}

func init() {
	f := runCmd.Flags()
	f.BoolVar(&window.Fullscreen, "fullscreen", false, "open fullscreen")
	f.IntVar(&window.Width, "width", window.Width, "window width")
	f.IntVar(&window.Height, "height", window.Height, "window height")
}

func runEditor(cmd *cobra.Command, _ []string) error {
	hist := logger.New(logPath)
	tool, err := editor.Open(paths, hist)
	if err != nil {
		return err
	}
	log := tool.Log()

	prims := primitives.NewRegistry()
	scn := scene.New(prims)
	term := terminal.New(hist, tool.Run)
	hud := debug.New(tool.Status)
	hud.ShowFPS = true

	update := func() {
		term.Update()
		keys := !term.IsOpen()
		scn.Update(keys)
		for _, ev := range scn.Events(keys) {
			tool.Input.Dispatch(ev)
		}
		hud.Visible = tool.Settings.ShowHUD
		tool.Hovered = world.None
		if hit, ok := tool.Level.LineTrace(scn.PointerRay(), grid.MaxTraceDistance, world.ChannelVisibility); ok {
			tool.Hovered = hit.Object
		}
	}
	draw := func() {
		scn.Draw(tool.Level.Objects(), tool.Session.Frame(), tool.Session.Cell(), tool.Session.Overlay())
		hud.Draw()
		term.Draw()
	}
	var closeErr error
	onClose := func() {
		closeErr = tool.Close()
		prims.Unload()
	}

	w := window
	w.Done = cmd.Context().Done()
	graphics.Run(w, update, draw, onClose)
	if closeErr != nil {
		log.Error("saving tool state", "err", closeErr)
	}
	return closeErr
}
