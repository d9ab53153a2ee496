package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"grid-placer/internal/editor"
	"grid-placer/internal/logger"
)

var (
	paths   = editor.DefaultPaths()
	logPath string
)

var rootCmd = &cobra.Command{
	Use:   "gridplacer",
	Short: "Grid placement tool for level design",
	Long: `gridplacer places palette objects (primitive meshes and YAML prefabs) onto a
configurable 3D grid. Run without a subcommand to open the editor viewport.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runEditor,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&paths.Settings, "settings", paths.Settings, "tool settings file")
	pf.StringVar(&paths.Palette, "palette", paths.Palette, "palette file")
	pf.StringVar(&paths.Prefabs, "prefabs", paths.Prefabs, "prefab directory")
	pf.StringVar(&logPath, "log", logger.LogFilePath, "log file (empty keeps logs in memory)")

	rootCmd.AddCommand(runCmd, validateCmd, paletteCmd)
}

// Execute runs the root command with signal handling.
func Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}
