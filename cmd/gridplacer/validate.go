package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"grid-placer/internal/palette"
	"grid-placer/internal/prefab"
	"grid-placer/internal/settings"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the settings, palette and prefab files",
	Long: `Load the settings file, the palette and every prefab, and report range errors,
malformed files and palette entries that name unknown meshes or prefabs.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	var errs []error

	s, err := settings.Load(paths.Settings)
	if err != nil {
		errs = append(errs, err)
	} else if err := s.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", paths.Settings, err))
	}

	lib, err := prefab.LoadDir(paths.Prefabs)
	if err != nil {
		errs = append(errs, err)
	}
	fmt.Fprintf(out, "prefabs: %d loaded from %s\n", len(lib.Names()), paths.Prefabs)

	entries, err := palette.ReadFile(paths.Palette)
	if err != nil {
		errs = append(errs, err)
	}
	for i, e := range entries {
		if _, err := lib.Resolve(e); err != nil {
			errs = append(errs, fmt.Errorf("palette entry %d: %w", i+1, err))
		}
	}
	fmt.Fprintf(out, "palette: %d entries in %s\n", len(entries), paths.Palette)

	if err := errors.Join(errs...); err != nil {
		return err
	}
	fmt.Fprintln(out, "ok")
	return nil
}
