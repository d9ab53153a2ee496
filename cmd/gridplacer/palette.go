package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"grid-placer/internal/palette"
)

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Inspect the object palette",
}

var paletteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List palette entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		entries, err := palette.ReadFile(paths.Palette)
		if err != nil {
			return err
		}
		activeOnly, _ := cmd.Flags().GetBool("active")
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "#\tACTIVE\tKIND\tASSET\tID")
		for i, e := range entries {
			if activeOnly && !e.Active {
				continue
			}
			fmt.Fprintf(w, "%d\t%t\t%s\t%s\t%s\n", i+1, e.Active, e.Kind, e.Asset, e.ID)
		}
		return w.Flush()
	},
}

func init() {
	paletteListCmd.Flags().Bool("active", false, "only list active entries")
	paletteCmd.AddCommand(paletteListCmd)
}
