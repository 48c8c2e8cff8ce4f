package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"natbrowser/browser/simplifier"
	"natbrowser/browser/snapshot"
	"natbrowser/utils/io"
	"natbrowser/utils/printx"
)

func simplifyCmd(root *rootOptions) *cobra.Command {
	var (
		snapshotPath string
		viewport     simplifier.Viewport
		includeURL   bool
		showTable    bool
	)
	cmd := &cobra.Command{
		Use:   "simplify",
		Short: "Simplify a saved DOMSnapshot.captureSnapshot result",
		Long: `Reads the JSON result of DOMSnapshot.captureSnapshot and prints the lines
the model would see for the given viewport.

Examples:
  natbot simplify --snapshot page.json
  natbot simplify --snapshot page.json --upper 1080 --table`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := io.ReadFile(snapshotPath)
			if err != nil {
				return err
			}
			snap, err := snapshot.Decode(data)
			if err != nil {
				return fmt.Errorf("error decoding %s: %w", snapshotPath, err)
			}
			options := root.cfg.SimplifierOptions()
			if cmd.Flags().Changed("include-url") {
				options.IncludeURL = includeURL
			}
			result, err := simplifier.Simplify(snap, viewport, options)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, result.String())
			if showTable {
				printx.PrintStandardHeader(out, "TABLE")
				printx.PrintTable(out, []string{"ID", "BACKEND", "X", "Y", "TAG"}, tableRows(result.Table))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "path to the snapshot JSON")
	cmd.Flags().Float64Var(&viewport.Left, "left", 0, "horizontal scroll offset")
	cmd.Flags().Float64Var(&viewport.Upper, "upper", 0, "vertical scroll offset")
	cmd.Flags().Float64Var(&viewport.Width, "width", 1280, "window width")
	cmd.Flags().Float64Var(&viewport.Height, "height", 1080, "window height")
	cmd.Flags().Float64Var(&viewport.DevicePixelRatio, "dpr", 1, "device pixel ratio")
	cmd.Flags().StringVar(&viewport.Platform, "platform", runtime.GOOS, "platform the snapshot was taken on")
	cmd.Flags().BoolVar(&includeURL, "include-url", false, "prepend the document url and number ids from 1")
	cmd.Flags().BoolVar(&showTable, "table", false, "print the id table")
	_ = cmd.MarkFlagRequired("snapshot")
	return cmd
}

func tableRows(t *simplifier.Table) [][]string {
	entries := t.Entries()
	rows := make([][]string, len(entries))
	for i, entry := range entries {
		p := t.ClientPoint(entry)
		rows[i] = []string{
			entry.ID.String(),
			fmt.Sprintf("%d", entry.BackendNodeID),
			fmt.Sprintf("%.0f", p.X),
			fmt.Sprintf("%.0f", p.Y),
			string(entry.Element.Tag),
		}
	}
	return rows
}
