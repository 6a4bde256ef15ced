// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/swcompare/internal/extract"
	"github.com/pdiddy/swcompare/internal/report"
	"github.com/pdiddy/swcompare/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract FILE",
	Short: "Dump the binary features of a SolidWorks file",
	Long: `Extract reads the feature tree, sketch, and geometry windows of one file
and prints the feature tokens, sketch markers, and geometry fingerprint the
structured comparison works from. Raw window bytes are omitted unless --raw
is set.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("format", "yaml", "output format: yaml or json")
	extractCmd.Flags().Bool("raw", false, "include the raw window bytes")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	raw, _ := cmd.Flags().GetBool("raw")

	ef, err := extract.File(args[0])
	if err != nil {
		return fmt.Errorf("extracting %s: %w", args[0], err)
	}
	if !raw {
		ef.Raw = types.RawWindows{}
	}
	logger.Debug("extracted", "file", args[0],
		"features", len(ef.Features), "sketches", len(ef.Sketches))

	w := cmd.OutOrStdout()
	switch types.OutputFormat(format) {
	case types.FormatYAML:
		return report.WriteYAML(w, ef)
	case types.FormatJSON:
		return report.WriteJSON(w, ef)
	default:
		return fmt.Errorf("unknown format %q: use yaml or json", format)
	}
}
