// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/swcompare/internal/compare"
	"github.com/pdiddy/swcompare/internal/report"
	"github.com/pdiddy/swcompare/pkg/types"
)

var compareCmd = &cobra.Command{
	Use:   "compare FILE1 FILE2",
	Short: "Compare two files",
	Long: `Compare scores one file pair. The first file's extension picks the
comparison: .sldprt, .sldasm, and .slddrw use the structured SolidWorks
analysis, everything else the generic size, time, and content analysis.

The result always prints; a pair that could not be compared is reported
with category Error and the command exits non-zero.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().Bool("json", false, "output the full result as JSON")
	compareCmd.Flags().Bool("yaml", false, "output the full result as YAML")
	compareCmd.MarkFlagsMutuallyExclusive("json", "yaml")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	jsonOut, _ := cmd.Flags().GetBool("json")
	yamlOut, _ := cmd.Flags().GetBool("yaml")

	result := newComparator(cfg, logger).CompareFiles(args[0], args[1])

	w := cmd.OutOrStdout()
	switch {
	case jsonOut:
		err = report.WriteJSON(w, result)
	case yamlOut:
		err = report.WriteYAML(w, result)
	default:
		info1, err1 := compare.Info(args[0])
		info2, err2 := compare.Info(args[1])
		for _, e := range []error{err1, err2} {
			if e != nil {
				logger.Warn("file info unavailable", "error", e)
			}
		}
		report.WriteComparison(w, result, info1, info2)
	}
	if err != nil {
		return err
	}
	if result.Category == types.CategoryError {
		return fmt.Errorf("comparison failed: %s", result.Error)
	}
	return nil
}
