// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/swcompare/internal/metrics"
	"github.com/pdiddy/swcompare/internal/report"
	"github.com/pdiddy/swcompare/internal/scan"
	"github.com/pdiddy/swcompare/pkg/types"
)

var scanCmd = &cobra.Command{
	Use:   "scan DIR",
	Short: "Compare every pair of files in a folder",
	Long: `Scan lists the files directly inside DIR whose extension belongs to the
selected type group, compares every pair, and reports the pairs scoring at
least --min-score, highest first.

Groups: solidworks, cad, document, image, all. Interrupting the scan stops
scheduling new pairs; pairs in flight finish and the partial report is
still written.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().String("type", "", "file type group (default all)")
	scanCmd.Flags().Float64("min-score", 0, "drop pairs whose total is below this score")
	scanCmd.Flags().Int("workers", 0, "concurrent comparisons (default number of CPUs)")
	scanCmd.Flags().String("format", "", "report format: table, yaml, json, csv, or html (default table)")
	scanCmd.Flags().StringP("output", "o", "", "write the report to this file instead of stdout")
	scanCmd.Flags().String("metrics-file", "", "write Prometheus metrics for the run to this file")

	_ = viper.BindPFlag("scan.file_type", scanCmd.Flags().Lookup("type"))
	_ = viper.BindPFlag("scan.min_score", scanCmd.Flags().Lookup("min-score"))
	_ = viper.BindPFlag("scan.workers", scanCmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("scan.format", scanCmd.Flags().Lookup("format"))

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Scan.Folder = args[0]
	format, err := report.ParseFormat(string(cfg.Scan.Format))
	if err != nil {
		return err
	}
	outPath, _ := cmd.Flags().GetString("output")
	metricsPath, _ := cmd.Flags().GetString("metrics-file")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	opts := scan.Options{
		Logger:   logger,
		Observer: metrics.New(reg),
	}
	if isTerminal(os.Stderr) {
		opts.Progress = func(processed, total int) {
			fmt.Fprintf(os.Stderr, "\rcompared %d/%d pairs", processed, total)
			if processed == total {
				fmt.Fprintln(os.Stderr)
			}
		}
	}

	batch, err := scan.Run(ctx, cfg.Scan, newComparator(cfg, logger), opts)
	if err != nil {
		return err
	}
	if batch.Summary.Cancelled && opts.Progress != nil {
		fmt.Fprintln(os.Stderr)
	}

	if err := writeReport(cmd.OutOrStdout(), outPath, batch, format); err != nil {
		return err
	}
	if metricsPath != "" {
		if err := metrics.WriteTextfile(metricsPath, reg); err != nil {
			return err
		}
	}

	switch {
	case batch.Summary.Cancelled:
		return fmt.Errorf("scan cancelled after %d of %d pairs", batch.Summary.Compared, batch.Total())
	case batch.HasFailures():
		return fmt.Errorf("%d pair(s) could not be compared", batch.Summary.Errors)
	}
	return nil
}

func writeReport(stdout io.Writer, path string, batch types.BatchResult, format types.OutputFormat) error {
	if path == "" {
		return report.Write(stdout, batch, format)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := report.Write(f, batch, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	logger.Info("report written", "path", path, "format", format)
	return nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
