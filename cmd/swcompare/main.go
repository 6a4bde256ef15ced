// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the swcompare CLI. Subcommands
// compare one pair, scan a folder pairwise, and dump the binary features
// of a single file.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/swcompare/internal/compare"
	"github.com/pdiddy/swcompare/internal/logging"
	"github.com/pdiddy/swcompare/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// logger is built in PersistentPreRunE from config and flags.
	logger    = logging.Discard()
	logCloser io.Closer
)

// rootCmd is the base command for the swcompare CLI.
var rootCmd = &cobra.Command{
	Use:   "swcompare",
	Short: "Compare SolidWorks and other files for copies and tampering",
	Long: `swcompare scores how similar two files are. SolidWorks parts, assemblies,
and drawings are compared structurally from their feature tree, sketch
markers, and geometry block; other files by size, modification time, and
sampled content. Every comparison also reports a manipulation risk.

Use compare for one pair and scan to compare every pair in a folder.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		quiet, _ := cmd.Flags().GetBool("quiet")
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		l, closer, err := logging.Open(cfg.Log, verbosity, quiet, os.Stderr)
		if err != nil {
			return err
		}
		logger, logCloser = l, closer
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Info("using config file", "path", f)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser != nil {
			return logCloser.Close()
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./swcompare.yaml or ~/.config/swcompare/swcompare.yaml)")
	rootCmd.PersistentFlags().CountP("verbose", "v", "increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress all log output")
	rootCmd.PersistentFlags().String("log-file", "", "append logs to this file instead of stderr")

	_ = viper.BindPFlag("log.file", rootCmd.PersistentFlags().Lookup("log-file"))
}

func setDefaults() {
	viper.SetDefault("compare.fast_path_threshold", types.DefaultFastPathThreshold)
	viper.SetDefault("compare.match_threshold", types.DefaultMatchThreshold)
	viper.SetDefault("scan.workers", runtime.NumCPU())
	viper.SetDefault("scan.min_score", 0.0)
	viper.SetDefault("scan.file_type", string(types.GroupAll))
	viper.SetDefault("scan.format", string(types.FormatTable))
	viper.SetDefault("log.level", "warn")
	viper.SetDefault("log.file", "")
}

func initConfig() {
	// A missing .env is the common case.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("swcompare")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "swcompare"))
		}
	}

	setDefaults()
	viper.SetEnvPrefix("SWCOMPARE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "Ignoring config file:", err)
		}
	}
}

// loadConfig decodes the merged flag, env, file, and default layers.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Compare = cfg.Compare.WithDefaults()
	return cfg, nil
}

// newComparator builds a comparator from the loaded config.
func newComparator(cfg types.Config, l *slog.Logger) *compare.Comparator {
	return compare.New(cfg.Compare, l)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
