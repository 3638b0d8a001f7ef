package main

import (
	"os"

	"github.com/dcgeo/seiscopy/cmd/seiscopy/opts"
	"github.com/dcgeo/seiscopy/pkg/config"
	"github.com/dcgeo/seiscopy/pkg/mapping"
	"github.com/dcgeo/seiscopy/pkg/status"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile     string
	sourceRoot     string
	destRoot       string
	mappingXLSX    string
	stationPattern string
	dryRun         bool
	skipExisting   bool
	debug          bool
)

// newRootOpts creates a new RootOpts with initialized dependencies. The
// config starts from the built-in defaults (or the --config file when given)
// and explicitly-set flags override it.
func newRootOpts(cmd *cobra.Command) (*opts.RootOpts, error) {
	ctx := cmd.Context()

	cfg := config.Default()
	if configFile != "" {
		loaded, err := config.Load(ctx, configFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("source-root") {
		cfg.SourceRoot = sourceRoot
	}
	if flags.Changed("dest-root") {
		cfg.DestRoot = destRoot
	}
	if flags.Changed("mapping-xlsx") {
		cfg.MappingXLSX = mappingXLSX
	}
	if flags.Changed("station-pattern") {
		cfg.StationPattern = stationPattern
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = dryRun
	}
	if flags.Changed("skip-existing") {
		cfg.SkipExisting = skipExisting
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	if _, err := os.Stat(cfg.MappingXLSX); err != nil {
		return nil, errors.Errorf("mapping file not found: %s", cfg.MappingXLSX)
	}
	m, err := mapping.Load(ctx, cfg.MappingXLSX)
	if err != nil {
		return nil, errors.Errorf("loading mapping: %w", err)
	}

	return &opts.RootOpts{
		Config:     cfg,
		Mapping:    m,
		UserLogger: status.NewUserLogger(ctx),
	}, nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	defaults := config.Default()
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (YAML or HCL)")
	cmd.PersistentFlags().StringVar(&sourceRoot, "source-root", defaults.SourceRoot, "source root directory")
	cmd.PersistentFlags().StringVar(&destRoot, "dest-root", defaults.DestRoot, "destination root directory")
	cmd.PersistentFlags().StringVar(&mappingXLSX, "mapping-xlsx", defaults.MappingXLSX, "Excel file mapping source folders (col A) to dest folders (col B)")
	cmd.PersistentFlags().StringVar(&stationPattern, "station-pattern", defaults.StationPattern, "glob selecting top-level station directories")
	cmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "print planned copy operations without copying files")
	cmd.PersistentFlags().BoolVar(&skipExisting, "skip-existing", false, "skip files that already exist in the destination")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}
