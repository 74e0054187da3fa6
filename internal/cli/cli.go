package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ecooper/dp-headlines/internal/config"
	"github.com/ecooper/dp-headlines/internal/logger"
	"github.com/ecooper/dp-headlines/internal/runner"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig  string
	flagVariant string
	flagDataDir string
	flagLogFile string
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dp-headlines",
		Short: "Record today's Daily Pennsylvanian headline",
		Long: `A scheduled scrape job that fetches the Daily Pennsylvanian homepage,
extracts one current headline, and appends it to a date-keyed JSON record.
Running more than once on the same day overwrites that day's entry.`,
		SilenceUsage: true,
		RunE:         runScrape,
	}

	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to YAML config file")
	cmd.Flags().StringVar(&flagVariant, "variant", "", "Extractor variant: mostread, featured, or rss")
	cmd.Flags().StringVar(&flagDataDir, "data-dir", "", "Directory for the headline record")
	cmd.Flags().StringVar(&flagLogFile, "log-file", "", "Path to the rotating log file")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Also log to stderr, at debug level")

	return cmd
}

// runScrape is the main command logic
func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	// Flags beat config file and environment.
	if flagVariant != "" {
		cfg.Variant = flagVariant
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if flagLogFile != "" {
		cfg.LogFile = flagLogFile
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	log := buildLogger(cfg, flagVerbose)

	if err := runner.Run(cfg, log); err != nil {
		log.Error("Run failed", nil, err)
		return err
	}
	return nil
}

// buildLogger constructs the run's logger: a rotating file sink, teed with
// stderr at debug level when verbose.
func buildLogger(cfg *config.Config, verbose bool) *logger.Logger {
	var out io.Writer = logger.RotatingWriter(cfg.LogFile, cfg.LogMaxSizeMB, cfg.LogMaxBackups)
	level := logger.LevelInfo
	if verbose {
		out = io.MultiWriter(out, os.Stderr)
		level = logger.LevelDebug
	}
	return logger.New(level, out)
}
