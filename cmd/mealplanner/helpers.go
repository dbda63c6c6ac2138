package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/germanamz/mealplanner/cmd/mealplanner/internal/format"
	"github.com/germanamz/mealplanner/pkg/engine"
	"github.com/germanamz/mealplanner/pkg/failure"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// commonFlags are accepted by the TUI and by every subcommand.
type commonFlags struct {
	envFile    string
	configPath string
	outDir     string
	logPath    string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.envFile, "env", ".env", "path to .env file (ignored if missing)")
	fs.StringVar(&c.configPath, "config", "mealplanner.yaml", "path to configuration file (ignored if missing)")
	fs.StringVar(&c.outDir, "out-dir", "", "directory downloaded plans are written to (overrides output_dir)")
	fs.StringVar(&c.logPath, "log", "", "append JSON logs to this file (disabled when empty)")
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// newLogger opens the log file at path. The TUI owns the terminal, so logs
// never go to stdout or stderr.
func newLogger(path string) (zerolog.Logger, func() error, error) {
	if path == "" {
		return zerolog.Nop(), func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) //nolint:gosec // path is a CLI flag
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}

	return zerolog.New(f).With().Timestamp().Logger(), f.Close, nil
}

// buildEngine resolves the configuration and validates the credential before
// any UI is shown or any request is made.
func buildEngine(common commonFlags, log zerolog.Logger) (*engine.Engine, engine.Config, error) {
	cfg, err := engine.LoadConfig(common.configPath)
	if err != nil {
		return nil, engine.Config{}, err
	}

	if common.outDir != "" {
		cfg.OutputDir = common.outDir
	}

	eng, err := engine.New(cfg, engine.WithLogger(log))
	if err != nil {
		return nil, cfg, err
	}

	return eng, cfg, nil
}

// describeStartupError renders the remediation report for a missing
// credential and a plain message for anything else.
func describeStartupError(err error) string {
	if failure.Classify(err) == failure.MissingCredential {
		return format.RenderReport(failure.Describe(err))
	}
	return fmt.Sprintf("error: %v", err)
}
