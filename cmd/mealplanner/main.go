package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/germanamz/mealplanner/cmd/mealplanner/internal/app"
	"github.com/germanamz/mealplanner/cmd/mealplanner/internal/format"
)

func main() {
	// Handle subcommands before flag parsing.
	if len(os.Args) > 1 && os.Args[1] == "generate" {
		os.Exit(runGenerateCommand(os.Args[2:]))
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: mealplanner [flags]\n       mealplanner generate [flags]\n\nFlags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nCommands:\n  generate  Generate one meal plan from flags and print it\n")
	}

	var common commonFlags
	common.register(flag.CommandLine)
	flag.Parse()

	if err := loadDotEnv(common.envFile); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := run(common); err != nil {
		fmt.Fprintln(os.Stderr, describeStartupError(err))
		os.Exit(1)
	}
}

func run(common commonFlags) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log, closeLog, err := newLogger(common.logPath)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	eng, cfg, err := buildEngine(common, log)
	if err != nil {
		return err
	}

	// Detect the background once, before bubbletea owns stdin.
	format.IsDarkBG = lipgloss.HasDarkBackground()

	model := app.NewAppModel(ctx, eng, app.Options{
		OutputDir: cfg.OutputDir,
		Logger:    log,
	})

	log.Info().Str("model", eng.Model()).Str("output_dir", cfg.OutputDir).Msg("starting meal planner")

	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
