package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/germanamz/mealplanner/cmd/mealplanner/internal/app"
	"github.com/germanamz/mealplanner/cmd/mealplanner/internal/format"
	"github.com/germanamz/mealplanner/pkg/failure"
	"github.com/germanamz/mealplanner/pkg/mealplan"
	"golang.org/x/term"
)

type generateOptions struct {
	common commonFlags
	prefs  mealplan.Preferences
	save   bool
}

func parseGenerateFlags(args []string, stderr io.Writer) (generateOptions, error) {
	defaults := mealplan.Defaults()

	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: mealplanner generate [flags]\n\nGenerate one meal plan and print it.\n\nFlags:\n")
		fs.PrintDefaults()
	}

	var opts generateOptions
	opts.common.register(fs)

	theme := fs.String("theme", string(defaults.Theme), "meal plan theme")
	meals := fs.Int("meals", defaults.MealCount, fmt.Sprintf("number of meals (%d-%d)", mealplan.MinMeals, mealplan.MaxMeals))
	cuisine := fs.String("cuisine", string(defaults.Cuisine), "preferred cuisine")
	goal := fs.String("goal", string(defaults.Goal), "primary goal")
	skill := fs.String("skill", string(defaults.SkillLevel), "cooking skill level")
	fs.BoolVar(&opts.save, "save", false, "also write the plan to the output directory")

	if err := fs.Parse(args); err != nil {
		return generateOptions{}, err
	}

	var err error
	// An explicitly empty theme means no dietary restriction.
	if *theme != "" {
		if opts.prefs.Theme, err = mealplan.ParseTheme(*theme); err != nil {
			return generateOptions{}, err
		}
	}
	if opts.prefs.Cuisine, err = mealplan.ParseCuisine(*cuisine); err != nil {
		return generateOptions{}, err
	}
	if opts.prefs.Goal, err = mealplan.ParseGoal(*goal); err != nil {
		return generateOptions{}, err
	}
	if opts.prefs.SkillLevel, err = mealplan.ParseSkillLevel(*skill); err != nil {
		return generateOptions{}, err
	}
	opts.prefs.MealCount = mealplan.ClampMealCount(*meals)

	return opts, nil
}

func runGenerateCommand(args []string) int {
	opts, err := parseGenerateFlags(args, os.Stderr)
	if err != nil {
		return 2
	}

	if err := loadDotEnv(opts.common.envFile); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	log, closeLog, err := newLogger(opts.common.logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer func() { _ = closeLog() }()

	eng, cfg, err := buildEngine(opts.common, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, describeStartupError(err))
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fd := int(os.Stdout.Fd()) //nolint:gosec // file descriptors fit in int
	width := 0
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil {
			width = w
		}
	}

	if err := runGenerate(ctx, eng, opts, cfg.OutputDir, width, os.Stdout, os.Stderr); err != nil {
		return 1
	}
	return 0
}

// runGenerate performs one generation. The plan is rendered as markdown when
// width is positive (stdout is a terminal) and written raw otherwise.
func runGenerate(ctx context.Context, gen app.Generator, opts generateOptions, outDir string, width int, stdout, stderr io.Writer) error {
	plan, err := gen.Generate(ctx, opts.prefs)
	if err != nil {
		fmt.Fprintln(stderr, format.RenderReport(failure.Describe(err)))
		return err
	}

	if width > 0 {
		format.InitMarkdownRenderer(width)
		fmt.Fprintln(stdout, format.RenderMarkdown(plan.Text))
	} else if _, err := io.WriteString(stdout, plan.Text); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}

	if opts.save {
		path, err := mealplan.Save(outDir, plan.Preferences.MealCount, plan.Text)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return err
		}
		fmt.Fprintf(stderr, "Saved %s (%s)\n", path, mealplan.MIMEType)
	}

	return nil
}
