package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/germanamz/mealplanner/cmd/mealplanner/internal/format"
	"github.com/germanamz/mealplanner/cmd/mealplanner/internal/msgs"
	"github.com/germanamz/mealplanner/cmd/mealplanner/internal/styles"
	"github.com/germanamz/mealplanner/pkg/engine"
	"github.com/germanamz/mealplanner/pkg/failure"
	"github.com/germanamz/mealplanner/pkg/mealplan"
	"github.com/rs/zerolog"
)

// State represents the application state machine.
type State int

const (
	StateForm State = iota
	StateGenerating
	StateResult
	StateFailed
)

const loadingRotation = 3 * time.Second

// chromeHeight is the number of lines around the result viewport.
const chromeHeight = 6

// Generator produces a plan from preferences. *engine.Engine satisfies it.
type Generator interface {
	Generate(ctx context.Context, prefs mealplan.Preferences) (engine.Plan, error)
}

// Options configures an AppModel.
type Options struct {
	OutputDir string
	Logger    zerolog.Logger
	// Copy writes text to the clipboard. Defaults to clipboard.WriteAll.
	Copy func(text string) error
}

// AppModel is the root bubbletea model.
type AppModel struct {
	ctx    context.Context
	gen    Generator
	outDir string
	log    zerolog.Logger
	copy   func(string) error

	state    State
	prefs    *mealplan.Preferences
	submit   *bool
	form     *huh.Form
	spinner  spinner.Model
	loading  string
	loadGen  uint64
	viewport viewport.Model
	plan     engine.Plan
	err      error
	status   string
	width    int
	height   int
}

// NewAppModel creates an AppModel showing the form with default values.
func NewAppModel(ctx context.Context, gen Generator, opts Options) AppModel {
	prefs := mealplan.Defaults()
	submit := true

	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}
	if opts.OutputDir == "" {
		opts.OutputDir = engine.DefaultOutputDir
	}

	sp := spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(styles.SpinnerStyle))

	return AppModel{
		ctx:      ctx,
		gen:      gen,
		outDir:   opts.OutputDir,
		log:      opts.Logger,
		copy:     opts.Copy,
		state:    StateForm,
		prefs:    &prefs,
		submit:   &submit,
		form:     newForm(&prefs, &submit),
		spinner:  sp,
		viewport: viewport.New(80, 20),
	}
}

// State returns the current state.
func (m AppModel) State() State { return m.state }

// Preferences returns the values currently bound to the form.
func (m AppModel) Preferences() mealplan.Preferences { return *m.prefs }

// Plan returns the last successful plan.
func (m AppModel) Plan() engine.Plan { return m.plan }

// Err returns the last generation failure.
func (m AppModel) Err() error { return m.err }

// Status returns the transient status line.
func (m AppModel) Status() string { return m.status }

func (m AppModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case msgs.PlanReadyMsg:
		return m.handlePlanReady(msg)

	case msgs.SavedMsg:
		if msg.Err != nil {
			m.log.Error().Err(msg.Err).Msg("save meal plan")
			m.status = styles.WarningStyle.Render("Save failed: " + msg.Err.Error())
		} else {
			m.log.Info().Str("path", msg.Path).Msg("meal plan saved")
			m.status = styles.SuccessStyle.Render(fmt.Sprintf("📥 Saved %s (%s)", msg.Path, mealplan.MIMEType))
		}
		return m, nil

	case msgs.CopiedMsg:
		if msg.Err != nil {
			m.status = styles.WarningStyle.Render("Copy failed: " + msg.Err.Error())
		} else {
			m.status = styles.SuccessStyle.Render("📋 Copied to clipboard")
		}
		return m, nil

	case msgs.LoadingTickMsg:
		if m.state != StateGenerating || msg.Generation != m.loadGen {
			return m, nil
		}
		m.loading = format.RandomLoadingMessage()
		return m, loadingTick(m.loadGen)

	case spinner.TickMsg:
		if m.state != StateGenerating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	switch m.state {
	case StateForm:
		return m.updateForm(msg)
	case StateResult:
		return m.updateResult(msg)
	case StateFailed:
		return m.updateFailed(msg)
	}

	// Generating: input is ignored until the call returns.
	return m, nil
}

func (m AppModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	format.InitMarkdownRenderer(max(msg.Width-4, 20))

	m.viewport.Width = max(msg.Width-2, 10)
	m.viewport.Height = max(msg.Height-chromeHeight, 3)
	if m.state == StateResult {
		m.viewport.SetContent(format.RenderMarkdown(m.plan.Text))
	}

	if m.state == StateForm {
		f, cmd := m.form.Update(msg)
		if ff, ok := f.(*huh.Form); ok {
			m.form = ff
		}
		return m, cmd
	}

	return m, nil
}

func (m AppModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	f, cmd := m.form.Update(msg)
	if ff, ok := f.(*huh.Form); ok {
		m.form = ff
	}

	switch m.form.State {
	case huh.StateCompleted:
		if !*m.submit {
			return m, tea.Quit
		}
		return m.startGeneration()
	case huh.StateAborted:
		return m, tea.Quit
	}

	return m, cmd
}

func (m AppModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "s":
			m.status = ""
			return m, saveCmd(m.outDir, m.plan)
		case "c":
			m.status = ""
			return m, copyCmd(m.copy, m.plan.Text)
		case "n":
			return m.backToForm()
		case "q", "esc":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m AppModel) updateFailed(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "r", "enter":
			return m.startGeneration()
		case "n":
			return m.backToForm()
		case "q", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

// backToForm rebuilds the form over the same preferences so the previous
// values are pre-filled.
func (m AppModel) backToForm() (tea.Model, tea.Cmd) {
	m.state = StateForm
	m.status = ""
	m.err = nil
	m.form = newForm(m.prefs, m.submit)
	return m, m.form.Init()
}

func (m AppModel) startGeneration() (tea.Model, tea.Cmd) {
	m.state = StateGenerating
	m.status = ""
	m.err = nil
	m.loadGen++
	m.loading = format.RandomLoadingMessage()

	return m, tea.Batch(
		m.spinner.Tick,
		loadingTick(m.loadGen),
		generateCmd(m.ctx, m.gen, *m.prefs),
	)
}

func (m AppModel) handlePlanReady(msg msgs.PlanReadyMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.state = StateFailed
		m.err = msg.Err
		return m, nil
	}

	m.state = StateResult
	m.plan = msg.Plan
	m.viewport.SetContent(format.RenderMarkdown(msg.Plan.Text))
	m.viewport.GotoTop()

	return m, nil
}

func (m AppModel) View() string {
	var sb strings.Builder
	sb.WriteString(styles.TitleStyle.Render("🍽️ AI Meal Planner"))
	sb.WriteString("\n")

	switch m.state {
	case StateForm:
		sb.WriteString(styles.SubtitleStyle.Render("Create personalized meal plans based on your preferences"))
		sb.WriteString("\n\n")
		sb.WriteString(m.form.View())

	case StateGenerating:
		sb.WriteString(m.spinner.View())
		sb.WriteString(" ")
		sb.WriteString(styles.LoadingStyle.Render(m.loading))

	case StateResult:
		sb.WriteString(styles.SuccessStyle.Render("✅ Your meal plan is ready!"))
		sb.WriteString("\n")
		sb.WriteString(m.viewport.View())
		sb.WriteString("\n")
		sb.WriteString(m.statusLine())
		sb.WriteString("\n")
		sb.WriteString(helpLine("s", "save", "c", "copy", "n", "new plan", "q", "quit"))

	case StateFailed:
		sb.WriteString(format.RenderReport(failure.Describe(m.err)))
		sb.WriteString("\n\n")
		sb.WriteString(helpLine("r", "retry", "n", "edit preferences", "q", "quit"))
	}

	return sb.String()
}

// statusLine shows the model, duration and token usage of the plan, or the
// outcome of the last save/copy action.
func (m AppModel) statusLine() string {
	if m.status != "" {
		return m.status
	}

	parts := []string{m.plan.FileName()}
	if m.plan.Model != "" {
		parts = append(parts, m.plan.Model)
	}
	parts = append(parts, format.FmtDuration(m.plan.Duration))
	if total := m.plan.Usage.Total(); total > 0 {
		parts = append(parts, format.FmtTokens(total)+" tokens")
	}

	line := strings.Join(parts, " · ")
	if m.width > 0 {
		line = format.Truncate(line, m.width)
	}
	return styles.StatusStyle.Render(line)
}

func helpLine(pairs ...string) string {
	items := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		items = append(items, styles.HelpKeyStyle.Render(pairs[i])+" "+styles.DimStyle.Render(pairs[i+1]))
	}
	return strings.Join(items, styles.DimStyle.Render("  •  "))
}

func generateCmd(ctx context.Context, gen Generator, prefs mealplan.Preferences) tea.Cmd {
	return func() tea.Msg {
		plan, err := gen.Generate(ctx, prefs)
		return msgs.PlanReadyMsg{Plan: plan, Err: err}
	}
}

func saveCmd(dir string, plan engine.Plan) tea.Cmd {
	return func() tea.Msg {
		path, err := mealplan.Save(dir, plan.Preferences.MealCount, plan.Text)
		return msgs.SavedMsg{Path: path, Err: err}
	}
}

func copyCmd(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return msgs.CopiedMsg{Err: write(text)}
	}
}

func loadingTick(gen uint64) tea.Cmd {
	return tea.Tick(loadingRotation, func(time.Time) tea.Msg {
		return msgs.LoadingTickMsg{Generation: gen}
	})
}
