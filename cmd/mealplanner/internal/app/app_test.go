package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/germanamz/mealplanner/cmd/mealplanner/internal/msgs"
	"github.com/germanamz/mealplanner/pkg/engine"
	"github.com/germanamz/mealplanner/pkg/failure"
	"github.com/germanamz/mealplanner/pkg/mealplan"
	"github.com/germanamz/mealplanner/pkg/modeladapter"
	"github.com/germanamz/mealplanner/pkg/modeladapter/usage"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const planText = "## 🍽️ Food Timetable\n| Day | Breakfast |\n|---|---|\n| Mon | Oats |\n"

type fakeGenerator struct {
	got  []mealplan.Preferences
	plan engine.Plan
	err  error
}

func (f *fakeGenerator) Generate(_ context.Context, prefs mealplan.Preferences) (engine.Plan, error) {
	f.got = append(f.got, prefs)
	if f.err != nil {
		return engine.Plan{}, f.err
	}
	p := f.plan
	p.Preferences = prefs
	return p, nil
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	require.True(t, ok)
	return am, cmd
}

func newTestModel(t *testing.T, gen Generator, copied *string) AppModel {
	t.Helper()
	return NewAppModel(context.Background(), gen, Options{
		OutputDir: t.TempDir(),
		Logger:    zerolog.Nop(),
		Copy: func(text string) error {
			if copied != nil {
				*copied = text
			}
			return nil
		},
	})
}

func readyPlan() engine.Plan {
	prefs := mealplan.Defaults()
	return engine.Plan{
		ID:          "req-1",
		Preferences: prefs,
		Text:        planText,
		Model:       "gpt-3.5-turbo",
		Usage:       usage.TokenCount{InputTokens: 300, OutputTokens: 900},
		Duration:    1500 * time.Millisecond,
	}
}

func TestNewAppModel_Defaults(t *testing.T) {
	m := newTestModel(t, &fakeGenerator{}, nil)

	assert.Equal(t, StateForm, m.State())
	assert.Equal(t, mealplan.Defaults(), m.Preferences())
}

func TestGenerateCmd_PassesPreferences(t *testing.T) {
	gen := &fakeGenerator{plan: engine.Plan{Text: planText}}
	prefs := mealplan.Preferences{
		Theme: mealplan.ThemeVegan, MealCount: 3, Cuisine: mealplan.CuisineAsian,
		Goal: mealplan.GoalLoseWeight, SkillLevel: mealplan.SkillBeginner,
	}

	msg := generateCmd(context.Background(), gen, prefs)()

	ready, ok := msg.(msgs.PlanReadyMsg)
	require.True(t, ok)
	require.NoError(t, ready.Err)
	assert.Equal(t, planText, ready.Plan.Text)
	assert.Equal(t, []mealplan.Preferences{prefs}, gen.got)
}

func TestStartGeneration_IgnoresKeys(t *testing.T) {
	m := newTestModel(t, &fakeGenerator{}, nil)

	next, cmd := m.startGeneration()
	m = next.(AppModel)
	assert.Equal(t, StateGenerating, m.State())
	assert.NotNil(t, cmd)

	m, cmd = update(t, m, key("q"))
	assert.Equal(t, StateGenerating, m.State())
	assert.Nil(t, cmd)
}

func TestCtrlCQuitsInAnyState(t *testing.T) {
	m := newTestModel(t, &fakeGenerator{}, nil)
	next, _ := m.startGeneration()
	m = next.(AppModel)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestPlanReady_ShowsResult(t *testing.T) {
	m := newTestModel(t, &fakeGenerator{}, nil)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m, _ = update(t, m, msgs.PlanReadyMsg{Plan: readyPlan()})

	assert.Equal(t, StateResult, m.State())
	assert.Equal(t, planText, m.Plan().Text)

	view := m.View()
	assert.Contains(t, view, "Your meal plan is ready!")
	assert.Contains(t, view, "meal_plan_3_meals.txt")
	assert.Contains(t, view, "1.2k tokens")
}

func TestPlanReady_Failure(t *testing.T) {
	m := newTestModel(t, &fakeGenerator{}, nil)

	err := failure.New(failure.RateLimit, &modeladapter.RateLimitError{RetryAfter: 20 * time.Second})
	m, _ = update(t, m, msgs.PlanReadyMsg{Err: err})

	assert.Equal(t, StateFailed, m.State())
	view := m.View()
	assert.Contains(t, view, "Rate Limit")
	assert.Contains(t, view, "20s")
}

func TestResult_SaveWritesExactText(t *testing.T) {
	m := newTestModel(t, &fakeGenerator{}, nil)
	m, _ = update(t, m, msgs.PlanReadyMsg{Plan: readyPlan()})

	m, cmd := update(t, m, key("s"))
	require.NotNil(t, cmd)

	saved, ok := cmd().(msgs.SavedMsg)
	require.True(t, ok)
	require.NoError(t, saved.Err)
	assert.Equal(t, "meal_plan_3_meals.txt", filepath.Base(saved.Path))

	data, err := os.ReadFile(saved.Path)
	require.NoError(t, err)
	assert.Equal(t, planText, string(data))

	m, _ = update(t, m, saved)
	assert.Contains(t, m.Status(), saved.Path)
}

func TestResult_SaveFailureShowsStatus(t *testing.T) {
	m := newTestModel(t, &fakeGenerator{}, nil)
	m, _ = update(t, m, msgs.PlanReadyMsg{Plan: readyPlan()})

	m, _ = update(t, m, msgs.SavedMsg{Err: errors.New("disk full")})

	assert.Equal(t, StateResult, m.State())
	assert.Contains(t, m.Status(), "disk full")
}

func TestResult_CopyUsesRawText(t *testing.T) {
	var copied string
	m := newTestModel(t, &fakeGenerator{}, &copied)
	m, _ = update(t, m, msgs.PlanReadyMsg{Plan: readyPlan()})

	m, cmd := update(t, m, key("c"))
	require.NotNil(t, cmd)

	msg := cmd()
	assert.Equal(t, planText, copied)

	m, _ = update(t, m, msg)
	assert.Contains(t, m.Status(), "Copied")
}

func TestResult_NewKeepsPreferences(t *testing.T) {
	m := newTestModel(t, &fakeGenerator{}, nil)
	m.prefs.MealCount = 7
	m.prefs.Theme = mealplan.ThemeKeto

	m, _ = update(t, m, msgs.PlanReadyMsg{Plan: readyPlan()})
	m, _ = update(t, m, key("n"))

	assert.Equal(t, StateForm, m.State())
	assert.Equal(t, 7, m.Preferences().MealCount)
	assert.Equal(t, mealplan.ThemeKeto, m.Preferences().Theme)
}

func TestFailed_RetryRegenerates(t *testing.T) {
	gen := &fakeGenerator{}
	m := newTestModel(t, gen, nil)
	m, _ = update(t, m, msgs.PlanReadyMsg{Err: errors.New("boom")})

	m, cmd := update(t, m, key("r"))

	assert.Equal(t, StateGenerating, m.State())
	assert.NotNil(t, cmd)
	assert.NoError(t, m.Err())
}

func TestLoadingTick_StaleGenerationIgnored(t *testing.T) {
	m := newTestModel(t, &fakeGenerator{}, nil)
	next, _ := m.startGeneration()
	m = next.(AppModel)

	_, cmd := update(t, m, msgs.LoadingTickMsg{Generation: m.loadGen + 1})
	assert.Nil(t, cmd)

	_, cmd = update(t, m, msgs.LoadingTickMsg{Generation: m.loadGen})
	assert.NotNil(t, cmd)
}
