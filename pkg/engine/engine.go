package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/germanamz/mealplanner/pkg/chats/chat"
	"github.com/germanamz/mealplanner/pkg/chats/message"
	"github.com/germanamz/mealplanner/pkg/chats/role"
	"github.com/germanamz/mealplanner/pkg/failure"
	"github.com/germanamz/mealplanner/pkg/mealplan"
	"github.com/germanamz/mealplanner/pkg/modeladapter"
	"github.com/germanamz/mealplanner/pkg/modeladapter/usage"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Plan is one completed generation. Text is exactly what the service returned.
type Plan struct {
	ID          string
	Preferences mealplan.Preferences
	Prompt      string
	Text        string
	Model       string
	Usage       usage.TokenCount
	Duration    time.Duration
}

// FileName is the download name of the plan.
func (p Plan) FileName() string {
	return mealplan.FileName(p.Preferences.MealCount)
}

// Engine turns preferences into plans with one blocking completion call.
type Engine struct {
	cfg       Config
	completer modeladapter.Completer
	timeout   time.Duration
	log       zerolog.Logger
}

// Option customises an Engine.
type Option func(*Engine)

// WithLogger sets the logger generation events are written to.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithCompleter replaces the completer built from the provider config.
func WithCompleter(c modeladapter.Completer) Option {
	return func(e *Engine) { e.completer = c }
}

// New validates cfg and builds the completer for its provider. It performs no
// network I/O.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	timeout, err := cfg.RequestTimeout()
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:     cfg,
		timeout: timeout,
		log:     zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.completer == nil {
		c, err := buildCompleter(cfg.Provider)
		if err != nil {
			return nil, err
		}
		e.completer = c
	}

	return e, nil
}

// Config returns the configuration the engine was built from.
func (e *Engine) Config() Config { return e.cfg }

// Model returns the model identifier requests are sent to.
func (e *Engine) Model() string {
	if ur, ok := e.completer.(modeladapter.UsageReporter); ok {
		return ur.ModelName()
	}
	return e.cfg.Provider.Model
}

// Generate composes the prompt for prefs and sends it with the system
// instruction in a single call bounded by the configured timeout. It never
// retries. Returned errors are classified with failure.Wrap.
func (e *Engine) Generate(ctx context.Context, prefs mealplan.Preferences) (Plan, error) {
	if err := prefs.Validate(); err != nil {
		return Plan{}, failure.New(failure.Unknown, err)
	}

	plan := Plan{
		ID:          uuid.NewString(),
		Preferences: prefs,
		Prompt:      mealplan.ComposePrompt(prefs),
		Model:       e.Model(),
	}

	log := e.log.With().
		Str("request_id", plan.ID).
		Str("model", plan.Model).
		Int("meals", prefs.MealCount).
		Logger()

	c := chat.New(
		message.New("", role.System, mealplan.SystemInstruction),
		message.New("", role.User, plan.Prompt),
	)

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var est modeladapter.TokenEstimator
	log.Info().
		Str("theme", string(prefs.Theme)).
		Str("skill", string(prefs.SkillLevel)).
		Int("estimated_input_tokens", est.EstimateChat(c)).
		Msg("generating meal plan")

	start := time.Now()
	reply, err := e.completer.Complete(ctx, c)
	plan.Duration = time.Since(start)

	if err != nil {
		err = failure.Wrap(fmt.Errorf("engine: generate: %w", err))
		log.Error().Err(err).
			Stringer("kind", failure.Classify(err)).
			Dur("duration", plan.Duration).
			Msg("meal plan generation failed")
		return Plan{}, err
	}

	plan.Text = reply.Text

	if ur, ok := e.completer.(modeladapter.UsageReporter); ok {
		if last, ok := ur.UsageTracker().Last(); ok {
			plan.Usage = last
		}
	}

	log.Info().
		Dur("duration", plan.Duration).
		Int("input_tokens", plan.Usage.InputTokens).
		Int("output_tokens", plan.Usage.OutputTokens).
		Int("bytes", len(plan.Text)).
		Msg("meal plan generated")

	return plan, nil
}
