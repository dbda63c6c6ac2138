package engine

import (
	"fmt"
	"slices"
	"sync"

	"github.com/germanamz/mealplanner/pkg/modeladapter"
	"github.com/germanamz/mealplanner/pkg/providers/anthropic"
	"github.com/germanamz/mealplanner/pkg/providers/gemini"
	"github.com/germanamz/mealplanner/pkg/providers/openai"
)

// Sampling settings applied to every completion call.
const (
	Temperature     = 0.7
	MaxOutputTokens = 2000
)

// grokBaseURL serves xAI's OpenAI-compatible endpoint.
const (
	grokBaseURL = "https://api.x.ai"
	grokModel   = "grok-3-mini-fast-beta"
)

// ProviderFactory creates a Completer from a ProviderConfig.
type ProviderFactory func(cfg ProviderConfig) (modeladapter.Completer, error)

var (
	factoryMu   sync.RWMutex
	factories   = map[string]ProviderFactory{}
	defaultsReg sync.Once
)

func ensureDefaults() {
	defaultsReg.Do(func() {
		factories["anthropic"] = newAnthropic
		factories["openai"] = newOpenAI
		factories["grok"] = newGrok
		factories["gemini"] = newGemini
	})
}

// RegisterProvider registers a custom provider factory under the given kind.
// It can be called before New to extend the engine with additional providers.
func RegisterProvider(kind string, factory ProviderFactory) {
	ensureDefaults()

	factoryMu.Lock()
	defer factoryMu.Unlock()

	factories[kind] = factory
}

// KnownProviderKinds returns the registered kinds in sorted order.
func KnownProviderKinds() []string {
	ensureDefaults()

	factoryMu.RLock()
	defer factoryMu.RUnlock()

	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)

	return kinds
}

// getFactory returns the factory for the given kind.
func getFactory(kind string) (ProviderFactory, bool) {
	ensureDefaults()

	factoryMu.RLock()
	defer factoryMu.RUnlock()

	f, ok := factories[kind]
	return f, ok
}

func newAnthropic(cfg ProviderConfig) (modeladapter.Completer, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = anthropic.DefaultBaseURL
	}

	a := anthropic.New(baseURL, cfg.APIKey, cfg.Model)
	a.Temperature = Temperature
	a.MaxTokens = MaxOutputTokens

	return a, nil
}

func newOpenAI(cfg ProviderConfig) (modeladapter.Completer, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = openai.DefaultBaseURL
	}

	a := openai.New(baseURL, cfg.APIKey, cfg.Model)
	a.Temperature = Temperature
	a.MaxTokens = MaxOutputTokens

	return a, nil
}

func newGemini(cfg ProviderConfig) (modeladapter.Completer, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = gemini.DefaultBaseURL
	}

	a := gemini.New(baseURL, cfg.APIKey, cfg.Model)
	a.Temperature = Temperature
	a.MaxTokens = MaxOutputTokens

	return a, nil
}

func newGrok(cfg ProviderConfig) (modeladapter.Completer, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = grokBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = grokModel
	}

	return newOpenAI(cfg)
}

// buildCompleter creates a Completer from a ProviderConfig using the
// registered factory for its Kind.
func buildCompleter(cfg ProviderConfig) (modeladapter.Completer, error) {
	factory, ok := getFactory(cfg.Kind)
	if !ok {
		return nil, fmt.Errorf("engine: unknown provider kind %q", cfg.Kind)
	}

	return factory(cfg)
}
