// Package providers groups the concrete completion adapters.
//
// Each sub-package embeds [github.com/germanamz/mealplanner/pkg/modeladapter.ModelAdapter]
// and implements Completer for one wire format:
//   - [github.com/germanamz/mealplanner/pkg/providers/openai]: Chat Completions (also used for xAI Grok)
//   - [github.com/germanamz/mealplanner/pkg/providers/anthropic]: Messages API
//   - [github.com/germanamz/mealplanner/pkg/providers/gemini]: generateContent
package providers
