// Package modeladapter defines the interface and shared plumbing for
// completion service adapters.
//
// It contains:
//   - [Completer] interface and embeddable [ModelAdapter] base struct with HTTP helpers, auth, and custom headers
//   - [RateLimitError] and [StatusError], the typed failures returned for non-2xx responses
//   - [TokenEstimator], a pre-call input token heuristic
//   - [github.com/germanamz/mealplanner/pkg/modeladapter/usage]: thread-safe token usage tracker
//
// Model configuration (name, temperature, max tokens) is inlined directly on
// the ModelAdapter struct. This package contains no provider-specific code; concrete
// adapters live in separate packages that import modeladapter.
package modeladapter
