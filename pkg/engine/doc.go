// Package engine is the composition root of the meal planner. It resolves
// configuration (including the provider credential), builds the completion
// client for the configured provider, and runs the single-call generation
// flow. Frontends (the TUI and the one-shot CLI) interact with Engine and
// never import provider packages directly.
package engine
