// Package chats provides a provider-agnostic data model for chat completions.
//
// It is organized into sub-packages:
//   - [github.com/germanamz/mealplanner/pkg/chats/role]: conversation roles (system, user, assistant)
//   - [github.com/germanamz/mealplanner/pkg/chats/message]: a single text turn with its role and sender
//   - [github.com/germanamz/mealplanner/pkg/chats/chat]: ordered conversation container
//
// No provider or API code is included.
package chats
