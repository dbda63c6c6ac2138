package modeladapter

import (
	"github.com/germanamz/mealplanner/pkg/chats/chat"
	"github.com/germanamz/mealplanner/pkg/chats/role"
)

// perMessageOverhead is the estimated token overhead for each message (role,
// structure delimiters, etc.).
const perMessageOverhead = 4

// TokenEstimator estimates token counts for chat messages before a call is
// made. It uses a character-to-token heuristic of roughly 1 token per 4
// characters of English text. The zero value is ready to use.
type TokenEstimator struct{}

// charsToTokens converts a character count to an estimated token count using the
// 1-token-per-4-characters heuristic.
func charsToTokens(chars int) int {
	return (chars + 3) / 4 // round up
}

// EstimateChat estimates the total input tokens for a chat conversation,
// including the system prompt and per-message structural overhead.
func (e *TokenEstimator) EstimateChat(c *chat.Chat) int {
	tokens := 0

	if sp := c.SystemPrompt(); sp != "" {
		tokens += charsToTokens(len(sp)) + perMessageOverhead
	}

	for _, m := range c.Messages() {
		if m.Role == role.System {
			continue // counted above
		}
		tokens += perMessageOverhead + charsToTokens(len(m.Text))
	}

	return tokens
}

// EstimateTotal estimates the token budget of one call: the chat's input plus
// the maximum number of output tokens requested.
func (e *TokenEstimator) EstimateTotal(c *chat.Chat, maxOutput int) int {
	return e.EstimateChat(c) + max(maxOutput, 0)
}
