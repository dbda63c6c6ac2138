// Package anthropic provides a Completer implementation for the Anthropic Messages API.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/germanamz/mealplanner/pkg/chats/chat"
	"github.com/germanamz/mealplanner/pkg/chats/message"
	"github.com/germanamz/mealplanner/pkg/chats/role"
	"github.com/germanamz/mealplanner/pkg/modeladapter"
	"github.com/germanamz/mealplanner/pkg/modeladapter/usage"
)

const messagesPath = "/v1/messages"

// DefaultBaseURL is the public Anthropic API endpoint.
const DefaultBaseURL = "https://api.anthropic.com"

// DefaultModel is used when no model is configured.
const DefaultModel = "claude-sonnet-4-20250514"

var _ modeladapter.Completer = (*Adapter)(nil)

// Adapter implements modeladapter.Completer for the Anthropic Messages API.
type Adapter struct {
	modeladapter.ModelAdapter
}

// New creates an Adapter configured for the Anthropic API.
// The baseURL should be "https://api.anthropic.com" (no trailing slash).
func New(baseURL, apiKey, model string) *Adapter {
	if model == "" {
		model = DefaultModel
	}

	a := &Adapter{}
	a.BaseURL = baseURL
	a.Auth = modeladapter.Auth{
		Key:    apiKey,
		Header: "x-api-key",
	}
	a.Name = model
	a.MaxTokens = 4096
	a.Headers = map[string]string{
		"anthropic-version": "2023-06-01",
	}

	return a
}

// Complete sends a conversation to the Anthropic Messages API and returns the
// concatenated text blocks of the reply.
func (a *Adapter) Complete(ctx context.Context, c *chat.Chat) (message.Message, error) {
	req := a.buildRequest(c)

	var resp apiResponse
	if err := a.PostJSON(ctx, messagesPath, req, &resp); err != nil {
		return message.Message{}, fmt.Errorf("anthropic: %w", err)
	}

	a.Usage.Add(usage.TokenCount{
		InputTokens:  resp.Usage.InputTokens,
		OutputTokens: resp.Usage.OutputTokens,
	})

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}

	return message.New(a.Name, role.Assistant, b.String()), nil
}

// --- request types ---

type apiRequest struct {
	Model       string       `json:"model"`
	MaxTokens   int          `json:"max_tokens"`
	System      string       `json:"system,omitempty"`
	Messages    []apiMessage `json:"messages"`
	Temperature *float64     `json:"temperature,omitempty"`
}

type apiMessage struct {
	Role    string       `json:"role"`
	Content []apiContent `json:"content"`
}

type apiContent struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// --- response types ---

type apiResponse struct {
	Content    []apiContent `json:"content"`
	StopReason string       `json:"stop_reason"`
	Usage      apiUsage     `json:"usage"`
}

type apiUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

func (a *Adapter) buildRequest(c *chat.Chat) apiRequest {
	req := apiRequest{
		Model:     a.Name,
		MaxTokens: a.MaxTokens,
		System:    c.SystemPrompt(),
	}

	if a.Temperature != 0 {
		t := a.Temperature
		req.Temperature = &t
	}

	for _, m := range c.Messages() {
		if m.Role == role.System {
			continue
		}

		msgRole := "user"
		if m.Role == role.Assistant {
			msgRole = "assistant"
		}

		block := apiContent{Type: "text", Text: m.Text}

		// Consecutive turns from the same role are merged into one message.
		if n := len(req.Messages); n > 0 && req.Messages[n-1].Role == msgRole {
			req.Messages[n-1].Content = append(req.Messages[n-1].Content, block)
			continue
		}

		req.Messages = append(req.Messages, apiMessage{Role: msgRole, Content: []apiContent{block}})
	}

	return req
}
