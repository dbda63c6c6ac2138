// Package gemini provides a Completer implementation for the Google Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/germanamz/mealplanner/pkg/chats/chat"
	"github.com/germanamz/mealplanner/pkg/chats/message"
	"github.com/germanamz/mealplanner/pkg/chats/role"
	"github.com/germanamz/mealplanner/pkg/modeladapter"
	"github.com/germanamz/mealplanner/pkg/modeladapter/usage"
)

// DefaultBaseURL is the Generative Language API host.
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

// ErrEmptyCandidates is returned when the response carries no candidate.
var ErrEmptyCandidates = errors.New("empty candidates in response")

var _ modeladapter.Completer = (*Adapter)(nil)

// Adapter implements modeladapter.Completer for the Google Gemini API.
type Adapter struct {
	modeladapter.ModelAdapter
}

// New creates an Adapter configured for the Gemini API.
// The baseURL should be "https://generativelanguage.googleapis.com" (no trailing slash).
func New(baseURL, apiKey, model string) *Adapter {
	if model == "" {
		model = DefaultModel
	}

	a := &Adapter{}
	a.BaseURL = baseURL
	a.Auth = modeladapter.Auth{
		Key:    apiKey,
		Header: "x-goog-api-key",
	}
	a.Name = model
	a.MaxTokens = 8192

	return a
}

// Complete sends a conversation to generateContent and returns the text
// parts of the first candidate, concatenated.
func (a *Adapter) Complete(ctx context.Context, c *chat.Chat) (message.Message, error) {
	req := a.buildRequest(c)
	path := fmt.Sprintf("/v1beta/models/%s:generateContent", a.Name)

	var resp apiResponse
	if err := a.PostJSON(ctx, path, req, &resp); err != nil {
		return message.Message{}, fmt.Errorf("gemini: %w", err)
	}

	a.Usage.Add(usage.TokenCount{
		InputTokens:  resp.UsageMetadata.PromptTokenCount,
		OutputTokens: resp.UsageMetadata.CandidatesTokenCount,
	})

	if len(resp.Candidates) == 0 {
		return message.Message{}, fmt.Errorf("gemini: %w", ErrEmptyCandidates)
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}

	return message.New(a.Name, role.Assistant, b.String()), nil
}

// --- request types ---

type apiRequest struct {
	Contents          []apiContent     `json:"contents"`
	SystemInstruction *apiContent      `json:"systemInstruction,omitempty"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type apiContent struct {
	Role  string    `json:"role,omitempty"`
	Parts []apiPart `json:"parts"`
}

type apiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens"`
}

// --- response types ---

type apiResponse struct {
	Candidates    []apiCandidate `json:"candidates"`
	UsageMetadata apiUsageMeta   `json:"usageMetadata"`
}

type apiCandidate struct {
	Content      apiContent `json:"content"`
	FinishReason string     `json:"finishReason"`
}

type apiUsageMeta struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
}

func (a *Adapter) buildRequest(c *chat.Chat) apiRequest {
	req := apiRequest{
		GenerationConfig: generationConfig{
			MaxOutputTokens: a.MaxTokens,
		},
	}

	if a.Temperature != 0 {
		t := a.Temperature
		req.GenerationConfig.Temperature = &t
	}

	if sp := c.SystemPrompt(); sp != "" {
		req.SystemInstruction = &apiContent{Parts: []apiPart{{Text: sp}}}
	}

	for _, m := range c.Messages() {
		if m.Role == role.System || m.IsEmpty() {
			continue
		}

		apiRole := mapRole(m.Role)

		// Gemini requires alternating roles.
		if n := len(req.Contents); n > 0 && req.Contents[n-1].Role == apiRole {
			req.Contents[n-1].Parts = append(req.Contents[n-1].Parts, apiPart{Text: m.Text})
			continue
		}

		req.Contents = append(req.Contents, apiContent{
			Role:  apiRole,
			Parts: []apiPart{{Text: m.Text}},
		})
	}

	return req
}

func mapRole(r role.Role) string {
	if r == role.Assistant {
		return "model"
	}
	return "user"
}
