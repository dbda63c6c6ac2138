package openai_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/germanamz/mealplanner/pkg/chats/chat"
	"github.com/germanamz/mealplanner/pkg/chats/message"
	"github.com/germanamz/mealplanner/pkg/chats/role"
	"github.com/germanamz/mealplanner/pkg/modeladapter"
	"github.com/germanamz/mealplanner/pkg/modeladapter/usage"
	"github.com/germanamz/mealplanner/pkg/providers/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *openai.Adapter) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	a := openai.New(srv.URL, "test-key", "gpt-3.5-turbo")

	return srv, a
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("failed to encode response: %v", err)
	}
}

func readBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}

	var req map[string]any
	if err := json.Unmarshal(body, &req); err != nil {
		t.Fatalf("failed to unmarshal body: %v", err)
	}

	return req
}

func planChat() *chat.Chat {
	return chat.New(
		message.New("", role.System, "You are an expert meal planning assistant."),
		message.New("", role.User, "Plan 3 vegan meals."),
	)
}

func TestComplete_SimpleText(t *testing.T) {
	_, adapter := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		req := readBody(t, r)

		assert.Equal(t, "gpt-3.5-turbo", req["model"])
		assert.InDelta(t, 0.7, req["temperature"], 1e-9)
		assert.InDelta(t, 2000, req["max_tokens"], 1e-9)

		msgs, ok := req["messages"].([]any)
		require.True(t, ok)
		require.Len(t, msgs, 2)

		first, _ := msgs[0].(map[string]any)
		assert.Equal(t, "system", first["role"])
		second, _ := msgs[1].(map[string]any)
		assert.Equal(t, "user", second["role"])
		assert.Equal(t, "Plan 3 vegan meals.", second["content"])

		writeJSON(t, w, map[string]any{
			"choices": []map[string]any{
				{
					"message":       map[string]any{"role": "assistant", "content": "## 🍽️ MEALS\n- Tofu bowl"},
					"finish_reason": "stop",
				},
				{
					"message":       map[string]any{"role": "assistant", "content": "ignored"},
					"finish_reason": "stop",
				},
			},
			"usage": map[string]any{"prompt_tokens": 120, "completion_tokens": 40},
		})
	})

	adapter.Temperature = 0.7
	adapter.MaxTokens = 2000

	msg, err := adapter.Complete(context.Background(), planChat())
	require.NoError(t, err)
	assert.Equal(t, role.Assistant, msg.Role)
	assert.Equal(t, "## 🍽️ MEALS\n- Tofu bowl", msg.Text)

	last, ok := adapter.UsageTracker().Last()
	require.True(t, ok)
	assert.Equal(t, usage.TokenCount{InputTokens: 120, OutputTokens: 40}, last)
}

func TestComplete_DefaultModel(t *testing.T) {
	a := openai.New(openai.DefaultBaseURL, "k", "")
	assert.Equal(t, openai.DefaultModel, a.Name)
}

func TestComplete_OmitsZeroTemperature(t *testing.T) {
	_, adapter := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		req := readBody(t, r)
		_, has := req["temperature"]
		assert.False(t, has)

		writeJSON(t, w, map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"content": "ok"}}},
		})
	})

	_, err := adapter.Complete(context.Background(), planChat())
	require.NoError(t, err)
}

func TestComplete_NullContent(t *testing.T) {
	_, adapter := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"content": nil}}},
		})
	})

	msg, err := adapter.Complete(context.Background(), planChat())
	require.NoError(t, err)
	assert.True(t, msg.IsEmpty())
}

func TestComplete_EmptyChoices(t *testing.T) {
	_, adapter := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, map[string]any{"choices": []any{}})
	})

	_, err := adapter.Complete(context.Background(), planChat())
	require.ErrorIs(t, err, openai.ErrEmptyChoices)
	assert.ErrorContains(t, err, "openai:")
}

func TestComplete_Unauthorized(t *testing.T) {
	_, adapter := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided"}}`))
	})

	_, err := adapter.Complete(context.Background(), planChat())

	var se *modeladapter.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
}
