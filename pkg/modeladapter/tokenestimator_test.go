package modeladapter_test

import (
	"strings"
	"testing"

	"github.com/germanamz/mealplanner/pkg/chats/chat"
	"github.com/germanamz/mealplanner/pkg/chats/message"
	"github.com/germanamz/mealplanner/pkg/chats/role"
	"github.com/germanamz/mealplanner/pkg/modeladapter"
	"github.com/stretchr/testify/assert"
)

func TestEstimateChat_Empty(t *testing.T) {
	e := &modeladapter.TokenEstimator{}

	assert.Equal(t, 0, e.EstimateChat(chat.New()))
}

func TestEstimateChat_TextMessages(t *testing.T) {
	e := &modeladapter.TokenEstimator{}
	c := chat.New(
		message.New("user", role.User, "Plan three meals"),     // 16 chars
		message.New("bot", role.Assistant, "Here is the plan"), // 16 chars
	)

	// 2 * (4 overhead + 4 tokens).
	assert.Equal(t, 16, e.EstimateChat(c))
}

func TestEstimateChat_SystemPromptCountedOnce(t *testing.T) {
	e := &modeladapter.TokenEstimator{}
	c := chat.New(
		message.New("", role.System, strings.Repeat("a", 40)),
		message.New("", role.User, strings.Repeat("b", 8)),
	)

	// System: 10 + 4. User: 2 + 4.
	assert.Equal(t, 20, e.EstimateChat(c))
}

func TestEstimateChat_RoundsUp(t *testing.T) {
	e := &modeladapter.TokenEstimator{}
	c := chat.New(message.New("", role.User, "abcde"))

	assert.Equal(t, 4+2, e.EstimateChat(c))
}

func TestEstimateTotal(t *testing.T) {
	e := &modeladapter.TokenEstimator{}
	c := chat.New(message.New("", role.User, "abcd"))

	assert.Equal(t, 5+2000, e.EstimateTotal(c, 2000))
	assert.Equal(t, 5, e.EstimateTotal(c, -1))
}
