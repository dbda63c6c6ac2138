package message

import (
	"testing"

	"github.com/germanamz/mealplanner/pkg/chats/role"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	msg := New("planner", role.User, "hello")

	assert.Equal(t, "planner", msg.Sender)
	assert.Equal(t, role.User, msg.Role)
	assert.Equal(t, "hello", msg.Text)
}

func TestMessage_IsEmpty(t *testing.T) {
	var msg Message
	assert.True(t, msg.IsEmpty())

	assert.False(t, New("", role.Assistant, "x").IsEmpty())
}
