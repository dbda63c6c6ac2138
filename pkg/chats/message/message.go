// Package message defines the Message type exchanged with completion services.
package message

import "github.com/germanamz/mealplanner/pkg/chats/role"

// Message is a single turn in a conversation. It is a value type that copies
// cheaply.
type Message struct {
	Sender string
	Role   role.Role
	Text   string
}

// New creates a message with the given sender, role and text.
func New(sender string, r role.Role, text string) Message {
	return Message{Sender: sender, Role: r, Text: text}
}

// IsEmpty reports whether the message carries no text.
func (m Message) IsEmpty() bool {
	return m.Text == ""
}
