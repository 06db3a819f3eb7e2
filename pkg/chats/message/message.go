// Package message defines the Message type used in generation conversations.
package message

import (
	"fmt"

	"github.com/germanamz/pagecraft/pkg/chats/role"
)

// Message is a single role-tagged entry of a conversation.
// It is a value type that copies cheaply.
type Message struct {
	Role    role.Role `json:"role"`
	Content string    `json:"content"`
}

// New creates a message with the given role and text.
func New(r role.Role, text string) Message {
	return Message{Role: r, Content: text}
}

// User is shorthand for New(role.User, text).
func User(text string) Message { return New(role.User, text) }

// Line renders the message as a "{role}: {content}" transcript line.
func (m Message) Line() string {
	return fmt.Sprintf("%s: %s", m.Role, m.Content)
}
