// Package chat provides an ordered conversation container for generation
// requests.
package chat

import (
	"github.com/germanamz/pagecraft/pkg/chats/message"
	"github.com/germanamz/pagecraft/pkg/chats/role"
)

// Chat is an ordered conversation. The zero value is ready to use.
// Chat is not safe for concurrent use; callers must synchronize externally.
type Chat struct {
	messages []message.Message
}

// New creates a Chat pre-populated with the given messages.
func New(msgs ...message.Message) *Chat {
	return &Chat{messages: msgs}
}

// Append adds one or more messages to the conversation.
func (c *Chat) Append(msgs ...message.Message) {
	c.messages = append(c.messages, msgs...)
}

// Len returns the number of messages in the conversation.
func (c *Chat) Len() int {
	return len(c.messages)
}

// Messages returns a copy of all messages in the conversation.
func (c *Chat) Messages() []message.Message {
	cp := make([]message.Message, len(c.messages))
	copy(cp, c.messages)
	return cp
}

// Without returns a copy of the messages, skipping those with role r.
func (c *Chat) Without(r role.Role) []message.Message {
	out := make([]message.Message, 0, len(c.messages))
	for _, m := range c.messages {
		if m.Role != r {
			out = append(out, m)
		}
	}
	return out
}

// LastUser returns the content of the most recent user message, or an empty
// string if there is none. The most recent user message is the one that
// triggers a generation.
func (c *Chat) LastUser() string {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Role == role.User {
			return c.messages[i].Content
		}
	}
	return ""
}
