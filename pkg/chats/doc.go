// Package chats provides a provider-agnostic data model for generation
// conversations.
//
// It is organized into sub-packages:
//   - [github.com/germanamz/pagecraft/pkg/chats/role]: conversation roles (system, user, assistant)
//   - [github.com/germanamz/pagecraft/pkg/chats/message]: role-tagged text messages
//   - [github.com/germanamz/pagecraft/pkg/chats/chat]: ordered conversation container
//
// No provider or API code is included; adapters build on it.
package chats
