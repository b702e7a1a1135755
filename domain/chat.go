package domain

// ChatRole identifies the author of a chat entry.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one entry of a conversation, in the provider-neutral
// {role, content} form. The process-wide chat history is an append-only
// sequence of these.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}
