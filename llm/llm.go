package llm

import (
	"context"
)

type ChatModelID string

const (
	ChatModelGPT35Turbo ChatModelID = "gpt-3.5-turbo"
	ChatModelGPT4       ChatModelID = "gpt-4"
	ChatModelGPT4o      ChatModelID = "gpt-4o"
	ChatModelGPT4oMini  ChatModelID = "gpt-4o-mini"

	DefaultChatModel = ChatModelGPT4oMini
)

// DefaultContextLength is assumed for models missing from contextLengths.
const DefaultContextLength = 8192

var contextLengths = map[ChatModelID]int{
	ChatModelGPT35Turbo: 16385,
	ChatModelGPT4:       8192,
	ChatModelGPT4o:      128000,
	ChatModelGPT4oMini:  128000,
}

func ContextLength(modelID ChatModelID) int {
	if n, ok := contextLengths[modelID]; ok {
		return n
	}
	return DefaultContextLength
}

type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

type MessageRole string

const (
	MessageRoleSystem    MessageRole = "system"
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

type MessageOptions struct {
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

type ChatModel interface {
	Message(ctx context.Context, messages []*Message, options *MessageOptions) (*Message, error)
	ContextLength() int
}

type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return e.Code + ": " + e.Message
	}
	return e.Message
}
