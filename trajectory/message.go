package trajectory

import (
	"fmt"

	"natbrowser/utils/stringsx"
)

type MessageAuthor string

const (
	MessageAuthorUser  MessageAuthor = "user"
	MessageAuthorAgent MessageAuthor = "agent"
)

const DefaultAgentMessageAbbreviationLength = 100

type Message struct {
	Handoff
	Render

	Author MessageAuthor `json:"author"`
	Text   string        `json:"text"`
}

func NewMessage(author MessageAuthor, text string) *Message {
	return &Message{
		Author: author,
		Text:   text,
	}
}

func (m *Message) GetText() string {
	return fmt.Sprintf("%s: %s", m.Author, m.Text)
}

func (m *Message) GetAbbreviatedText() string {
	if m.Author == MessageAuthorAgent {
		if short := stringsx.Truncate(m.Text, DefaultAgentMessageAbbreviationLength); short != m.Text {
			return fmt.Sprintf("%s: %s...", m.Author, short)
		}
	}
	return m.GetText()
}
