package llm

import (
	"fmt"

	"github.com/tiktoken-go/tokenizer"
)

// perMessageOverhead approximates the role and framing tokens the chat
// format adds around every message.
const perMessageOverhead = 4

type TokenCounter struct {
	codec tokenizer.Codec
}

func NewTokenCounter() (*TokenCounter, error) {
	codec, err := tokenizer.Get(tokenizer.Cl100kBase)
	if err != nil {
		return nil, fmt.Errorf("error loading tokenizer: %w", err)
	}
	return &TokenCounter{codec: codec}, nil
}

func (c *TokenCounter) Count(text string) (int, error) {
	ids, _, err := c.codec.Encode(text)
	if err != nil {
		return 0, fmt.Errorf("error encoding text: %w", err)
	}
	return len(ids), nil
}

func (c *TokenCounter) CountMessages(messages []*Message) (int, error) {
	total := 0
	for _, message := range messages {
		n, err := c.Count(message.Content)
		if err != nil {
			return 0, err
		}
		total += n + perMessageOverhead
	}
	return total, nil
}
