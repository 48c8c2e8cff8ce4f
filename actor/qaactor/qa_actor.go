// Package qaactor answers a question about a rendered page. Pages longer
// than one chunk are sent to the model piece by piece and the partial
// answers are collected.
package qaactor

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"natbrowser/llm"
	"natbrowser/logging"
	"natbrowser/utils/stringsx"
)

//go:embed system_prompt_to_answer_question.txt
var systemPromptToAnswerQuestion string

const (
	DefaultChunkSize   = 5500
	DefaultTemperature = 0.3
	DefaultMaxTokens   = 250
)

// noAnswer is the reply the prompt asks for when a chunk holds no answer.
const noAnswer = "NONE"

type Options struct {
	// ChunkSize is the number of characters of page content per request.
	ChunkSize   int
	Temperature float64
	MaxTokens   int
}

func DefaultOptions() *Options {
	return &Options{
		ChunkSize:   DefaultChunkSize,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	}
}

type QAActor struct {
	ChatModel    llm.ChatModel
	SystemPrompt string
	Options      *Options
}

func NewQAActor(chatModel llm.ChatModel, options *Options) *QAActor {
	if options == nil {
		options = DefaultOptions()
	}
	return &QAActor{
		ChatModel:    chatModel,
		SystemPrompt: systemPromptToAnswerQuestion,
		Options:      options,
	}
}

// Answer holds one reply per chunk of page content, in page order.
type Answer struct {
	Question string
	Parts    []string
}

// String joins the parts that carry an answer.
func (a *Answer) String() string {
	var found []string
	for _, part := range a.Parts {
		if part != "" && !strings.EqualFold(part, noAnswer) {
			found = append(found, part)
		}
	}
	if len(found) == 0 {
		return noAnswer
	}
	return strings.Join(found, "\n")
}

func (a *QAActor) BuildMessages(question string, content string) []*llm.Message {
	step := fmt.Sprintf(`CURRENT BROWSER CONTENT:
------------------
%s
------------------
QUESTION: %s
YOUR ANSWER:`, content, question)
	return []*llm.Message{
		{
			Role:    llm.MessageRoleSystem,
			Content: a.SystemPrompt,
		},
		{
			Role:    llm.MessageRoleUser,
			Content: step,
		},
	}
}

func (a *QAActor) Answer(ctx context.Context, question string, content string) (*Answer, error) {
	chunks := stringsx.Chunk(content, a.Options.ChunkSize)
	answer := &Answer{Question: question, Parts: make([]string, 0, len(chunks))}
	for i, chunk := range chunks {
		res, err := a.ChatModel.Message(ctx, a.BuildMessages(question, chunk), &llm.MessageOptions{
			Temperature: a.Options.Temperature,
			MaxTokens:   a.Options.MaxTokens,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to answer chunk %d of %d: %w", i+1, len(chunks), err)
		}
		part := strings.TrimSpace(res.Content)
		logging.From(ctx).Debug("answered chunk", "chunk", i+1, "chunks", len(chunks), "reply", part)
		answer.Parts = append(answer.Parts, part)
	}
	return answer, nil
}
