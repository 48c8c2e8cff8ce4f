package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

type OpenAIChatModel struct {
	client  openai.Client
	modelID ChatModelID
}

// NewOpenAIChatModel uses the public API unless baseURL is set.
func NewOpenAIChatModel(modelID ChatModelID, apiKey string, baseURL string) *OpenAIChatModel {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIChatModel{
		client:  openai.NewClient(opts...),
		modelID: modelID,
	}
}

func (m *OpenAIChatModel) ContextLength() int {
	return ContextLength(m.modelID)
}

func (m *OpenAIChatModel) Message(ctx context.Context, messages []*Message, options *MessageOptions) (*Message, error) {
	params, err := m.buildParams(messages, options)
	if err != nil {
		return nil, err
	}
	resp, err := m.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("error requesting chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, &Error{Code: "no_choices", Message: "invalid response, no choices"}
	}
	return &Message{
		Role:    MessageRoleAssistant,
		Content: resp.Choices[0].Message.Content,
	}, nil
}

func (m *OpenAIChatModel) buildParams(messages []*Message, options *MessageOptions) (openai.ChatCompletionNewParams, error) {
	converted := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, message := range messages {
		switch message.Role {
		case MessageRoleSystem:
			converted = append(converted, openai.SystemMessage(message.Content))
		case MessageRoleUser:
			converted = append(converted, openai.UserMessage(message.Content))
		case MessageRoleAssistant:
			converted = append(converted, openai.AssistantMessage(message.Content))
		default:
			return openai.ChatCompletionNewParams{}, &Error{Code: "invalid_role", Message: fmt.Sprintf("unsupported message role: %s", message.Role)}
		}
	}
	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(m.modelID),
		Messages: converted,
	}
	if options != nil {
		params.Temperature = openai.Float(options.Temperature)
		if options.MaxTokens > 0 {
			params.MaxCompletionTokens = openai.Int(int64(options.MaxTokens))
		}
	}
	return params, nil
}
