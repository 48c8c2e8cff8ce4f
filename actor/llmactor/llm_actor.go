package llmactor

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"natbrowser/actor"
	"natbrowser/llm"
	"natbrowser/logging"
	"natbrowser/trajectory"
	"natbrowser/utils/stringsx"
)

//go:embed system_prompt_to_act_on_browser.txt
var systemPromptToActOnBrowser string

const (
	DefaultMaxContentLength = 4500
	DefaultMaxURLLength     = 100
	DefaultTemperature      = 0.5
	DefaultMaxTokens        = 50
)

type Options struct {
	// MaxContentLength and MaxURLLength are measured in characters.
	MaxContentLength int
	MaxURLLength     int
	Temperature      float64
	MaxTokens        int
}

func DefaultOptions() *Options {
	return &Options{
		MaxContentLength: DefaultMaxContentLength,
		MaxURLLength:     DefaultMaxURLLength,
		Temperature:      DefaultTemperature,
		MaxTokens:        DefaultMaxTokens,
	}
}

type LLMActor struct {
	ChatModel    llm.ChatModel
	Counter      *llm.TokenCounter
	SystemPrompt string
	Options      *Options
}

func NewLLMActor(chatModel llm.ChatModel, counter *llm.TokenCounter, options *Options) actor.Actor {
	if options == nil {
		options = DefaultOptions()
	}
	return &LLMActor{
		ChatModel:    chatModel,
		Counter:      counter,
		SystemPrompt: systemPromptToActOnBrowser,
		Options:      options,
	}
}

const maxTokenContextWindowMarginProportion float32 = 0.1

// BuildMessages renders the prompt for one step. Content and URL are
// truncated before they reach the model.
func (a *LLMActor) BuildMessages(state *actor.State) []*llm.Message {
	step := fmt.Sprintf(`CURRENT BROWSER CONTENT:
------------------
%s
------------------
OBJECTIVE: %s
CURRENT URL: %s
PREVIOUS COMMAND: %s
YOUR COMMAND:`,
		stringsx.Truncate(state.BrowserContent, a.Options.MaxContentLength),
		state.Objective,
		stringsx.Truncate(state.URL, a.Options.MaxURLLength),
		state.PreviousCommand,
	)
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

func (a *LLMActor) NextAction(ctx context.Context, state *actor.State) (nextAction trajectory.TrajectoryItem, debug trajectory.TrajectoryItem, err error) {
	messages := a.BuildMessages(state)
	debug = trajectory.NewDebugRenderedDisplay(trajectory.DebugDisplayTypePrompt, renderDebugDisplay(messages))

	if a.Counter != nil {
		approxNumTokens, err := a.Counter.CountMessages(messages)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to count prompt tokens: %w", err)
		}
		allowed := int(float32(a.ChatModel.ContextLength()) * (1 - maxTokenContextWindowMarginProportion))
		if approxNumTokens+a.Options.MaxTokens > allowed {
			return trajectory.NewErrorMaxContextLengthExceeded(allowed, approxNumTokens+a.Options.MaxTokens), debug, nil
		}
	}

	res, err := a.ChatModel.Message(ctx, messages, &llm.MessageOptions{
		Temperature: a.Options.Temperature,
		MaxTokens:   a.Options.MaxTokens,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate message: %w", err)
	}
	reply := strings.TrimSpace(res.Content)
	action, err := trajectory.ParseCommand(reply)
	if errors.Is(err, trajectory.ErrInvalidCommand) {
		logging.From(ctx).Warn("model replied with an invalid command", "reply", reply)
		return trajectory.NewErrorActionFailed(stringsx.FirstLine(reply), err), debug, nil
	} else if err != nil {
		return nil, nil, err
	}
	return action, debug, nil
}

func renderDebugDisplay(messages []*llm.Message) string {
	messageTexts := make([]string, len(messages))
	for i, message := range messages {
		messageTexts[i] = fmt.Sprintf("%s: %s", message.Role, message.Content)
	}
	return strings.Join(messageTexts, "\n")
}
