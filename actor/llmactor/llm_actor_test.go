package llmactor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"natbrowser/actor"
	"natbrowser/llm"
	"natbrowser/trajectory"
)

type fakeChatModel struct {
	reply         string
	err           error
	contextLength int
	received      [][]*llm.Message
}

func (m *fakeChatModel) Message(_ context.Context, messages []*llm.Message, _ *llm.MessageOptions) (*llm.Message, error) {
	m.received = append(m.received, messages)
	if m.err != nil {
		return nil, m.err
	}
	return &llm.Message{Role: llm.MessageRoleAssistant, Content: m.reply}, nil
}

func (m *fakeChatModel) ContextLength() int {
	if m.contextLength == 0 {
		return 128000
	}
	return m.contextLength
}

func newState() *actor.State {
	return &actor.State{
		Objective:       "find the library hours",
		URL:             "https://example.com",
		PreviousCommand: "CLICK 1",
		BrowserContent:  "<input id=0 title=\"Search\"/>",
	}
}

func TestNextAction(t *testing.T) {
	model := &fakeChatModel{reply: "  TYPESUBMIT 0 \"library hours\"\nbecause the search box is visible"}
	a := NewLLMActor(model, nil, nil)

	next, debug, err := a.NextAction(context.Background(), newState())
	require.NoError(t, err)
	assert.Equal(t, trajectory.NewBrowserTypeAction(0, "library hours", true), next)
	require.NotNil(t, debug)
	assert.False(t, debug.ShouldRender())
	assert.Contains(t, debug.GetText(), "OBJECTIVE: find the library hours")

	require.Len(t, model.received, 1)
	assert.Equal(t, llm.MessageRoleSystem, model.received[0][0].Role)
}

func TestNextAction_InvalidCommand(t *testing.T) {
	model := &fakeChatModel{reply: "I would click the search box"}
	a := NewLLMActor(model, nil, nil)

	next, _, err := a.NextAction(context.Background(), newState())
	require.NoError(t, err)
	failed, ok := next.(*trajectory.ErrorActionFailed)
	require.True(t, ok)
	assert.Equal(t, "I would click the search box", failed.Command)
	assert.Contains(t, failed.Reason, trajectory.ErrInvalidCommand.Error())
}

func TestNextAction_ModelError(t *testing.T) {
	model := &fakeChatModel{err: errors.New("rate limited")}
	a := NewLLMActor(model, nil, nil)

	_, _, err := a.NextAction(context.Background(), newState())
	assert.ErrorContains(t, err, "rate limited")
}

func TestNextAction_ContextLengthExceeded(t *testing.T) {
	counter, err := llm.NewTokenCounter()
	require.NoError(t, err)
	model := &fakeChatModel{reply: "SCROLL DOWN", contextLength: 100}
	a := NewLLMActor(model, counter, nil)

	next, _, err := a.NextAction(context.Background(), newState())
	require.NoError(t, err)
	exceeded, ok := next.(*trajectory.ErrorMaxContextLengthExceeded)
	require.True(t, ok)
	assert.InDelta(t, 90, exceeded.ContextLengthAllowed, 1)
	assert.Greater(t, exceeded.ContextLengthReceived, exceeded.ContextLengthAllowed)
	assert.Empty(t, model.received)
}

func TestBuildMessages_Truncates(t *testing.T) {
	a := NewLLMActor(&fakeChatModel{}, nil, &Options{MaxContentLength: 10, MaxURLLength: 5}).(*LLMActor)
	state := newState()
	state.BrowserContent = strings.Repeat("c", 50)
	state.URL = "https://example.com/very/long"

	messages := a.BuildMessages(state)
	require.Len(t, messages, 2)
	step := messages[1].Content
	assert.Contains(t, step, "\n"+strings.Repeat("c", 10)+"\n")
	assert.NotContains(t, step, strings.Repeat("c", 11))
	assert.Contains(t, step, "CURRENT URL: https\n")
	assert.Contains(t, step, "PREVIOUS COMMAND: CLICK 1\n")
	assert.True(t, strings.HasSuffix(step, "YOUR COMMAND:"))
}
