package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIChatModel_Message(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 0,
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "CLICK 3"}}]
		}`))
	}))
	defer server.Close()

	model := NewOpenAIChatModel(ChatModelGPT4oMini, "test-key", server.URL)
	reply, err := model.Message(context.Background(), []*Message{
		{Role: MessageRoleSystem, Content: "you control a browser"},
		{Role: MessageRoleUser, Content: "objective"},
	}, &MessageOptions{Temperature: 0.5, MaxTokens: 50})
	require.NoError(t, err)
	assert.Equal(t, &Message{Role: MessageRoleAssistant, Content: "CLICK 3"}, reply)

	assert.Equal(t, "gpt-4o-mini", received["model"])
	assert.Equal(t, 0.5, received["temperature"])
	assert.Equal(t, float64(50), received["max_completion_tokens"])
	messages, ok := received["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, messages, 2)
}

func TestOpenAIChatModel_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "x", "object": "chat.completion", "created": 0, "model": "gpt-4", "choices": []}`))
	}))
	defer server.Close()

	model := NewOpenAIChatModel(ChatModelGPT4, "k", server.URL)
	_, err := model.Message(context.Background(), []*Message{{Role: MessageRoleUser, Content: "hi"}}, nil)
	var llmErr *Error
	require.True(t, errors.As(err, &llmErr))
	assert.Equal(t, "no_choices", llmErr.Code)
}

func TestOpenAIChatModel_InvalidRole(t *testing.T) {
	model := NewOpenAIChatModel(ChatModelGPT4, "k", "http://127.0.0.1:0")
	_, err := model.Message(context.Background(), []*Message{{Role: "tool", Content: "x"}}, nil)
	var llmErr *Error
	require.True(t, errors.As(err, &llmErr))
	assert.Equal(t, "invalid_role", llmErr.Code)
}

func TestContextLength(t *testing.T) {
	assert.Equal(t, 8192, ContextLength(ChatModelGPT4))
	assert.Equal(t, 128000, NewOpenAIChatModel(ChatModelGPT4o, "k", "").ContextLength())
	assert.Equal(t, DefaultContextLength, ContextLength("some-local-model"))
}

func TestError_Error(t *testing.T) {
	assert.Equal(t, "bad", (&Error{Message: "bad"}).Error())
	assert.Equal(t, "code: bad", (&Error{Code: "code", Message: "bad"}).Error())
}
