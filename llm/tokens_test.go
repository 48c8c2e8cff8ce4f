package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCounter(t *testing.T) {
	counter, err := NewTokenCounter()
	require.NoError(t, err)

	n, err := counter.Count("hello world")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = counter.Count("")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	total, err := counter.CountMessages([]*Message{
		{Role: MessageRoleSystem, Content: "hello world"},
		{Role: MessageRoleUser, Content: "hello world"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2*(2+perMessageOverhead), total)
}
