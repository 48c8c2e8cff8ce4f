package snapshot_test

import (
	"testing"

	"github.com/chromedp/cdproto/cdp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"natbrowser/browser/snapshot"
	"natbrowser/browser/snapshot/snapshottest"
)

func TestSnapshot_Accessors(t *testing.T) {
	b := snapshottest.New("https://example.com/")
	html := b.Element(-1, "HTML")
	input := b.Element(html, "INPUT", "type", "text", "placeholder", "Search")
	text := b.Text(html, "hello")
	b.Layout(input, 10, 20, 30, 40).Clickable(input).InputValue(input, "typed")

	s, err := b.Snapshot()
	require.NoError(t, err)

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, "https://example.com/", s.DocumentURL())
	assert.Equal(t, "input", s.Name(input))
	assert.Equal(t, "#text", s.Name(text))
	assert.Equal(t, html, s.Parent(input))
	assert.Equal(t, snapshot.NoParent, s.Parent(html))
	assert.Equal(t, cdp.BackendNodeID(input+snapshottest.BackendNodeIDOffset), s.BackendNodeID(input))
	assert.True(t, s.IsClickable(input))
	assert.False(t, s.IsClickable(html))

	v, ok := s.Value(text)
	assert.True(t, ok)
	assert.Equal(t, "hello", v)
	_, ok = s.Value(input)
	assert.False(t, ok)

	v, ok = s.InputValue(input)
	assert.True(t, ok)
	assert.Equal(t, "typed", v)

	r, ok := s.Bounds(input)
	assert.True(t, ok)
	assert.Equal(t, snapshot.Rect{X: 10, Y: 20, Width: 30, Height: 40}, r)
	_, ok = s.Bounds(html)
	assert.False(t, ok)
}

func TestSnapshot_Attributes(t *testing.T) {
	t.Run("first match wins and order is kept", func(t *testing.T) {
		b := snapshottest.New("")
		n := b.Element(-1, "IMG", "alt", "first", "title", "t", "alt", "second")
		s, err := b.Snapshot()
		require.NoError(t, err)

		attrs := s.Attributes(n, []string{"title", "alt"})
		assert.Equal(t, []snapshot.Attribute{{Key: "alt", Value: "first"}, {Key: "title", Value: "t"}}, attrs)
	})

	t.Run("negative value index is skipped", func(t *testing.T) {
		b := snapshottest.New("")
		n := b.Element(-1, "INPUT")
		b.RawAttribute(n, "type", -1)
		s, err := b.Snapshot()
		require.NoError(t, err)

		assert.Empty(t, s.Attributes(n, []string{"type"}))
	})

	t.Run("absent key is not an error", func(t *testing.T) {
		b := snapshottest.New("")
		n := b.Element(-1, "DIV", "class", "x")
		s, err := b.Snapshot()
		require.NoError(t, err)

		assert.Empty(t, s.Attributes(n, []string{"alt", "title"}))
	})
}

func TestNew_Malformed(t *testing.T) {
	t.Run("no documents", func(t *testing.T) {
		_, err := snapshot.New(nil, nil)
		assert.ErrorIs(t, err, snapshot.ErrMalformedSnapshot)
	})

	t.Run("parent out of range", func(t *testing.T) {
		b := snapshottest.New("")
		n := b.Element(-1, "HTML")
		b.SetParent(n, 7)
		_, err := b.Snapshot()
		assert.ErrorIs(t, err, snapshot.ErrMalformedSnapshot)
	})
}

func TestDecode(t *testing.T) {
	raw := []byte(`{
		"documents": [{
			"documentURL": 0,
			"nodes": {
				"parentIndex": [-1, 0],
				"nodeType": [1, 3],
				"nodeName": [1, 2],
				"nodeValue": [-1, 3],
				"backendNodeId": [5, 6],
				"attributes": [[4, 5], []],
				"isClickable": {"index": [0]}
			},
			"layout": {
				"nodeIndex": [0, 1],
				"bounds": [[0, 0, 100, 20], [2, 2, 50, 10]]
			}
		}],
		"strings": ["https://a.test/", "A", "#text", "Docs", "title", "Read the docs"]
	}`)

	s, err := snapshot.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, "a", s.Name(0))
	assert.True(t, s.IsClickable(0))
	assert.Equal(t, cdp.BackendNodeID(6), s.BackendNodeID(1))
	assert.Equal(t, []snapshot.Attribute{{Key: "title", Value: "Read the docs"}}, s.Attributes(0, []string{"title"}))

	_, err = snapshot.Decode([]byte(`{"documents": [`))
	assert.ErrorIs(t, err, snapshot.ErrMalformedSnapshot)
}
