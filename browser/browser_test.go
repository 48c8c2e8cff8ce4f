package browser

import (
	"context"
	goruntime "runtime"
	"testing"

	"github.com/chromedp/cdproto/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"natbrowser/browser/js/primitives"
	"natbrowser/browser/simplifier"
	"natbrowser/trajectory"
)

func TestGetCanonicalURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "google.com", want: "http://google.com"},
		{in: " https://example.com/a ", want: "https://example.com/a"},
		{in: "file:///tmp/x.html", want: "file:///tmp/x.html"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := GetCanonicalURL(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := GetCanonicalURL("  ")
	assert.Error(t, err)
}

func TestIsValidURL(t *testing.T) {
	valid, err := IsValidURL("http://example.com")
	assert.True(t, valid)
	assert.NoError(t, err)

	valid, err = IsValidURL("")
	assert.False(t, valid)
	assert.Error(t, err)

	valid, err = IsValidURL("not a url")
	assert.False(t, valid)
	assert.Error(t, err)
}

func TestViewportFor(t *testing.T) {
	v := viewportFor(primitives.ViewportGeometry{
		DevicePixelRatio: 2,
		PageXOffset:      10,
		PageYOffset:      800,
		ScreenWidth:      1280,
		ScreenHeight:     1080,
	})
	assert.Equal(t, simplifier.Viewport{
		Left:             10,
		Upper:            800,
		Width:            1280,
		Height:           1080,
		DevicePixelRatio: 2,
		Platform:         goruntime.GOOS,
	}, v)
}

func TestClick_BeforeRender(t *testing.T) {
	b := NewBrowser(context.Background(), nil)
	defer b.Close()

	err := b.Click(0)
	assert.ErrorIs(t, err, simplifier.ErrElementNotFound)

	err = b.AcceptAction(trajectory.NewBrowserTypeAction(3, "text", true))
	assert.ErrorIs(t, err, simplifier.ErrElementNotFound)
}

func TestAcceptAction_Answer(t *testing.T) {
	b := NewBrowser(context.Background(), nil)
	defer b.Close()

	err := b.AcceptAction(trajectory.NewBrowserAnswerAction("done"))
	assert.ErrorContains(t, err, "unsupported browser action type")
}

func TestNavigate_InvalidURL(t *testing.T) {
	b := NewBrowser(context.Background(), nil)
	defer b.Close()

	for _, u := range []string{"", "   ", "not a url"} {
		err := b.Navigate(u)
		assert.ErrorIs(t, err, ErrInvalidURL, "url %q", u)
		assert.NotErrorIs(t, err, ErrNavigationFailed)
	}

	err := b.AcceptAction(trajectory.NewBrowserNavigateAction("exa mple.com"))
	assert.ErrorIs(t, err, ErrInvalidURL)
}

func TestConnected(t *testing.T) {
	ok, err := connected(&runtime.RemoteObject{Type: runtime.TypeBoolean, Value: []byte("true")}, nil)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = connected(&runtime.RemoteObject{Type: runtime.TypeBoolean, Value: []byte("false")}, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = connected(nil, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = connected(nil, &runtime.ExceptionDetails{Text: "Uncaught"})
	assert.ErrorContains(t, err, "Uncaught")
}
