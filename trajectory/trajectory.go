package trajectory

import (
	"strings"

	"natbrowser/utils/slicesx"
)

type Trajectory struct {
	Items []TrajectoryItem
}

// GetText renders the items meant for display, one per line.
func (t *Trajectory) GetText() string {
	rendered := slicesx.Filter(t.Items, func(item TrajectoryItem, _ int) bool {
		return item.ShouldRender()
	})
	if len(rendered) == 0 {
		return ""
	}
	itemTexts := slicesx.Map(rendered, func(item TrajectoryItem, _ int) string {
		return item.GetAbbreviatedText()
	})
	return strings.Join(itemTexts, "\n")
}

func (t *Trajectory) AddItem(item TrajectoryItem) {
	t.Items = append(t.Items, item)
}

func (t *Trajectory) AddItems(items []TrajectoryItem) {
	t.Items = append(t.Items, items...)
}

// LastAction returns the most recent browser action, if any.
func (t *Trajectory) LastAction() (*BrowserAction, bool) {
	for i := len(t.Items) - 1; i >= 0; i-- {
		if action, ok := t.Items[i].(*BrowserAction); ok {
			return action, true
		}
	}
	return nil, false
}

type TrajectoryItem interface {
	GetAbbreviatedText() string
	GetText() string
	ShouldHandoff() bool
	ShouldRender() bool
}

type TrajectoryStreamEvent struct {
	TrajectoryItem TrajectoryItem
	Error          error
}

type Handoff struct{}
type DontHandoff struct{}
type Render struct{}
type DontRender struct{}

func (h Handoff) ShouldHandoff() bool {
	return true
}

func (d DontHandoff) ShouldHandoff() bool {
	return false
}

func (r Render) ShouldRender() bool {
	return true
}

func (d DontRender) ShouldRender() bool {
	return false
}
