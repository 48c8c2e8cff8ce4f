package trajectory

import (
	"fmt"

	"natbrowser/browser/virtualid"
	"natbrowser/utils/stringsx"
)

type BrowserActionType string

const (
	BrowserActionTypeScroll     BrowserActionType = "scroll"
	BrowserActionTypeClick      BrowserActionType = "click"
	BrowserActionTypeType       BrowserActionType = "type"
	BrowserActionTypeTypeSubmit BrowserActionType = "type_submit"
	BrowserActionTypeNavigate   BrowserActionType = "navigate"
	BrowserActionTypeAnswer     BrowserActionType = "answer"
)

type ScrollDirection string

const (
	ScrollDirectionUp   ScrollDirection = "up"
	ScrollDirectionDown ScrollDirection = "down"
)

type BrowserAction struct {
	DontHandoff
	Render

	Type      BrowserActionType   `json:"type"`
	ID        virtualid.VirtualID `json:"id"`
	Text      string              `json:"text,omitempty"`
	Direction ScrollDirection     `json:"direction,omitempty"`
	URL       string              `json:"url,omitempty"`
}

func NewBrowserScrollAction(direction ScrollDirection) *BrowserAction {
	return &BrowserAction{
		Type:      BrowserActionTypeScroll,
		Direction: direction,
	}
}

func NewBrowserClickAction(id virtualid.VirtualID) *BrowserAction {
	return &BrowserAction{
		Type: BrowserActionTypeClick,
		ID:   id,
	}
}

func NewBrowserTypeAction(id virtualid.VirtualID, text string, submit bool) *BrowserAction {
	typ := BrowserActionTypeType
	if submit {
		typ = BrowserActionTypeTypeSubmit
	}
	return &BrowserAction{
		Type: typ,
		ID:   id,
		Text: text,
	}
}

func NewBrowserNavigateAction(url string) *BrowserAction {
	return &BrowserAction{
		Type: BrowserActionTypeNavigate,
		URL:  url,
	}
}

func NewBrowserAnswerAction(text string) *BrowserAction {
	return &BrowserAction{
		Type: BrowserActionTypeAnswer,
		Text: text,
	}
}

// IsTerminal reports whether the action ends the task.
func (a *BrowserAction) IsTerminal() bool {
	return a.Type == BrowserActionTypeAnswer
}

func (a *BrowserAction) GetText() string {
	return fmt.Sprintf("action: %s", a.Command())
}

func (a *BrowserAction) GetAbbreviatedText() string {
	return a.GetText()
}

const DefaultObservationAbbreviationLength = 100

type BrowserObservation struct {
	DontHandoff
	Render

	Location string `json:"location"`
	Content  string `json:"content"`
}

func NewBrowserObservation(location string, content string) *BrowserObservation {
	return &BrowserObservation{
		Location: location,
		Content:  content,
	}
}

func (o *BrowserObservation) GetText() string {
	return fmt.Sprintf("observation: %s\n%s", o.Location, o.Content)
}

func (o *BrowserObservation) GetAbbreviatedText() string {
	text := o.GetText()
	if short := stringsx.Truncate(text, DefaultObservationAbbreviationLength); short != text {
		return short + "..."
	}
	return text
}
