package trajectory

type DebugDisplayType string

const (
	DebugDisplayTypeBrowser DebugDisplayType = "browser"
	DebugDisplayTypePrompt  DebugDisplayType = "prompt"
)

// DebugRenderedDisplay carries verbose output that is logged but never
// shown in the trajectory text.
type DebugRenderedDisplay struct {
	DontHandoff
	DontRender

	Type DebugDisplayType `json:"type"`
	Text string           `json:"text"`
}

func NewDebugRenderedDisplay(typ DebugDisplayType, text string) *DebugRenderedDisplay {
	return &DebugRenderedDisplay{
		Type: typ,
		Text: text,
	}
}

func (d *DebugRenderedDisplay) GetText() string {
	return d.Text
}

func (d *DebugRenderedDisplay) GetAbbreviatedText() string {
	return d.Text
}
