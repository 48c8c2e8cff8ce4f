package simplifier

import (
	"fmt"
	"strings"

	"github.com/chromedp/cdproto/cdp"

	"natbrowser/browser/snapshot"
	"natbrowser/browser/virtualid"
)

type Tag string

const (
	TagLink   Tag = "link"
	TagInput  Tag = "input"
	TagImg    Tag = "img"
	TagButton Tag = "button"
	TagText   Tag = "text"
)

// tagFor maps a node name to the output vocabulary. Some pages attach click
// handlers to plain elements, so anything clickable reads as a button.
func tagFor(name string, clickable bool) Tag {
	switch {
	case name == anchorTag:
		return TagLink
	case name == "input":
		return TagInput
	case name == "img":
		return TagImg
	case name == buttonTag || clickable:
		return TagButton
	default:
		return TagText
	}
}

type Element struct {
	ID            virtualid.VirtualID
	NodeIndex     int
	BackendNodeID cdp.BackendNodeID
	NodeName      string
	Tag           Tag
	Text          string
	Attributes    []snapshot.Attribute
	Clickable     bool
	Bounds        Rect
}

func (e *Element) String() string {
	var meta strings.Builder
	for _, attr := range e.Attributes {
		fmt.Fprintf(&meta, " %s=%q", attr.Key, attr.Value)
	}
	if e.Text != "" {
		return fmt.Sprintf("<%s id=%s%s>%s</%s>", e.Tag, e.ID, meta.String(), e.Text, e.Tag)
	}
	return fmt.Sprintf("<%s id=%s%s/>", e.Tag, e.ID, meta.String())
}

func suppressed(name string, tag Tag, text string, attrs []snapshot.Attribute) bool {
	if tag == TagButton && len(attrs) > 0 {
		return false
	}
	switch tag {
	case TagLink, TagInput, TagImg:
		return false
	}
	return name != "textarea" && text == ""
}

type Result struct {
	URL      string
	Lines    []string
	Elements []*Element
	Table    *Table
}

func (r *Result) String() string {
	return strings.Join(r.Lines, "\n")
}

// blankURL is the header line of a document without a URL.
const blankURL = "about:blank"

func (a *aggregator) serialize(url string, v Viewport, includeURL bool) *Result {
	start := 0
	result := &Result{URL: url}
	if includeURL {
		start = 1
		header := url
		if header == "" {
			header = blankURL
		}
		result.Lines = append(result.Lines, header)
	}
	table := newTable(start, Point{X: v.Left, Y: v.Upper})
	for _, c := range a.candidates {
		text, attrs := a.flush(c)
		tag := tagFor(c.name, c.clickable)
		if suppressed(c.name, tag, text, attrs) {
			continue
		}
		e := &Element{
			NodeIndex:     c.node,
			BackendNodeID: a.snap.BackendNodeID(c.node),
			NodeName:      c.name,
			Tag:           tag,
			Text:          text,
			Attributes:    attrs,
			Clickable:     c.clickable,
			Bounds:        c.bounds,
		}
		table.add(e)
		result.Elements = append(result.Elements, e)
		result.Lines = append(result.Lines, e.String())
	}
	result.Table = table
	return result
}
