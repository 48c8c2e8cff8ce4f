package simplifier

import (
	"strings"

	"natbrowser/browser/snapshot"
)

const textNodeName = "#text"

// bufferEntry is a fragment harvested from a descendant of an interactive
// element: either text or an attribute.
type bufferEntry struct {
	attribute bool
	key       string
	value     string
}

// candidate is a visible node that survived aggregation.
type candidate struct {
	node       int
	name       string
	text       string
	attributes []snapshot.Attribute
	clickable  bool
	bounds     Rect
}

type aggregator struct {
	snap          *snapshot.Snapshot
	names         []string
	owners        *owners
	attributeKeys []string

	buffers    map[int][]bufferEntry
	candidates []*candidate
}

func newAggregator(snap *snapshot.Snapshot, names []string, o *owners, attributeKeys []string) *aggregator {
	return &aggregator{
		snap:          snap,
		names:         names,
		owners:        o,
		attributeKeys: attributeKeys,
		buffers:       map[int][]bufferEntry{},
	}
}

// isSeparator reports text that only separates links visually.
func isSeparator(text string) bool {
	t := strings.TrimSpace(text)
	return t == "|" || t == "•"
}

func (a *aggregator) add(i int, bounds Rect) {
	name := a.names[i]
	owner, owned := a.owners.ownerOf(i)

	if name == textNodeName && owned {
		if text, ok := a.snap.Value(i); ok && !isSeparator(text) {
			if t := strings.TrimSpace(text); t != "" {
				a.buffers[owner] = append(a.buffers[owner], bufferEntry{value: t})
			}
		}
		return
	}

	attrs := a.snap.Attributes(i, a.attributeKeys)
	if (name == "input" && attributeValue(attrs, "type") == "submit") || name == buttonTag {
		name = buttonTag
		attrs = withoutAttribute(attrs, "type")
	}

	var meta []snapshot.Attribute
	for _, attr := range attrs {
		if owned {
			a.buffers[owner] = append(a.buffers[owner], bufferEntry{attribute: true, key: attr.Key, value: attr.Value})
		} else {
			meta = append(meta, attr)
		}
	}

	var text string
	if value, ok := a.snap.Value(i); ok {
		if isSeparator(value) {
			return
		}
		text = strings.TrimSpace(value)
	} else if a.names[i] == "input" {
		if value, ok := a.snap.InputValue(i); ok {
			text = strings.TrimSpace(value)
		}
	}

	// content of owned nodes has been folded into the owner
	if owned && name != anchorTag && name != buttonTag {
		return
	}

	a.candidates = append(a.candidates, &candidate{
		node:       i,
		name:       name,
		text:       text,
		attributes: meta,
		clickable:  a.snap.IsClickable(i),
		bounds:     bounds,
	})
}

func attributeValue(attrs []snapshot.Attribute, key string) string {
	for _, attr := range attrs {
		if attr.Key == key {
			return attr.Value
		}
	}
	return ""
}

func withoutAttribute(attrs []snapshot.Attribute, key string) []snapshot.Attribute {
	kept := attrs[:0:0]
	for _, attr := range attrs {
		if attr.Key != key {
			kept = append(kept, attr)
		}
	}
	return kept
}

// flush merges the owner buffer of c into its own text and metadata.
func (a *aggregator) flush(c *candidate) (text string, attrs []snapshot.Attribute) {
	parts := []string{}
	if c.text != "" {
		parts = append(parts, c.text)
	}
	attrs = append(attrs, c.attributes...)
	for _, entry := range a.buffers[c.node] {
		if entry.attribute {
			attrs = append(attrs, snapshot.Attribute{Key: entry.key, Value: entry.value})
		} else {
			parts = append(parts, entry.value)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " ")), attrs
}
