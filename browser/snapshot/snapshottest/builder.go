// Package snapshottest builds DOMSnapshot payloads for tests.
package snapshottest

import (
	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/domsnapshot"

	"natbrowser/browser/snapshot"
)

// BackendNodeIDOffset is added to a node index to derive its backend node id.
const BackendNodeIDOffset = 1000

type Builder struct {
	strings  []string
	interned map[string]domsnapshot.StringIndex
	doc      *domsnapshot.DocumentSnapshot
}

func New(documentURL string) *Builder {
	b := &Builder{interned: map[string]domsnapshot.StringIndex{}}
	b.doc = &domsnapshot.DocumentSnapshot{
		DocumentURL: b.intern(documentURL),
		Nodes: &domsnapshot.NodeTreeSnapshot{
			InputValue:  &domsnapshot.RareStringData{},
			IsClickable: &domsnapshot.RareBooleanData{},
		},
		Layout: &domsnapshot.LayoutTreeSnapshot{},
	}
	return b
}

func (b *Builder) intern(s string) domsnapshot.StringIndex {
	if idx, ok := b.interned[s]; ok {
		return idx
	}
	idx := domsnapshot.StringIndex(len(b.strings))
	b.strings = append(b.strings, s)
	b.interned[s] = idx
	return idx
}

// Element appends an element node and returns its index. attrs alternates
// keys and values.
func (b *Builder) Element(parent int, name string, attrs ...string) int {
	flat := domsnapshot.ArrayOfStrings{}
	for i := 0; i+1 < len(attrs); i += 2 {
		flat = append(flat, int64(b.intern(attrs[i])), int64(b.intern(attrs[i+1])))
	}
	return b.add(parent, name, -1, flat)
}

func (b *Builder) Text(parent int, text string) int {
	return b.add(parent, "#text", b.intern(text), domsnapshot.ArrayOfStrings{})
}

func (b *Builder) add(parent int, name string, value domsnapshot.StringIndex, attrs domsnapshot.ArrayOfStrings) int {
	nodes := b.doc.Nodes
	idx := len(nodes.NodeName)
	nodes.ParentIndex = append(nodes.ParentIndex, int64(parent))
	nodes.NodeName = append(nodes.NodeName, b.intern(name))
	nodes.NodeValue = append(nodes.NodeValue, value)
	nodes.BackendNodeID = append(nodes.BackendNodeID, cdp.BackendNodeID(idx+BackendNodeIDOffset))
	nodes.Attributes = append(nodes.Attributes, attrs)
	return idx
}

// RawAttribute appends a raw key/value index pair, allowing negative value
// indices.
func (b *Builder) RawAttribute(node int, key string, value domsnapshot.StringIndex) *Builder {
	attrs := b.doc.Nodes.Attributes
	attrs[node] = append(attrs[node], int64(b.intern(key)), int64(value))
	return b
}

// Layout records a box in device pixels.
func (b *Builder) Layout(node int, x, y, width, height float64) *Builder {
	l := b.doc.Layout
	l.NodeIndex = append(l.NodeIndex, int64(node))
	l.Bounds = append(l.Bounds, domsnapshot.Rectangle{x, y, width, height})
	return b
}

func (b *Builder) Clickable(node int) *Builder {
	c := b.doc.Nodes.IsClickable
	c.Index = append(c.Index, int64(node))
	return b
}

func (b *Builder) InputValue(node int, value string) *Builder {
	iv := b.doc.Nodes.InputValue
	iv.Index = append(iv.Index, int64(node))
	iv.Value = append(iv.Value, b.intern(value))
	return b
}

// SetParent rewrites the parent of node, e.g. to build forward references.
func (b *Builder) SetParent(node, parent int) *Builder {
	b.doc.Nodes.ParentIndex[node] = int64(parent)
	return b
}

func (b *Builder) Build() ([]*domsnapshot.DocumentSnapshot, []string) {
	return []*domsnapshot.DocumentSnapshot{b.doc}, b.strings
}

func (b *Builder) Snapshot() (*snapshot.Snapshot, error) {
	return snapshot.New(b.Build())
}
