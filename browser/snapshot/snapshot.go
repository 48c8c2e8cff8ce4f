// Package snapshot decodes the columnar payload returned by
// DOMSnapshot.captureSnapshot into per-node accessors.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/domsnapshot"
)

var ErrMalformedSnapshot = errors.New("malformed snapshot")

// NoParent is the parent index of a root node.
const NoParent = -1

type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

type Attribute struct {
	Key   string
	Value string
}

// Snapshot is an immutable view over the first document of a capture.
type Snapshot struct {
	doc     *domsnapshot.DocumentSnapshot
	strings []string

	layoutCursor     map[int]int
	inputValueCursor map[int]int
	clickable        map[int]struct{}
}

func New(documents []*domsnapshot.DocumentSnapshot, strs []string) (*Snapshot, error) {
	if len(documents) == 0 || documents[0] == nil {
		return nil, fmt.Errorf("%w: no documents", ErrMalformedSnapshot)
	}
	doc := documents[0]
	if doc.Nodes == nil {
		return nil, fmt.Errorf("%w: document has no node tree", ErrMalformedSnapshot)
	}
	s := &Snapshot{
		doc:              doc,
		strings:          strs,
		layoutCursor:     map[int]int{},
		inputValueCursor: map[int]int{},
		clickable:        map[int]struct{}{},
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	if layout := doc.Layout; layout != nil {
		for cursor, nodeIndex := range layout.NodeIndex {
			// first layout entry for a node wins
			if _, ok := s.layoutCursor[int(nodeIndex)]; !ok {
				s.layoutCursor[int(nodeIndex)] = cursor
			}
		}
	}
	if iv := doc.Nodes.InputValue; iv != nil {
		for cursor, nodeIndex := range iv.Index {
			if cursor < len(iv.Value) {
				s.inputValueCursor[int(nodeIndex)] = cursor
			}
		}
	}
	if c := doc.Nodes.IsClickable; c != nil {
		for _, nodeIndex := range c.Index {
			s.clickable[int(nodeIndex)] = struct{}{}
		}
	}
	return s, nil
}

// Decode parses the raw JSON result of DOMSnapshot.captureSnapshot.
func Decode(data []byte) (*Snapshot, error) {
	var ret domsnapshot.CaptureSnapshotReturns
	if err := json.Unmarshal(data, &ret); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSnapshot, err)
	}
	return New(ret.Documents, ret.Strings)
}

func (s *Snapshot) validate() error {
	nodes := s.doc.Nodes
	n := len(nodes.NodeName)
	if len(nodes.ParentIndex) != n {
		return fmt.Errorf("%w: %d parent indices for %d nodes", ErrMalformedSnapshot, len(nodes.ParentIndex), n)
	}
	for _, column := range []struct {
		name string
		size int
	}{
		{"nodeValue", len(nodes.NodeValue)},
		{"backendNodeId", len(nodes.BackendNodeID)},
		{"attributes", len(nodes.Attributes)},
	} {
		if column.size != 0 && column.size != n {
			return fmt.Errorf("%w: %d %s entries for %d nodes", ErrMalformedSnapshot, column.size, column.name, n)
		}
	}
	for i, p := range nodes.ParentIndex {
		if p < NoParent || p >= int64(n) {
			return fmt.Errorf("%w: node %d has parent %d out of range", ErrMalformedSnapshot, i, p)
		}
	}
	if layout := s.doc.Layout; layout != nil && len(layout.Bounds) < len(layout.NodeIndex) {
		return fmt.Errorf("%w: %d layout bounds for %d layout nodes", ErrMalformedSnapshot, len(layout.Bounds), len(layout.NodeIndex))
	}
	return nil
}

func (s *Snapshot) Len() int {
	return len(s.doc.Nodes.NodeName)
}

func (s *Snapshot) str(idx domsnapshot.StringIndex) (string, bool) {
	if idx < 0 || int(idx) >= len(s.strings) {
		return "", false
	}
	return s.strings[idx], true
}

// Name returns the lower-cased node name.
func (s *Snapshot) Name(i int) string {
	name, _ := s.str(s.doc.Nodes.NodeName[i])
	return strings.ToLower(name)
}

func (s *Snapshot) Value(i int) (string, bool) {
	if i >= len(s.doc.Nodes.NodeValue) {
		return "", false
	}
	return s.str(s.doc.Nodes.NodeValue[i])
}

func (s *Snapshot) Parent(i int) int {
	return int(s.doc.Nodes.ParentIndex[i])
}

func (s *Snapshot) BackendNodeID(i int) cdp.BackendNodeID {
	if i >= len(s.doc.Nodes.BackendNodeID) {
		return 0
	}
	return s.doc.Nodes.BackendNodeID[i]
}

func (s *Snapshot) IsClickable(i int) bool {
	_, ok := s.clickable[i]
	return ok
}

// InputValue returns the current value of an input element.
func (s *Snapshot) InputValue(i int) (string, bool) {
	cursor, ok := s.inputValueCursor[i]
	if !ok {
		return "", false
	}
	return s.str(s.doc.Nodes.InputValue.Value[cursor])
}

// Bounds returns the laid-out box of node i in device pixels. Nodes that were
// not laid out have no bounds.
func (s *Snapshot) Bounds(i int) (Rect, bool) {
	cursor, ok := s.layoutCursor[i]
	if !ok {
		return Rect{}, false
	}
	b := s.doc.Layout.Bounds[cursor]
	if len(b) < 4 {
		return Rect{}, false
	}
	return Rect{X: b[0], Y: b[1], Width: b[2], Height: b[3]}, true
}

// Attributes resolves the requested keys on node i. Pairs with a negative
// value index are skipped, the first match per key wins and the scan stops
// once every key has been found. Results keep the node's attribute order.
func (s *Snapshot) Attributes(i int, keys []string) []Attribute {
	if i >= len(s.doc.Nodes.Attributes) || len(keys) == 0 {
		return nil
	}
	wanted := make(map[string]bool, len(keys))
	for _, k := range keys {
		wanted[k] = true
	}
	var found []Attribute
	flat := s.doc.Nodes.Attributes[i]
	for j := 0; j+1 < len(flat); j += 2 {
		if flat[j+1] < 0 {
			continue
		}
		key, ok := s.str(domsnapshot.StringIndex(flat[j]))
		if !ok || !wanted[key] {
			continue
		}
		value, ok := s.str(domsnapshot.StringIndex(flat[j+1]))
		if !ok {
			continue
		}
		found = append(found, Attribute{Key: key, Value: value})
		delete(wanted, key)
		if len(wanted) == 0 {
			break
		}
	}
	return found
}

func (s *Snapshot) DocumentURL() string {
	u, _ := s.str(s.doc.DocumentURL)
	return u
}
