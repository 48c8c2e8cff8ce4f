package simplifier

import (
	"fmt"

	"natbrowser/browser/snapshot"
)

const (
	anchorTag = "a"
	buttonTag = "button"
)

// ancestry records whether a node sits under an element of the classifier's
// tag and, if so, which one. A node of that tag owns itself.
type ancestry struct {
	owned bool
	owner int
}

var rootAncestry = ancestry{owned: false, owner: snapshot.NoParent}

type resolveState uint8

const (
	unresolved resolveState = iota
	resolving
	resolved
)

// classifier memoizes ancestry for one tag over one snapshot. Node order in a
// snapshot is not guaranteed to be parent-first, so records are resolved by
// ascending to the nearest resolved ancestor and filling the chain downwards.
type classifier struct {
	tag     string
	names   []string
	parent  func(int) int
	records []ancestry
	depth   []int
	state   []resolveState
}

func newClassifier(tag string, names []string, parent func(int) int) *classifier {
	return &classifier{
		tag:     tag,
		names:   names,
		parent:  parent,
		records: make([]ancestry, len(names)),
		depth:   make([]int, len(names)),
		state:   make([]resolveState, len(names)),
	}
}

func (c *classifier) resolve(i int) (ancestry, error) {
	var chain []int
	n := i
	for n != snapshot.NoParent && c.state[n] != resolved {
		if c.state[n] == resolving {
			return ancestry{}, fmt.Errorf("%w: parent cycle through node %d", ErrMalformedSnapshot, n)
		}
		c.state[n] = resolving
		chain = append(chain, n)
		n = c.parent(n)
	}

	parent, parentDepth := rootAncestry, -1
	if n != snapshot.NoParent {
		parent, parentDepth = c.records[n], c.depth[n]
	}
	for j := len(chain) - 1; j >= 0; j-- {
		node := chain[j]
		var rec ancestry
		switch {
		case c.names[node] == c.tag:
			// nested elements of the same tag restart ownership at themselves
			rec = ancestry{owned: true, owner: node}
		case parent.owned:
			rec = parent
		default:
			rec = rootAncestry
		}
		c.records[node] = rec
		c.depth[node] = parentDepth + 1
		c.state[node] = resolved
		parent, parentDepth = rec, parentDepth+1
	}
	return c.records[i], nil
}

// owners holds the anchor and button ancestry of every node.
type owners struct {
	anchor *classifier
	button *classifier
}

func classify(names []string, parent func(int) int) (*owners, error) {
	o := &owners{
		anchor: newClassifier(anchorTag, names, parent),
		button: newClassifier(buttonTag, names, parent),
	}
	for i := range names {
		if _, err := o.anchor.resolve(i); err != nil {
			return nil, err
		}
		if _, err := o.button.resolve(i); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// ownerOf returns the interactive element that absorbs node i's content. When
// both an anchor and a button enclose the node, the nearest one by tree
// distance wins and a tie goes to the anchor.
func (o *owners) ownerOf(i int) (int, bool) {
	a, b := o.anchor.records[i], o.button.records[i]
	switch {
	case a.owned && b.owned:
		if o.button.depth[b.owner] > o.anchor.depth[a.owner] {
			return b.owner, true
		}
		return a.owner, true
	case a.owned:
		return a.owner, true
	case b.owned:
		return b.owner, true
	}
	return snapshot.NoParent, false
}
