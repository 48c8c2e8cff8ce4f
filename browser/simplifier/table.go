package simplifier

import (
	"errors"
	"fmt"

	"github.com/chromedp/cdproto/cdp"

	"natbrowser/browser/virtualid"
)

var ErrElementNotFound = errors.New("element not found")

type Entry struct {
	ID            virtualid.VirtualID
	BackendNodeID cdp.BackendNodeID
	// Center is in page coordinates.
	Center  Point
	Element *Element
}

// Table maps the ids of one render to the elements they describe.
type Table struct {
	generator virtualid.VirtualIDGenerator
	entries   map[virtualid.VirtualID]*Entry
	order     []virtualid.VirtualID
	// Origin is the page scroll offset the render was taken at.
	Origin Point
}

func newTable(start int, origin Point) *Table {
	return &Table{
		generator: virtualid.NewIncrIntVirtualIDGenerator(start),
		entries:   map[virtualid.VirtualID]*Entry{},
		Origin:    origin,
	}
}

func (t *Table) add(e *Element) {
	e.ID = t.generator.Generate()
	t.entries[e.ID] = &Entry{
		ID:            e.ID,
		BackendNodeID: e.BackendNodeID,
		Center:        e.Bounds.Center(),
		Element:       e,
	}
	t.order = append(t.order, e.ID)
}

func (t *Table) Lookup(id virtualid.VirtualID) (*Entry, error) {
	if !t.generator.IsValidVirtualID(id) {
		return nil, fmt.Errorf("%w: id %s", ErrElementNotFound, id)
	}
	entry, ok := t.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %s", ErrElementNotFound, id)
	}
	return entry, nil
}

// ClientPoint converts an entry's center to window coordinates for input
// dispatch.
func (t *Table) ClientPoint(e *Entry) Point {
	return Point{X: e.Center.X - t.Origin.X, Y: e.Center.Y - t.Origin.Y}
}

func (t *Table) Entries() []*Entry {
	entries := make([]*Entry, len(t.order))
	for i, id := range t.order {
		entries[i] = t.entries[id]
	}
	return entries
}

func (t *Table) Len() int {
	return len(t.order)
}
