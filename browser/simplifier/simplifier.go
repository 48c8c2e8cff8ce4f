// Package simplifier turns a DOM snapshot into a short pseudo-markup
// description of the visible interactive and textual elements, together with
// a table that resolves each synthetic id back to the element's position and
// backend identity.
//
// Every call works on fresh state, so calls on different snapshots may run
// concurrently.
package simplifier

import (
	"time"

	"natbrowser/browser/snapshot"
	"natbrowser/logging"
)

var ErrMalformedSnapshot = snapshot.ErrMalformedSnapshot

func Simplify(snap *snapshot.Snapshot, viewport Viewport, options *Options) (*Result, error) {
	start := time.Now()
	opts := resolveOptions(options)

	n := snap.Len()
	names := make([]string, n)
	for i := range names {
		names[i] = snap.Name(i)
	}
	owners, err := classify(names, snap.Parent)
	if err != nil {
		return nil, err
	}

	filter := newViewportFilter(viewport, opts.Denylist)
	agg := newAggregator(snap, names, owners, opts.AttributeKeys)
	for i := 0; i < n; i++ {
		bounds, ok := filter.visible(snap, i, names[i])
		if !ok {
			continue
		}
		agg.add(i, bounds)
	}

	result := agg.serialize(snap.DocumentURL(), viewport, opts.IncludeURL)
	logging.L().Debug("simplified snapshot",
		"nodes", n,
		"elements", len(result.Elements),
		"duration", time.Since(start),
	)
	return result, nil
}
