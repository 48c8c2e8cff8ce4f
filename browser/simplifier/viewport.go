package simplifier

import "natbrowser/browser/snapshot"

type Point struct {
	X float64
	Y float64
}

// Rect is a laid-out box in CSS pixels.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// window is the half-open visible region [left, right) x [upper, lower).
type window struct {
	left  float64
	right float64
	upper float64
	lower float64
}

type viewportFilter struct {
	win      window
	dpr      float64
	denylist map[string]bool
}

func newViewportFilter(v Viewport, denylist []string) *viewportFilter {
	deny := make(map[string]bool, len(denylist))
	for _, name := range denylist {
		deny[name] = true
	}
	return &viewportFilter{
		win: window{
			left:  v.Left,
			right: v.Left + v.Width,
			upper: v.Upper,
			lower: v.Upper + v.Height,
		},
		dpr:      v.EffectiveDevicePixelRatio(),
		denylist: deny,
	}
}

// visible reports the normalized box of node i when it is rendered, not
// denylisted and at least partially inside the window.
func (f *viewportFilter) visible(snap *snapshot.Snapshot, i int, name string) (Rect, bool) {
	if f.denylist[name] {
		return Rect{}, false
	}
	raw, ok := snap.Bounds(i)
	if !ok {
		return Rect{}, false
	}
	r := Rect{
		X:      raw.X / f.dpr,
		Y:      raw.Y / f.dpr,
		Width:  raw.Width / f.dpr,
		Height: raw.Height / f.dpr,
	}
	return r, f.win.intersects(r)
}

func (w window) intersects(r Rect) bool {
	return r.X < w.right &&
		r.X+r.Width >= w.left &&
		r.Y < w.lower &&
		r.Y+r.Height >= w.upper
}
