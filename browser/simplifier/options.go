package simplifier

import "runtime"

// Viewport is the visible window at capture time, in CSS pixels.
type Viewport struct {
	// Left and Upper are the page scroll offsets.
	Left   float64
	Upper  float64
	Width  float64
	Height float64

	DevicePixelRatio float64
	// Platform is the host GOOS; empty means runtime.GOOS.
	Platform string
}

type Options struct {
	// Denylist holds lower-cased node names that are never emitted.
	Denylist []string
	// AttributeKeys are the attributes harvested as element metadata.
	AttributeKeys []string
	// IncludeURL prepends the document URL as the first output line and
	// starts ids at 1.
	IncludeURL bool
}

func DefaultDenylist() []string {
	return []string{"html", "head", "title", "meta", "iframe", "body", "script", "style", "path", "svg", "br", "::marker"}
}

func DefaultAttributeKeys() []string {
	return []string{"type", "placeholder", "aria-label", "title", "alt"}
}

func DefaultOptions() *Options {
	return &Options{
		Denylist:      DefaultDenylist(),
		AttributeKeys: DefaultAttributeKeys(),
	}
}

func resolveOptions(options *Options) *Options {
	resolved := DefaultOptions()
	if options != nil {
		if len(options.Denylist) > 0 {
			resolved.Denylist = options.Denylist
		}
		if len(options.AttributeKeys) > 0 {
			resolved.AttributeKeys = options.AttributeKeys
		}
		resolved.IncludeURL = options.IncludeURL
	}
	return resolved
}

// EffectiveDevicePixelRatio applies the platform override: macOS reports a
// ratio of 1 on high-density displays, which is treated as 2.
func (v Viewport) EffectiveDevicePixelRatio() float64 {
	platform := v.Platform
	if platform == "" {
		platform = runtime.GOOS
	}
	dpr := v.DevicePixelRatio
	if dpr <= 0 {
		dpr = 1
	}
	if platform == "darwin" && dpr == 1 {
		return 2
	}
	return dpr
}
