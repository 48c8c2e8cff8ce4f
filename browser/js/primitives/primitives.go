package primitives

import (
	"fmt"

	"github.com/chromedp/chromedp"
)

type ScrollDirection string

const (
	ScrollDirectionUp   ScrollDirection = "up"
	ScrollDirectionDown ScrollDirection = "down"
)

// ScrollByWindow scrolls the document by one window height.
func ScrollByWindow(direction ScrollDirection) chromedp.Action {
	sign := "+"
	if direction == ScrollDirectionUp {
		sign = "-"
	}
	js := fmt.Sprintf(`function scrollByWindow() {
	const el = document.scrollingElement || document.body;
	el.scrollTop = el.scrollTop %s window.innerHeight;
}
scrollByWindow();`, sign)
	return chromedp.Evaluate(js, nil)
}

// RemoveLinkTargets keeps navigation in the current tab.
func RemoveLinkTargets() chromedp.Action {
	const js = `function removeLinkTargets() {
	const links = document.getElementsByTagName("a");
	for (let i = 0; i < links.length; i++) {
		links[i].removeAttribute("target");
	}
}
removeLinkTargets();`
	return chromedp.Evaluate(js, nil)
}

type ViewportGeometry struct {
	DevicePixelRatio float64 `json:"devicePixelRatio"`
	PageXOffset      float64 `json:"pageXOffset"`
	PageYOffset      float64 `json:"pageYOffset"`
	ScreenWidth      float64 `json:"screenWidth"`
	ScreenHeight     float64 `json:"screenHeight"`
}

func ReadViewportGeometry(geometry *ViewportGeometry) chromedp.Action {
	const js = `(() => ({
	devicePixelRatio: window.devicePixelRatio,
	pageXOffset: window.pageXOffset,
	pageYOffset: window.pageYOffset,
	screenWidth: window.screen.width,
	screenHeight: window.screen.height,
}))()`
	return chromedp.Evaluate(js, geometry)
}
