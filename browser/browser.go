package browser

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/chromedp/cdproto/domsnapshot"
	"github.com/chromedp/chromedp"

	"natbrowser/browser/js/primitives"
	"natbrowser/browser/simplifier"
	"natbrowser/browser/snapshot"
	"natbrowser/browser/virtualid"
	"natbrowser/logging"
	"natbrowser/trajectory"
)

var (
	ErrStaleElement = errors.New("stale element")
	// ErrInvalidURL is returned before any navigation is attempted.
	ErrInvalidURL = errors.New("invalid url")
	// ErrNavigationFailed wraps page load errors such as unresolvable hosts.
	ErrNavigationFailed = errors.New("navigation failed")
)

type Browser struct {
	mu          *sync.Mutex
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	options     *Options
	table       *simplifier.Table
}

type Options struct {
	RunHeadful                        bool
	AttemptToDisableAutomationMessage bool
	WindowWidth                       int
	WindowHeight                      int
	// ActionTimeout bounds every chromedp action batch.
	ActionTimeout time.Duration
	// SettleDelay is waited after navigation, clicks and scrolls.
	SettleDelay time.Duration
	Simplifier  *simplifier.Options
}

const (
	DefaultWindowWidth   = 1280
	DefaultWindowHeight  = 1080
	DefaultActionTimeout = 30 * time.Second
	DefaultSettleDelay   = 1 * time.Second
)

func DefaultOptions() *Options {
	return &Options{
		WindowWidth:   DefaultWindowWidth,
		WindowHeight:  DefaultWindowHeight,
		ActionTimeout: DefaultActionTimeout,
		SettleDelay:   DefaultSettleDelay,
		Simplifier:    simplifier.DefaultOptions(),
	}
}

func NewBrowser(ctx context.Context, options *Options) *Browser {
	if options == nil {
		options = DefaultOptions()
	}
	ops := chromedp.DefaultExecAllocatorOptions[:]
	if options.RunHeadful {
		ops = append(ops, chromedp.Flag("headless", false))
	}
	if options.AttemptToDisableAutomationMessage {
		ops = append(ops, chromedp.UserAgent("Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36"))
		ops = append(ops, chromedp.Flag("enable-automation", false))
	}
	if options.WindowWidth > 0 && options.WindowHeight > 0 {
		ops = append(ops, chromedp.WindowSize(options.WindowWidth, options.WindowHeight))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, ops...)
	browserCtx, cancel := chromedp.NewContext(allocCtx)
	return &Browser{
		mu:          &sync.Mutex{},
		ctx:         browserCtx,
		cancel:      cancel,
		allocCancel: allocCancel,
		options:     options,
	}
}

func (b *Browser) Close() {
	b.cancel()
	b.allocCancel()
}

func (b *Browser) run(actions ...chromedp.Action) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	ctx := b.ctx
	if b.options.ActionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(b.ctx, b.options.ActionTimeout)
		defer cancel()
	}
	return chromedp.Run(ctx, actions...)
}

func (b *Browser) settle() chromedp.Action {
	return chromedp.Sleep(b.options.SettleDelay)
}

// AcceptAction executes a parsed command. Answers are not browser actions
// and are rejected.
func (b *Browser) AcceptAction(action *trajectory.BrowserAction) error {
	var err error
	switch action.Type {
	case trajectory.BrowserActionTypeScroll:
		err = b.Scroll(action.Direction)
	case trajectory.BrowserActionTypeClick:
		err = b.Click(action.ID)
	case trajectory.BrowserActionTypeType:
		err = b.SendKeys(action.ID, action.Text)
	case trajectory.BrowserActionTypeTypeSubmit:
		if err = b.SendKeys(action.ID, action.Text); err == nil {
			err = b.Enter()
		}
	case trajectory.BrowserActionTypeNavigate:
		err = b.Navigate(action.URL)
	default:
		return fmt.Errorf("unsupported browser action type: %s", action.Type)
	}
	if err != nil {
		return fmt.Errorf("error accepting action %q: %w", action.Command(), err)
	}
	return nil
}

func (b *Browser) Navigate(URL string) error {
	u, err := GetCanonicalURL(URL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidURL, err)
	} else if valid, err := IsValidURL(u); !valid {
		return fmt.Errorf("%w: %s: %w", ErrInvalidURL, u, err)
	}
	if err := b.run(chromedp.Navigate(u), b.settle()); err != nil {
		// a closed browser is not a page load error
		if b.ctx.Err() != nil {
			return err
		}
		return fmt.Errorf("%w: %s: %w", ErrNavigationFailed, u, err)
	}
	return nil
}

func (b *Browser) Scroll(direction trajectory.ScrollDirection) error {
	dir := primitives.ScrollDirectionDown
	if direction == trajectory.ScrollDirectionUp {
		dir = primitives.ScrollDirectionUp
	}
	return b.run(primitives.ScrollByWindow(dir), b.settle())
}

func (b *Browser) lookup(id virtualid.VirtualID) (*simplifier.Entry, simplifier.Point, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.table == nil {
		return nil, simplifier.Point{}, fmt.Errorf("%w: id %s: page has not been rendered", simplifier.ErrElementNotFound, id)
	}
	entry, err := b.table.Lookup(id)
	if err != nil {
		return nil, simplifier.Point{}, err
	}
	return entry, b.table.ClientPoint(entry), nil
}

// Click dispatches a mouse click at the center of the element rendered
// under id.
func (b *Browser) Click(id virtualid.VirtualID) error {
	entry, point, err := b.lookup(id)
	if err != nil {
		return err
	}
	return b.run(
		primitives.RemoveLinkTargets(),
		checkAttached(entry),
		chromedp.MouseClickXY(point.X, point.Y),
		b.settle(),
	)
}

// SendKeys clicks the element to focus it, then types text.
func (b *Browser) SendKeys(id virtualid.VirtualID, text string) error {
	if err := b.Click(id); err != nil {
		return err
	}
	return b.run(chromedp.KeyEvent(text))
}

func (b *Browser) Enter() error {
	return b.run(enterKey(), b.settle())
}

// Render captures the page and simplifies what is visible in the window.
// The returned table replaces the one used to resolve ids.
func (b *Browser) Render() (*simplifier.Result, error) {
	var (
		documents []*domsnapshot.DocumentSnapshot
		strs      []string
		geometry  primitives.ViewportGeometry
		location  string
	)
	if err := b.run(
		chromedp.Location(&location),
		primitives.ReadViewportGeometry(&geometry),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			documents, strs, err = domsnapshot.CaptureSnapshot([]string{}).
				WithIncludeDOMRects(true).
				WithIncludePaintOrder(true).
				Do(ctx)
			return err
		}),
	); err != nil {
		return nil, fmt.Errorf("error capturing snapshot: %w", err)
	}

	snap, err := snapshot.New(documents, strs)
	if err != nil {
		return nil, fmt.Errorf("error decoding snapshot for %s: %w", location, err)
	}
	result, err := simplifier.Simplify(snap, viewportFor(geometry), b.options.Simplifier)
	if err != nil {
		return nil, fmt.Errorf("error simplifying snapshot for %s: %w", location, err)
	}

	b.mu.Lock()
	b.table = result.Table
	b.mu.Unlock()

	logging.L().Debug("rendered page", "location", location, "elements", result.Table.Len())
	return result, nil
}

func viewportFor(g primitives.ViewportGeometry) simplifier.Viewport {
	return simplifier.Viewport{
		Left:             g.PageXOffset,
		Upper:            g.PageYOffset,
		Width:            g.ScreenWidth,
		Height:           g.ScreenHeight,
		DevicePixelRatio: g.DevicePixelRatio,
		Platform:         runtime.GOOS,
	}
}

func (b *Browser) Location() (string, error) {
	var url string
	if err := b.run(chromedp.Location(&url)); err != nil {
		return "", err
	}
	return url, nil
}
