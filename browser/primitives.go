package browser

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
	"github.com/yosssi/gohtml"

	"natbrowser/browser/simplifier"
	"natbrowser/utils/stringsx"
)

const isConnectedFunction = `function() { return this.isConnected; }`

// checkAttached fails with ErrStaleElement when the node behind entry was
// collected or has been removed from the document since the render.
func checkAttached(entry *simplifier.Entry) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		obj, err := dom.ResolveNode().WithBackendNodeID(entry.BackendNodeID).Do(ctx)
		if err != nil {
			return fmt.Errorf("%w: id %s (backend node %d): %v", ErrStaleElement, entry.ID, entry.BackendNodeID, err)
		}
		defer func() {
			_ = runtime.ReleaseObject(obj.ObjectID).Do(ctx)
		}()
		res, exc, err := runtime.CallFunctionOn(isConnectedFunction).
			WithObjectID(obj.ObjectID).
			WithReturnByValue(true).
			Do(ctx)
		if err != nil {
			return err
		}
		ok, err := connected(res, exc)
		if err != nil {
			return err
		} else if !ok {
			return fmt.Errorf("%w: id %s (backend node %d): detached from document", ErrStaleElement, entry.ID, entry.BackendNodeID)
		}
		return nil
	})
}

// connected reads the result of isConnectedFunction.
func connected(res *runtime.RemoteObject, exc *runtime.ExceptionDetails) (bool, error) {
	if exc != nil {
		return false, fmt.Errorf("error checking node: %s", exc.Text)
	}
	if res == nil {
		return false, nil
	}
	return string(res.Value) == "true", nil
}

func enterKey() chromedp.Action {
	return chromedp.KeyEvent(kb.Enter)
}

// HTML returns the indented outer HTML of the current document.
func (b *Browser) HTML() (string, error) {
	var html string
	if err := b.run(chromedp.ActionFunc(func(ctx context.Context) error {
		node, err := dom.GetDocument().Do(ctx)
		if err != nil {
			return err
		}
		html, err = dom.GetOuterHTML().WithNodeID(node.NodeID).Do(ctx)
		return err
	})); err != nil {
		return "", fmt.Errorf("error getting html: %w", err)
	}
	return stringsx.ReduceNewlines(gohtml.Format(html), 2), nil
}
