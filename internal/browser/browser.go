package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// DefaultRemoteURL is the DevTools endpoint used when the remote-browser
// toggle is set (typically a browser running in a Docker container).
const DefaultRemoteURL = "ws://localhost:9222"

// ErrTimeout is the timeout-class failure: an element never appeared (or
// never went away) within its wait budget. Callers abandon the browser
// session when they see it.
var ErrTimeout = errors.New("timed out waiting for element")

// IsTimeout reports whether err is a timeout-class failure.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// Options controls how the browser session is created.
type Options struct {
	// Headless runs the browser without a visible window.
	Headless bool
	// KeepOpen leaves the browser running after the session is closed.
	KeepOpen bool
	// Remote connects to an already-running browser at RemoteURL instead
	// of launching one.
	Remote    bool
	RemoteURL string
}

// Browser is one automated browser session. All element waits take a
// per-operation timeout; a zero timeout means a single immediate attempt.
type Browser struct {
	ctx      context.Context
	cancels  []context.CancelFunc
	keepOpen bool
}

// New launches (or connects to) a browser and returns a ready session.
func New(parent context.Context, opts Options) (*Browser, error) {
	b := &Browser{keepOpen: opts.KeepOpen}

	var allocCtx context.Context
	var cancel context.CancelFunc
	if opts.Remote {
		url := opts.RemoteURL
		if url == "" {
			url = DefaultRemoteURL
		}
		allocCtx, cancel = chromedp.NewRemoteAllocator(parent, url)
	} else {
		execOpts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("incognito", true),
			chromedp.Flag("headless", opts.Headless),
		)
		allocCtx, cancel = chromedp.NewExecAllocator(parent, execOpts...)
	}
	b.cancels = append(b.cancels, cancel)

	ctx, cancel := chromedp.NewContext(allocCtx)
	b.cancels = append(b.cancels, cancel)
	b.ctx = ctx

	// Start the browser process now so a launch failure surfaces here
	// rather than on the first navigation.
	if err := chromedp.Run(ctx); err != nil {
		b.Close()
		return nil, fmt.Errorf("starting browser: %w", err)
	}

	return b, nil
}

// Close tears the session down. With KeepOpen set the browser process is
// left running for inspection and only the parent association is dropped.
func (b *Browser) Close() {
	if b.keepOpen {
		return
	}
	for i := len(b.cancels) - 1; i >= 0; i-- {
		b.cancels[i]()
	}
}

// run executes actions under an optional per-operation deadline, mapping
// deadline expiry to ErrTimeout.
func (b *Browser) run(timeout time.Duration, actions ...chromedp.Action) error {
	ctx := b.ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(b.ctx, timeout)
		defer cancel()
	}

	if err := chromedp.Run(ctx, actions...); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return err
	}
	return nil
}

// Navigate loads the given URL.
func (b *Browser) Navigate(url string) error {
	if err := b.run(0, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	return nil
}

// WaitReady waits until the element matching the selector is present in the
// DOM, visible or not.
func (b *Browser) WaitReady(sel string, timeout time.Duration) error {
	if err := b.run(timeout, chromedp.WaitReady(sel, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("waiting for %q: %w", sel, err)
	}
	return nil
}

// WaitHidden waits until the element matching the selector is either gone
// from the DOM or styled display:none.
func (b *Browser) WaitHidden(sel string, timeout time.Duration) error {
	expr := fmt.Sprintf(
		`(() => { const el = document.querySelector(%q); return !el || getComputedStyle(el).display === "none"; })()`,
		sel)
	if err := b.run(timeout, chromedp.Poll(expr, nil, chromedp.WithPollingInterval(250*time.Millisecond))); err != nil {
		return fmt.Errorf("waiting for %q to clear: %w", sel, err)
	}
	return nil
}

// Click waits for the element to be visible and clicks it.
func (b *Browser) Click(sel string, timeout time.Duration) error {
	if err := b.run(timeout,
		chromedp.WaitVisible(sel, chromedp.ByQuery),
		chromedp.Click(sel, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("clicking %q: %w", sel, err)
	}
	return nil
}

// SendKeys waits for the element to be visible and types into it.
func (b *Browser) SendKeys(sel, value string, timeout time.Duration) error {
	if err := b.run(timeout,
		chromedp.WaitVisible(sel, chromedp.ByQuery),
		chromedp.SendKeys(sel, value, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("typing into %q: %w", sel, err)
	}
	return nil
}

// Text returns the trimmed text content of the first element matching the
// selector.
func (b *Browser) Text(sel string, timeout time.Duration) (string, error) {
	var out string
	if err := b.run(timeout,
		chromedp.WaitReady(sel, chromedp.ByQuery),
		chromedp.Text(sel, &out, chromedp.ByQuery),
	); err != nil {
		return "", fmt.Errorf("reading text of %q: %w", sel, err)
	}
	return strings.TrimSpace(out), nil
}

// Texts returns the trimmed text content of every element matching the
// selector, in document order.
func (b *Browser) Texts(sel string, timeout time.Duration) ([]string, error) {
	expr := fmt.Sprintf(
		`Array.from(document.querySelectorAll(%q)).map(el => el.textContent.trim())`,
		sel)
	var out []string
	if err := b.run(timeout,
		chromedp.WaitReady(sel, chromedp.ByQuery),
		chromedp.Evaluate(expr, &out),
	); err != nil {
		return nil, fmt.Errorf("reading texts of %q: %w", sel, err)
	}
	return out, nil
}

// OuterHTML returns the outer HTML of the first element matching the
// selector, for handing off to an HTML parser.
func (b *Browser) OuterHTML(sel string, timeout time.Duration) (string, error) {
	var out string
	if err := b.run(timeout,
		chromedp.WaitReady(sel, chromedp.ByQuery),
		chromedp.OuterHTML(sel, &out, chromedp.ByQuery),
	); err != nil {
		return "", fmt.Errorf("reading HTML of %q: %w", sel, err)
	}
	return out, nil
}

// Exists reports whether the element matching the selector appears in the
// DOM before the timeout.
func (b *Browser) Exists(sel string, timeout time.Duration) bool {
	return b.run(timeout, chromedp.WaitReady(sel, chromedp.ByQuery)) == nil
}

// Hover moves the pointer over the element, triggering hover-driven menus.
// Dispatching the event from script keeps this independent of window size.
func (b *Browser) Hover(sel string, timeout time.Duration) error {
	expr := fmt.Sprintf(
		`document.querySelector(%q).dispatchEvent(new MouseEvent("mouseover", {bubbles: true}))`,
		sel)
	if err := b.run(timeout,
		chromedp.WaitVisible(sel, chromedp.ByQuery),
		chromedp.Evaluate(expr, nil),
	); err != nil {
		return fmt.Errorf("hovering over %q: %w", sel, err)
	}
	return nil
}

// Sleep pauses the session, for pages that finish rendering shortly after
// their loading indicator clears.
func (b *Browser) Sleep(d time.Duration) {
	_ = b.run(0, chromedp.Sleep(d))
}
