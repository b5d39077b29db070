// Package browser wraps chromedp with the small set of element operations
// the portal scrapers need: per-operation timeouts, visibility waits, text
// and HTML extraction, and a distinguished timeout error class.
package browser
