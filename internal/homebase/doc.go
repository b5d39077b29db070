// Package homebase scrapes today's instructor shifts from the Homebase web
// portal through a browser session. The shift dashboard renders differently
// per viewport width, so lookups fall back through one selector set per
// layout.
package homebase
