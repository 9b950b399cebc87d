// Package htmlsanitize wraps bluemonday policies for user-supplied content.
//
// Two levels are provided: Sanitize keeps a small set of safe formatting
// tags (for content fields rendered as HTML), Strip removes all markup
// (for plain-text fields like usernames and activity actions).
package htmlsanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	once   sync.Once
	ugc    *bluemonday.Policy
	strict *bluemonday.Policy
)

func policies() (*bluemonday.Policy, *bluemonday.Policy) {
	once.Do(func() {
		ugc = bluemonday.UGCPolicy()
		strict = bluemonday.StrictPolicy()
	})
	return ugc, strict
}

// Sanitize removes dangerous HTML (scripts, event handlers, javascript:
// URLs) while keeping common formatting and links.
func Sanitize(s string) string {
	p, _ := policies()
	return p.Sanitize(s)
}

// Strip removes all HTML markup, returning plain text only.
func Strip(s string) string {
	_, p := policies()
	return strings.TrimSpace(p.Sanitize(s))
}
