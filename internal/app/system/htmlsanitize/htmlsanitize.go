// Package htmlsanitize wraps bluemonday policies for member-supplied text.
//
// Profile descriptions may carry simple formatting, so Sanitize keeps a
// user-generated-content subset of HTML. Single-line fields (names,
// designations) go through Strip, which removes markup entirely.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugc    = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
)

// Sanitize keeps safe user-generated-content HTML and removes scripts,
// event handlers, and javascript: URLs.
func Sanitize(s string) string {
	return ugc.Sanitize(s)
}

// Strip removes all HTML, leaving plain text.
func Strip(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
