// Package htmlsanitize strips markup from user-supplied text before it is
// relayed to the spreadsheet or rendered into a receipt.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict removes every tag and attribute.
var strict = bluemonday.StrictPolicy()

// maxPasses bounds how many layers of entity encoding are peeled off.
const maxPasses = 4

// PlainText removes all HTML from s and returns the remaining text with
// entities decoded, so "Tom &amp; Jerry" stays readable as "Tom & Jerry".
// Entities are decoded before stripping as well, so "&lt;script&gt;" is
// removed like the tag it spells instead of coming out as markup.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	for i := 0; i < maxPasses; i++ {
		next := html.UnescapeString(strict.Sanitize(html.UnescapeString(s)))
		if next == s {
			break
		}
		s = next
	}
	return strings.TrimSpace(s)
}
