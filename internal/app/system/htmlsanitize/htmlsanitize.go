// internal/app/system/htmlsanitize/htmlsanitize.go
package htmlsanitize

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

// richTextPolicy is the UGC policy plus the table markup the admin editor
// produces.
func richTextPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowAttrs("colspan", "rowspan").OnElements("td", "th")
		p.AllowAttrs("class").OnElements("table")
		p.AllowStyles("width", "text-align").OnElements("table", "tr", "td", "th")
		policy = p
	})
	return policy
}

// Sanitize strips scripts, event handlers and unsafe URLs from rich text.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return richTextPolicy().Sanitize(s)
}
