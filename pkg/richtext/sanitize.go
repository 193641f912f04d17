package richtext

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// Sanitize strips anything outside the user-generated-content allow list.
func Sanitize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(contentPolicy().Sanitize(trimmed))
}

func contentPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.RequireNoFollowOnLinks(false)
		p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("p", "span", "code", "pre")
		p.AllowAttrs("loading").Matching(bluemonday.Paragraph).OnElements("img")
		policy = p
	})
	return policy
}
