package report

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"
)

// CleanMarkdown strips the outer code fence LLMs like to wrap answers in,
// whatever language tag the opening fence carries.
func CleanMarkdown(input string) string {
	cleaned := strings.TrimSpace(input)
	if !strings.HasPrefix(cleaned, "```") || !strings.HasSuffix(cleaned, "```") {
		return cleaned
	}

	body := strings.TrimSuffix(cleaned, "```")
	body = strings.TrimPrefix(body, "```")
	if idx := strings.IndexByte(body, '\n'); idx >= 0 {
		// Drop the language tag on the opening fence line, if any.
		if tag := strings.TrimSpace(body[:idx]); tag != "" && !strings.ContainsAny(tag, " \t") {
			body = body[idx+1:]
		}
	}
	return strings.TrimSpace(body)
}

// ValidateMarkdown reports whether the string parses to a non-empty Markdown
// document. Goldmark is permissive, so this guards against empty or grossly
// corrupted output, not style.
func ValidateMarkdown(input string) bool {
	if strings.TrimSpace(input) == "" {
		return false
	}
	root := goldmark.DefaultParser().Parse(text.NewReader([]byte(input)))
	return root != nil && root.HasChildren()
}
