// Package engtag normalizes engineering ticket references embedded in PR
// titles ("eng-707", "[ENG 707]", "(eng#707)") into a trailing "#eng707"
// hashtag.
package engtag

import (
	"regexp"
	"strings"
)

var (
	// Literal "eng", one optional separator, then digits.
	tagPattern    = regexp.MustCompile(`(?i)\beng[-#\s]?(\d+)\b`)
	emptyBrackets = regexp.MustCompile(`\[\s*\]|\(\s*\)`)
	whitespace    = regexp.MustCompile(`\s+`)
)

// Extract finds the first eng ticket reference in title. It returns the
// canonical tag ("eng<digits>") and the title with the reference (and any
// wrapping brackets) removed. When no reference exists, ok is false and
// cleaned is the title unchanged. At most one tag is ever extracted.
func Extract(title string) (tag, cleaned string, ok bool) {
	loc := tagPattern.FindStringSubmatchIndex(title)
	if loc == nil {
		return "", title, false
	}
	digits := title[loc[2]:loc[3]]

	start, end := loc[0], loc[1]
	if start > 0 && end < len(title) {
		open, close := title[start-1], title[end]
		if (open == '[' && close == ']') || (open == '(' && close == ')') {
			start--
			end++
		}
	}

	cleaned = title[:start] + title[end:]
	cleaned = emptyBrackets.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(whitespace.ReplaceAllString(cleaned, " "))
	return "eng" + digits, cleaned, true
}

// Normalize rewrites title so its eng reference becomes a trailing
// "#eng<digits>" hashtag. A title without a reference passes through
// unchanged; a title that is only the reference becomes just the hashtag.
func Normalize(title string) string {
	tag, cleaned, ok := Extract(title)
	if !ok {
		return title
	}
	if cleaned == "" {
		return "#" + tag
	}
	return cleaned + " #" + tag
}
