package sanitization

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	blankLines    = regexp.MustCompile(`\n{3,}`)
)

// stripControl drops control characters, keeping newlines and tabs when keepLines is set.
func stripControl(input string, keepLines bool) string {
	return strings.Map(func(r rune) rune {
		if keepLines && (r == '\n' || r == '\t') {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, input)
}

// SanitizeString collapses whitespace and removes control characters. The
// result is single line, which keeps it safe for email subjects and headers.
func SanitizeString(input string) string {
	safe := stripControl(whitespaceRun.ReplaceAllString(input, " "), false)
	return strings.TrimSpace(safe)
}

// SanitizeEmail lowercases and trims an email address
func SanitizeEmail(input string) string {
	return strings.ToLower(SanitizeString(input))
}

// SanitizeName normalizes a person's name. Accented letters are kept.
func SanitizeName(input string) string {
	return SanitizeString(input)
}

// SanitizeMessage normalizes line endings, drops control characters and
// squeezes runs of blank lines. Escaping happens at render time.
func SanitizeMessage(input string) string {
	msg := strings.ReplaceAll(input, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = stripControl(msg, true)
	msg = blankLines.ReplaceAllString(msg, "\n\n")
	return strings.TrimSpace(msg)
}
