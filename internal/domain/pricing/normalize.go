package pricing

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	separatorRun  = regexp.MustCompile(`([-.])[-.]+`)

	trailingSuffixToken = regexp.MustCompile(`[-.](preview|beta|latest|v[0-9]+)$`)
	trailingDateToken   = regexp.MustCompile(`[-.][0-9]{8}$`)

	embeddedDateToken = regexp.MustCompile(`([-.])20[0-9]{6}([-.]|$)`)

	parenthesizedThinking = regexp.MustCompile(`(?i)\(thinking[^)]*\)`)
	trailingThinking      = regexp.MustCompile(`(?i)[-.]thinking(-[a-z0-9]+)?$`)
)

// Normalize converts a raw model display name to its canonical catalog key
// form. It is deterministic and idempotent on its own output: lowercase,
// URL-encoded colons decoded, isolated single-digit version separators
// rewritten to dots, and whitespace collapsed to single dashes.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "%3a", ":")
	s = normalizeVersionSeparators(s)
	s = whitespaceRun.ReplaceAllString(s, "-")
	return s
}

// normalizeVersionSeparators rewrites digit-dash-digit and digit-underscore-
// digit to digit-dot-digit, but only when both digits are isolated single
// digits: "4-5" becomes "4.5" while "llama-3-70b" keeps its dash because
// "70" is a longer digit run.
func normalizeVersionSeparators(s string) string {
	if len(s) < 3 {
		return s
	}
	b := []byte(s)
	for i := 1; i < len(b)-1; i++ {
		if b[i] != '-' && b[i] != '_' {
			continue
		}
		if !isDigit(b[i-1]) || !isDigit(b[i+1]) {
			continue
		}
		if i >= 2 && isDigit(b[i-2]) {
			continue
		}
		if i+2 < len(b) && isDigit(b[i+2]) {
			continue
		}
		b[i] = '.'
	}
	return string(b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// StripSuffixes removes trailing release-qualifier tokens (preview, beta,
// latest, v<digits>) and trailing 8-digit date tokens from an already
// normalized name. It returns the input unchanged when no such token is
// present, so callers can detect a change by comparing strings.
func StripSuffixes(name string) string {
	for {
		next := trailingDateToken.ReplaceAllString(name, "")
		next = trailingSuffixToken.ReplaceAllString(next, "")
		if next == name {
			return name
		}
		name = next
	}
}

// StripDates removes any dash- or dot-delimited 8-digit token beginning
// with "20" anywhere in an already normalized name, then collapses the
// resulting doubled separators and trims a trailing separator. It is a
// no-op when no date token is present.
func StripDates(name string) string {
	stripped := embeddedDateToken.ReplaceAllString(name, "$2")
	if stripped == name {
		return name
	}
	return tidySeparators(stripped)
}

// StripThinking removes a parenthesized "(thinking...)" segment anywhere in
// the name and a trailing "-thinking" or "-thinking-<token>" suffix,
// case-insensitively. It is a no-op when neither pattern is present.
func StripThinking(name string) string {
	stripped := parenthesizedThinking.ReplaceAllString(name, "")
	stripped = trailingThinking.ReplaceAllString(stripped, "")
	if stripped == name {
		return name
	}
	return tidySeparators(stripped)
}

// tidySeparators collapses runs of mixed dash/dot separators left behind by
// token removal and trims leading and trailing separators.
func tidySeparators(s string) string {
	s = separatorRun.ReplaceAllString(s, "$1")
	return strings.Trim(s, "-.")
}
