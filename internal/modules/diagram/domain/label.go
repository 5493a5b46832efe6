package domain

import (
	"regexp"
	"strings"
	"unicode"
)

var parenGloss = regexp.MustCompile(`\(([^)]+)\)`)

// NormalizeLabel turns a raw morpheme-tagged token into display text.
func NormalizeLabel(raw string) string {
	if hasConjunctionMarker(raw) {
		return ConjunctionLabel
	}
	base, gloss := raw, ""
	for _, entry := range tamLexicon {
		if idx := strings.Index(raw, "_"+entry.Key); idx >= 0 {
			base, gloss = raw[:idx], entry.Gloss
			break
		}
	}
	if match := parenGloss.FindStringSubmatch(raw); match != nil {
		base = match[1]
	}
	label := stripDigits(cutUnderscore(base))
	if gloss == "" {
		return label
	}
	return label + " (" + gloss + ")"
}

// hasConjunctionMarker reports whether one of the letter runs in raw is the
// conjunction marker, so glosses like "conjure" do not match.
func hasConjunctionMarker(raw string) bool {
	segments := strings.FieldsFunc(raw, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, segment := range segments {
		if strings.EqualFold(segment, conjunctionMarker) {
			return true
		}
	}
	return false
}

func cutUnderscore(s string) string {
	before, _, _ := strings.Cut(s, "_")
	return before
}

func stripDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return -1
		}
		return r
	}, s)
}

func isPlaceholder(raw string) bool {
	return strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]")
}

// placeholderText strips brackets, underscores and digits from raw.
func placeholderText(raw string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '[' || r == ']' || r == '_':
			return -1
		case r >= '0' && r <= '9':
			return -1
		}
		return r
	}, raw)
}
