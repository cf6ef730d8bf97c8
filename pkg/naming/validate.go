package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsLegacyKey reports whether a key has the legacy five-part shape
// year-title-authors-journal-doi, for example "2023-PRKE-SMITH-NATURE-45502".
// The year must be 4 digits, the title 4 uppercase letters, and the rest
// non-empty.
//
// Keys produced by Generate never have this shape. The check only
// recognizes keys imported from the older catalog format and must not be
// used to validate keys of the current schemes, see MatchesScheme.
func IsLegacyKey(key string) bool {
	if key == "" {
		return false
	}
	parts := strings.Split(key, "-")
	if len(parts) != 5 {
		return false
	}
	if !isDigits(parts[0], 4, 4) {
		return false
	}
	if !isTitleTag(parts[1]) {
		return false
	}
	for _, p := range parts[2:] {
		if p == "" {
			return false
		}
	}
	return true
}

// MatchesScheme reports whether a key has the shape produced by Generate
// for the given scheme. Category and project codes are only required to be
// non-empty, because vocabularies are free text.
//
// Sequential and YearBased keys have the same shape and cannot be told
// apart.
func MatchesScheme(key string, scheme Scheme) bool {
	parts := strings.Split(key, "-")
	for _, p := range parts {
		if p == "" {
			return false
		}
	}

	switch scheme {
	case Simple:
		return len(parts) == 3 && isDigits(parts[2], 3, 0)
	case Hierarchical:
		return len(parts) == 4 && isDigits(parts[2], 3, 0) &&
			isTitleTag(parts[3])
	case ProjectFirst:
		return len(parts) == 4 && isDigits(parts[2], 4, 0) &&
			isTitleTag(parts[3])
	case YearBased:
		return len(parts) == 4 && isDigits(parts[0], 4, 4) &&
			isTitleTag(parts[1])
	default:
		return len(parts) == 4 && isDigits(parts[0], 4, 0) &&
			isTitleTag(parts[1])
	}
}

// isDigits checks that s consists of ASCII digits and has at least min
// characters. A positive max also limits the length.
func isDigits(s string, min, max int) bool {
	if len(s) < min || (max > 0 && len(s) > max) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isTitleTag checks for exactly 4 letters, none of them lowercase and at
// least one of them cased.
func isTitleTag(s string) bool {
	if utf8.RuneCountInString(s) != 4 {
		return false
	}
	var cased bool
	for _, r := range s {
		if !unicode.IsLetter(r) || unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}
