// Package identity normalizes the heterogeneous card identifier spellings
// that arrive from the catalog, pasted import JSON, team submissions, and
// legacy numeric-padded ids into canonical lookup keys.
package identity

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// Runs of underscores and/or whitespace become a single hyphen.
	separatorRegex = regexp.MustCompile(`[_\s]+`)
	multiHyphen    = regexp.MustCompile(`-{2,}`)

	// "<letters>-<digits><optional letters>" e.g. "sor-007a".
	paddedIDRegex = regexp.MustCompile(`^([a-z]+)-(\d+)([a-z]*)$`)

	// Shape of a plausible card id once normalized, e.g. "sor-7" or "twi-123a".
	cardIDRegex = regexp.MustCompile(`^[a-z]{2,5}-\d+[a-z]*$`)
)

// Normalize converts any raw spelling of a card reference into its canonical
// lookup form: trimmed, lowercased, separator runs collapsed to single
// hyphens, no leading/trailing hyphens. Empty input normalizes to "".
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}
	s = separatorRegex.ReplaceAllString(s, "-")
	s = multiHyphen.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// StripNumericPadding rewrites the numeric segment of a normalized card id
// without leading zeros, preserving any trailing variant suffix:
// "SOR-007" -> "sor-7", "sor_007a" -> "sor-7a". Input that does not look
// like "<letters>-<digits><letters?>" is returned in its normalized form
// unchanged.
func StripNumericPadding(raw string) string {
	s := Normalize(raw)
	m := paddedIDRegex.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		// Digits too long for an int; no real card number gets here.
		return s
	}
	return m[1] + "-" + strconv.Itoa(n) + m[3]
}

// BuildLookupKeys returns the ordered, de-duplicated candidate keys for a
// raw identifier: the lowercased-trimmed spelling, the normalized form, and
// the numeric-padding-stripped form. Empty strings are omitted, so empty
// input yields no keys.
func BuildLookupKeys(raw string) []string {
	candidates := []string{
		strings.ToLower(strings.TrimSpace(raw)),
		Normalize(raw),
		StripNumericPadding(raw),
	}

	keys := make([]string, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, k := range candidates {
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	return keys
}

// LooksLikeCardID reports whether the normalized form of raw has the shape
// of a card identifier (set code, hyphen, number, optional variant letter).
// Used to tell a pasted card id apart from a free-text display name when a
// single field could hold either.
func LooksLikeCardID(raw string) bool {
	return cardIDRegex.MatchString(Normalize(raw))
}
