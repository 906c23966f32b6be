package plugin

import (
	"strconv"
	"strings"
)

// Version is an ordered sequence of dot-separated tokens parsed from a
// version string such as "3.1.0".
//
// Tokens that parse as non-negative integers compare numerically, so
// "3.10" sorts above "3.9". Non-numeric tokens compare as plain strings and
// always sort above numeric ones. Comparison is lexicographic element-wise;
// a version that is a strict prefix of another sorts below it.
type Version struct {
	tokens []versionToken
}

type versionToken struct {
	text    string
	num     int
	numeric bool
}

// ParseVersion splits a dotted version string into its token sequence.
// The empty string parses as the empty (lowest) version.
func ParseVersion(s string) Version {
	if s == "" {
		return Version{}
	}

	parts := strings.Split(s, ".")
	tokens := make([]versionToken, 0, len(parts))
	for _, part := range parts {
		token := versionToken{text: part}
		if n, err := strconv.Atoi(part); err == nil && n >= 0 {
			token.num = n
			token.numeric = true
		}
		tokens = append(tokens, token)
	}
	return Version{tokens: tokens}
}

// Compare returns -1, 0 or 1 depending on whether v sorts below, equal to
// or above other.
func (v Version) Compare(other Version) int {
	limit := len(v.tokens)
	if len(other.tokens) < limit {
		limit = len(other.tokens)
	}

	for i := 0; i < limit; i++ {
		if c := v.tokens[i].compare(other.tokens[i]); c != 0 {
			return c
		}
	}

	switch {
	case len(v.tokens) < len(other.tokens):
		return -1
	case len(v.tokens) > len(other.tokens):
		return 1
	default:
		return 0
	}
}

// Less reports whether v sorts strictly below other.
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// Equal reports whether both versions hold the same token sequence.
func (v Version) Equal(other Version) bool {
	return v.Compare(other) == 0
}

// String reassembles the dotted form of the version.
func (v Version) String() string {
	parts := make([]string, len(v.tokens))
	for i, token := range v.tokens {
		parts[i] = token.text
	}
	return strings.Join(parts, ".")
}

func (t versionToken) compare(other versionToken) int {
	switch {
	case t.numeric && other.numeric:
		switch {
		case t.num < other.num:
			return -1
		case t.num > other.num:
			return 1
		default:
			return 0
		}
	case t.numeric:
		// Numeric tokens sort below non-numeric ones.
		return -1
	case other.numeric:
		return 1
	default:
		return strings.Compare(t.text, other.text)
	}
}
