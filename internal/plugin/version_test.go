package plugin

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseVersionRoundTrip(t *testing.T) {
	tests := []string{"3.1.0", "1", "2.0", "10.4.2.1", "1.0.beta2"}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			require.Equal(t, input, ParseVersion(input).String())
		})
	}
}

func TestVersionCompare(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "equal", a: "3.1.0", b: "3.1.0", want: 0},
		{name: "major", a: "2.9.9", b: "3.0.0", want: -1},
		{name: "minor", a: "3.1.0", b: "3.2.0", want: -1},
		{name: "patch", a: "3.1.0", b: "3.1.1", want: -1},
		{name: "numeric not lexicographic", a: "3.9", b: "3.10", want: -1},
		{name: "prefix sorts below", a: "3.1", b: "3.1.0", want: -1},
		{name: "reverse", a: "4.0.0", b: "3.9.9", want: 1},
		{name: "text tokens", a: "1.0.alpha", b: "1.0.beta", want: -1},
		{name: "numeric below text", a: "1.0.1", b: "1.0.rc1", want: -1},
		{name: "empty lowest", a: "", b: "0", want: -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, b := ParseVersion(tc.a), ParseVersion(tc.b)
			require.Equal(t, tc.want, a.Compare(b))
			require.Equal(t, -tc.want, b.Compare(a))
		})
	}
}

func TestVersionEqualRequiresSameTokens(t *testing.T) {
	require.True(t, ParseVersion("3.1.0").Equal(ParseVersion("3.1.0")))
	require.False(t, ParseVersion("3.1").Equal(ParseVersion("3.1.0")))
	require.False(t, ParseVersion("3.1.0").Less(ParseVersion("3.1.0")))
}

func TestVersionLexicographicRegression(t *testing.T) {
	// "10" < "9" under naive string ordering; the resolver must not do that.
	require.True(t, ParseVersion("3.9").Less(ParseVersion("3.10")))
	require.False(t, ParseVersion("3.10").Less(ParseVersion("3.9")))
}
