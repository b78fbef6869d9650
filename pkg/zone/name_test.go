package zone

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeName(t *testing.T) {
	var n Name

	ok, absolute := encodeName([]byte("example.com."), &n)
	require.True(t, ok)
	require.True(t, absolute)
	require.Equal(t, []byte("\x07example\x03com\x00"), n.Bytes())

	ok, absolute = encodeName([]byte("www"), &n)
	require.True(t, ok)
	require.False(t, absolute)
	require.Equal(t, []byte("\x03www"), n.Bytes())

	ok, absolute = encodeName([]byte("."), &n)
	require.True(t, ok)
	require.True(t, absolute)
	require.Equal(t, []byte{0}, n.Bytes())
}

func TestEncodeNameRejects(t *testing.T) {
	var n Name
	for _, text := range []string{
		"",
		"a..b",
		".leading",
		strings.Repeat("a", 64),                              // label too long
		strings.Repeat("a", 63) + "." + strings.Repeat("a", 64), // second label too long
		"a\\25",    // truncated escape
		"a\\256b",  // escape out of range
	} {
		ok, _ := encodeName([]byte(text), &n)
		require.False(t, ok, "expected %q to be rejected", text)
	}
}

func TestEncodeNameBounds(t *testing.T) {
	var n Name

	// three 63-octet labels plus one of 61 hit the 255-octet ceiling
	// exactly, root label included
	label := strings.Repeat("a", 63)
	longest := label + "." + label + "." + label + "." + strings.Repeat("a", 61) + "."
	ok, absolute := encodeName([]byte(longest), &n)
	require.True(t, ok)
	require.True(t, absolute)
	require.Equal(t, MaxName, int(n.Length))

	tooLong := label + "." + label + "." + label + "." + strings.Repeat("a", 62) + "."
	ok, _ = encodeName([]byte(tooLong), &n)
	require.False(t, ok)
}

func TestAppendOrigin(t *testing.T) {
	var n, origin Name
	ok, _ := encodeName([]byte("example.com."), &origin)
	require.True(t, ok)

	ok, absolute := encodeName([]byte("www"), &n)
	require.True(t, ok)
	require.False(t, absolute)
	require.True(t, appendOrigin(&n, &origin))
	require.Equal(t, []byte("\x03www\x07example\x03com\x00"), n.Bytes())
}

func TestNameString(t *testing.T) {
	var n Name
	ok, _ := encodeName([]byte("www.example.com."), &n)
	require.True(t, ok)
	require.Equal(t, "www.example.com.", n.String())

	ok, _ = encodeName([]byte("."), &n)
	require.True(t, ok)
	require.Equal(t, ".", n.String())
}

func TestNameRoundTrip(t *testing.T) {
	// encoding a name, rendering it and re-encoding must give identical
	// octets, including for escaped and non-printable labels
	for _, text := range []string{
		"example.com.",
		"a\\.b.example.",
		"\\052.example.",          // asterisk by escape
		"x\\000y.example.",        // embedded NUL
		"\\\"quoted\\\".example.", // quotes in a label
	} {
		var first, second Name
		ok, _ := encodeName([]byte(text), &first)
		require.True(t, ok, "input %q", text)

		ok, _ = encodeName([]byte(first.String()), &second)
		require.True(t, ok, "rendered %q", first.String())
		require.Equal(t, first.Bytes(), second.Bytes(), "input %q", text)
	}
}

func TestParseOriginRequiresAbsolute(t *testing.T) {
	var n Name
	require.True(t, parseOrigin("example.com.", &n))
	require.False(t, parseOrigin("example.com", &n))
	require.False(t, parseOrigin("", &n))
}

func TestUnescapeByte(t *testing.T) {
	b, n := unescapeByte([]byte(`\.`))
	require.Equal(t, byte('.'), b)
	require.Equal(t, 2, n)

	b, n = unescapeByte([]byte(`\046`))
	require.Equal(t, byte('.'), b)
	require.Equal(t, 4, n)

	_, n = unescapeByte([]byte(`\04`))
	require.Equal(t, 0, n)

	_, n = unescapeByte([]byte(`\999`))
	require.Equal(t, 0, n)
}
