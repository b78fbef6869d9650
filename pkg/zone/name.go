package zone

import "strings"

const (
	// MaxName is the longest wire-format domain name, root label included.
	MaxName = 255
	// MaxLabel is the longest single label.
	MaxLabel = 63
)

// Name is a domain name in wire format: concatenated <length><bytes> labels
// terminated by the zero-length root label.
type Name struct {
	Length uint8
	Octets [MaxName]byte
}

// Bytes returns the wire-format octets of the name.
func (n *Name) Bytes() []byte {
	return n.Octets[:n.Length]
}

// String renders the name in master-file presentation form, escaping label
// separators and non-printable bytes.
func (n *Name) String() string {
	if n.Length == 1 {
		return "."
	}
	var b strings.Builder
	for i := 0; i < int(n.Length); {
		l := int(n.Octets[i])
		if l == 0 {
			break
		}
		for _, c := range n.Octets[i+1 : i+1+l] {
			switch {
			case c == '.' || c == '\\' || c == '"' || c == ';' || c == '(' || c == ')':
				b.WriteByte('\\')
				b.WriteByte(c)
			case c < '!' || c > '~':
				b.WriteByte('\\')
				b.WriteByte('0' + c/100)
				b.WriteByte('0' + c/10%10)
				b.WriteByte('0' + c%10)
			default:
				b.WriteByte(c)
			}
		}
		b.WriteByte('.')
		i += 1 + l
	}
	return b.String()
}

// parseOrigin encodes the fully-qualified origin given in the options.
// Escapes are honored like in any other name, but the name must be absolute.
func parseOrigin(text string, dst *Name) bool {
	n, absolute := encodeName([]byte(text), dst)
	return n && absolute
}

// encodeName writes the wire form of text into dst without appending any
// origin. It reports whether the text was valid and whether it was absolute
// (terminated by an unescaped dot).
func encodeName(text []byte, dst *Name) (ok, absolute bool) {
	if len(text) == 0 {
		return false, false
	}
	if len(text) == 1 && text[0] == '.' {
		dst.Octets[0] = 0
		dst.Length = 1
		return true, true
	}

	lab, oct := 0, 1
	dst.Octets[0] = 0
	i := 0
	for i < len(text) {
		c := text[i]
		switch {
		case c == '.':
			if oct-1 == lab {
				return false, false // empty label
			}
			if oct-lab-1 > MaxLabel {
				return false, false
			}
			dst.Octets[lab] = byte(oct - lab - 1)
			lab = oct
			oct++
			if oct > MaxName {
				return false, false
			}
			dst.Octets[lab] = 0
			i++
			if i == len(text) {
				dst.Length = uint8(oct)
				return true, true
			}
		case c == '\\':
			b, n := unescapeByte(text[i:])
			if n == 0 {
				return false, false
			}
			if oct >= MaxName {
				return false, false
			}
			dst.Octets[oct] = b
			oct++
			i += n
		default:
			if oct >= MaxName {
				return false, false
			}
			dst.Octets[oct] = c
			oct++
			i++
		}
	}

	// relative name, close the open label
	if oct-1 == lab || oct-lab-1 > MaxLabel {
		return false, false
	}
	dst.Octets[lab] = byte(oct - lab - 1)
	dst.Length = uint8(oct)
	return true, false
}

// appendOrigin completes a relative name against origin. The open tail of
// dst already holds finished labels without the root.
func appendOrigin(dst *Name, origin *Name) bool {
	if int(dst.Length)+int(origin.Length) > MaxName {
		return false
	}
	copy(dst.Octets[dst.Length:], origin.Bytes())
	dst.Length += origin.Length
	return true
}

// unescapeByte decodes one escape sequence: \DDD with exactly three decimal
// digits, or \X for a literal X. Returns the byte and the number of input
// bytes consumed, zero on malformed input.
func unescapeByte(s []byte) (byte, int) {
	if len(s) < 2 || s[0] != '\\' {
		return 0, 0
	}
	if s[1] >= '0' && s[1] <= '9' {
		if len(s) < 4 || s[2] < '0' || s[2] > '9' || s[3] < '0' || s[3] > '9' {
			return 0, 0
		}
		v := int(s[1]-'0')*100 + int(s[2]-'0')*10 + int(s[3]-'0')
		if v > 255 {
			return 0, 0
		}
		return byte(v), 4
	}
	return s[1], 2
}
