package zone

import (
	"testing"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/require"
)

// parseOne parses a single-record input and returns the record.
func parseOne(t *testing.T, input string) record {
	t.Helper()
	records, code := parseText(t, nil, input)
	require.Equal(t, Success, code, "input %q", input)
	require.Len(t, records, 1)
	return records[0]
}

func TestMXRdata(t *testing.T) {
	r := parseOne(t, "@ MX 10 mail\n")
	require.Equal(t, dns.TypeMX, r.rrtype)
	require.Equal(t, []byte("\x00\x0a\x04mail\x07example\x03com\x00"), r.rdata)
}

func TestTXTRdata(t *testing.T) {
	r := parseOne(t, "t TXT \"hello world\" abc\n")
	require.Equal(t, []byte("\x0bhello world\x03abc"), r.rdata)
}

func TestTXTEscapes(t *testing.T) {
	r := parseOne(t, "t TXT \"say \\\"hi\\\"\"\n")
	require.Equal(t, []byte("\x08say \"hi\""), r.rdata)

	r = parseOne(t, "t TXT a\\065b\n")
	require.Equal(t, []byte("\x03aAb"), r.rdata)
}

func TestTXTTooLong(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}
	_, code := parseText(t, nil, "t TXT "+string(long)+"\n")
	require.Equal(t, SemanticError, code)
}

func TestAAAARdata(t *testing.T) {
	r := parseOne(t, "h AAAA 2001:db8::1\n")
	require.Equal(t, []byte{
		0x20, 0x01, 0x0d, 0xb8, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0x01,
	}, r.rdata)

	_, code := parseText(t, nil, "h AAAA 192.0.2.1\n")
	require.Equal(t, SemanticError, code, "v4 address rejected in AAAA")
}

func TestARejectsV6(t *testing.T) {
	_, code := parseText(t, nil, "h A 2001:db8::1\n")
	require.Equal(t, SemanticError, code)
}

func TestSRVRdata(t *testing.T) {
	r := parseOne(t, "_sip._tcp SRV 10 20 5060 sip\n")
	require.Equal(t, []byte("\x00\x0a\x00\x14\x13\xc4\x03sip\x07example\x03com\x00"), r.rdata)
}

func TestCNAMERelative(t *testing.T) {
	r := parseOne(t, "alias CNAME target\n")
	require.Equal(t, []byte("\x06target\x07example\x03com\x00"), r.rdata)
}

func TestHINFORdata(t *testing.T) {
	r := parseOne(t, "h HINFO \"Intel\" \"Linux\"\n")
	require.Equal(t, []byte("\x05Intel\x05Linux"), r.rdata)
}

func TestDSRdata(t *testing.T) {
	r := parseOne(t, "d DS 60485 5 1 2BB183AF5F22588179A53B0A98631FAD1A292118\n")
	want := []byte{0xec, 0x45, 5, 1}
	want = append(want,
		0x2b, 0xb1, 0x83, 0xaf, 0x5f, 0x22, 0x58, 0x81, 0x79, 0xa5,
		0x3b, 0x0a, 0x98, 0x63, 0x1f, 0xad, 0x1a, 0x29, 0x21, 0x18)
	require.Equal(t, want, r.rdata)
}

func TestDSDigestSplit(t *testing.T) {
	// hex fields may be split across tokens
	r := parseOne(t, "d DS 1 1 1 AABB CCDD\n")
	require.Equal(t, []byte{0x00, 0x01, 1, 1, 0xaa, 0xbb, 0xcc, 0xdd}, r.rdata)
}

func TestDNSKEYRdata(t *testing.T) {
	r := parseOne(t, "k DNSKEY 256 3 8 AQAB\n")
	require.Equal(t, []byte{0x01, 0x00, 3, 8, 0x01, 0x00, 0x01}, r.rdata)
}

func TestRRSIGRdata(t *testing.T) {
	r := parseOne(t, "r RRSIG A 8 3 3600 20260101000000 20251201000000 12345 example.com. AQAB\n")
	want := []byte{
		0x00, 0x01, // covered: A
		8, 3,
		0x00, 0x00, 0x0e, 0x10, // original ttl
		0x69, 0x55, 0xb9, 0x00, // 2026-01-01T00:00:00Z = 1767225600
		0x69, 0x2c, 0xda, 0x80, // 2025-12-01T00:00:00Z = 1764547200
		0x30, 0x39, // keytag
	}
	want = append(want, []byte("\x07example\x03com\x00")...)
	want = append(want, 0x01, 0x00, 0x01)
	require.Equal(t, want, r.rdata)
}

func TestNSECRdata(t *testing.T) {
	r := parseOne(t, "n NSEC next A MX RRSIG\n")
	want := []byte("\x04next\x07example\x03com\x00")
	want = append(want, 0x00, 0x06, 0x40, 0x01, 0x00, 0x00, 0x00, 0x02)
	require.Equal(t, want, r.rdata)
}

func TestNSEC3Rdata(t *testing.T) {
	r := parseOne(t, "h3 NSEC3 1 0 12 AABBCCDD 00000000 NS\n")
	want := []byte{
		1, 0, 0x00, 0x0c,
		4, 0xaa, 0xbb, 0xcc, 0xdd, // salt
		5, 0, 0, 0, 0, 0, // base32hex next hash
		0x00, 0x01, 0x20, // bitmap: NS
	}
	require.Equal(t, want, r.rdata)
}

func TestNSEC3EmptySalt(t *testing.T) {
	r := parseOne(t, "h3 NSEC3PARAM 1 0 0 -\n")
	require.Equal(t, []byte{1, 0, 0, 0, 0}, r.rdata)
}

func TestTLSARdata(t *testing.T) {
	r := parseOne(t, "t TLSA 3 1 1 AABB\n")
	require.Equal(t, []byte{3, 1, 1, 0xaa, 0xbb}, r.rdata)
}

func TestSSHFPRdata(t *testing.T) {
	r := parseOne(t, "s SSHFP 1 1 CAFE\n")
	require.Equal(t, []byte{1, 1, 0xca, 0xfe}, r.rdata)
}

func TestCAARdata(t *testing.T) {
	r := parseOne(t, "c CAA 0 issue \"letsencrypt.org\"\n")
	require.Equal(t, []byte("\x00\x05issueletsencrypt.org"), r.rdata)

	_, code := parseText(t, nil, "c CAA 0 is-sue \"x\"\n")
	require.Equal(t, SemanticError, code, "tag restricted to alphanumerics")
}

func TestURIRdata(t *testing.T) {
	r := parseOne(t, "u URI 10 1 \"https://example.com/\"\n")
	want := []byte{0x00, 0x0a, 0x00, 0x01}
	want = append(want, []byte("https://example.com/")...)
	require.Equal(t, want, r.rdata)
}

func TestRPRdata(t *testing.T) {
	r := parseOne(t, "x RP admin.example.com. info\n")
	want := []byte("\x05admin\x07example\x03com\x00")
	want = append(want, []byte("\x04info\x07example\x03com\x00")...)
	require.Equal(t, want, r.rdata)
}

func TestNAPTRRdata(t *testing.T) {
	r := parseOne(t, "n NAPTR 100 50 \"s\" \"SIP+D2U\" \"\" _sip._udp\n")
	want := []byte{0x00, 0x64, 0x00, 0x32}
	want = append(want, "\x01s"...)
	want = append(want, "\x07SIP+D2U"...)
	want = append(want, 0x00)
	want = append(want, []byte("\x04_sip\x04_udp\x07example\x03com\x00")...)
	require.Equal(t, want, r.rdata)
}

func TestStrictNumbers(t *testing.T) {
	_, code := parseText(t, nil, "m MX 010 mail\n")
	require.Equal(t, SemanticError, code, "leading zeros rejected")

	_, code = parseText(t, nil, "m MX +10 mail\n")
	require.Equal(t, SemanticError, code, "signs rejected")

	_, code = parseText(t, nil, "m MX 65536 mail\n")
	require.Equal(t, SemanticError, code, "overflow rejected")
}

func TestMissingField(t *testing.T) {
	_, code := parseText(t, nil, "m MX 10\n")
	require.Equal(t, SemanticError, code)
}

func TestTrailingData(t *testing.T) {
	_, code := parseText(t, nil, "a A 192.0.2.1 junk\n")
	require.Equal(t, SemanticError, code)
}

func TestRdataOverflow(t *testing.T) {
	// 500 strings of 255 octets exceed the 65535 octet rdata bound
	line := "t TXT"
	long := make([]byte, 255)
	for i := range long {
		long[i] = 'x'
	}
	for i := 0; i < 500; i++ {
		line += " " + string(long)
	}
	_, code := parseText(t, nil, line+"\n")
	require.Equal(t, SemanticError, code)
}
