// Package scanner locates the structurally significant bytes of a zone file
// window. It is the first of the two parsing stages: a branch-light pass
// records the offset and class of every byte the lexer needs to look at, so
// the second stage never walks runs of ordinary label bytes.
//
// Several scan implementations exist. All of them must produce a
// byte-identical index sequence for identical input; the selector picks the
// best one the host CPU supports.
package scanner

import (
	"os"
	"strings"
)

// Kind classifies a structural byte.
type Kind uint8

const (
	// Contiguous marks the first byte of an unquoted run following a blank
	// or another structural byte.
	Contiguous Kind = iota
	Quote
	Newline
	LeftParen
	RightParen
	Semicolon
	Backslash
)

// Index marks one structural byte inside the scanned window.
type Index struct {
	Offset uint32
	Kind   Kind
}

// ScanFunc appends the structural indices of data to tape. Offsets are
// relative to data plus base. boundary reports whether the byte immediately
// preceding data was a blank or a structural byte; the returned boolean is
// the same property for the last byte of data, to be carried into the next
// window.
type ScanFunc func(data []byte, base uint32, boundary bool, tape []Index) ([]Index, bool)

// Target couples a scan implementation with the CPU features it requires.
type Target struct {
	Name string
	Scan ScanFunc

	supported func() bool
}

// EnvTarget names the environment variable overriding target selection.
const EnvTarget = "ZONE_TARGET"

var targets = []Target{
	{Name: "haswell", Scan: scanBlock64, supported: hasAVX2},
	{Name: "westmere", Scan: scanBlock16, supported: hasSSE42},
	{Name: "fallback", Scan: scanScalar, supported: nil},
}

// Targets returns the known scan targets, best first.
func Targets() []Target {
	result := make([]Target, len(targets))
	copy(result, targets)
	return result
}

// Lookup returns the target with the given name, or nil.
func Lookup(name string) *Target {
	for i := range targets {
		if strings.EqualFold(targets[i].Name, name) {
			return &targets[i]
		}
	}
	return nil
}

// Select picks the best supported target. A preferred target may be named
// through the ZONE_TARGET environment variable; unknown or unsupported
// values fall through to feature-based selection. The fallback target has no
// requirements and is always selectable.
func Select() *Target {
	start := 0
	if preferred := os.Getenv(EnvTarget); preferred != "" {
		for i := range targets {
			if strings.EqualFold(preferred, targets[i].Name) {
				start = i
				break
			}
		}
	}
	for i := start; i < len(targets); i++ {
		if targets[i].supported == nil || targets[i].supported() {
			return &targets[i]
		}
	}
	return &targets[len(targets)-1]
}

// Byte classification tables shared by all scan implementations. A byte is
// blank if it separates tokens without meaning, structural if the lexer must
// interpret it.
var (
	structural [256]Kind
	isSpecial  [256]bool
	isBlank    [256]bool
)

func init() {
	structural['"'] = Quote
	structural['\n'] = Newline
	structural['('] = LeftParen
	structural[')'] = RightParen
	structural[';'] = Semicolon
	structural['\\'] = Backslash
	for _, c := range []byte{'"', '\n', '(', ')', ';', '\\'} {
		isSpecial[c] = true
	}
	for _, c := range []byte{' ', '\t', '\r'} {
		isBlank[c] = true
	}
}
