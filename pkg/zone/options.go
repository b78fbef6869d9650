package zone

import (
	"github.com/projectdiscovery/gologger"
)

// LogCategory selects which parser diagnostics reach the log callback.
type LogCategory uint32

const (
	LogInfo LogCategory = 1 << iota
	LogWarning
	LogError
)

// LogFunc receives parser diagnostics. file is the logical name of the input
// frame the diagnostic refers to and line its 1-origin line number.
type LogFunc func(category LogCategory, file string, line uint32, message string)

// AcceptFunc is the sink invoked once per complete resource record. The
// rdata slice stays untouched until the parser fills the same ring slot
// again; the owner name is overwritten as soon as a later record line names
// its owner. A non-negative return below the cache size names the ring
// block the parser fills next; any negative return aborts the parse with
// that value as the final code.
type AcceptFunc func(parser *Parser, owner *Name, rrtype uint16, class uint16, ttl uint32, rdata []byte, userData interface{}) int32

// Allocator routes the parser's buffer allocations, for arena-based
// lifetimes. Either all four members are provided or none.
type Allocator struct {
	Malloc  func(arena interface{}, size int) []byte
	Realloc func(arena interface{}, buf []byte, size int) []byte
	Free    func(arena interface{}, buf []byte)
	Arena   interface{}
}

// Options configures a parse invocation. Origin, DefaultTTL, DefaultClass
// and Accept are required.
type Options struct {
	// Origin is the fully-qualified name appended to relative owner and
	// rdata names until the first $ORIGIN directive.
	Origin string
	// DefaultTTL seeds the TTL used for records that carry none, in the
	// range 1 through 2^31-1.
	DefaultTTL uint32
	// DefaultClass seeds the class for records that carry none; one of
	// ClassIN, ClassCS, ClassCH, ClassHS.
	DefaultClass uint16
	// Accept is the record sink.
	Accept AcceptFunc

	// Log receives diagnostics for the categories in LogCategories. When
	// both are unset, all categories go to the default logger.
	Log           LogFunc
	LogCategories LogCategory

	// Lax downgrades record-level semantic errors to diagnostics: the
	// offending record is skipped and parsing resumes at the next line.
	Lax bool

	// Allocator optionally routes buffer allocations.
	Allocator Allocator

	// WindowSize overrides the sliding-window capacity for file input.
	// Zero selects the default.
	WindowSize int

	// Target forces an indexer variant by name, bypassing CPU detection.
	// The ZONE_TARGET environment variable takes effect when empty.
	Target string
}

// Supported classes, RFC 1035 section 3.2.4.
const (
	ClassIN uint16 = 1
	ClassCS uint16 = 2
	ClassCH uint16 = 3
	ClassHS uint16 = 4
)

// WindowSize is the default sliding-window capacity. It comfortably exceeds
// the indexer stride plus the longest legal token.
const WindowSize = 64 * 1024

func checkOptions(options *Options) Code {
	// custom allocator must be fully specified or not at all
	alloc := 0
	if options.Allocator.Malloc != nil {
		alloc++
	}
	if options.Allocator.Realloc != nil {
		alloc++
	}
	if options.Allocator.Free != nil {
		alloc++
	}
	if options.Allocator.Arena != nil {
		alloc++
	}
	if alloc != 0 && alloc != 4 {
		return BadParameter
	}
	if options.Accept == nil {
		return BadParameter
	}
	if options.Origin == "" {
		return BadParameter
	}
	if options.DefaultTTL == 0 || options.DefaultTTL > maxTTL {
		return BadParameter
	}
	switch options.DefaultClass {
	case ClassIN, ClassCS, ClassCH, ClassHS:
	default:
		return BadParameter
	}
	if options.WindowSize < 0 {
		return BadParameter
	}
	return Success
}

// defaultLog writes diagnostics through gologger when the caller supplied no
// log callback.
func defaultLog(category LogCategory, file string, line uint32, message string) {
	switch category {
	case LogError:
		gologger.Error().Msgf("%s:%d: %s", file, line, message)
	case LogWarning:
		gologger.Warning().Msgf("%s:%d: %s", file, line, message)
	default:
		gologger.Info().Msgf("%s:%d: %s", file, line, message)
	}
}
