package zone

import (
	"fmt"

	"github.com/zonefeed/zonefeed/internal/scanner"
)

// Parser is the top-level parse context. One parser drives one invocation;
// independent parses may run concurrently as long as each has its own parser
// and cache.
type Parser struct {
	options  Options
	userData interface{}
	target   *scanner.Target
	cache    *Cache
	rdata    *rdataBlock
	file     *file
	first    file   // embedded bottom frame
	scratch  []byte // escape-resolution buffer, reused per token
}

// ParseFile opens path and parses it to completion or first fatal error.
func ParseFile(options *Options, cache *Cache, path string, userData interface{}) Code {
	p := &Parser{}
	if code := p.open(options, cache, userData); code != Success {
		return code
	}
	p.file = &p.first
	if code := p.openFile(&p.first, path); code != Success {
		p.closeAll()
		return code
	}
	if !parseOrigin(p.options.Origin, &p.first.origin) {
		p.closeAll()
		return BadParameter
	}
	p.initFrame(&p.first)
	defer p.closeAll()
	return p.run()
}

// ParseString parses an in-memory buffer. The parser does not take
// ownership of data and never writes past its end.
func ParseString(options *Options, cache *Cache, data []byte, userData interface{}) Code {
	p := &Parser{}
	if code := p.open(options, cache, userData); code != Success {
		return code
	}
	p.file = &p.first
	if !parseOrigin(p.options.Origin, &p.first.origin) {
		return BadParameter
	}
	p.openString(&p.first, data)
	p.initFrame(&p.first)
	defer p.closeAll()
	return p.run()
}

// File returns the logical name of the input frame currently being parsed.
func (p *Parser) File() string {
	if p.file == nil {
		return notAFile
	}
	return p.file.name
}

// Line returns the 1-origin line number of the current input frame.
func (p *Parser) Line() uint32 {
	if p.file == nil {
		return 0
	}
	return p.file.line
}

// UserData returns the opaque pointer given at the parse entry point.
func (p *Parser) UserData() interface{} {
	return p.userData
}

func (p *Parser) open(options *Options, cache *Cache, userData interface{}) Code {
	if code := checkOptions(options); code != Success {
		return code
	}
	if cache == nil || cache.Size() < 1 {
		return OutOfMemory
	}
	p.options = *options
	if p.options.Log == nil && p.options.LogCategories == 0 {
		p.options.LogCategories = ^LogCategory(0)
	}
	if p.options.Log == nil {
		p.options.Log = defaultLog
	}
	p.userData = userData
	p.cache = cache
	p.rdata = &cache.blocks[0]

	p.target = nil
	if p.options.Target != "" {
		p.target = scanner.Lookup(p.options.Target)
	}
	if p.target == nil {
		p.target = scanner.Select()
	}
	return Success
}

// initFrame seeds the per-file defaults. The owner starts as the origin so
// a leading-blank first line refers to the zone apex.
func (p *Parser) initFrame(f *file) {
	f.owner = f.origin
	f.lastType = 0
	f.lastClass = p.options.DefaultClass
	f.lastTTL = p.options.DefaultTTL
	f.line = 1
}

// closeAll tears down the whole file stack, including after an unwind.
func (p *Parser) closeAll() {
	for f := p.file; f != nil; {
		includer := f.includer
		p.closeFile(f)
		f = includer
	}
	p.file = nil
}

// run installs the unwind target and drives the parse. Any component may
// abort by panicking with an abort value; the code surfaces here, and the
// entry point's deferred teardown runs once run returns.
func (p *Parser) run() (code Code) {
	defer func() {
		if r := recover(); r != nil {
			a, ok := r.(abort)
			if !ok {
				panic(r)
			}
			code = a.code
		}
	}()
	p.parse()
	return Success
}

func (p *Parser) parse() {
	var t token
	for {
		p.lex(&t)
		switch t.kind {
		case tokenEOF:
			f := p.file
			if f.includer == nil {
				return
			}
			p.file = f.includer
			p.closeFile(f)
		case tokenDelimiter:
			// blank line
		default:
			p.parseLine(&t)
		}
	}
}

// parseLine handles one directive or record line. Recoverable semantic
// errors unwind to here and resynchronize at the next newline outside
// parentheses.
func (p *Parser) parseLine(t *token) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(recordSkip); ok {
				p.resync()
				return
			}
			panic(r)
		}
	}()
	if t.lineStart && t.kind == tokenContiguous && len(t.data) > 0 && t.data[0] == '$' {
		p.parseDirective(t)
		return
	}
	p.parseRecord(t)
}

func (p *Parser) resync() {
	if p.file.startOfLine {
		// the offending record already consumed its newline
		return
	}
	var t token
	for {
		p.lex(&t)
		if t.kind == tokenDelimiter || t.kind == tokenEOF {
			return
		}
	}
}

// raise reports a fatal error and unwinds with code.
func (p *Parser) raise(code Code, format string, args ...interface{}) {
	p.log(LogError, format, args...)
	panic(abort{code: code})
}

// semantic reports a record-level semantic error. Under Lax options the
// record is skipped and parsing continues; otherwise the parse aborts.
func (p *Parser) semantic(format string, args ...interface{}) {
	if p.options.Lax {
		p.log(LogWarning, format, args...)
		panic(recordSkip{})
	}
	p.raise(SemanticError, format, args...)
}

func (p *Parser) log(category LogCategory, format string, args ...interface{}) {
	if p.options.LogCategories&category == 0 {
		return
	}
	name, line := notAFile, uint32(0)
	if p.file != nil {
		name, line = p.file.name, p.file.line
	}
	p.options.Log(category, name, line, fmt.Sprintf(format, args...))
}

// accept finalizes the current record and delivers it to the sink. The
// sink's non-negative return selects the ring block written next; a
// negative return aborts the parse with that code.
func (p *Parser) accept() {
	f := p.file
	result := p.options.Accept(p, &f.owner, f.lastType, f.lastClass, f.lastTTL, p.rdata.bytes(), p.userData)
	if result < 0 {
		panic(abort{code: Code(result)})
	}
	if int(result) >= p.cache.Size() {
		p.raise(BadParameter, "sink selected out-of-range rdata block %d", result)
	}
	p.rdata = &p.cache.blocks[int(result)]
}

// alloc routes buffer allocations through the configured allocator.
func (p *Parser) alloc(size int) []byte {
	if p.options.Allocator.Malloc != nil {
		return p.options.Allocator.Malloc(p.options.Allocator.Arena, size)
	}
	return make([]byte, size)
}

func (p *Parser) free(buf []byte) {
	if p.options.Allocator.Free != nil {
		p.options.Allocator.Free(p.options.Allocator.Arena, buf)
	}
}
