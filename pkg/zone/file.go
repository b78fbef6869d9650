package zone

import (
	"io"
	"os"
	"path/filepath"

	"github.com/zonefeed/zonefeed/internal/scanner"
)

// notAFile is the sentinel logical name for inline string input.
const notAFile = "<string>"

// file is one input frame. Frames form a stack through the includer link;
// the bottom frame is embedded in the parser and never heap-allocated.
type file struct {
	name   string // logical name as given
	path   string // resolved absolute path, or notAFile
	handle io.ReadCloser

	buffer buffer
	tape   []scanner.Index
	head   int // tape read cursor

	line        uint32
	startOfLine bool
	endOfFile   bool
	grouped     bool // inside parentheses, newlines masked

	// per-file defaults
	origin    Name
	owner     Name
	lastType  uint16
	lastClass uint16
	lastTTL   uint32

	includer *file
}

// dropTape discards tape entries the lexer has scanned past.
func (f *file) dropTape(pos int) {
	for f.head < len(f.tape) && int(f.tape[f.head].Offset) < pos {
		f.head++
	}
}

// atLineStart reports whether a token starting at start occupies the first
// column of its line, which arms the owner slot.
func (f *file) atLineStart(start int) bool {
	if !f.startOfLine {
		return false
	}
	if start == 0 {
		// compaction preserves a lookback byte, so offset zero means the
		// absolute start of the input
		return true
	}
	return f.buffer.data[start-1] == '\n'
}

// openFile opens path and prepares the frame for parsing. The window is
// routed through the configured allocator.
func (p *Parser) openFile(f *file, path string) Code {
	abs, err := filepath.Abs(path)
	if err != nil {
		return IOError
	}
	handle, err := os.Open(abs)
	if err != nil {
		return IOError
	}

	size := p.options.WindowSize
	if size == 0 {
		size = WindowSize
	}
	window := p.alloc(size + 1)
	if window == nil {
		_ = handle.Close()
		return OutOfMemory
	}

	f.name = path
	f.path = abs
	f.handle = handle
	f.buffer = buffer{data: window}
	f.tape = f.tape[:0]
	f.head = 0
	f.line = 1
	f.startOfLine = true
	f.endOfFile = false
	f.grouped = false
	return Success
}

// openString prepares the frame over an in-memory buffer. The parser does
// not take ownership of data and never writes to it.
func (p *Parser) openString(f *file, data []byte) {
	f.name = notAFile
	f.path = notAFile
	f.handle = nil
	f.buffer = buffer{data: data, length: len(data)}
	f.line = 1
	f.startOfLine = true
	f.endOfFile = true
	f.grouped = false
	f.head = 0
	f.tape, _ = p.target.Scan(data, 0, true, f.tape[:0])
}

// closeFile releases the frame's resources. Heap-allocated frames are
// detached by the caller.
func (p *Parser) closeFile(f *file) {
	if f.handle != nil {
		_ = f.handle.Close()
		f.handle = nil
		p.free(f.buffer.data)
	}
	f.buffer = buffer{}
	f.tape = nil
}

// refill slides the window: compact from keep, read more input, re-run the
// indexer over the unread region. Returns the compaction shift so in-flight
// scan positions can be adjusted.
func (p *Parser) refill(f *file, keep int) int {
	shift := f.buffer.compact(keep)
	keep -= shift

	if f.handle != nil {
		eof, err := f.buffer.fill(f.handle)
		if err != nil {
			p.raise(IOError, "error reading %s: %s", f.name, err)
		}
		f.endOfFile = f.endOfFile || eof
	}

	boundary := true
	if keep > 0 {
		c := f.buffer.data[keep-1]
		boundary = blankOrSpecial(c)
	}
	f.head = 0
	f.tape, _ = p.target.Scan(f.buffer.data[keep:f.buffer.length], uint32(keep), boundary, f.tape[:0])
	return shift
}

func blankOrSpecial(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '"', '(', ')', ';', '\\':
		return true
	}
	return false
}

// includes reports whether path is already open somewhere on the file
// stack, which would make an $INCLUDE cycle.
func (p *Parser) includes(path string) bool {
	for f := p.file; f != nil; f = f.includer {
		if f.path == path {
			return true
		}
	}
	return false
}
