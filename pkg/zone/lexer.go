package zone

import (
	"github.com/zonefeed/zonefeed/internal/scanner"
)

type tokenKind uint8

const (
	tokenContiguous tokenKind = iota
	tokenQuoted
	tokenDelimiter
	tokenEOF
)

// token is one logical lexeme. data points into the current window (raw
// bytes, escapes unresolved, quotes stripped) and stays valid until the next
// lex call.
type token struct {
	kind      tokenKind
	data      []byte
	escaped   bool
	lineStart bool // first token of its line, at column zero
}

// lex assembles the next token from the indexer tape. Fatal lexical errors
// unwind through the parse-scoped error channel.
func (p *Parser) lex(t *token) {
	f := p.file
	for {
		if f.head >= len(f.tape) {
			if !p.more(f) {
				if f.grouped {
					p.raise(SyntaxError, "unterminated parenthesized group")
				}
				t.kind = tokenEOF
				t.data = nil
				t.escaped = false
				t.lineStart = false
				return
			}
			continue
		}

		e := f.tape[f.head]
		pos := int(e.Offset)
		switch e.Kind {
		case scanner.Newline:
			f.head++
			f.buffer.index = pos + 1
			f.line++
			if f.grouped {
				continue
			}
			f.startOfLine = true
			t.kind = tokenDelimiter
			t.data = nil
			t.escaped = false
			t.lineStart = false
			return
		case scanner.LeftParen:
			f.head++
			f.buffer.index = pos + 1
			if f.grouped {
				p.raise(SyntaxError, "nested opening parenthesis")
			}
			f.grouped = true
		case scanner.RightParen:
			f.head++
			f.buffer.index = pos + 1
			if !f.grouped {
				p.raise(SyntaxError, "closing parenthesis without opening")
			}
			f.grouped = false
		case scanner.Semicolon:
			f.head++
			p.skipComment(pos + 1)
		case scanner.Quote:
			p.lexQuoted(t, pos)
			return
		default: // Contiguous or Backslash
			p.lexContiguous(t, pos)
			return
		}
	}
}

// more makes tape entries available, sliding the window as needed. Returns
// false at end of input. Bytes past the last tape entry that the lexer has
// not claimed are blank by construction, so they can be discarded wholesale.
func (p *Parser) more(f *file) bool {
	for f.head >= len(f.tape) {
		if f.endOfFile {
			return false
		}
		f.buffer.index = f.buffer.length
		before := f.buffer.length
		shift := p.refill(f, f.buffer.index)
		if f.buffer.length == before-shift && !f.endOfFile {
			p.raise(ReadError, "no progress refilling window")
		}
	}
	return true
}

// skipComment discards bytes up to, but not including, the terminating
// newline. Tape entries inside the comment are dropped.
func (p *Parser) skipComment(pos int) {
	f := p.file
	for {
		data := f.buffer.data[:f.buffer.length]
		for pos < len(data) && data[pos] != '\n' {
			pos++
		}
		if pos < len(data) || f.endOfFile {
			break
		}
		f.buffer.index = pos
		pos -= p.refill(f, pos)
	}
	f.buffer.index = pos
	f.dropTape(pos)
}

// lexContiguous scans an unquoted run starting at start. The run ends at the
// first blank or structural byte; backslash escapes are consumed but left
// unresolved in the token data.
func (p *Parser) lexContiguous(t *token, start int) {
	f := p.file
	lineStart := f.atLineStart(start)
	pos := start
	escaped := false

	for {
		data := f.buffer.data[:f.buffer.length]
		for pos < len(data) {
			c := data[pos]
			if c == '\\' {
				_, n := unescapeByte(data[pos:])
				if n == 0 {
					if f.endOfFile || len(data)-pos >= 4 {
						p.raise(SyntaxError, "invalid escape sequence")
					}
					break // need more bytes to finish the escape
				}
				escaped = true
				pos += n
				continue
			}
			if blankOrSpecial(c) && c != '\\' {
				f.buffer.index = pos
				f.dropTape(pos)
				t.kind = tokenContiguous
				t.data = data[start:pos]
				t.escaped = escaped
				t.lineStart = lineStart
				f.startOfLine = false
				return
			}
			pos++
		}
		if pos >= f.buffer.length && f.endOfFile {
			break
		}
		shift := p.grow(f, start)
		start -= shift
		pos -= shift
	}

	// run ends at end of input
	f.buffer.index = pos
	f.dropTape(pos)
	t.kind = tokenContiguous
	t.data = f.buffer.data[start:pos]
	t.escaped = escaped
	t.lineStart = lineStart
	f.startOfLine = false
}

// lexQuoted scans a quoted string whose opening quote sits at start.
// Interior newlines are legal and counted; an unterminated string at end of
// input is a fatal syntax error.
func (p *Parser) lexQuoted(t *token, start int) {
	f := p.file
	lineStart := f.atLineStart(start)
	pos := start + 1
	escaped := false

	for {
		data := f.buffer.data[:f.buffer.length]
		for pos < len(data) {
			switch c := data[pos]; c {
			case '"':
				f.buffer.index = pos + 1
				f.dropTape(pos + 1)
				t.kind = tokenQuoted
				t.data = data[start+1 : pos]
				t.escaped = escaped
				t.lineStart = lineStart
				f.startOfLine = false
				return
			case '\\':
				_, n := unescapeByte(data[pos:])
				if n == 0 {
					if f.endOfFile || len(data)-pos >= 4 {
						p.raise(SyntaxError, "invalid escape sequence")
					}
				} else {
					escaped = true
					pos += n
					continue
				}
			case '\n':
				f.line++
				pos++
				continue
			default:
				pos++
				continue
			}
			break // refill to finish the escape
		}
		if pos >= f.buffer.length && f.endOfFile {
			p.raise(SyntaxError, "unterminated quoted string")
		}
		shift := p.grow(f, start)
		start -= shift
		pos -= shift
	}
}

// grow slides the window while a token is in flight, preserving the token
// bytes from start. A token that cannot fit the window is rejected.
func (p *Parser) grow(f *file, start int) int {
	before := f.buffer.length
	shift := p.refill(f, start)
	if shift == 0 && f.buffer.length == before && !f.endOfFile {
		p.raise(SyntaxError, "token exceeds window size")
	}
	return shift
}
