package zone

import "path/filepath"

// parseDirective handles a $-prefixed control line. Directive errors are
// always fatal; they change parser state rather than emit a record, so
// skipping them would silently corrupt everything that follows.
func (p *Parser) parseDirective(t *token) {
	switch {
	case equalFold(t.data, "$ORIGIN"):
		p.parseOriginDirective()
	case equalFold(t.data, "$TTL"):
		p.parseTTLDirective()
	case equalFold(t.data, "$INCLUDE"):
		p.parseIncludeDirective()
	case equalFold(t.data, "$GENERATE"):
		p.raise(NotImplemented, "$GENERATE is not implemented")
	default:
		p.raise(SemanticError, "unknown directive %q", t.data)
	}
}

// parseOriginDirective replaces the current file's origin. A relative
// argument is completed against the previous origin, like BIND.
func (p *Parser) parseOriginDirective() {
	f := p.file
	var tok token
	p.lex(&tok)
	if tok.kind != tokenContiguous {
		p.raise(SemanticError, "missing name in $ORIGIN")
	}

	var n Name
	if !tok.escaped && len(tok.data) == 1 && tok.data[0] == '@' {
		n = f.origin
	} else {
		ok, absolute := encodeName(tok.data, &n)
		if !ok {
			p.raise(SemanticError, "invalid name %q in $ORIGIN", tok.data)
		}
		if !absolute && !appendOrigin(&n, &f.origin) {
			p.raise(SemanticError, "name exceeds %d octets in $ORIGIN", MaxName)
		}
	}
	p.expectEndOfLine("$ORIGIN")
	f.origin = n
}

// parseTTLDirective replaces the current file's default TTL.
func (p *Parser) parseTTLDirective() {
	f := p.file
	var tok token
	p.lex(&tok)
	if tok.kind != tokenContiguous {
		p.raise(SemanticError, "missing value in $TTL")
	}
	ttl, ok := parseTTLText(p.unescape(&tok))
	if !ok {
		p.raise(SemanticError, "invalid value in $TTL")
	}
	p.expectEndOfLine("$TTL")
	f.lastTTL = ttl
}

// parseIncludeDirective pushes a new file frame. The included file inherits
// the includer's class and TTL defaults and starts with the given origin, or
// the includer's when absent. Opening an already-open path is a cycle.
func (p *Parser) parseIncludeDirective() {
	f := p.file
	var tok token
	p.lex(&tok)
	if tok.kind != tokenContiguous && tok.kind != tokenQuoted {
		p.raise(SemanticError, "missing path in $INCLUDE")
	}
	path := string(p.unescape(&tok))
	if path == "" {
		p.raise(SemanticError, "missing path in $INCLUDE")
	}

	// optional origin argument
	origin := f.origin
	p.lex(&tok)
	if tok.kind == tokenContiguous || tok.kind == tokenQuoted {
		ok, absolute := encodeName(tok.data, &origin)
		if !ok {
			p.raise(SemanticError, "invalid origin %q in $INCLUDE", tok.data)
		}
		if !absolute && !appendOrigin(&origin, &f.origin) {
			p.raise(SemanticError, "origin exceeds %d octets in $INCLUDE", MaxName)
		}
		p.lex(&tok)
	}
	if tok.kind != tokenDelimiter && tok.kind != tokenEOF {
		p.raise(SyntaxError, "trailing data after $INCLUDE")
	}

	if !filepath.IsAbs(path) && f.handle != nil {
		path = filepath.Join(filepath.Dir(f.path), path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		p.raise(IOError, "cannot resolve $INCLUDE path %q", path)
	}
	if p.includes(abs) {
		p.raise(SemanticError, "cyclic $INCLUDE of %q", path)
	}

	included := &file{includer: f}
	if code := p.openFile(included, path); code != Success {
		p.raise(code, "cannot open $INCLUDE file %q", path)
	}
	included.origin = origin
	included.owner = origin
	included.lastType = 0
	included.lastClass = f.lastClass
	included.lastTTL = f.lastTTL
	p.file = included
}

// expectEndOfLine consumes the directive's terminating newline.
func (p *Parser) expectEndOfLine(directive string) {
	var tok token
	p.lex(&tok)
	if tok.kind != tokenDelimiter && tok.kind != tokenEOF {
		p.raise(SyntaxError, "trailing data after %s", directive)
	}
}
