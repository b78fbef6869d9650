// Package zone parses DNS master files into a stream of wire-format
// resource records.
//
// Parsing runs in two stages. A vectorized structural indexer locates the
// significant bytes of a sliding input window; a contour-aware lexer turns
// them into tokens, handling quoting, escapes, parentheses as line
// continuation, comments and include directives. A record state machine
// applies RFC 1035 defaulting for omitted owner, TTL and class fields,
// builds type-specific RDATA, and delivers each finished
// (owner, type, class, ttl, rdata) tuple to a caller-supplied sink through
// a reusable ring of RDATA buffers.
//
// Records are delivered in input order. The sink aborts the parse by
// returning a negative code, which becomes the parse result.
package zone
