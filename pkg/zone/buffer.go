package zone

import "io"

// buffer is a reusable input window. For file input the window slides:
// consumed bytes are compacted away and the tail is refilled from the
// stream. For string input the window is the caller's buffer and is never
// written to.
type buffer struct {
	data   []byte // capacity windowSize+1 for file input (sentinel slot)
	length int    // currently valid bytes
	index  int    // read position
}

// compact discards consumed bytes, preserving everything from keep onward
// plus one byte of lookback for line-start detection. Returns the number of
// bytes discarded.
func (b *buffer) compact(keep int) int {
	from := keep
	if from > 0 {
		from--
	}
	if from == 0 {
		return 0
	}
	copy(b.data, b.data[from:b.length])
	b.length -= from
	if b.index -= from; b.index < 0 {
		// the read position can trail the preserved region by a run of
		// blanks; those are gone now
		b.index = 0
	}
	return from
}

// fill reads from r until the window is full or the stream ends. On EOF a
// NUL sentinel is placed at the current length. The window keeps one spare
// byte of capacity for it.
func (b *buffer) fill(r io.Reader) (eof bool, err error) {
	limit := cap(b.data) - 1
	for b.length < limit {
		n, rerr := r.Read(b.data[b.length:limit])
		b.length += n
		if rerr == io.EOF {
			b.data[b.length] = 0
			return true, nil
		}
		if rerr != nil {
			return false, rerr
		}
	}
	return false, nil
}
