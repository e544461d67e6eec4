// Package buffer implements the growable byte buffer collaborator that the
// markdown engine is built on: an append-only []byte with a cheap Reset and
// a Truncate that can shrink the live tail without giving up the
// underlying storage.
//
// It plays the same role for the markdown package that ByteArena plays for
// scandown: a reusable backing store that recognizers write into and, on
// occasion, unwind.
package buffer

// Buffer is a growable byte sequence. The zero value is an empty buffer
// ready to use.
type Buffer struct {
	data []byte
}

// Len returns the number of live bytes in the buffer.
func (b *Buffer) Len() int { return len(b.data) }

// Bytes returns a reference to the buffer's live bytes. The caller must not
// retain the slice past the buffer's next mutation.
func (b *Buffer) Bytes() []byte { return b.data }

// String returns a copy of the buffer's live bytes.
func (b *Buffer) String() string { return string(b.data) }

// Reset discards all live bytes, retaining the underlying storage.
func (b *Buffer) Reset() { b.data = b.data[:0] }

// Grow ensures the buffer has room for at least n more bytes without a
// further allocation.
func (b *Buffer) Grow(n int) {
	if cap(b.data)-len(b.data) >= n {
		return
	}
	grown := make([]byte, len(b.data), len(b.data)+n)
	copy(grown, b.data)
	b.data = grown
}

// Write appends p to the buffer. It always returns len(p), nil.
func (b *Buffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

// WriteByte appends a single byte to the buffer.
func (b *Buffer) WriteByte(c byte) error {
	b.data = append(b.data, c)
	return nil
}

// WriteString appends s to the buffer.
func (b *Buffer) WriteString(s string) (int, error) {
	b.data = append(b.data, s...)
	return len(s), nil
}

// Truncate discards bytes beyond the first n, shrinking Len() to n. It
// panics if n is negative or greater than Len(), matching bytes.Buffer's
// Truncate contract.
func (b *Buffer) Truncate(n int) {
	if n < 0 || n > len(b.data) {
		panic("buffer: truncation out of range")
	}
	b.data = b.data[:n]
}

// TrimRight removes trailing bytes equal to c, returning how many were
// removed. Used by the hard-break recognizer to drop trailing spaces
// before emitting a break.
func (b *Buffer) TrimRight(c byte) int {
	n := 0
	for len(b.data) > 0 && b.data[len(b.data)-1] == c {
		b.data = b.data[:len(b.data)-1]
		n++
	}
	return n
}

// Last returns the last byte written, and whether the buffer is non-empty.
func (b *Buffer) Last() (byte, bool) {
	if len(b.data) == 0 {
		return 0, false
	}
	return b.data[len(b.data)-1], true
}
