/*
MIT License

Copyright (c) 2026 RUSS Contributors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package buffer

import (
	"io"
	"sync"
)

// DefaultCap is the capacity a zero-value New call receives.
const DefaultCap = 64 * 1024

// Buffer is a growable, capacity-bounded byte sink and source. It is safe
// for concurrent use: a relay goroutine may Write while the caller reads
// Bytes/Len from another goroutine.
type Buffer interface {
	io.Writer
	io.Reader

	// Len returns the number of bytes currently held.
	Len() int
	// Cap returns the maximum number of bytes the buffer will hold.
	Cap() int
	// Offset returns the current read cursor position.
	Offset() int
	// Bytes returns the held bytes. The slice is only valid until the next Write.
	Bytes() []byte
	// String returns the held bytes as a string.
	String() string
	// Truncated reports whether a Write was ever clipped by the capacity ceiling.
	Truncated() bool
	// Reset discards all held bytes and resets the read cursor.
	Reset()
}

type buf struct {
	mu  sync.Mutex
	cap int
	b   []byte
	off int
	trn bool
}

// New returns a Buffer bounded to cap bytes. cap <= 0 uses DefaultCap.
func New(cap int) Buffer {
	if cap <= 0 {
		cap = DefaultCap
	}
	return &buf{cap: cap, b: make([]byte, 0, minInt(cap, 4096))}
}

// Write appends p, silently truncating once Cap is reached.
func (b *buf) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	room := b.cap - len(b.b)
	if room <= 0 {
		if len(p) > 0 {
			b.trn = true
		}
		return len(p), nil
	}
	n := len(p)
	if n > room {
		n = room
		b.trn = true
	}
	b.b = append(b.b, p[:n]...)
	return len(p), nil
}

// Read drains from the current offset, advancing it.
func (b *buf) Read(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.off >= len(b.b) {
		return 0, io.EOF
	}
	n := copy(p, b.b[b.off:])
	b.off += n
	return n, nil
}

func (b *buf) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.b)
}

func (b *buf) Cap() int {
	return b.cap
}

func (b *buf) Offset() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.off
}

func (b *buf) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b
}

func (b *buf) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.b)
}

func (b *buf) Truncated() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.trn
}

func (b *buf) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.b = b.b[:0]
	b.off = 0
	b.trn = false
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
