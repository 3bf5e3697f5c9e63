package arena

import "unsafe"

const chunkSize = 4 << 10

// Strings is a bump allocator for string data that must outlive the buffer it
// was built from. Free is a no-op; Reset releases everything.
//
// The zero Strings is ready to use.
type Strings struct {
	chunks [][]byte
	used   int
}

// Copy returns a copy of s whose bytes live in the arena.
func (a *Strings) Copy(s string) string {
	if s == "" {
		return ""
	}
	buf := a.alloc(len(s))
	copy(buf, s)
	return unsafe.String(unsafe.SliceData(buf), len(buf))
}

// CopyBytes is Copy for a byte slice.
func (a *Strings) CopyBytes(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	buf := a.alloc(len(b))
	copy(buf, b)
	return unsafe.String(unsafe.SliceData(buf), len(buf))
}

func (a *Strings) alloc(n int) []byte {
	a.used += n
	if n > chunkSize/4 {
		// large requests get a private chunk so the current one is not wasted
		big := make([]byte, n)
		a.chunks = append(a.chunks, big)
		if len(a.chunks) > 1 {
			last := len(a.chunks) - 1
			a.chunks[last], a.chunks[last-1] = a.chunks[last-1], a.chunks[last]
		}
		return big
	}
	if len(a.chunks) == 0 || cap(a.chunks[len(a.chunks)-1])-len(a.chunks[len(a.chunks)-1]) < n {
		a.chunks = append(a.chunks, make([]byte, 0, chunkSize))
	}
	last := &a.chunks[len(a.chunks)-1]
	start := len(*last)
	*last = (*last)[:start+n]
	return (*last)[start : start+n : start+n]
}

// Free is accepted for symmetry with other allocators and does nothing.
func (*Strings) Free(string) {}

// Allocated returns the number of bytes handed out since the last Reset.
func (a *Strings) Allocated() int { return a.used }

// Reset drops every chunk. Strings returned earlier must not be used after it.
func (a *Strings) Reset() {
	a.chunks = nil
	a.used = 0
}
