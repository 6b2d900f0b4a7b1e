package buf

import (
	"fmt"
	"math"
	"slices"
)

// BytesMut is an exclusively owned, growable byte region and a read cursor
// over it. buf[off:] is the unread part.
type BytesMut struct {
	buf    []byte
	off    int
	mark   int
	marked bool
}

// NewBytesMut returns an empty region with room for capacity bytes.
func NewBytesMut(capacity int) BytesMut { return BytesMut{buf: make([]byte, 0, capacity)} }

// BytesMutFrom takes ownership of b.
func BytesMutFrom(b []byte) BytesMut { return BytesMut{buf: b} }

func (m BytesMut) Len() int { return len(m.buf) - m.off }
func (m BytesMut) Cap() int { return cap(m.buf) - m.off }

// Data returns the unread bytes. They may be modified.
func (m BytesMut) Data() []byte { return m.buf[m.off:] }

// SplitAt returns [0,mid) and [mid,Len). The head cannot grow into the tail;
// the tail keeps any spare capacity. It panics if mid > Len.
func (m BytesMut) SplitAt(mid int) (BytesMut, BytesMut) {
	data := m.Data()
	if mid < 0 || mid > len(data) {
		panic(fmt.Sprintf("buf: split at %d out of range [0,%d]", mid, len(data)))
	}
	return BytesMut{buf: data[:mid:mid]}, BytesMut{buf: data[mid:]}
}

// SplitTo detaches and returns the first n bytes.
func (m *BytesMut) SplitTo(n int) BytesMut {
	head, tail := m.SplitAt(n)
	*m = tail
	return head
}

// Freeze converts the region into a shared one.
func (m BytesMut) Freeze() Bytes {
	data := m.Data()
	return Bytes{b: data[:len(data):len(data)]}
}

// Reserve makes room for at least n more bytes without another allocation.
func (m *BytesMut) Reserve(n int) {
	if m.off > 0 && cap(m.buf)-len(m.buf) < n {
		// drop the consumed prefix instead of carrying it into the new array
		m.buf = append(make([]byte, 0, m.Len()+n), m.buf[m.off:]...)
		m.mark -= m.off
		if m.mark < 0 {
			m.marked = false
		}
		m.off = 0
		return
	}
	m.buf = slices.Grow(m.buf, n)
}

// Spare returns the writable capacity beyond Len. Commit makes n of those
// bytes readable.
func (m *BytesMut) Spare() []byte { return m.buf[len(m.buf):cap(m.buf)] }

func (m *BytesMut) Commit(n int) {
	if n > cap(m.buf)-len(m.buf) {
		panic(fmt.Sprintf("buf: commit %d beyond spare capacity %d", n, cap(m.buf)-len(m.buf)))
	}
	m.buf = m.buf[:len(m.buf)+n]
}

// Clear drops all bytes, keeping the allocation.
func (m *BytesMut) Clear() {
	m.buf, m.off, m.marked = m.buf[:0], 0, false
}

func (m *BytesMut) RemainingMut() int { return math.MaxInt - len(m.buf) }
func (m *BytesMut) PutSlice(p []byte) { m.buf = append(m.buf, p...) }

func (m *BytesMut) Remaining() int { return m.Len() }
func (m *BytesMut) Chunk() []byte  { return m.Data() }

func (m *BytesMut) Advance(n int) {
	if n > m.Len() {
		advancePanic(n, m.Len())
	}
	m.off += n
}

func (m *BytesMut) Mark() bool {
	m.mark, m.marked = m.off, true
	return true
}

func (m *BytesMut) Recover() {
	if m.marked {
		m.off = m.mark
	}
}

func (m *BytesMut) Snapshot() (Pos, bool) { return Pos{off: m.off}, true }
func (m *BytesMut) Restore(p Pos)         { m.off = p.off }
