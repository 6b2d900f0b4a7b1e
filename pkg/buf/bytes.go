package buf

import "fmt"

// Bytes is a shared, immutable byte region and a read cursor over it. Copies
// of a Bytes value share storage; nothing writes to that storage after
// construction.
type Bytes struct {
	b      []byte
	mark   []byte
	marked bool
}

// NewBytes wraps b without copying. The caller must not modify b afterwards.
func NewBytes(b []byte) Bytes { return Bytes{b: b} }

// CopyBytes returns a Bytes holding its own copy of b.
func CopyBytes(b []byte) Bytes { return Bytes{b: append([]byte(nil), b...)} }

func (b Bytes) Len() int { return len(b.b) }

// Data returns the unread bytes. They must not be modified.
func (b Bytes) Data() []byte { return b.b }

// Clone duplicates the handle, not the bytes.
func (b Bytes) Clone() Bytes { return Bytes{b: b.b} }

// SplitAt returns [0,mid) and [mid,Len). It panics if mid > Len.
func (b Bytes) SplitAt(mid int) (Bytes, Bytes) {
	if mid < 0 || mid > len(b.b) {
		panic(fmt.Sprintf("buf: split at %d out of range [0,%d]", mid, len(b.b)))
	}
	return Bytes{b: b.b[:mid:mid]}, Bytes{b: b.b[mid:]}
}

// SplitTo detaches and returns the first n bytes.
func (b *Bytes) SplitTo(n int) Bytes {
	head, tail := b.SplitAt(n)
	b.b = tail.b
	return head
}

// Slice returns the sub-region [i,j).
func (b Bytes) Slice(i, j int) Bytes { return Bytes{b: b.b[i:j:j]} }

func (b *Bytes) Remaining() int { return len(b.b) }
func (b *Bytes) Chunk() []byte  { return b.b }

func (b *Bytes) Advance(n int) {
	if n > len(b.b) {
		advancePanic(n, len(b.b))
	}
	b.b = b.b[n:]
}

func (b *Bytes) Mark() bool {
	b.mark, b.marked = b.b, true
	return true
}

func (b *Bytes) Recover() {
	if b.marked {
		b.b = b.mark
	}
}

func (b *Bytes) Snapshot() (Pos, bool) { return Pos{b: b.b}, true }
func (b *Bytes) Restore(p Pos)         { b.b = p.b }
