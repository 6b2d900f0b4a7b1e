package buf

import (
	"fmt"
	"math"
)

// Chain reads first to its end and then last, exposing a chunk boundary
// between them.
type Chain struct {
	first, last Buf
}

func NewChain(first, last Buf) *Chain { return &Chain{first: first, last: last} }

func (c *Chain) First() Buf { return c.first }
func (c *Chain) Last() Buf  { return c.last }

func (c *Chain) Remaining() int {
	a, b := c.first.Remaining(), c.last.Remaining()
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

func (c *Chain) Chunk() []byte {
	if c.first.Remaining() > 0 {
		return c.first.Chunk()
	}
	return c.last.Chunk()
}

func (c *Chain) Advance(n int) {
	if r := c.first.Remaining(); r > 0 {
		if n <= r {
			c.first.Advance(n)
			return
		}
		c.first.Advance(r)
		n -= r
	}
	c.last.Advance(n)
}

// Mark succeeds only when both halves can be rewound.
func (c *Chain) Mark() bool {
	a, ok := c.first.(Rewinder)
	if !ok {
		return false
	}
	b, ok := c.last.(Rewinder)
	if !ok {
		return false
	}
	return a.Mark() && b.Mark()
}

func (c *Chain) Recover() {
	c.first.(Rewinder).Recover()
	c.last.(Rewinder).Recover()
}

func (c *Chain) Snapshot() (Pos, bool) {
	a, ok := c.first.(Rewinder)
	if !ok {
		return Pos{}, false
	}
	b, ok := c.last.(Rewinder)
	if !ok {
		return Pos{}, false
	}
	pa, ok := a.Snapshot()
	if !ok {
		return Pos{}, false
	}
	pb, ok := b.Snapshot()
	if !ok {
		return Pos{}, false
	}
	return Pos{sub: []Pos{pa, pb}}, true
}

func (c *Chain) Restore(p Pos) {
	c.first.(Rewinder).Restore(p.sub[0])
	c.last.(Rewinder).Restore(p.sub[1])
}

// ChainMut fills first and then last.
type ChainMut struct {
	first, last BufMut
}

func NewChainMut(first, last BufMut) *ChainMut { return &ChainMut{first: first, last: last} }

func (c *ChainMut) RemainingMut() int {
	a, b := c.first.RemainingMut(), c.last.RemainingMut()
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

func (c *ChainMut) PutSlice(p []byte) {
	if len(p) > c.RemainingMut() {
		panic(fmt.Sprintf("buf: put of %d bytes into %d remaining", len(p), c.RemainingMut()))
	}
	n := min(len(p), c.first.RemainingMut())
	if n > 0 {
		c.first.PutSlice(p[:n])
	}
	if n < len(p) {
		c.last.PutSlice(p[n:])
	}
}

// SliceMut is a fixed-size destination over a caller-owned slice.
type SliceMut struct {
	b []byte
	n int
}

func NewSliceMut(b []byte) *SliceMut { return &SliceMut{b: b} }

func (s *SliceMut) RemainingMut() int { return len(s.b) - s.n }

func (s *SliceMut) PutSlice(p []byte) {
	if len(p) > s.RemainingMut() {
		panic(fmt.Sprintf("buf: put of %d bytes into %d remaining", len(p), s.RemainingMut()))
	}
	s.n += copy(s.b[s.n:], p)
}

// Written returns the filled prefix.
func (s *SliceMut) Written() []byte { return s.b[:s.n] }

// Reader is a rewindable cursor over a plain byte slice.
type Reader struct {
	b    []byte
	mark []byte
}

func NewReader(b []byte) *Reader { return &Reader{b: b, mark: b} }

func (r *Reader) Remaining() int { return len(r.b) }
func (r *Reader) Chunk() []byte  { return r.b }

func (r *Reader) Advance(n int) {
	if n > len(r.b) {
		advancePanic(n, len(r.b))
	}
	r.b = r.b[n:]
}

func (r *Reader) Mark() bool { r.mark = r.b; return true }
func (r *Reader) Recover()   { r.b = r.mark }

func (r *Reader) Snapshot() (Pos, bool) { return Pos{b: r.b}, true }
func (r *Reader) Restore(p Pos)         { r.b = p.b }
