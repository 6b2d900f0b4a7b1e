// Package buf provides byte streams that may be split across chunks, owned
// byte regions that can be divided without copying, and write destinations.
package buf

import "fmt"

// Buf is a read cursor over bytes that may live in several chunks.
type Buf interface {
	// Remaining reports the number of unread bytes across all chunks.
	Remaining() int
	// Chunk returns the next contiguous run of unread bytes. It is empty
	// only when Remaining is zero.
	Chunk() []byte
	// Advance consumes n bytes. It panics if n > Remaining.
	Advance(n int)
}

// Rewinder is a Buf whose read position can be saved and restored.
type Rewinder interface {
	Buf
	// Mark saves the current position and reports whether Recover will be
	// able to return to it.
	Mark() bool
	// Recover returns to the position saved by the last successful Mark.
	Recover()
	// Snapshot captures the current position without touching the Mark
	// slot, and reports whether Restore will be able to return to it.
	Snapshot() (Pos, bool)
	// Restore returns to a position captured by Snapshot. The position is
	// only good until the buffer is next written or split.
	Restore(Pos)
}

// Pos is a read position captured by Rewinder.Snapshot.
type Pos struct {
	b   []byte
	off int
	sub []Pos
}

// BufMut is a destination for bytes.
type BufMut interface {
	// RemainingMut reports how many more bytes PutSlice accepts.
	RemainingMut() int
	// PutSlice appends p. It panics if len(p) > RemainingMut.
	PutSlice(p []byte)
}

func advancePanic(n, have int) {
	panic(fmt.Sprintf("buf: advance %d past end of %d remaining", n, have))
}
