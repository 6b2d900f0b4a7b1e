package layout

// ByteSlice is a byte region whose Deref returns the same bytes at the same
// address on every call for as long as the region is alive.
type ByteSlice interface {
	Deref() []byte
}

// ByteSliceMut is a region that may be written through.
type ByteSliceMut interface {
	ByteSlice
	DerefMut() []byte
}

// CloneableByteSlice regions can be duplicated without copying the bytes.
type CloneableByteSlice[S any] interface {
	ByteSlice
	Clone() S
}

// SplitByteSlice regions can be divided at mid into [0,mid) and [mid,len)
// without copying. Neither half may grow into the other.
type SplitByteSlice[S any] interface {
	ByteSlice
	SplitAt(mid int) (S, S)
}

// Borrowed is a read-only view of a plain byte slice.
type Borrowed []byte

func (b Borrowed) Deref() []byte   { return b }
func (b Borrowed) Clone() Borrowed { return b }

func (b Borrowed) SplitAt(mid int) (Borrowed, Borrowed) {
	return b[:mid:mid], b[mid:]
}

// BorrowedMut is a writable view of a plain byte slice.
type BorrowedMut []byte

func (b BorrowedMut) Deref() []byte    { return b }
func (b BorrowedMut) DerefMut() []byte { return b }

func (b BorrowedMut) SplitAt(mid int) (BorrowedMut, BorrowedMut) {
	return b[:mid:mid], b[mid:]
}
