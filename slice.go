package zcbuf

import "github.com/rawbytedev/zcbuf/pkg/buf"

// Shared adapts a buf.Bytes for typed references. It can be cloned and split
// but never written through. A *Shared is also a buf.Buf.
type Shared struct {
	buf.Bytes
}

func NewShared(b []byte) Shared { return Shared{Bytes: buf.NewBytes(b)} }

func (s Shared) Deref() []byte { return s.Data() }
func (s Shared) Clone() Shared { return Shared{Bytes: s.Bytes.Clone()} }

func (s Shared) SplitAt(mid int) (Shared, Shared) {
	head, tail := s.Bytes.SplitAt(mid)
	return Shared{Bytes: head}, Shared{Bytes: tail}
}

// Exclusive adapts a buf.BytesMut. References carved from it may be written
// through with layout.Mut and friends. It cannot be cloned.
type Exclusive struct {
	buf.BytesMut
}

func NewExclusive(b []byte) Exclusive { return Exclusive{BytesMut: buf.BytesMutFrom(b)} }

func (e Exclusive) Deref() []byte    { return e.Data() }
func (e Exclusive) DerefMut() []byte { return e.Data() }

func (e Exclusive) SplitAt(mid int) (Exclusive, Exclusive) {
	head, tail := e.BytesMut.SplitAt(mid)
	return Exclusive{BytesMut: head}, Exclusive{BytesMut: tail}
}
