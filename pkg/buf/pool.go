package buf

import (
	"math"

	"github.com/valyala/bytebufferpool"
)

// Pooled is a growable destination backed by a pooled buffer. Call Release
// when the bytes are no longer referenced.
type Pooled struct {
	bb *bytebufferpool.ByteBuffer
}

func AcquirePooled() Pooled { return Pooled{bb: bytebufferpool.Get()} }

func (p Pooled) Release() { bytebufferpool.Put(p.bb) }

func (p Pooled) RemainingMut() int { return math.MaxInt - len(p.bb.B) }
func (p Pooled) PutSlice(b []byte) { p.bb.B = append(p.bb.B, b...) }

// Bytes returns the written bytes. They are only valid until Release.
func (p Pooled) Bytes() []byte { return p.bb.B }
func (p Pooled) Len() int      { return p.bb.Len() }
func (p Pooled) Reset()        { p.bb.Reset() }
