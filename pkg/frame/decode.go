package frame

import (
	"fmt"
	"hash/crc32"

	"github.com/rawbytedev/zcbuf"
	"github.com/rawbytedev/zcbuf/pkg/endian"
	"github.com/rawbytedev/zcbuf/pkg/layout"
)

// Frame is one decoded frame viewed over the region it was read from.
type Frame[S layout.ByteSlice] struct {
	body layout.TrailingRef[S, Header, byte]
	crc  uint32
}

func (f Frame[S]) Header() Header                           { return f.body.HeadValue() }
func (f Frame[S]) Type() Type                               { return f.body.Head().Type }
func (f Frame[S]) Flags() uint8                             { return f.body.Head().Flags }
func (f Frame[S]) CRC() uint32                              { return f.crc }
func (f Frame[S]) Payload() []byte                          { return f.body.Elems() }
func (f Frame[S]) EncodedLen() int                          { return HeaderSize + f.body.Len() + TrailerSize }
func (f Frame[S]) Region() S                                { return f.body.Bytes() }
func (f Frame[S]) Ref() layout.TrailingRef[S, Header, byte] { return f.body }

// Offsets splits a payload flagged with FlagHasOffsetTable into its offset
// table and the remaining data. Without the flag the table is empty.
func (f Frame[S]) Offsets() ([]endian.U32LE, []byte, error) {
	p := layout.Borrowed(f.Payload())
	if f.Flags()&FlagHasOffsetTable == 0 {
		return nil, p, nil
	}
	cnt, err := zcbuf.Peek[endian.U16LE](p)
	if err != nil {
		return nil, nil, fmt.Errorf("frame: offset count: %w", err)
	}
	tab, err := zcbuf.GetTrailing[endian.U16LE, endian.U32LE](&p, int(cnt.Value().Get()))
	if err != nil {
		return nil, nil, fmt.Errorf("frame: offset table: %w", err)
	}
	return tab.Elems(), p, nil
}

// PeekHeader validates and returns the header at the front of s.
func PeekHeader[S layout.ByteSlice](s S) (Header, error) {
	if have := len(s.Deref()); have < HeaderSize {
		return Header{}, incomplete(HeaderSize, have)
	}
	h, err := zcbuf.Peek[Header](s)
	if err != nil {
		return Header{}, fmt.Errorf("frame: header: %w", err)
	}
	return h.Value(), nil
}

// Next carves one frame off the front of *s. ErrIncomplete means more bytes
// are needed. On any error *s is unchanged.
func Next[S layout.SplitByteSlice[S]](s *S, limits Limits) (Frame[S], error) {
	h, err := PeekHeader(*s)
	if err != nil {
		return Frame[S]{}, err
	}
	n := h.Length.Get()
	if limits.MaxPayload > 0 && uint64(n) > uint64(limits.MaxPayload) {
		return Frame[S]{}, fmt.Errorf("%w: %d > %d", ErrPayloadTooLarge, n, limits.MaxPayload)
	}
	need, ok := layout.TrailingLen(HeaderSize+TrailerSize, 1, int(n))
	if !ok {
		return Frame[S]{}, fmt.Errorf("%w: %d", ErrPayloadTooLarge, n)
	}
	if have := len((*s).Deref()); have < need {
		return Frame[S]{}, incomplete(need, have)
	}

	orig := *s
	body, err := zcbuf.GetTrailing[Header, byte](s, int(n))
	if err != nil {
		return Frame[S]{}, err
	}
	trailer, err := zcbuf.Get[endian.U32LE](s)
	if err != nil {
		*s = orig
		return Frame[S]{}, err
	}
	want := trailer.Value().Get()
	if got := crc32.ChecksumIEEE(body.Bytes().Deref()); got != want {
		*s = orig
		return Frame[S]{}, fmt.Errorf("%w: got %08x, want %08x", ErrChecksum, got, want)
	}
	return Frame[S]{body: body, crc: want}, nil
}
