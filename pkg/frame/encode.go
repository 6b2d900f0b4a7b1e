package frame

import (
	"fmt"
	"hash/crc32"
	"io"
	"math"

	"github.com/rawbytedev/zcbuf"
	"github.com/rawbytedev/zcbuf/internal/common"
	"github.com/rawbytedev/zcbuf/pkg/buf"
	"github.com/rawbytedev/zcbuf/pkg/endian"
)

// Append writes one frame to dst. Nothing is written if dst lacks room.
func Append(dst buf.BufMut, typ Type, flags uint8, payload []byte) error {
	if uint64(len(payload)) > math.MaxUint32 {
		return fmt.Errorf("%w: %d", ErrPayloadTooLarge, len(payload))
	}
	h := Header{
		Magic:   endian.NewU16LE(Magic),
		Version: Version,
		Type:    typ,
		Flags:   flags,
		Length:  endian.NewU32LE(uint32(len(payload))),
	}
	if err := h.Validate(); err != nil {
		return err
	}
	need := HeaderSize + len(payload) + TrailerSize
	if room := dst.RemainingMut(); room < need {
		return &zcbuf.SizeError{Type: "frame", Need: need, Have: room}
	}
	crc := crc32.Update(crc32.ChecksumIEEE(common.BytesOf(&h)), crc32.IEEETable, payload)
	trailer := endian.NewU32LE(crc)
	if err := zcbuf.Write(dst, &h); err != nil {
		return err
	}
	dst.PutSlice(payload)
	return zcbuf.Write(dst, &trailer)
}

// AppendData writes a data frame whose payload is prefixed by an offset
// table.
func AppendData(dst buf.BufMut, offsets []uint32, payload []byte) error {
	if len(offsets) > math.MaxUint16 {
		return fmt.Errorf("frame: %d offsets do not fit a u16 count", len(offsets))
	}
	p := buf.AcquirePooled()
	defer p.Release()
	cnt := endian.NewU16LE(uint16(len(offsets)))
	if err := zcbuf.Write(p, &cnt); err != nil {
		return err
	}
	for _, off := range offsets {
		v := endian.NewU32LE(off)
		if err := zcbuf.Write(p, &v); err != nil {
			return err
		}
	}
	p.PutSlice(payload)
	return Append(dst, TypeData, FlagHasOffsetTable, p.Bytes())
}

// Encoder writes frames to an io.Writer, one Write call per frame.
type Encoder struct {
	w io.Writer
}

func NewEncoder(w io.Writer) *Encoder { return &Encoder{w: w} }

func (e *Encoder) Encode(typ Type, flags uint8, payload []byte) error {
	p := buf.AcquirePooled()
	defer p.Release()
	if err := Append(p, typ, flags, payload); err != nil {
		return err
	}
	_, err := e.w.Write(p.Bytes())
	return err
}

func (e *Encoder) EncodeData(offsets []uint32, payload []byte) error {
	p := buf.AcquirePooled()
	defer p.Release()
	if err := AppendData(p, offsets, payload); err != nil {
		return err
	}
	_, err := e.w.Write(p.Bytes())
	return err
}
