package record

import (
	"cmp"
	"fmt"
	"math"
	"math/bits"
	"slices"

	"github.com/rawbytedev/zcbuf"
	"github.com/rawbytedev/zcbuf/pkg/buf"
	"github.com/rawbytedev/zcbuf/pkg/endian"
)

// Encoder builds records. It reuses its scratch space and is not safe for
// concurrent use.
type Encoder struct {
	flags       uint16
	tmpfields   []Field
	slots       []Slot
	zeroPadding [8]byte
}

func NewEncoder(flags uint16) *Encoder { return &Encoder{flags: flags} }

func align(n, a int) int { return (n + a - 1) &^ (a - 1) }

func fitsUint32(off, n int) bool { return uint64(off)+uint64(n) <= math.MaxUint32 }

// Encode returns a new record holding fields. The record is staged in a
// pooled buffer and copied out once.
func (e *Encoder) Encode(schemaID uint64, hotTags []uint16, fields []Field) ([]byte, error) {
	out := buf.AcquirePooled()
	defer out.Release()
	if err := e.AppendTo(out, schemaID, hotTags, fields); err != nil {
		return nil, err
	}
	return append([]byte(nil), out.Bytes()...), nil
}

// AppendTo writes a record to dst. Nothing is written on error.
func (e *Encoder) AppendTo(dst buf.BufMut, schemaID uint64, hotTags []uint16, fields []Field) error {
	if len(fields) > MaxFields {
		return fmt.Errorf("%w: %d > %d", ErrTooManyFields, len(fields), MaxFields)
	}
	var bitmap uint8
	for _, t := range hotTags {
		if t < 1 || t > 8 {
			return fmt.Errorf("%w: tag %d", ErrHotTag, t)
		}
		bitmap |= 1 << (t - 1)
	}

	e.tmpfields = append(e.tmpfields[:0], fields...)
	slices.SortStableFunc(e.tmpfields, func(a, b Field) int {
		ah, bh := isHot(bitmap, a.Tag), isHot(bitmap, b.Tag)
		if ah != bh {
			if ah {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Tag, b.Tag)
	})
	hot := 0
	for i, f := range e.tmpfields {
		if i > 0 && e.tmpfields[i-1].Tag == f.Tag {
			return fmt.Errorf("%w: %d", ErrDuplicateTag, f.Tag)
		}
		if isHot(bitmap, f.Tag) {
			hot++
		}
	}
	if hot != bits.OnesCount8(bitmap) {
		return fmt.Errorf("%w: %d of %d hot tags have a field", ErrHotTag, hot, bits.OnesCount8(bitmap))
	}

	padded := e.flags&FlagPadding != 0
	e.slots = e.slots[:0]
	off := 0
	for _, f := range e.tmpfields {
		if padded {
			off = align(off, 8)
		}
		if !fitsUint32(off, len(f.Payload)) {
			return fmt.Errorf("record: data section exceeds 4GiB")
		}
		e.slots = append(e.slots, Slot{
			Tag:    endian.NewU16LE(f.Tag),
			Flags:  endian.NewU16LE(f.Flags),
			Offset: endian.NewU32LE(uint32(off)),
			Length: endian.NewU32LE(uint32(len(f.Payload))),
		})
		off += len(f.Payload)
	}
	vtEnd := HeaderSize + len(e.slots)*SlotSize
	dataOff := vtEnd
	if padded {
		dataOff = align(dataOff, 8)
	}

	h := Header{
		Magic:       endian.NewU32LE(MagicV1),
		Version:     endian.NewU16LE(VersionV1),
		Flags:       endian.NewU16LE(e.flags),
		SchemaID:    endian.NewU64LE(schemaID),
		HotBitmap:   bitmap,
		VTableSlots: uint8(len(e.slots)),
		DataOffset:  endian.NewU16LE(uint16(dataOff)),
		VTableOff:   endian.NewU32LE(HeaderSize),
	}
	total := dataOff + off
	if room := dst.RemainingMut(); room < total {
		return &zcbuf.SizeError{Type: "record", Need: total, Have: room}
	}

	if err := zcbuf.Write(dst, &h); err != nil {
		return err
	}
	if err := zcbuf.WriteElems(dst, e.slots); err != nil {
		return err
	}
	dst.PutSlice(e.zeroPadding[:dataOff-vtEnd])
	pos := 0
	for i, f := range e.tmpfields {
		start := int(e.slots[i].Offset.Get())
		dst.PutSlice(e.zeroPadding[:start-pos])
		dst.PutSlice(f.Payload)
		pos = start + len(f.Payload)
	}
	return nil
}
