package record

import (
	"cmp"
	"fmt"
	"math/bits"
	"slices"

	"github.com/rawbytedev/zcbuf"
	"github.com/rawbytedev/zcbuf/pkg/layout"
)

// Record is a read-only view of an encoded record. Payloads alias the
// source bytes.
type Record struct {
	head  layout.TrailingRef[layout.Borrowed, Header, Slot]
	data  []byte
	hot   int
	total int
}

// Open views the record at the front of s without consuming it. Bytes after
// the record's last payload are ignored.
func Open[S layout.ByteSlice](s S) (Record, error) {
	h, err := zcbuf.Peek[Header](s)
	if err != nil {
		return Record{}, fmt.Errorf("record: header: %w", err)
	}
	hv := h.Value()
	if hv.VTableOff.Get() != HeaderSize {
		return Record{}, fmt.Errorf("%w: vtable at %d", ErrCorrupt, hv.VTableOff.Get())
	}
	head, err := zcbuf.PeekTrailing[Header, Slot](s, int(hv.VTableSlots))
	if err != nil {
		return Record{}, fmt.Errorf("record: vtable: %w", err)
	}
	raw := s.Deref()
	dataOff := int(hv.DataOffset.Get())
	if dataOff < len(head.Bytes()) || dataOff > len(raw) {
		return Record{}, fmt.Errorf("%w: data offset %d", ErrCorrupt, dataOff)
	}
	data := raw[dataOff:]
	end := 0
	for _, sl := range head.Elems() {
		stop := uint64(sl.Offset.Get()) + uint64(sl.Length.Get())
		if stop > uint64(len(data)) {
			return Record{}, fmt.Errorf("%w: tag %d ends at %d of %d", ErrCorrupt, sl.Tag.Get(), stop, len(data))
		}
		end = max(end, int(stop))
	}
	hot := bits.OnesCount8(hv.HotBitmap)
	if hot > len(head.Elems()) {
		return Record{}, fmt.Errorf("%w: %d hot tags, %d slots", ErrCorrupt, hot, len(head.Elems()))
	}
	return Record{head: head, data: data[:end:end], hot: hot, total: dataOff + end}, nil
}

func (r Record) Header() Header   { return r.head.HeadValue() }
func (r Record) SchemaID() uint64 { return r.head.Head().SchemaID.Get() }
func (r Record) Flags() uint16    { return r.head.Head().Flags.Get() }
func (r Record) Len() int         { return r.head.Len() }

// EncodedLen is the number of bytes the record spans.
func (r Record) EncodedLen() int { return r.total }

func (r Record) Slots() []Slot { return r.head.Elems() }

func (r Record) Tags() []uint16 {
	tags := make([]uint16, 0, r.Len())
	for _, s := range r.Slots() {
		tags = append(tags, s.Tag.Get())
	}
	return tags
}

func (r Record) payload(s Slot) []byte {
	off := int(s.Offset.Get())
	return r.data[off : off+int(s.Length.Get())]
}

// IsHot reports whether tag is marked in the hot bitmap.
func (r Record) IsHot(tag uint16) bool { return isHot(r.head.Head().HotBitmap, tag) }

// HotField finds a hot tag by index.
func (r Record) HotField(tag uint16) ([]byte, bool) {
	bm := r.head.Head().HotBitmap
	if !isHot(bm, tag) {
		return nil, false
	}
	idx := bits.OnesCount8(bm & (1<<(tag-1) - 1))
	s := r.Slots()[idx]
	if s.Tag.Get() != tag {
		return nil, false
	}
	return r.payload(s), true
}

// Field finds any tag.
func (r Record) Field(tag uint16) ([]byte, bool) {
	if p, ok := r.HotField(tag); ok {
		return p, true
	}
	cold := r.Slots()[r.hot:]
	i, ok := slices.BinarySearchFunc(cold, tag, func(s Slot, t uint16) int {
		return cmp.Compare(s.Tag.Get(), t)
	})
	if !ok {
		return nil, false
	}
	return r.payload(cold[i]), true
}

// Fields returns every field in slot order. Payloads alias the record.
func (r Record) Fields() []Field {
	out := make([]Field, 0, r.Len())
	for _, s := range r.Slots() {
		out = append(out, Field{Tag: s.Tag.Get(), Flags: s.Flags.Get(), Payload: r.payload(s)})
	}
	return out
}
