package zcbuf

import (
	"errors"

	"github.com/rawbytedev/zcbuf/internal/common"
	"github.com/rawbytedev/zcbuf/pkg/buf"
	"github.com/rawbytedev/zcbuf/pkg/layout"
)

// Read copies a T out of b and advances past it. b may be split across any
// number of chunks.
//
// If the bytes are not a legal T, b is rewound when it implements
// buf.Rewinder; a mark the caller set on b is left alone. Otherwise the
// consumed bytes are returned in the ValidationError.
func Read[T any](b buf.Buf) (T, error) {
	var t T
	l := layout.Of[T]()
	if err := l.Err(); err != nil {
		return t, err
	}
	if have := b.Remaining(); have < l.Size {
		return t, &SizeError{Type: l.Type.String(), Need: l.Size, Have: have}
	}
	before := snapshot(b)
	dst, err := CopyToSlice(b, common.BytesOf(&t))
	if err != nil {
		return t, err
	}
	if err := layout.Validate(l, dst, &t); err != nil {
		before.rejected(err, dst)
		var zero T
		return zero, err
	}
	return t, nil
}

// ReadElems copies count values of T out of b.
func ReadElems[T any](b buf.Buf, count int) ([]T, error) {
	l := layout.Of[T]()
	if err := l.Err(); err != nil {
		return nil, err
	}
	have := b.Remaining()
	need, ok := layout.ElemsLen(l.Size, count)
	if !ok {
		return nil, &SizeError{Type: "[]" + l.Type.String(), Count: count, Have: have, Overflow: true}
	}
	if have < need {
		return nil, &SizeError{Type: "[]" + l.Type.String(), Count: count, Need: need, Have: have}
	}
	out := make([]T, count)
	before := snapshot(b)
	dst, err := CopyToSlice(b, common.SliceBytes(out))
	if err != nil {
		return nil, err
	}
	if err := layout.ValidateElems(l, dst, out); err != nil {
		before.rejected(err, dst)
		return nil, err
	}
	return out, nil
}

// rewind holds the position b had before a read, if b can return to it.
type rewind struct {
	rw  buf.Rewinder
	pos buf.Pos
}

func snapshot(b buf.Buf) rewind {
	rw, ok := b.(buf.Rewinder)
	if !ok {
		return rewind{}
	}
	pos, ok := rw.Snapshot()
	if !ok {
		return rewind{}
	}
	return rewind{rw: rw, pos: pos}
}

func (r rewind) rejected(err error, consumed []byte) {
	if r.rw != nil {
		r.rw.Restore(r.pos)
		return
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		verr.Bytes = append([]byte(nil), consumed...)
	}
}
