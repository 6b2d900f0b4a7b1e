package zcbuf

import (
	"github.com/rawbytedev/zcbuf/internal/common"
	"github.com/rawbytedev/zcbuf/pkg/buf"
	"github.com/rawbytedev/zcbuf/pkg/layout"
)

// Write appends the bytes of *v to dst. Growable destinations never fail; a
// fixed destination without room for the whole value is left untouched.
func Write[T any](dst buf.BufMut, v *T) error {
	l := layout.Of[T]()
	if err := l.Err(); err != nil {
		return err
	}
	if room := dst.RemainingMut(); room < l.Size {
		return &SizeError{Type: l.Type.String(), Need: l.Size, Have: room}
	}
	dst.PutSlice(common.BytesOf(v))
	return nil
}

// WriteElems appends the bytes of every element of vs.
func WriteElems[T any](dst buf.BufMut, vs []T) error {
	l := layout.Of[T]()
	if err := l.Err(); err != nil {
		return err
	}
	b := common.SliceBytes(vs)
	if room := dst.RemainingMut(); room < len(b) {
		return &SizeError{Type: "[]" + l.Type.String(), Count: len(vs), Need: len(b), Have: room}
	}
	dst.PutSlice(b)
	return nil
}
