package zcbuf

import "github.com/rawbytedev/zcbuf/pkg/layout"

// Peek views the front of s as a T without consuming anything. The reference
// borrows s's bytes and must not outlive them.
func Peek[T any, S layout.ByteSlice](s S) (layout.Ref[layout.Borrowed, T], error) {
	l := layout.Of[T]()
	if err := l.Err(); err != nil {
		return layout.Ref[layout.Borrowed, T]{}, err
	}
	data := s.Deref()
	if len(data) < l.Size {
		return layout.Ref[layout.Borrowed, T]{}, &SizeError{Type: l.Type.String(), Need: l.Size, Have: len(data)}
	}
	ref, err := layout.FromBytes[T](layout.Borrowed(data[:l.Size:l.Size]))
	if err != nil {
		return layout.Ref[layout.Borrowed, T]{}, refErr(err, l.Size)
	}
	return ref, nil
}

func PeekElems[T any, S layout.ByteSlice](s S, count int) (layout.SliceRef[layout.Borrowed, T], error) {
	l := layout.Of[T]()
	if err := l.Err(); err != nil {
		return layout.SliceRef[layout.Borrowed, T]{}, err
	}
	data := s.Deref()
	need, ok := layout.ElemsLen(l.Size, count)
	if !ok {
		return layout.SliceRef[layout.Borrowed, T]{}, &SizeError{Type: "[]" + l.Type.String(), Count: count, Have: len(data), Overflow: true}
	}
	if len(data) < need {
		return layout.SliceRef[layout.Borrowed, T]{}, &SizeError{Type: "[]" + l.Type.String(), Count: count, Need: need, Have: len(data)}
	}
	ref, err := layout.SliceFromBytes[T](layout.Borrowed(data[:need:need]), count)
	if err != nil {
		return layout.SliceRef[layout.Borrowed, T]{}, refErr(err, need)
	}
	return ref, nil
}

func PeekTrailing[H, E any, S layout.ByteSlice](s S, count int) (layout.TrailingRef[layout.Borrowed, H, E], error) {
	data := s.Deref()
	need, err := trailingLen[H, E](len(data), count)
	if err != nil {
		return layout.TrailingRef[layout.Borrowed, H, E]{}, err
	}
	ref, err := layout.TrailingFromBytes[H, E](layout.Borrowed(data[:need:need]), count)
	if err != nil {
		return layout.TrailingRef[layout.Borrowed, H, E]{}, refErr(err, need)
	}
	return ref, nil
}
