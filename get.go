package zcbuf

import "github.com/rawbytedev/zcbuf/pkg/layout"

// Get carves a T off the front of *s and advances *s past it. The returned
// reference aliases the carved bytes. On failure *s is left unchanged.
//
//	data := zcbuf.NewShared(packet)
//	hdr, err := zcbuf.Get[ipv4.Header](&data)
func Get[T any, S layout.SplitByteSlice[S]](s *S) (layout.Ref[S, T], error) {
	l := layout.Of[T]()
	if err := l.Err(); err != nil {
		return layout.Ref[S, T]{}, err
	}
	if have := len((*s).Deref()); have < l.Size {
		return layout.Ref[S, T]{}, &SizeError{Type: l.Type.String(), Need: l.Size, Have: have}
	}
	orig := *s
	head, tail := orig.SplitAt(l.Size)
	*s = tail
	ref, err := layout.FromBytes[T](head)
	if err != nil {
		*s = orig
		return layout.Ref[S, T]{}, refErr(err, l.Size)
	}
	return ref, nil
}

// GetElems carves count consecutive T values off the front of *s.
func GetElems[T any, S layout.SplitByteSlice[S]](s *S, count int) (layout.SliceRef[S, T], error) {
	l := layout.Of[T]()
	if err := l.Err(); err != nil {
		return layout.SliceRef[S, T]{}, err
	}
	have := len((*s).Deref())
	need, ok := layout.ElemsLen(l.Size, count)
	if !ok {
		return layout.SliceRef[S, T]{}, &SizeError{Type: "[]" + l.Type.String(), Count: count, Have: have, Overflow: true}
	}
	if have < need {
		return layout.SliceRef[S, T]{}, &SizeError{Type: "[]" + l.Type.String(), Count: count, Need: need, Have: have}
	}
	orig := *s
	head, tail := orig.SplitAt(need)
	*s = tail
	ref, err := layout.SliceFromBytes[T](head, count)
	if err != nil {
		*s = orig
		return layout.SliceRef[S, T]{}, refErr(err, need)
	}
	return ref, nil
}

// GetTrailing carves a header H followed by count values of E off the front
// of *s. count usually comes from a length field read with Peek.
func GetTrailing[H, E any, S layout.SplitByteSlice[S]](s *S, count int) (layout.TrailingRef[S, H, E], error) {
	need, err := trailingLen[H, E](len((*s).Deref()), count)
	if err != nil {
		return layout.TrailingRef[S, H, E]{}, err
	}
	orig := *s
	head, tail := orig.SplitAt(need)
	*s = tail
	ref, err := layout.TrailingFromBytes[H, E](head, count)
	if err != nil {
		*s = orig
		return layout.TrailingRef[S, H, E]{}, refErr(err, need)
	}
	return ref, nil
}

func trailingLen[H, E any](have, count int) (int, error) {
	hl, el := layout.Of[H](), layout.Of[E]()
	if err := hl.Err(); err != nil {
		return 0, err
	}
	if err := el.Err(); err != nil {
		return 0, err
	}
	name := hl.Type.String() + "+[]" + el.Type.String()
	need, ok := layout.TrailingLen(hl.Size, el.Size, count)
	if !ok {
		return 0, &SizeError{Type: name, Count: count, Have: have, Overflow: true}
	}
	if have < need {
		return 0, &SizeError{Type: name, Count: count, Need: need, Have: have}
	}
	return need, nil
}
