package layout

import (
	"github.com/rawbytedev/zcbuf/internal/common"
)

// Ref is a T viewed in place over the region it was carved from. The region
// is exactly size(T) bytes long.
type Ref[B ByteSlice, T any] struct {
	bytes B
	ptr   *T
}

// FromBytes views b as a T. b must be exactly size(T) bytes.
func FromBytes[T any, B ByteSlice](b B) (Ref[B, T], error) {
	l := Of[T]()
	if l.err != nil {
		return Ref[B, T]{}, l.err
	}
	data := b.Deref()
	if len(data) != l.Size {
		return Ref[B, T]{}, &SizeError{Type: l.Type.String(), Need: l.Size, Have: len(data)}
	}
	p := common.Cast[T](data)
	if err := Validate(l, data, p); err != nil {
		return Ref[B, T]{}, err
	}
	return Ref[B, T]{bytes: b, ptr: p}, nil
}

// Ptr points into the region. Writes through it are only allowed when the
// region is a ByteSliceMut; use Mut to have that checked.
func (r Ref[B, T]) Ptr() *T { return r.ptr }

// Value copies the referenced T out of the region.
func (r Ref[B, T]) Value() T { return *r.ptr }

// Bytes returns the underlying region.
func (r Ref[B, T]) Bytes() B { return r.bytes }

// Mut returns a writable pointer into a mutable region.
func Mut[B ByteSliceMut, T any](r Ref[B, T]) *T { return r.ptr }

// SliceRef is count consecutive T values viewed in place.
type SliceRef[B ByteSlice, T any] struct {
	bytes B
	elems []T
}

// SliceFromBytes views b as count values of T. b must be exactly
// count*size(T) bytes.
func SliceFromBytes[T any, B ByteSlice](b B, count int) (SliceRef[B, T], error) {
	l := Of[T]()
	if l.err != nil {
		return SliceRef[B, T]{}, l.err
	}
	data := b.Deref()
	need, ok := ElemsLen(l.Size, count)
	if !ok {
		return SliceRef[B, T]{}, &SizeError{Type: elemName[T](), Count: count, Have: len(data), Overflow: true}
	}
	if len(data) != need {
		return SliceRef[B, T]{}, &SizeError{Type: elemName[T](), Count: count, Need: need, Have: len(data)}
	}
	elems := common.CastSlice[T](data, count)
	if err := ValidateElems(l, data, elems); err != nil {
		return SliceRef[B, T]{}, err
	}
	return SliceRef[B, T]{bytes: b, elems: elems}, nil
}

func (r SliceRef[B, T]) Len() int   { return len(r.elems) }
func (r SliceRef[B, T]) At(i int) T { return r.elems[i] }

// Elems aliases the region. Same write rules as Ref.Ptr.
func (r SliceRef[B, T]) Elems() []T { return r.elems }
func (r SliceRef[B, T]) Bytes() B   { return r.bytes }

func ElemsMut[B ByteSliceMut, T any](r SliceRef[B, T]) []T { return r.elems }

// TrailingRef is a fixed header H followed by count values of E, the shape of
// a struct ending in a variable-length array.
type TrailingRef[B ByteSlice, H, E any] struct {
	bytes B
	head  *H
	elems []E
}

// TrailingFromBytes views b as an H followed by count values of E. b must be
// exactly size(H)+count*size(E) bytes.
func TrailingFromBytes[H, E any, B ByteSlice](b B, count int) (TrailingRef[B, H, E], error) {
	hl, el := Of[H](), Of[E]()
	if hl.err != nil {
		return TrailingRef[B, H, E]{}, hl.err
	}
	if el.err != nil {
		return TrailingRef[B, H, E]{}, el.err
	}
	data := b.Deref()
	name := trailingName[H, E]()
	need, ok := TrailingLen(hl.Size, el.Size, count)
	if !ok {
		return TrailingRef[B, H, E]{}, &SizeError{Type: name, Count: count, Have: len(data), Overflow: true}
	}
	if len(data) != need {
		return TrailingRef[B, H, E]{}, &SizeError{Type: name, Count: count, Need: need, Have: len(data)}
	}
	head := common.Cast[H](data)
	if err := Validate(hl, data[:hl.Size], head); err != nil {
		return TrailingRef[B, H, E]{}, err
	}
	tail := data[hl.Size:]
	elems := common.CastSlice[E](tail, count)
	if err := ValidateElems(el, tail, elems); err != nil {
		if verr, ok := err.(*ValidationError); ok && verr.Offset >= 0 {
			verr.Offset += hl.Size
		}
		return TrailingRef[B, H, E]{}, err
	}
	return TrailingRef[B, H, E]{bytes: b, head: head, elems: elems}, nil
}

func (r TrailingRef[B, H, E]) Head() *H     { return r.head }
func (r TrailingRef[B, H, E]) HeadValue() H { return *r.head }
func (r TrailingRef[B, H, E]) Elems() []E   { return r.elems }
func (r TrailingRef[B, H, E]) Len() int     { return len(r.elems) }
func (r TrailingRef[B, H, E]) Bytes() B     { return r.bytes }

// HeadMut returns writable views of both parts of a mutable region.
func HeadMut[B ByteSliceMut, H, E any](r TrailingRef[B, H, E]) (*H, []E) {
	return r.head, r.elems
}

func trailingName[H, E any]() string {
	return Of[H]().Type.String() + "+" + elemName[E]()
}
