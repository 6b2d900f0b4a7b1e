// Package layout decides which Go types can be viewed directly over a byte
// region and builds typed references into such regions.
//
// An eligible type is made only of uint8, int8, bool, arrays and structs of
// those. Multi-byte fields use the byte array types of package endian. Such a
// type has alignment 1, no padding and no pointers, so any sufficiently long
// byte slice can be reinterpreted as it. bool bytes must be 0 or 1, and types
// whose byte patterns are not all legal can implement Validator.
package layout

import (
	"math"
	"reflect"
	"sync"
)

// Validator is implemented by types that reject some byte patterns, for
// example an enum byte with unassigned values. Validate is called on the value
// viewed in place, after bool fields have been checked.
type Validator interface {
	Validate() error
}

// Layout is the cached description of one type.
type Layout struct {
	Type reflect.Type
	Size int

	bools     []int
	validator bool
	err       error
}

var (
	mu            sync.RWMutex
	plans         = make(map[reflect.Type]*Layout)
	validatorType = reflect.TypeFor[Validator]()
)

// Of returns the layout of T.
func Of[T any]() *Layout {
	return TypeOf(reflect.TypeFor[T]())
}

// TypeOf returns the layout of t, computing it once per type.
func TypeOf(t reflect.Type) *Layout {
	mu.RLock()
	if l, ok := plans[t]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()

	// Double-check
	if l, ok := plans[t]; ok {
		return l
	}
	l := build(t)
	plans[t] = l
	return l
}

func build(t reflect.Type) *Layout {
	l := &Layout{Type: t, Size: int(t.Size())}
	if err := l.walk(t, "", 0); err != nil {
		l.err = err
		return l
	}
	// walk only admits alignment 1 kinds, so this cannot trip unless the
	// compiler changes how it lays out byte arrays.
	if t.Align() != 1 {
		l.err = &LayoutError{Type: t.String(), Kind: t.Kind()}
		return l
	}
	l.validator = t.Implements(validatorType) || reflect.PointerTo(t).Implements(validatorType)
	return l
}

func (l *Layout) walk(t reflect.Type, path string, off int) error {
	switch t.Kind() {
	case reflect.Uint8, reflect.Int8:
		return nil
	case reflect.Bool:
		l.bools = append(l.bools, off)
		return nil
	case reflect.Array:
		start := len(l.bools)
		if err := l.walk(t.Elem(), path+"[0]", off); err != nil {
			return err
		}
		stride := int(t.Elem().Size())
		elem := l.bools[start:len(l.bools):len(l.bools)]
		for i := 1; i < t.Len(); i++ {
			for _, b := range elem {
				l.bools = append(l.bools, b+i*stride)
			}
		}
		if t.Len() == 0 {
			l.bools = l.bools[:start]
		}
		return nil
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := f.Name
			if path != "" {
				name = path + "." + f.Name
			}
			if err := l.walk(f.Type, name, off+int(f.Offset)); err != nil {
				return err
			}
		}
		// A trailing zero-sized field makes the compiler pad the struct.
		end := uintptr(0)
		if n := t.NumField(); n > 0 {
			f := t.Field(n - 1)
			end = f.Offset + f.Type.Size()
		}
		if end != t.Size() {
			if path == "" {
				path = "value"
			}
			return &LayoutError{Type: l.Type.String(), Path: path, Kind: t.Kind(), Padding: int(t.Size() - end)}
		}
		return nil
	default:
		if path == "" {
			path = "value"
		}
		return &LayoutError{Type: l.Type.String(), Path: path, Kind: t.Kind()}
	}
}

// Err reports why the type cannot be viewed over bytes, or nil.
func (l *Layout) Err() error { return l.err }

// AnyBits reports whether every byte pattern of Size bytes is a legal value.
func (l *Layout) AnyBits() bool { return l.err == nil && len(l.bools) == 0 && !l.validator }

func (l *Layout) check(b []byte) error {
	for _, off := range l.bools {
		if b[off] > 1 {
			return &ValidationError{Type: l.Type.String(), Offset: off, Err: ErrBool}
		}
	}
	return nil
}

// Validate checks that b, the bytes behind *p, hold a legal value of T.
func Validate[T any](l *Layout, b []byte, p *T) error {
	if err := l.check(b); err != nil {
		return err
	}
	if !l.validator {
		return nil
	}
	if v, ok := any(p).(Validator); ok {
		if err := v.Validate(); err != nil {
			return &ValidationError{Type: l.Type.String(), Offset: -1, Err: err}
		}
	}
	return nil
}

// ValidateElems runs Validate over each element of s, whose bytes are b.
func ValidateElems[T any](l *Layout, b []byte, s []T) error {
	if len(l.bools) == 0 && !l.validator {
		return nil
	}
	for i := range s {
		off := i * l.Size
		if err := Validate(l, b[off:off+l.Size], &s[i]); err != nil {
			if verr, ok := err.(*ValidationError); ok && verr.Offset >= 0 {
				verr.Offset += off
			}
			return err
		}
	}
	return nil
}

// ElemsLen returns count*size, or false when count is negative or the product
// does not fit in an int.
func ElemsLen(size, count int) (int, bool) {
	if count < 0 {
		return 0, false
	}
	if size == 0 {
		return 0, true
	}
	if count > math.MaxInt/size {
		return 0, false
	}
	return count * size, true
}

// TrailingLen returns head+count*size with the same overflow rules as ElemsLen.
func TrailingLen(head, size, count int) (int, bool) {
	n, ok := ElemsLen(size, count)
	if !ok || n > math.MaxInt-head {
		return 0, false
	}
	return head + n, true
}

func elemName[T any]() string { return "[]" + reflect.TypeFor[T]().String() }
