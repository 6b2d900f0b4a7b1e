// Package common holds the unsafe reinterpretation helpers behind package
// layout. Nothing here checks that a type may be reinterpreted; callers must
// have obtained an eligible layout.Layout for T first.
package common

import (
	"reflect"
	"unsafe"
)

// zerobase backs pointers to zero-sized values so they are never nil.
var zerobase [0]byte

// FixedSize returns the byte width for fixed-size primitive kinds.
func FixedSize(k reflect.Kind) int {
	switch k {
	case reflect.Bool, reflect.Int8, reflect.Uint8:
		return 1
	case reflect.Int16, reflect.Uint16:
		return 2
	case reflect.Int32, reflect.Uint32, reflect.Float32:
		return 4
	case reflect.Int64, reflect.Uint64, reflect.Float64, reflect.Complex64:
		return 8
	case reflect.Complex128:
		return 16
	default:
		return -1
	}
}

// BytesOf aliases the memory of *p as a byte slice.
func BytesOf[T any](p *T) []byte {
	n := int(unsafe.Sizeof(*p))
	if n == 0 {
		return []byte{}
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(p)), n)
}

// SliceBytes aliases the backing memory of s as a byte slice.
func SliceBytes[T any](s []T) []byte {
	var zero T
	n := int(unsafe.Sizeof(zero)) * len(s)
	if n == 0 {
		return []byte{}
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), n)
}

// Cast reinterprets the start of b as *T. b must hold at least size(T) bytes.
func Cast[T any](b []byte) *T {
	var zero T
	if unsafe.Sizeof(zero) == 0 {
		return (*T)(unsafe.Pointer(&zerobase))
	}
	if len(b) < int(unsafe.Sizeof(zero)) {
		panic("common: cast of short buffer")
	}
	return (*T)(unsafe.Pointer(unsafe.SliceData(b)))
}

// CastSlice reinterprets b as n consecutive T values. b must hold at least
// n*size(T) bytes.
func CastSlice[T any](b []byte, n int) []T {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if n == 0 {
		return []T{}
	}
	if size == 0 {
		return unsafe.Slice((*T)(unsafe.Pointer(&zerobase)), n)
	}
	if len(b)/size < n {
		panic("common: cast of short buffer")
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n)
}
