// Package zcbuf reads typed values straight out of byte buffers and writes
// them back, without copying where the storage allows it.
//
// Read copies a value out of any buf.Buf, including chains of chunks. Get,
// GetElems and GetTrailing carve a typed reference off the front of a
// contiguous region and advance it. Peek, PeekElems and PeekTrailing do the
// same without advancing. Write appends a value's bytes to a buf.BufMut.
//
// Every operation that fails leaves its source where it was. Only types
// accepted by layout.Of can be used; see package layout for the rules.
package zcbuf

import (
	"errors"

	"github.com/rawbytedev/zcbuf/pkg/layout"
)

var (
	ErrSize       = layout.ErrSize
	ErrValidation = layout.ErrValidation
	ErrLayout     = layout.ErrLayout
)

type (
	SizeError       = layout.SizeError
	ValidationError = layout.ValidationError
	LayoutError     = layout.LayoutError
)

// refErr folds a validation failure into the size category, as the
// by-reference paths report every "no T here" outcome as ErrSize. The cause
// stays reachable through errors.As.
func refErr(err error, have int) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return &SizeError{Type: verr.Type, Need: have, Have: have, Err: err}
	}
	return err
}
