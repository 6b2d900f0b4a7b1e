package layout

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/rawbytedev/zcbuf/internal/common"
)

var (
	ErrSize       = errors.New("layout: not enough bytes")
	ErrValidation = errors.New("layout: invalid byte pattern")
	ErrLayout     = errors.New("layout: type has no fixed byte layout")
	ErrBool       = errors.New("bool byte is neither 0 nor 1")
)

// SizeError reports that a region cannot hold the requested value. On the
// by-reference paths it also wraps validation failures in Err, so every
// "cannot view T here" outcome matches ErrSize.
type SizeError struct {
	Type     string
	Need     int
	Have     int
	Count    int
	Overflow bool
	Err      error
}

func (e *SizeError) Error() string {
	switch {
	case e.Overflow:
		return fmt.Sprintf("layout: %d elements of %s do not fit in an int", e.Count, e.Type)
	case e.Err != nil:
		return fmt.Sprintf("layout: cannot view %d bytes as %s: %v", e.Have, e.Type, e.Err)
	default:
		return fmt.Sprintf("layout: %s needs %d bytes, have %d", e.Type, e.Need, e.Have)
	}
}

func (e *SizeError) Is(target error) bool { return target == ErrSize }
func (e *SizeError) Unwrap() error        { return e.Err }

// ValidationError reports bytes that are not a legal value of Type. Offset is
// -1 when the rejection came from a Validator rather than a single byte. Bytes
// holds a copy of the rejected input when the source could not be rewound.
type ValidationError struct {
	Type   string
	Offset int
	Err    error
	Bytes  []byte
}

func (e *ValidationError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("layout: invalid %s: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("layout: invalid %s at offset %d: %v", e.Type, e.Offset, e.Err)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
func (e *ValidationError) Unwrap() error        { return e.Err }

// LayoutError reports a type that cannot be reinterpreted from bytes.
type LayoutError struct {
	Type string
	Path string
	Kind reflect.Kind
	// Padding counts hidden bytes the compiler added after the last field.
	Padding int
}

func (e *LayoutError) Error() string {
	if e.Padding > 0 {
		return fmt.Sprintf("layout: %s: %s has %d padding byte(s) after a trailing zero-sized field", e.Type, e.Path, e.Padding)
	}
	if n := common.FixedSize(e.Kind); n > 1 {
		return fmt.Sprintf("layout: %s: %s is a native %d-byte %s, use a pkg/endian type", e.Type, e.Path, n, e.Kind)
	}
	return fmt.Sprintf("layout: %s: %s has unsupported kind %s", e.Type, e.Path, e.Kind)
}

func (e *LayoutError) Is(target error) bool { return target == ErrLayout }
