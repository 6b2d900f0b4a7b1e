// Package frame reads and writes length-prefixed frames with a CRC-32
// trailer. Decoding views each frame in place over the input buffer.
//
// Wire layout, little endian:
//
//	magic u16 | version u8 | type u8 | flags u8 | reserved u8 | length u32 |
//	payload [length]byte | crc32 u32
//
// The CRC covers header and payload.
package frame

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/rawbytedev/zcbuf"
	"github.com/rawbytedev/zcbuf/pkg/endian"
)

const (
	Magic       uint16 = 0x4357
	Version     uint8  = 1
	HeaderSize         = 10
	TrailerSize        = 4
)

type Type uint8

const (
	TypeData      Type = 1
	TypeError     Type = 2
	TypeHandshake Type = 3
)

func (t Type) String() string {
	switch t {
	case TypeData:
		return "data"
	case TypeError:
		return "error"
	case TypeHandshake:
		return "handshake"
	}
	return "type(" + strconv.Itoa(int(t)) + ")"
}

// FlagHasOffsetTable marks a data payload that starts with a u16 count and
// that many u32 offsets.
const FlagHasOffsetTable uint8 = 1 << 0

var (
	ErrMagic           = errors.New("frame: bad magic")
	ErrVersion         = errors.New("frame: unsupported version")
	ErrType            = errors.New("frame: unknown frame type")
	ErrChecksum        = errors.New("frame: crc mismatch")
	ErrPayloadTooLarge = errors.New("frame: payload exceeds limit")
	ErrIncomplete      = fmt.Errorf("frame: incomplete: %w", zcbuf.ErrSize)
)

// Header is the fixed frame prefix.
type Header struct {
	Magic    endian.U16LE
	Version  uint8
	Type     Type
	Flags    uint8
	Reserved uint8
	Length   endian.U32LE
}

func (h Header) Validate() error {
	if h.Magic.Get() != Magic {
		return ErrMagic
	}
	if h.Version != Version {
		return ErrVersion
	}
	switch h.Type {
	case TypeData, TypeError, TypeHandshake:
		return nil
	}
	return ErrType
}

// Limits bounds what a decoder accepts.
type Limits struct {
	// MaxPayload caps the payload length; zero means no cap.
	MaxPayload int
}

func DefaultLimits() Limits {
	return Limits{MaxPayload: 1 << 20}
}

func incomplete(need, have int) error {
	return fmt.Errorf("%w: need %d bytes, have %d", ErrIncomplete, need, have)
}
