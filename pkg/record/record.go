// Package record stores tagged byte fields behind a fixed header and a table
// of slots, so single fields can be looked up without decoding the rest.
//
// Layout, little endian:
//
//	Header (40 bytes) | Slot x VTableSlots (12 bytes each) | data
//
// Slots for hot tags (1..8, marked in HotBitmap) come first in tag order and
// are found by index. The remaining slots follow in tag order and are found
// by binary search.
package record

import (
	"errors"

	"github.com/rawbytedev/zcbuf/pkg/endian"
)

const (
	MagicV1    uint32 = 0x33464244 // "DBF3"
	VersionV1  uint16 = 1
	HeaderSize        = 40
	SlotSize          = 12
	MaxFields         = 255
)

const (
	// FlagPadding aligns every payload to 8 bytes within the data section.
	FlagPadding uint16 = 1 << 0
)

var (
	ErrMagic         = errors.New("record: bad magic")
	ErrVersion       = errors.New("record: unsupported version")
	ErrCorrupt       = errors.New("record: slot table out of bounds")
	ErrHotTag        = errors.New("record: hot tags must be 1..8 and present")
	ErrDuplicateTag  = errors.New("record: duplicate tag")
	ErrTooManyFields = errors.New("record: too many fields")
)

type Header struct {
	Magic       endian.U32LE
	Version     endian.U16LE
	Flags       endian.U16LE
	SchemaID    endian.U64LE
	HotBitmap   uint8
	VTableSlots uint8
	DataOffset  endian.U16LE
	VTableOff   endian.U32LE
	Reserved    [16]byte
}

func (h Header) Validate() error {
	if h.Magic.Get() != MagicV1 {
		return ErrMagic
	}
	if h.Version.Get() != VersionV1 {
		return ErrVersion
	}
	return nil
}

// Slot locates one field. Offset is relative to the data section.
type Slot struct {
	Tag    endian.U16LE
	Flags  endian.U16LE
	Offset endian.U32LE
	Length endian.U32LE
}

// Field is a tagged payload. Flags are stored but not interpreted.
type Field struct {
	Tag     uint16
	Flags   uint16
	Payload []byte
}

func isHot(bitmap uint8, tag uint16) bool {
	return tag >= 1 && tag <= 8 && bitmap&(1<<(tag-1)) != 0
}
