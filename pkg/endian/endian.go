// Package endian provides fixed byte order integer types that can be embedded
// in structs read in place from a buffer. Each type is a byte array, so it has
// alignment 1 and every bit pattern is a valid value.
package endian

import (
	"encoding/binary"
	"strconv"
)

type (
	U16BE [2]byte
	U32BE [4]byte
	U64BE [8]byte
	I16BE [2]byte
	I32BE [4]byte
	I64BE [8]byte

	U16LE [2]byte
	U32LE [4]byte
	U64LE [8]byte
	I16LE [2]byte
	I32LE [4]byte
	I64LE [8]byte
)

func NewU16BE(v uint16) (e U16BE) { binary.BigEndian.PutUint16(e[:], v); return }
func NewU32BE(v uint32) (e U32BE) { binary.BigEndian.PutUint32(e[:], v); return }
func NewU64BE(v uint64) (e U64BE) { binary.BigEndian.PutUint64(e[:], v); return }
func NewI16BE(v int16) (e I16BE)  { binary.BigEndian.PutUint16(e[:], uint16(v)); return }
func NewI32BE(v int32) (e I32BE)  { binary.BigEndian.PutUint32(e[:], uint32(v)); return }
func NewI64BE(v int64) (e I64BE)  { binary.BigEndian.PutUint64(e[:], uint64(v)); return }

func NewU16LE(v uint16) (e U16LE) { binary.LittleEndian.PutUint16(e[:], v); return }
func NewU32LE(v uint32) (e U32LE) { binary.LittleEndian.PutUint32(e[:], v); return }
func NewU64LE(v uint64) (e U64LE) { binary.LittleEndian.PutUint64(e[:], v); return }
func NewI16LE(v int16) (e I16LE)  { binary.LittleEndian.PutUint16(e[:], uint16(v)); return }
func NewI32LE(v int32) (e I32LE)  { binary.LittleEndian.PutUint32(e[:], uint32(v)); return }
func NewI64LE(v int64) (e I64LE)  { binary.LittleEndian.PutUint64(e[:], uint64(v)); return }

func (e U16BE) Get() uint16 { return binary.BigEndian.Uint16(e[:]) }
func (e U32BE) Get() uint32 { return binary.BigEndian.Uint32(e[:]) }
func (e U64BE) Get() uint64 { return binary.BigEndian.Uint64(e[:]) }
func (e I16BE) Get() int16  { return int16(binary.BigEndian.Uint16(e[:])) }
func (e I32BE) Get() int32  { return int32(binary.BigEndian.Uint32(e[:])) }
func (e I64BE) Get() int64  { return int64(binary.BigEndian.Uint64(e[:])) }

func (e U16LE) Get() uint16 { return binary.LittleEndian.Uint16(e[:]) }
func (e U32LE) Get() uint32 { return binary.LittleEndian.Uint32(e[:]) }
func (e U64LE) Get() uint64 { return binary.LittleEndian.Uint64(e[:]) }
func (e I16LE) Get() int16  { return int16(binary.LittleEndian.Uint16(e[:])) }
func (e I32LE) Get() int32  { return int32(binary.LittleEndian.Uint32(e[:])) }
func (e I64LE) Get() int64  { return int64(binary.LittleEndian.Uint64(e[:])) }

func (e *U16BE) Set(v uint16) { binary.BigEndian.PutUint16(e[:], v) }
func (e *U32BE) Set(v uint32) { binary.BigEndian.PutUint32(e[:], v) }
func (e *U64BE) Set(v uint64) { binary.BigEndian.PutUint64(e[:], v) }
func (e *I16BE) Set(v int16)  { binary.BigEndian.PutUint16(e[:], uint16(v)) }
func (e *I32BE) Set(v int32)  { binary.BigEndian.PutUint32(e[:], uint32(v)) }
func (e *I64BE) Set(v int64)  { binary.BigEndian.PutUint64(e[:], uint64(v)) }

func (e *U16LE) Set(v uint16) { binary.LittleEndian.PutUint16(e[:], v) }
func (e *U32LE) Set(v uint32) { binary.LittleEndian.PutUint32(e[:], v) }
func (e *U64LE) Set(v uint64) { binary.LittleEndian.PutUint64(e[:], v) }
func (e *I16LE) Set(v int16)  { binary.LittleEndian.PutUint16(e[:], uint16(v)) }
func (e *I32LE) Set(v int32)  { binary.LittleEndian.PutUint32(e[:], uint32(v)) }
func (e *I64LE) Set(v int64)  { binary.LittleEndian.PutUint64(e[:], uint64(v)) }

// String methods keep test failure output and %v readable.

func (e U16BE) String() string { return strconv.FormatUint(uint64(e.Get()), 10) }
func (e U32BE) String() string { return strconv.FormatUint(uint64(e.Get()), 10) }
func (e U64BE) String() string { return strconv.FormatUint(e.Get(), 10) }
func (e I16BE) String() string { return strconv.FormatInt(int64(e.Get()), 10) }
func (e I32BE) String() string { return strconv.FormatInt(int64(e.Get()), 10) }
func (e I64BE) String() string { return strconv.FormatInt(e.Get(), 10) }

func (e U16LE) String() string { return strconv.FormatUint(uint64(e.Get()), 10) }
func (e U32LE) String() string { return strconv.FormatUint(uint64(e.Get()), 10) }
func (e U64LE) String() string { return strconv.FormatUint(e.Get(), 10) }
func (e I16LE) String() string { return strconv.FormatInt(int64(e.Get()), 10) }
func (e I32LE) String() string { return strconv.FormatInt(int64(e.Get()), 10) }
func (e I64LE) String() string { return strconv.FormatInt(e.Get(), 10) }
