// Package ipv4 defines the fixed IPv4 header as a type that can be viewed in
// place over packet bytes.
package ipv4

import (
	"net/netip"
	"strconv"

	"github.com/rawbytedev/zcbuf/pkg/endian"
)

// HeaderLen is the size of a header without options.
const HeaderLen = 20

type Addr [4]byte

// AddrFrom converts an IPv4 or IPv4-mapped address. ok is false otherwise.
func AddrFrom(a netip.Addr) (addr Addr, ok bool) {
	a = a.Unmap()
	if !a.Is4() {
		return Addr{}, false
	}
	return a.As4(), true
}

func (a Addr) Netip() netip.Addr { return netip.AddrFrom4(a) }
func (a Addr) String() string    { return a.Netip().String() }

type Protocol uint8

const (
	ProtoICMP Protocol = 1
	ProtoTCP  Protocol = 6
	ProtoUDP  Protocol = 17
)

func (p Protocol) String() string {
	switch p {
	case ProtoICMP:
		return "icmp"
	case ProtoTCP:
		return "tcp"
	case ProtoUDP:
		return "udp"
	}
	return strconv.Itoa(int(p))
}

// Header is the 20-byte IPv4 header in network byte order.
type Header struct {
	VersionIHL  uint8
	TOS         uint8
	TotalLength endian.U16BE
	ID          endian.U16BE
	FlagsFrag   endian.U16BE
	TTL         uint8
	Protocol    Protocol
	Checksum    endian.U16BE
	Src         Addr
	Dst         Addr
}

func (h *Header) Version() uint8 { return h.VersionIHL >> 4 }

// IHL returns the header length in bytes, options included.
func (h *Header) IHL() int { return int(h.VersionIHL&0x0f) * 4 }

// DontFragment reports the DF bit.
func (h *Header) DontFragment() bool { return h.FlagsFrag.Get()&0x4000 != 0 }

// FragmentOffset returns the offset in bytes.
func (h *Header) FragmentOffset() int { return int(h.FlagsFrag.Get()&0x1fff) * 8 }

// ComputeChecksum returns the RFC 1071 checksum of the header with the
// checksum field taken as zero.
func (h *Header) ComputeChecksum() uint16 {
	words := [...]uint16{
		uint16(h.VersionIHL)<<8 | uint16(h.TOS),
		h.TotalLength.Get(),
		h.ID.Get(),
		h.FlagsFrag.Get(),
		uint16(h.TTL)<<8 | uint16(h.Protocol),
		uint16(h.Src[0])<<8 | uint16(h.Src[1]),
		uint16(h.Src[2])<<8 | uint16(h.Src[3]),
		uint16(h.Dst[0])<<8 | uint16(h.Dst[1]),
		uint16(h.Dst[2])<<8 | uint16(h.Dst[3]),
	}
	var sum uint32
	for _, w := range words {
		sum += uint32(w)
	}
	for sum>>16 != 0 {
		sum = sum&0xffff + sum>>16
	}
	return ^uint16(sum)
}

func (h *Header) ValidChecksum() bool { return h.Checksum.Get() == h.ComputeChecksum() }
func (h *Header) SetChecksum()        { h.Checksum.Set(h.ComputeChecksum()) }
