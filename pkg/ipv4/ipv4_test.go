package ipv4

import (
	"net/netip"
	"testing"

	"github.com/rawbytedev/zcbuf/pkg/endian"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksum(t *testing.T) {
	// example header from RFC 1071 walkthroughs
	h := Header{
		VersionIHL:  0x45,
		TotalLength: endian.NewU16BE(0x0073),
		FlagsFrag:   endian.NewU16BE(0x4000),
		TTL:         0x40,
		Protocol:    ProtoUDP,
		Src:         Addr{0xc0, 0xa8, 0x00, 0x01},
		Dst:         Addr{0xc0, 0xa8, 0x00, 0xc7},
	}
	assert.Equal(t, uint16(0xb861), h.ComputeChecksum())
	assert.False(t, h.ValidChecksum())
	h.SetChecksum()
	assert.True(t, h.ValidChecksum())
	assert.True(t, h.DontFragment())
	assert.Zero(t, h.FragmentOffset())
	assert.Equal(t, uint8(4), h.Version())
	assert.Equal(t, 20, h.IHL())
}

func TestAddr(t *testing.T) {
	a, ok := AddrFrom(netip.MustParseAddr("127.0.0.2"))
	require.True(t, ok)
	assert.Equal(t, Addr{127, 0, 0, 2}, a)
	assert.Equal(t, "127.0.0.2", a.String())

	a, ok = AddrFrom(netip.MustParseAddr("::ffff:10.0.0.1"))
	require.True(t, ok)
	assert.Equal(t, "10.0.0.1", a.Netip().String())

	_, ok = AddrFrom(netip.MustParseAddr("::1"))
	assert.False(t, ok)
}

func TestProtocolString(t *testing.T) {
	assert.Equal(t, "tcp", ProtoTCP.String())
	assert.Equal(t, "icmp", ProtoICMP.String())
	assert.Equal(t, "99", Protocol(99).String())
}
