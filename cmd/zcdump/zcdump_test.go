package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/zcbuf"
	"github.com/rawbytedev/zcbuf/pkg/buf"
	"github.com/rawbytedev/zcbuf/pkg/endian"
	"github.com/rawbytedev/zcbuf/pkg/frame"
	"github.com/rawbytedev/zcbuf/pkg/ipv4"
	"github.com/rawbytedev/zcbuf/pkg/record"
)

func packetCapture(t *testing.T) []byte {
	t.Helper()
	out := buf.NewBytesMut(0)
	for i, payload := range [][]byte{nil, []byte("hello")} {
		h := ipv4.Header{
			VersionIHL:  0x45,
			TotalLength: endian.NewU16BE(uint16(ipv4.HeaderLen + len(payload))),
			TTL:         uint8(64 + i),
			Protocol:    ipv4.ProtoUDP,
			Src:         ipv4.Addr{10, 0, 0, 1},
			Dst:         ipv4.Addr{10, 0, 0, byte(2 + i)},
		}
		h.SetChecksum()
		require.NoError(t, zcbuf.Write(&out, &h))
		out.PutSlice(payload)
	}
	return out.Data()
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestDumpIPv4Text(t *testing.T) {
	var out bytes.Buffer
	n, err := dumpIPv4(bytes.NewReader(packetCapture(t)), newPrinter(&out, "text"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "00000000 ipv4 v4 10.0.0.1 -> 10.0.0.2 udp ttl=64 len=20 payload=0 checksum_ok=true", lines[0])
	assert.Contains(t, lines[1], "00000014 ipv4 v4 10.0.0.1 -> 10.0.0.3")
	assert.Contains(t, lines[1], "payload=5")
}

func TestDumpIPv4Truncated(t *testing.T) {
	capture := packetCapture(t)
	var out bytes.Buffer
	n, err := dumpIPv4(bytes.NewReader(capture[:len(capture)-1]), newPrinter(&out, "text"))
	assert.Equal(t, 1, n)
	require.ErrorIs(t, err, zcbuf.ErrSize)
	assert.Contains(t, err.Error(), "packet at 20")
}

func TestDumpFramesYAML(t *testing.T) {
	var wire bytes.Buffer
	enc := frame.NewEncoder(&wire)
	require.NoError(t, enc.Encode(frame.TypeHandshake, 0, []byte{1}))
	require.NoError(t, enc.EncodeData([]uint32{0, 2}, []byte("abcd")))

	var out bytes.Buffer
	p := newPrinter(&out, "yaml")
	n, err := dumpFrames(defaultConfig(), &wire, p, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, p.close())
	assert.Equal(t, 2, n)

	dec := yaml.NewDecoder(&out)
	var first, second frameEntry
	require.NoError(t, dec.Decode(&first))
	require.NoError(t, dec.Decode(&second))
	assert.Equal(t, "handshake", first.Type)
	assert.Equal(t, 1, first.Payload)
	assert.Equal(t, "data", second.Type)
	assert.Equal(t, []uint32{0, 2}, second.Offsets)
	assert.Equal(t, frame.HeaderSize+1+frame.TrailerSize, second.Offset)
}

func TestDumpRecords(t *testing.T) {
	e := record.NewEncoder(0)
	a, err := e.Encode(5, []uint16{1}, []record.Field{{Tag: 1, Payload: []byte{1, 2}}, {Tag: 10, Payload: []byte("x")}})
	require.NoError(t, err)
	b, err := e.Encode(6, nil, []record.Field{{Tag: 3, Flags: 1, Payload: []byte("yz")}})
	require.NoError(t, err)

	var out bytes.Buffer
	n, err := dumpRecords(bytes.NewReader(append(append([]byte(nil), a...), b...)), newPrinter(&out, "text"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	s := out.String()
	assert.Contains(t, s, "record schema=5 fields=2")
	assert.Contains(t, s, "tag=1 flags=0x0000 hot=true len=2")
	assert.Contains(t, s, "record schema=6 fields=1")
}

func TestRunZstd(t *testing.T) {
	zw, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	compressed := zw.EncodeAll(packetCapture(t), nil)
	require.NoError(t, zw.Close())

	for _, name := range []string{"capture.bin.zst", "capture.bin"} {
		path := writeFile(t, name, compressed)
		var out bytes.Buffer
		require.NoError(t, run([]string{"-format", "yaml", path}, &out), name)
		var entry ipv4Entry
		require.NoError(t, yaml.NewDecoder(&out).Decode(&entry))
		assert.Equal(t, "10.0.0.2", entry.Dst)
		assert.True(t, entry.ChecksumOK)
	}
}

func TestRunConfigFile(t *testing.T) {
	var wire bytes.Buffer
	require.NoError(t, frame.NewEncoder(&wire).Encode(frame.TypeError, 0, []byte("bad")))
	input := writeFile(t, "frames.bin", wire.Bytes())
	cfg := writeFile(t, "zcdump.toml", []byte("kind = \"frame\"\nread_size = 3\nlog_level = \"warn\"\n"))

	var out bytes.Buffer
	require.NoError(t, run([]string{"-config", cfg, input}, &out))
	assert.Contains(t, out.String(), "frame error flags=0x00 payload=3")

	out.Reset()
	err := run([]string{"-config", cfg, "-kind", "bogus", input}, &out)
	assert.ErrorContains(t, err, "unknown kind")
	assert.Error(t, run(nil, &out))
}

func TestRunFlagOverridesBadFileKind(t *testing.T) {
	input := writeFile(t, "capture.bin", packetCapture(t))
	cfg := writeFile(t, "zcdump.toml", []byte("kind = \"pcap\"\n"))

	var out bytes.Buffer
	require.NoError(t, run([]string{"-config", cfg, "-kind", "ipv4", input}, &out))
	assert.Contains(t, out.String(), "10.0.0.1 -> 10.0.0.2")

	assert.ErrorContains(t, run([]string{"-config", cfg, input}, &out), `unknown kind "pcap"`)
}

func TestOpenInput(t *testing.T) {
	in, err := openInput(writeFile(t, "short.bin", []byte{0x28, 0xb5}))
	require.NoError(t, err)
	data, err := io.ReadAll(in)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x28, 0xb5}, data)
	require.NoError(t, in.Close())

	_, err = openInput(t.TempDir())
	assert.ErrorContains(t, err, "read input")

	in, err = openInput(writeFile(t, "bogus.zst", []byte("not zstd at all")))
	require.NoError(t, err)
	_, err = io.ReadAll(in)
	assert.Error(t, err)
	assert.NoError(t, in.Close())
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	path := writeFile(t, "c.toml", []byte("format = \"yaml\"\nmax_payload = 0\n"))
	cfg, err = loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, "ipv4", cfg.Kind)
	assert.Zero(t, cfg.MaxPayload)
	assert.False(t, cfg.levelSet)

	path = writeFile(t, "c.toml", []byte("log_level = \"shouty\"\n"))
	_, err = loadConfig(path)
	assert.ErrorContains(t, err, "parse log_level")

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "load zcdump config")
}
