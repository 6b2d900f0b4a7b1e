package frame

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawbytedev/zcbuf"
	"github.com/rawbytedev/zcbuf/pkg/buf"
	"github.com/rawbytedev/zcbuf/pkg/layout"
)

func encode(t *testing.T, typ Type, flags uint8, payload []byte) []byte {
	t.Helper()
	out := buf.NewBytesMut(0)
	require.NoError(t, Append(&out, typ, flags, payload))
	return out.Data()
}

func TestAppendLayout(t *testing.T) {
	b := encode(t, TypeData, 0, []byte("hi"))
	require.Len(t, b, HeaderSize+2+TrailerSize)
	assert.Equal(t, []byte{0x57, 0x43, 1, 1, 0, 0, 2, 0, 0, 0, 'h', 'i'}, b[:12])
}

func TestNextRoundTrip(t *testing.T) {
	stream := append(encode(t, TypeData, 0, []byte("payload")), encode(t, TypeError, 0, nil)...)
	data := zcbuf.NewShared(stream)

	f, err := Next(&data, DefaultLimits())
	require.NoError(t, err)
	assert.Equal(t, TypeData, f.Type())
	assert.Equal(t, "payload", string(f.Payload()))
	assert.Equal(t, HeaderSize+7+TrailerSize, f.EncodedLen())
	assert.Equal(t, HeaderSize+7, len(f.Region().Deref()))

	f, err = Next(&data, DefaultLimits())
	require.NoError(t, err)
	assert.Equal(t, TypeError, f.Type())
	assert.Empty(t, f.Payload())
	assert.Zero(t, data.Len())

	_, err = Next(&data, DefaultLimits())
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestNextIncompleteKeepsStream(t *testing.T) {
	full := encode(t, TypeData, 0, []byte("abcdef"))
	for i := 0; i < len(full); i++ {
		data := layout.Borrowed(full[:i])
		_, err := Next(&data, DefaultLimits())
		require.ErrorIs(t, err, ErrIncomplete, "prefix %d", i)
		require.ErrorIs(t, err, zcbuf.ErrSize)
		require.Len(t, data, i)
	}
}

func TestNextChecksum(t *testing.T) {
	full := encode(t, TypeData, 0, []byte("abcdef"))
	full[12] ^= 0xff
	data := zcbuf.NewShared(full)
	_, err := Next(&data, DefaultLimits())
	require.ErrorIs(t, err, ErrChecksum)
	assert.Equal(t, len(full), data.Len())
}

func TestNextBadHeader(t *testing.T) {
	full := encode(t, TypeData, 0, nil)
	full[0] = 0
	data := zcbuf.NewShared(full)
	_, err := Next(&data, DefaultLimits())
	require.ErrorIs(t, err, ErrMagic)
	assert.False(t, errors.Is(err, ErrIncomplete))

	full = encode(t, TypeData, 0, nil)
	full[3] = 9
	_, err = PeekHeader(layout.Borrowed(full))
	require.ErrorIs(t, err, ErrType)

	full[3], full[2] = byte(TypeData), 2
	_, err = PeekHeader(layout.Borrowed(full))
	require.ErrorIs(t, err, ErrVersion)

	assert.ErrorIs(t, Append(buf.NewSliceMut(make([]byte, 64)), Type(7), 0, nil), ErrType)
}

func TestNextLimit(t *testing.T) {
	data := zcbuf.NewShared(encode(t, TypeData, 0, make([]byte, 32)))
	_, err := Next(&data, Limits{MaxPayload: 16})
	require.ErrorIs(t, err, ErrPayloadTooLarge)
	assert.Equal(t, 46, data.Len())

	_, err = Next(&data, Limits{})
	require.NoError(t, err)
}

func TestAppendFixedTooSmall(t *testing.T) {
	dst := buf.NewSliceMut(make([]byte, HeaderSize+TrailerSize))
	err := Append(dst, TypeData, 0, []byte{1})
	require.ErrorIs(t, err, zcbuf.ErrSize)
	assert.Empty(t, dst.Written())
}

func TestOffsets(t *testing.T) {
	out := buf.NewBytesMut(0)
	require.NoError(t, AppendData(&out, []uint32{0, 3}, []byte("abcdef")))
	data := zcbuf.NewShared(out.Data())
	f, err := Next(&data, DefaultLimits())
	require.NoError(t, err)
	offs, rest, err := f.Offsets()
	require.NoError(t, err)
	require.Len(t, offs, 2)
	assert.Equal(t, uint32(3), offs[1].Get())
	assert.Equal(t, "abcdef", string(rest))

	plain := zcbuf.NewShared(encode(t, TypeData, 0, []byte("xy")))
	f, err = Next(&plain, DefaultLimits())
	require.NoError(t, err)
	offs, rest, err = f.Offsets()
	require.NoError(t, err)
	assert.Nil(t, offs)
	assert.Equal(t, "xy", string(rest))

	bad := zcbuf.NewShared(encode(t, TypeData, FlagHasOffsetTable, []byte{5, 0, 1}))
	f, err = Next(&bad, DefaultLimits())
	require.NoError(t, err)
	_, _, err = f.Offsets()
	assert.ErrorIs(t, err, zcbuf.ErrSize)
}

func TestDecoder(t *testing.T) {
	var wire bytes.Buffer
	enc := NewEncoder(&wire)
	require.NoError(t, enc.Encode(TypeHandshake, 0, []byte{1, 2, 3}))
	require.NoError(t, enc.EncodeData([]uint32{4}, bytes.Repeat([]byte{7}, 300)))
	require.NoError(t, enc.Encode(TypeError, 0, []byte("boom")))

	log := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
	d := NewDecoder(iotest.OneByteReader(&wire), WithReadSize(16), WithLogger(log))

	var got []Frame[zcbuf.Exclusive]
	for {
		f, err := d.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, f)
	}
	require.Len(t, got, 3)
	assert.Equal(t, TypeHandshake, got[0].Type())
	assert.Equal(t, []byte{1, 2, 3}, got[0].Payload())
	_, rest, err := got[1].Offsets()
	require.NoError(t, err)
	assert.Len(t, rest, 300)
	assert.Equal(t, "boom", string(got[2].Payload()))
	assert.Zero(t, d.Buffered())

	// earlier frames are untouched by later reads and may be edited in place
	got[0].Payload()[0] = 9
	assert.Equal(t, []byte{9, 2, 3}, got[0].Payload())
	assert.Equal(t, "boom", string(got[2].Payload()))
}

func TestDecoderTruncated(t *testing.T) {
	full := encode(t, TypeData, 0, []byte("abc"))
	d := NewDecoder(bytes.NewReader(full[:len(full)-1]))
	_, err := d.Next()
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestDecoderCorruptThenSkip(t *testing.T) {
	bad := encode(t, TypeData, 0, []byte("abc"))
	bad[len(bad)-1] ^= 1
	good := encode(t, TypeData, 0, []byte("ok"))
	d := NewDecoder(bytes.NewReader(append(bad, good...)))

	_, err := d.Next()
	require.ErrorIs(t, err, ErrChecksum)
	_, err = d.Next()
	require.ErrorIs(t, err, ErrChecksum, "corrupt frame stays in place")

	d.Skip(len(bad))
	f, err := d.Next()
	require.NoError(t, err)
	assert.Equal(t, "ok", string(f.Payload()))
}

type stuckReader struct{}

func (stuckReader) Read([]byte) (int, error) { return 0, nil }

func TestDecoderNoProgress(t *testing.T) {
	_, err := NewDecoder(stuckReader{}).Next()
	assert.ErrorIs(t, err, io.ErrNoProgress)
}

type failReader struct{}

func (failReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestDecoderReadError(t *testing.T) {
	_, err := NewDecoder(failReader{}).Next()
	assert.EqualError(t, err, "frame: read: disk on fire")
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "data", TypeData.String())
	assert.Equal(t, "type(9)", Type(9).String())
}
