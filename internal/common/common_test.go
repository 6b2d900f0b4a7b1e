package common

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct {
	A uint8
	B [3]byte
}

func TestFixedSize(t *testing.T) {
	assert.Equal(t, 1, FixedSize(reflect.Bool))
	assert.Equal(t, 2, FixedSize(reflect.Uint16))
	assert.Equal(t, 4, FixedSize(reflect.Float32))
	assert.Equal(t, 8, FixedSize(reflect.Int64))
	assert.Equal(t, -1, FixedSize(reflect.String))
}

func TestCastAliases(t *testing.T) {
	b := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	p := Cast[pair](b)
	assert.Equal(t, uint8(1), p.A)
	assert.Equal(t, [3]byte{2, 3, 4}, p.B)

	p.A = 9
	assert.Equal(t, byte(9), b[0], "cast must alias, not copy")

	s := CastSlice[pair](b, 2)
	require.Len(t, s, 2)
	assert.Equal(t, uint8(5), s[1].A)

	back := SliceBytes(s)
	assert.Equal(t, b, back)
	assert.Equal(t, b[:4], BytesOf(p))
}

func TestCastShortPanics(t *testing.T) {
	assert.Panics(t, func() { Cast[pair]([]byte{1, 2}) })
	assert.Panics(t, func() { CastSlice[pair]([]byte{1, 2, 3, 4}, 2) })
}

func TestZeroSized(t *testing.T) {
	assert.NotNil(t, Cast[struct{}](nil))
	assert.Len(t, CastSlice[struct{}](nil, 5), 5)
	assert.Empty(t, CastSlice[pair](nil, 0))
	assert.Empty(t, BytesOf(&struct{}{}))
}
