package zcbuf

import "github.com/rawbytedev/zcbuf/pkg/buf"

// CopyToSlice fills dst from src, crossing chunk boundaries as needed, and
// returns dst as the written view. If src holds fewer than len(dst) bytes
// nothing is consumed.
func CopyToSlice(src buf.Buf, dst []byte) ([]byte, error) {
	if have := src.Remaining(); have < len(dst) {
		return nil, &SizeError{Type: "[]byte", Need: len(dst), Have: have}
	}
	for n := 0; n < len(dst); {
		c := copy(dst[n:], src.Chunk())
		if c == 0 {
			panic("zcbuf: empty chunk with bytes remaining")
		}
		src.Advance(c)
		n += c
	}
	return dst, nil
}
