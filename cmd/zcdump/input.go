package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

type input struct {
	io.Reader
	closers []func() error
}

func (in *input) Close() error {
	var first error
	for i := len(in.closers) - 1; i >= 0; i-- {
		if err := in.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// openInput opens path, or stdin for "-", and decompresses zstd input
// detected by name or magic.
func openInput(path string) (*input, error) {
	in := &input{}
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		in.closers = append(in.closers, f.Close)
		r = f
	}
	br := bufio.NewReader(r)
	// A short input yields io.EOF with fewer bytes, which just means no magic.
	head, err := br.Peek(len(zstdMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(fmt.Errorf("read input: %w", err), in.Close())
	}
	if !strings.HasSuffix(path, ".zst") && !bytes.Equal(head, zstdMagic) {
		in.Reader = br
		return in, nil
	}
	dec, err := zstd.NewReader(br)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("open zstd stream: %w", err), in.Close())
	}
	in.closers = append(in.closers, func() error { dec.Close(); return nil })
	in.Reader = dec
	return in, nil
}
