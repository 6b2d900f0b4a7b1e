package frame

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/rawbytedev/zcbuf"
)

const (
	defaultReadSize = 4096
	maxEmptyReads   = 100
)

// Decoder reads frames from a stream. Returned frames alias the decoder's
// buffer, which the decoder never writes again, so they stay valid and may be
// modified in place.
type Decoder struct {
	r        io.Reader
	buf      zcbuf.Exclusive
	limits   Limits
	readSize int
	log      zerolog.Logger
	eof      bool
}

type Option func(*Decoder)

func WithLimits(l Limits) Option { return func(d *Decoder) { d.limits = l } }

func WithLogger(l zerolog.Logger) Option { return func(d *Decoder) { d.log = l } }

// WithReadSize sets how many bytes each refill asks the reader for.
func WithReadSize(n int) Option {
	return func(d *Decoder) {
		if n > 0 {
			d.readSize = n
		}
	}
}

func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	d := &Decoder{
		r:        r,
		limits:   DefaultLimits(),
		readSize: defaultReadSize,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.buf = zcbuf.NewExclusive(make([]byte, 0, d.readSize))
	return d
}

// Buffered reports how many bytes are held but not yet decoded.
func (d *Decoder) Buffered() int { return d.buf.Len() }

// Next returns the next frame. It returns io.EOF after the last complete
// frame and io.ErrUnexpectedEOF when the stream ends inside one. A corrupt
// frame is reported and left in place.
func (d *Decoder) Next() (Frame[zcbuf.Exclusive], error) {
	for {
		f, err := Next(&d.buf, d.limits)
		if err == nil {
			d.log.Debug().
				Stringer("type", f.Type()).
				Int("payload", len(f.Payload())).
				Int("buffered", d.buf.Len()).
				Msg("frame decoded")
			return f, nil
		}
		if !errors.Is(err, ErrIncomplete) {
			d.log.Warn().Err(err).Int("buffered", d.buf.Len()).Msg("frame rejected")
			return Frame[zcbuf.Exclusive]{}, err
		}
		if d.eof {
			if d.buf.Len() == 0 {
				return Frame[zcbuf.Exclusive]{}, io.EOF
			}
			return Frame[zcbuf.Exclusive]{}, fmt.Errorf("frame: %d trailing bytes: %w", d.buf.Len(), io.ErrUnexpectedEOF)
		}
		if err := d.fill(); err != nil {
			return Frame[zcbuf.Exclusive]{}, err
		}
	}
}

// Skip drops n buffered bytes, for resynchronising after a corrupt frame.
func (d *Decoder) Skip(n int) {
	d.buf.Advance(min(n, d.buf.Len()))
}

func (d *Decoder) fill() error {
	for range maxEmptyReads {
		d.buf.Reserve(d.readSize)
		n, err := d.r.Read(d.buf.Spare())
		d.buf.Commit(n)
		if n > 0 {
			d.log.Debug().Int("read", n).Int("buffered", d.buf.Len()).Msg("refill")
		}
		if errors.Is(err, io.EOF) {
			d.eof = true
			return nil
		}
		if err != nil {
			return fmt.Errorf("frame: read: %w", err)
		}
		if n > 0 {
			return nil
		}
	}
	return io.ErrNoProgress
}
