package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/zcbuf"
	"github.com/rawbytedev/zcbuf/pkg/frame"
	"github.com/rawbytedev/zcbuf/pkg/ipv4"
	"github.com/rawbytedev/zcbuf/pkg/record"
)

type ipv4Entry struct {
	Offset      int    `yaml:"offset"`
	Version     uint8  `yaml:"version"`
	IHL         int    `yaml:"ihl"`
	TotalLength uint16 `yaml:"total_length"`
	TTL         uint8  `yaml:"ttl"`
	Protocol    string `yaml:"protocol"`
	Src         string `yaml:"src"`
	Dst         string `yaml:"dst"`
	ChecksumOK  bool   `yaml:"checksum_ok"`
	Payload     int    `yaml:"payload"`
}

func (e ipv4Entry) String() string {
	return fmt.Sprintf("%08x ipv4 v%d %s -> %s %s ttl=%d len=%d payload=%d checksum_ok=%t",
		e.Offset, e.Version, e.Src, e.Dst, e.Protocol, e.TTL, e.TotalLength, e.Payload, e.ChecksumOK)
}

type frameEntry struct {
	Offset  int      `yaml:"offset"`
	Type    string   `yaml:"type"`
	Flags   uint8    `yaml:"flags"`
	Payload int      `yaml:"payload"`
	CRC     string   `yaml:"crc"`
	Offsets []uint32 `yaml:"offsets,omitempty"`
}

func (e frameEntry) String() string {
	s := fmt.Sprintf("%08x frame %s flags=0x%02x payload=%d crc=%s", e.Offset, e.Type, e.Flags, e.Payload, e.CRC)
	if len(e.Offsets) > 0 {
		s += fmt.Sprintf(" offsets=%v", e.Offsets)
	}
	return s
}

type fieldEntry struct {
	Tag   uint16 `yaml:"tag"`
	Flags uint16 `yaml:"flags"`
	Hot   bool   `yaml:"hot"`
	Len   int    `yaml:"len"`
}

type recordEntry struct {
	Offset   int          `yaml:"offset"`
	SchemaID uint64       `yaml:"schema_id"`
	Fields   []fieldEntry `yaml:"fields"`
}

func (e recordEntry) String() string {
	s := fmt.Sprintf("%08x record schema=%d fields=%d", e.Offset, e.SchemaID, len(e.Fields))
	for _, f := range e.Fields {
		s += fmt.Sprintf("\n  tag=%d flags=0x%04x hot=%t len=%d", f.Tag, f.Flags, f.Hot, f.Len)
	}
	return s
}

type printer struct {
	w    io.Writer
	yaml *yaml.Encoder
}

func newPrinter(w io.Writer, format string) *printer {
	p := &printer{w: w}
	if format == "yaml" {
		p.yaml = yaml.NewEncoder(w)
		p.yaml.SetIndent(2)
	}
	return p
}

func (p *printer) emit(v fmt.Stringer) error {
	if p.yaml != nil {
		return p.yaml.Encode(v)
	}
	_, err := fmt.Fprintln(p.w, v.String())
	return err
}

func (p *printer) close() error {
	if p.yaml != nil {
		return p.yaml.Close()
	}
	return nil
}

func dump(cfg dumpConfig, in io.Reader, p *printer, log zerolog.Logger) (int, error) {
	switch cfg.Kind {
	case "frame":
		return dumpFrames(cfg, in, p, log)
	case "record":
		return dumpRecords(in, p)
	default:
		return dumpIPv4(in, p)
	}
}

func dumpIPv4(in io.Reader, p *printer) (int, error) {
	raw, err := io.ReadAll(in)
	if err != nil {
		return 0, fmt.Errorf("read input: %w", err)
	}
	data := zcbuf.NewShared(raw)
	n, off := 0, 0
	for data.Len() > 0 {
		h, err := zcbuf.Peek[ipv4.Header](data)
		if err != nil {
			return n, fmt.Errorf("packet at %d: %w", off, err)
		}
		total := int(h.Value().TotalLength.Get())
		if total < ipv4.HeaderLen {
			return n, fmt.Errorf("packet at %d: total length %d is shorter than the header", off, total)
		}
		pkt, err := zcbuf.GetTrailing[ipv4.Header, byte](&data, total-ipv4.HeaderLen)
		if err != nil {
			return n, fmt.Errorf("packet at %d: %w", off, err)
		}
		hdr := pkt.Head()
		err = p.emit(ipv4Entry{
			Offset:      off,
			Version:     hdr.Version(),
			IHL:         hdr.IHL(),
			TotalLength: hdr.TotalLength.Get(),
			TTL:         hdr.TTL,
			Protocol:    hdr.Protocol.String(),
			Src:         hdr.Src.String(),
			Dst:         hdr.Dst.String(),
			ChecksumOK:  hdr.ValidChecksum(),
			Payload:     pkt.Len(),
		})
		if err != nil {
			return n, err
		}
		n++
		off += total
	}
	return n, nil
}

func dumpFrames(cfg dumpConfig, in io.Reader, p *printer, log zerolog.Logger) (int, error) {
	d := frame.NewDecoder(in,
		frame.WithLimits(frame.Limits{MaxPayload: cfg.MaxPayload}),
		frame.WithReadSize(cfg.ReadSize),
		frame.WithLogger(log),
	)
	n, off := 0, 0
	for {
		f, err := d.Next()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("frame at %d: %w", off, err)
		}
		e := frameEntry{
			Offset:  off,
			Type:    f.Type().String(),
			Flags:   f.Flags(),
			Payload: len(f.Payload()),
			CRC:     fmt.Sprintf("%08x", f.CRC()),
		}
		if f.Flags()&frame.FlagHasOffsetTable != 0 {
			offs, _, err := f.Offsets()
			if err != nil {
				return n, fmt.Errorf("frame at %d: %w", off, err)
			}
			for _, o := range offs {
				e.Offsets = append(e.Offsets, o.Get())
			}
		}
		if err := p.emit(e); err != nil {
			return n, err
		}
		n++
		off += f.EncodedLen()
	}
}

func dumpRecords(in io.Reader, p *printer) (int, error) {
	raw, err := io.ReadAll(in)
	if err != nil {
		return 0, fmt.Errorf("read input: %w", err)
	}
	data := zcbuf.NewShared(raw)
	n, off := 0, 0
	for data.Len() > 0 {
		r, err := record.Open(data)
		if err != nil {
			return n, fmt.Errorf("record at %d: %w", off, err)
		}
		e := recordEntry{Offset: off, SchemaID: r.SchemaID()}
		for _, f := range r.Fields() {
			e.Fields = append(e.Fields, fieldEntry{Tag: f.Tag, Flags: f.Flags, Hot: r.IsHot(f.Tag), Len: len(f.Payload)})
		}
		if err := p.emit(e); err != nil {
			return n, err
		}
		n++
		off += r.EncodedLen()
		data.Advance(r.EncodedLen())
	}
	return n, nil
}
