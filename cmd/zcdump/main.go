// Command zcdump prints IPv4 packets, frames or records from a capture file,
// viewing each value in place over the input.
//
//	zcdump [-config file.toml] [-kind ipv4|frame|record] [-format text|yaml] [-memprofile mem.prof] FILE
//
// FILE may be "-" for stdin and may be zstd compressed.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/pprof"

	"github.com/rawbytedev/zcbuf/internal/logging"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "zcdump: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("zcdump", flag.ContinueOnError)
	configPath := fs.String("config", "", "TOML config file")
	kind := fs.String("kind", "", "input kind: ipv4, frame or record")
	format := fs.String("format", "", "output format: text or yaml")
	memprofile := fs.String("memprofile", "", "write a heap profile to this file on exit")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: zcdump [flags] FILE")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *kind != "" {
		cfg.Kind = *kind
	}
	if *format != "" {
		cfg.Format = *format
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	log := logging.Configure("zcdump", logging.ProfileRuntime)
	if cfg.levelSet {
		log = log.Level(cfg.LogLevel)
	}

	in, err := openInput(fs.Arg(0))
	if err != nil {
		return err
	}
	defer in.Close()

	p := newPrinter(stdout, cfg.Format)
	n, err := dump(cfg, in, p, log)
	if cerr := p.close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	log.Debug().Int("values", n).Str("kind", cfg.Kind).Msg("dump complete")

	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			return fmt.Errorf("create memprofile: %w", err)
		}
		defer f.Close()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return fmt.Errorf("write memprofile: %w", err)
		}
	}
	return nil
}
