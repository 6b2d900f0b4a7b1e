package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/rawbytedev/zcbuf/internal/logging"
	"github.com/rawbytedev/zcbuf/pkg/frame"
)

type dumpConfig struct {
	Kind       string
	Format     string
	MaxPayload int
	ReadSize   int
	LogLevel   zerolog.Level
	levelSet   bool
}

type fileConfig struct {
	Kind       string `toml:"kind"`
	Format     string `toml:"format"`
	MaxPayload int    `toml:"max_payload"`
	ReadSize   int    `toml:"read_size"`
	LogLevel   string `toml:"log_level"`
}

func defaultConfig() dumpConfig {
	return dumpConfig{
		Kind:       "ipv4",
		Format:     "text",
		MaxPayload: frame.DefaultLimits().MaxPayload,
		ReadSize:   4096,
		LogLevel:   zerolog.InfoLevel,
	}
}

func loadConfig(path string) (dumpConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return dumpConfig{}, fmt.Errorf("load zcdump config: %w", err)
	}
	if meta.IsDefined("kind") {
		cfg.Kind = strings.TrimSpace(raw.Kind)
	}
	if meta.IsDefined("format") {
		cfg.Format = strings.TrimSpace(raw.Format)
	}
	if meta.IsDefined("max_payload") {
		cfg.MaxPayload = raw.MaxPayload
	}
	if meta.IsDefined("read_size") {
		cfg.ReadSize = raw.ReadSize
	}
	if meta.IsDefined("log_level") {
		lvl, ok := logging.ParseLevel(raw.LogLevel)
		if !ok {
			return dumpConfig{}, fmt.Errorf("parse log_level: unknown level %q", raw.LogLevel)
		}
		cfg.LogLevel, cfg.levelSet = lvl, true
	}
	// Flags may still override kind and format; run validates the result.
	return cfg, nil
}

func (c dumpConfig) validate() error {
	switch c.Kind {
	case "ipv4", "frame", "record":
	default:
		return fmt.Errorf("unknown kind %q", c.Kind)
	}
	switch c.Format {
	case "text", "yaml":
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}
	if c.MaxPayload < 0 || c.ReadSize <= 0 {
		return fmt.Errorf("max_payload must be >= 0 and read_size > 0")
	}
	return nil
}
