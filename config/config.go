// Copyright (c) 2026 The Quantix developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

// Package config loads wallet configuration from a key = value file,
// overlays QUANTIX_* environment variables, validates the result and
// builds the process logger.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/quantixorg/libquantix-go/network"
)

const (
	// configFileName is the file name inside the data directory.
	configFileName = "config"

	// dataDirName is the default data directory under the user's home.
	dataDirName = ".quantix"

	// EnvPrefix prefixes every environment variable ApplyEnv reads.
	EnvPrefix = "QUANTIX_"
)

// Config holds the wallet settings. Empty ledger fields fall back to the
// network preset. AddressScheme has no default and must be set.
type Config struct {
	DataDir        string `env:"DATA_DIR"`
	Network        string `env:"NETWORK"`
	LedgerURL      string `env:"LEDGER_URL"`
	LedgerUser     string `env:"LEDGER_USER"`
	LedgerPassword string `env:"LEDGER_PASSWORD"`
	AddressScheme  string `env:"ADDRESS_SCHEME"`
	LogLevel       string `env:"LOG_LEVEL"`
	LogFile        string `env:"LOG_FILE"`
}

// DefaultDataDir returns ~/.quantix, or .quantix in the working directory
// when the home directory cannot be determined.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return dataDirName
	}
	return filepath.Join(home, dataDirName)
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		DataDir:  DefaultDataDir(),
		Network:  "testnet",
		LogLevel: "info",
	}
}

// ConfigPath returns the config file path inside dataDir.
func ConfigPath(dataDir string) string {
	return filepath.Join(filepath.Clean(dataDir), configFileName)
}

// fileKeys maps config file keys to fields.
var fileKeys = []struct {
	key string
	get func(*Config) *string
}{
	{"datadir", func(c *Config) *string { return &c.DataDir }},
	{"network", func(c *Config) *string { return &c.Network }},
	{"ledger", func(c *Config) *string { return &c.LedgerURL }},
	{"ledgeruser", func(c *Config) *string { return &c.LedgerUser }},
	{"ledgerpassword", func(c *Config) *string { return &c.LedgerPassword }},
	{"addressscheme", func(c *Config) *string { return &c.AddressScheme }},
	{"loglevel", func(c *Config) *string { return &c.LogLevel }},
	{"logfile", func(c *Config) *string { return &c.LogFile }},
}

// LoadConfig reads path over DefaultConfig. Blank lines and # comments are
// skipped and unknown keys ignored.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, err := parseKeyValue(line)
		if err != nil {
			return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, lineNo, line)
		}
		for _, fk := range fileKeys {
			if fk.key == key {
				*fk.get(&cfg) = value
				break
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	return cfg, nil
}

// parseKeyValue splits on the first '='.
func parseKeyValue(line string) (string, string, error) {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return "", "", ErrInvalidConfigLine
	}
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return "", "", ErrInvalidConfigLine
	}
	return key, strings.TrimSpace(value), nil
}

// SaveConfig writes cfg to path, creating parent directories.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("# Quantix wallet configuration\n\n")
	for _, fk := range fileKeys {
		fmt.Fprintf(&b, "%s = %s\n", fk.key, *fk.get(&cfg))
	}
	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays QUANTIX_* variables from environ onto cfg. Unset
// variables leave fields untouched. A nil environ reads the process
// environment.
func ApplyEnv(cfg *Config, environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("config: environment: %w", err)
	}
	return nil
}

// Load reads the config file under dataDir, tolerating its absence, then
// applies the environment, then overrides (typically command-line flags),
// and validates the result.
func Load(dataDir string, environ map[string]string, overrides ...func(*Config)) (Config, error) {
	cfg, err := LoadConfig(ConfigPath(dataDir))
	if err != nil && !errors.Is(err, ErrConfigNotFound) {
		return cfg, err
	}
	cfg.DataDir = dataDir
	if err := ApplyEnv(&cfg, environ); err != nil {
		return cfg, err
	}
	for _, o := range overrides {
		o(&cfg)
	}
	if err := ValidateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewLogger builds a text logger at cfg.LogLevel writing to fallback, or
// appending to cfg.LogFile when set. A nil fallback means os.Stderr. The
// returned closer releases the file.
func NewLogger(cfg Config, fallback io.Writer) (*slog.Logger, io.Closer, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidLogLevel, cfg.LogLevel)
	}

	w := fallback
	if w == nil {
		w = os.Stderr
	}
	var closer io.Closer = nopCloser{}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return nil, nil, fmt.Errorf("config: open log file: %w", err)
		}
		w, closer = f, f
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return logger, closer, nil
}

// LedgerRPC resolves the ledger connection. The ledger fields of c, already
// layered file < environment < overrides by Load, win over the network
// preset field by field.
func (c Config) LedgerRPC() (*network.RPCConfig, error) {
	return network.ResolveConfig(c.Network, network.RPCConfig{
		URL:      c.LedgerURL,
		User:     c.LedgerUser,
		Password: c.LedgerPassword,
	})
}
