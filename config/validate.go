// Copyright (c) 2026 The Quantix developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import (
	"fmt"
	"strings"

	"github.com/quantixorg/libquantix-go/wallet"
)

// validLogLevels lists the accepted log level strings.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}

	if cfg.Network != "mainnet" && cfg.Network != "testnet" && cfg.Network != "regtest" {
		return ErrInvalidNetwork
	}

	if _, err := cfg.LedgerRPC(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLedgerURL, err)
	}

	switch cfg.AddressScheme {
	case "":
		return ErrAddressSchemeRequired
	case wallet.PublicKeyHexSchemeName, wallet.HashPrefixedSchemeName:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidAddressScheme, cfg.AddressScheme)
	}

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return ErrInvalidLogLevel
	}

	return nil
}
