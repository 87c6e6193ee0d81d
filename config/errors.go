// Copyright (c) 2026 The Quantix developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import "errors"

var (
	// ErrInvalidNetwork indicates the network name is not recognized.
	ErrInvalidNetwork = errors.New("config: invalid network (must be \"mainnet\", \"testnet\", or \"regtest\")")

	// ErrInvalidLedgerURL indicates the ledger URL is malformed or missing where required.
	ErrInvalidLedgerURL = errors.New("config: invalid ledger URL")

	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("config: invalid log level (must be \"debug\", \"info\", \"warn\", or \"error\")")

	// ErrEmptyDataDir indicates the data directory path is empty.
	ErrEmptyDataDir = errors.New("config: data directory must not be empty")

	// ErrAddressSchemeRequired indicates no address scheme was configured.
	ErrAddressSchemeRequired = errors.New("config: address scheme must be set (\"pubkey-hex\" or \"hash160-0x\")")

	// ErrInvalidAddressScheme indicates an unrecognized address scheme name.
	ErrInvalidAddressScheme = errors.New("config: invalid address scheme")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")

	// ErrInvalidConfigLine indicates a line in the config file is malformed.
	ErrInvalidConfigLine = errors.New("config: invalid configuration line")
)
