package wallet

import (
	"errors"

	"github.com/quantixorg/libquantix-go/pqc"
)

var (
	// ErrEntropyUnavailable indicates the secure random source could not be read.
	// Key generation is never retried after this error.
	ErrEntropyUnavailable = pqc.ErrEntropyUnavailable

	// ErrInvalidPublicKey indicates a public key of the wrong length.
	ErrInvalidPublicKey = pqc.ErrInvalidPublicKey

	// ErrInvalidPrivateKey indicates a private key of the wrong length.
	ErrInvalidPrivateKey = pqc.ErrInvalidPrivateKey

	// ErrKeyPairMismatch indicates the public key is not the one paired with the private key.
	ErrKeyPairMismatch = errors.New("wallet: public key does not match private key")

	// ErrAddressSchemeRequired indicates no address derivation scheme was chosen.
	ErrAddressSchemeRequired = errors.New("wallet: address scheme must be chosen explicitly")

	// ErrUnknownAddressScheme indicates an unrecognised address scheme name.
	ErrUnknownAddressScheme = errors.New("wallet: unknown address scheme")

	// ErrInvalidAddress indicates an address is malformed for its scheme.
	ErrInvalidAddress = errors.New("wallet: invalid address")

	// ErrSerialization indicates a malformed wallet export document.
	ErrSerialization = errors.New("wallet: malformed wallet file")

	// ErrUnsupportedVersion indicates a wallet file version this build cannot read.
	ErrUnsupportedVersion = errors.New("wallet: unsupported wallet file version")

	// ErrInvalidMnemonic indicates the mnemonic fails BIP39 validation.
	ErrInvalidMnemonic = errors.New("wallet: invalid BIP39 mnemonic")

	// ErrInvalidEntropy indicates entropy bits is not 128 or 256.
	ErrInvalidEntropy = errors.New("wallet: entropy bits must be 128 or 256")

	// ErrDecryptionFailed indicates wrong password or corrupted export data.
	ErrDecryptionFailed = errors.New("wallet: decryption failed (wrong password or corrupted data)")

	// ErrChecksumMismatch indicates the checksum verification failed after decryption.
	ErrChecksumMismatch = errors.New("wallet: checksum mismatch")

	// ErrNoLedger indicates a Sender was used without a ledger service.
	ErrNoLedger = errors.New("wallet: no ledger service configured")
)
