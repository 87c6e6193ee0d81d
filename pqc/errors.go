package pqc

import "errors"

var (
	// ErrEntropyUnavailable indicates the secure random source could not be read.
	ErrEntropyUnavailable = errors.New("pqc: entropy source unavailable")

	// ErrInvalidPublicKey indicates a public key has the wrong length or encoding.
	ErrInvalidPublicKey = errors.New("pqc: invalid public key")

	// ErrInvalidPrivateKey indicates a private key has the wrong length or encoding.
	ErrInvalidPrivateKey = errors.New("pqc: invalid private key")

	// ErrInvalidSeed indicates a key seed has the wrong length.
	ErrInvalidSeed = errors.New("pqc: invalid key seed")

	// ErrUnknownScheme indicates the requested signature scheme is not registered.
	ErrUnknownScheme = errors.New("pqc: unknown signature scheme")
)
