package keystore

import "errors"

var (
	// ErrNotFound indicates no wallet is stored under the address.
	ErrNotFound = errors.New("keystore: wallet not found")

	// ErrDuplicate indicates a wallet with the same address already exists.
	ErrDuplicate = errors.New("keystore: wallet already exists")

	// ErrNilParam indicates a required parameter was nil or empty.
	ErrNilParam = errors.New("keystore: nil or empty parameter")

	// ErrCorruptRecord indicates a stored value could not be decoded.
	ErrCorruptRecord = errors.New("keystore: corrupt record")
)
