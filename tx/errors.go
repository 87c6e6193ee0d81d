package tx

import (
	"errors"

	"github.com/quantixorg/libquantix-go/pqc"
)

var (
	// ErrInsufficientFunds indicates the available outputs cannot cover the target amount.
	ErrInsufficientFunds = errors.New("tx: insufficient funds")

	// ErrAmountOverflow indicates a sum of amounts exceeds the uint64 range.
	ErrAmountOverflow = errors.New("tx: amount overflow")

	// ErrInvalidParams indicates invalid parameters were provided.
	ErrInvalidParams = errors.New("tx: invalid parameters")

	// ErrValueMismatch indicates selected inputs do not equal amount plus change.
	ErrValueMismatch = errors.New("tx: input value does not equal outputs plus change")

	// ErrMissingPrivateKey indicates signing was requested without key material.
	ErrMissingPrivateKey = errors.New("tx: missing private key")

	// ErrMissingSignature indicates an input carries no signature.
	ErrMissingSignature = errors.New("tx: input is not signed")

	// ErrSignatureMismatch indicates a signature does not verify.
	ErrSignatureMismatch = errors.New("tx: signature mismatch")

	// ErrIDMismatch indicates the transaction id does not match its content.
	ErrIDMismatch = errors.New("tx: transaction id does not match content")

	// ErrSerialization indicates malformed transaction wire data.
	ErrSerialization = errors.New("tx: malformed transaction data")

	// ErrInvalidPrivateKey indicates the private key has the wrong size for the scheme.
	ErrInvalidPrivateKey = pqc.ErrInvalidPrivateKey

	// ErrInvalidPublicKey indicates the public key has the wrong size for the scheme.
	ErrInvalidPublicKey = pqc.ErrInvalidPublicKey
)
