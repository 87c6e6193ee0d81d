package tx

import (
	"context"
	"fmt"

	"github.com/quantixorg/libquantix-go/digest"
	"github.com/quantixorg/libquantix-go/pqc"
)

// KeyLookup returns the private key that owns the output referenced by in.
type KeyLookup func(in TxInput) ([]byte, error)

// PubKeyLookup returns the public key that owns the output referenced by in.
type PubKeyLookup func(in TxInput) ([]byte, error)

// Sign signs a transaction id with privateKey. The message is the hex id
// itself, so every input of one transaction signs the same message.
func Sign(scheme pqc.Scheme, transactionID string, privateKey []byte) ([]byte, error) {
	if scheme == nil {
		return nil, fmt.Errorf("%w: nil scheme", ErrInvalidParams)
	}
	if len(privateKey) == 0 {
		return nil, ErrMissingPrivateKey
	}
	if !digest.IsDigest(transactionID) {
		return nil, fmt.Errorf("%w: malformed transaction id %q", ErrInvalidParams, transactionID)
	}
	sig, err := scheme.Sign(privateKey, []byte(transactionID))
	if err != nil {
		return nil, err
	}
	return sig, nil
}

// Verify reports whether signature was produced over transactionID by the
// private key paired with publicKey.
func Verify(scheme pqc.Scheme, transactionID string, signature, publicKey []byte) bool {
	if scheme == nil || !digest.IsDigest(transactionID) {
		return false
	}
	return scheme.Verify(publicKey, []byte(transactionID), signature)
}

// VerifyInput is Verify with the failure reported as ErrSignatureMismatch.
func VerifyInput(scheme pqc.Scheme, transactionID string, signature, publicKey []byte) error {
	if len(signature) == 0 {
		return ErrMissingSignature
	}
	if !Verify(scheme, transactionID, signature, publicKey) {
		return ErrSignatureMismatch
	}
	return nil
}

// SignTransaction signs every input of t over t.ID with the key returned by
// keys for that input. t is not modified; a signed copy is returned only
// once all inputs are signed. On failure or cancellation nothing is returned.
func SignTransaction(ctx context.Context, scheme pqc.Scheme, t *Transaction, keys KeyLookup) (*Transaction, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil transaction", ErrInvalidParams)
	}
	if keys == nil {
		return nil, ErrMissingPrivateKey
	}
	if len(t.Inputs) == 0 {
		return nil, fmt.Errorf("%w: transaction has no inputs", ErrInvalidParams)
	}
	if got := t.ContentID(); got != t.ID {
		return nil, fmt.Errorf("%w: id %s, content %s", ErrIDMismatch, t.ID, got)
	}

	signed := t.Clone()
	for i := range signed.Inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sk, err := keys(signed.Inputs[i])
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		sig, err := Sign(scheme, signed.ID, sk)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		signed.Inputs[i].Signature = sig
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return signed, nil
}

// SignAllInputs signs every input with a single private key, the common
// case for a one-key wallet spending its own outputs.
func SignAllInputs(ctx context.Context, scheme pqc.Scheme, t *Transaction, privateKey []byte) (*Transaction, error) {
	if len(privateKey) == 0 {
		return nil, ErrMissingPrivateKey
	}
	return SignTransaction(ctx, scheme, t, func(TxInput) ([]byte, error) {
		return privateKey, nil
	})
}

// VerifyTransaction checks that t spends at least one input, that t.ID
// matches its content and that every input signature verifies under the
// owner key returned by pubKeys.
func VerifyTransaction(scheme pqc.Scheme, t *Transaction, pubKeys PubKeyLookup) error {
	if t == nil || pubKeys == nil {
		return fmt.Errorf("%w: nil transaction or key lookup", ErrInvalidParams)
	}
	if len(t.Inputs) == 0 {
		return fmt.Errorf("%w: transaction spends no inputs", ErrInvalidParams)
	}
	if got := t.ContentID(); got != t.ID {
		return fmt.Errorf("%w: id %s, content %s", ErrIDMismatch, t.ID, got)
	}
	for i, in := range t.Inputs {
		pk, err := pubKeys(in)
		if err != nil {
			return fmt.Errorf("input %d: %w", i, err)
		}
		if err := VerifyInput(scheme, t.ID, in.Signature, pk); err != nil {
			return fmt.Errorf("input %d (%s:%d): %w", i, in.OutputID, in.OutputIndex, err)
		}
	}
	return nil
}
