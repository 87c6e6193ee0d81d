// Package pqc isolates the post-quantum signature primitive behind a
// capability interface.
//
// Everything above this package deals in raw key and signature bytes of
// fixed length; swapping the primitive only requires another Scheme.
package pqc

import (
	"fmt"
	"io"
)

// Scheme is a post-quantum signature algorithm with fixed key and
// signature sizes.
type Scheme interface {
	// Name returns the registry name of the scheme, e.g. "dilithium2".
	Name() string

	PublicKeySize() int
	PrivateKeySize() int
	SignatureSize() int

	// SeedSize is the length of the seed accepted by KeyFromSeed.
	SeedSize() int

	// GenerateKey draws a fresh key pair from rand.
	GenerateKey(rand io.Reader) (publicKey, privateKey []byte, err error)

	// KeyFromSeed deterministically expands seed into a key pair.
	KeyFromSeed(seed []byte) (publicKey, privateKey []byte, err error)

	// PublicKeyOf recomputes the public key paired with privateKey.
	PublicKeyOf(privateKey []byte) ([]byte, error)

	// Sign signs msg with privateKey.
	Sign(privateKey, msg []byte) ([]byte, error)

	// Verify reports whether sig is a valid signature of msg under publicKey.
	// Malformed inputs verify as false.
	Verify(publicKey, msg, sig []byte) bool
}

// SchemeByName returns the scheme registered under name.
func SchemeByName(name string) (Scheme, error) {
	switch name {
	case Dilithium2Name:
		return Dilithium2(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
	}
}
