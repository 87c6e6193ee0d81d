// Package wallet implements key management for Quantix wallets:
// post-quantum key pairs, address derivation, wallet export files and
// recovery phrases, plus the send flow against a ledger.
package wallet

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/quantixorg/libquantix-go/pqc"
)

// KeyPair holds a post-quantum public/private key pair. Both halves are
// produced together by KeyManager and are never partially valid.
type KeyPair struct {
	PublicKey  []byte
	PrivateKey []byte
}

// Validate checks the key sizes for scheme and that PublicKey is the key
// paired with PrivateKey.
func (kp *KeyPair) Validate(scheme pqc.Scheme) error {
	if kp == nil {
		return fmt.Errorf("%w: nil key pair", ErrInvalidPrivateKey)
	}
	if len(kp.PublicKey) != scheme.PublicKeySize() {
		return fmt.Errorf("%w: must be %d bytes (got %d)", ErrInvalidPublicKey, scheme.PublicKeySize(), len(kp.PublicKey))
	}
	if len(kp.PrivateKey) != scheme.PrivateKeySize() {
		return fmt.Errorf("%w: must be %d bytes (got %d)", ErrInvalidPrivateKey, scheme.PrivateKeySize(), len(kp.PrivateKey))
	}
	derived, err := scheme.PublicKeyOf(kp.PrivateKey)
	if err != nil {
		return err
	}
	if !bytes.Equal(derived, kp.PublicKey) {
		return ErrKeyPairMismatch
	}
	return nil
}

// Wipe zeroes the private key in place.
func (kp *KeyPair) Wipe() {
	if kp != nil {
		clear(kp.PrivateKey)
	}
}

// KeyManager generates key pairs and derives addresses for one deployment.
// It holds no mutable state and is safe for concurrent use provided the
// entropy reader is.
type KeyManager struct {
	scheme  pqc.Scheme
	entropy io.Reader
	address AddressScheme
}

// NewKeyManager returns a KeyManager. A nil scheme selects Dilithium2 and a
// nil entropy source selects crypto/rand. The address scheme has no
// default and must be supplied.
func NewKeyManager(scheme pqc.Scheme, entropy io.Reader, address AddressScheme) (*KeyManager, error) {
	if scheme == nil {
		scheme = pqc.Dilithium2()
	}
	if entropy == nil {
		entropy = rand.Reader
	}
	if address == nil {
		return nil, ErrAddressSchemeRequired
	}
	return &KeyManager{scheme: scheme, entropy: entropy, address: address}, nil
}

// NewKeyManagerByName resolves the address scheme by configuration name.
func NewKeyManagerByName(scheme pqc.Scheme, addressScheme string) (*KeyManager, error) {
	if scheme == nil {
		scheme = pqc.Dilithium2()
	}
	as, err := AddressSchemeByName(addressScheme, scheme.PublicKeySize())
	if err != nil {
		return nil, err
	}
	return NewKeyManager(scheme, nil, as)
}

// Scheme returns the signature scheme.
func (m *KeyManager) Scheme() pqc.Scheme { return m.scheme }

// AddressScheme returns the address derivation scheme.
func (m *KeyManager) AddressScheme() AddressScheme { return m.address }

// GenerateKeyPair produces a fresh key pair. An unreadable entropy source
// yields ErrEntropyUnavailable and no key material.
func (m *KeyManager) GenerateKeyPair() (*KeyPair, error) {
	pk, sk, err := m.scheme.GenerateKey(m.entropy)
	if err != nil {
		return nil, fmt.Errorf("wallet: generate key pair: %w", err)
	}
	return &KeyPair{PublicKey: pk, PrivateKey: sk}, nil
}

// DeriveAddress maps publicKey to its address under the configured scheme.
func (m *KeyManager) DeriveAddress(publicKey []byte) (Address, error) {
	if len(publicKey) != m.scheme.PublicKeySize() {
		return "", fmt.Errorf("%w: must be %d bytes (got %d)", ErrInvalidPublicKey, m.scheme.PublicKeySize(), len(publicKey))
	}
	return m.address.Derive(publicKey)
}

// GenerateKeyPair produces a Dilithium2 key pair from crypto/rand.
func GenerateKeyPair() (*KeyPair, error) {
	pk, sk, err := pqc.Dilithium2().GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("wallet: generate key pair: %w", err)
	}
	return &KeyPair{PublicKey: pk, PrivateKey: sk}, nil
}
