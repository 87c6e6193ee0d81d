package wallet

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Address identifies the owner of outputs on the ledger.
type Address string

// String returns the address text.
func (a Address) String() string { return string(a) }

// Two incompatible address formats exist on Quantix ledgers. Neither is
// canonical: a deployment picks one and uses it everywhere.
const (
	// PublicKeyHexSchemeName is the name of PublicKeyHexScheme.
	PublicKeyHexSchemeName = "pubkey-hex"

	// HashPrefixedSchemeName is the name of HashPrefixedScheme.
	HashPrefixedSchemeName = "hash160-0x"

	// HashAddressPrefix prefixes hash-derived addresses.
	HashAddressPrefix = "0x"

	// HashAddressLen is the number of digest bytes kept in a hash-derived address.
	HashAddressLen = 20
)

// AddressScheme derives addresses from public keys.
type AddressScheme interface {
	// Name returns the scheme's configuration name.
	Name() string

	// Derive maps a public key to its address. It is pure and deterministic.
	Derive(publicKey []byte) (Address, error)

	// ValidateAddress checks that addr is well formed under this scheme.
	ValidateAddress(addr string) error
}

// AddressSchemeByName returns the scheme registered under name for a
// signature scheme producing public keys of pubKeySize bytes.
func AddressSchemeByName(name string, pubKeySize int) (AddressScheme, error) {
	switch name {
	case PublicKeyHexSchemeName:
		return PublicKeyHexScheme{PublicKeySize: pubKeySize}, nil
	case HashPrefixedSchemeName:
		return HashPrefixedScheme{PublicKeySize: pubKeySize}, nil
	case "":
		return nil, ErrAddressSchemeRequired
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAddressScheme, name)
	}
}

// PublicKeyHexScheme uses the whole public key, lowercase hex, as the
// address. Verifiers can recover the key from the address itself.
type PublicKeyHexScheme struct {
	PublicKeySize int
}

func (PublicKeyHexScheme) Name() string { return PublicKeyHexSchemeName }

func (s PublicKeyHexScheme) Derive(publicKey []byte) (Address, error) {
	if err := checkPubKey(publicKey, s.PublicKeySize); err != nil {
		return "", err
	}
	return Address(hex.EncodeToString(publicKey)), nil
}

func (s PublicKeyHexScheme) ValidateAddress(addr string) error {
	_, err := s.PublicKeyFromAddress(addr)
	return err
}

// PublicKeyFromAddress decodes the public key embedded in addr.
func (s PublicKeyHexScheme) PublicKeyFromAddress(addr string) ([]byte, error) {
	if addr != strings.ToLower(addr) {
		return nil, fmt.Errorf("%w: not lowercase hex", ErrInvalidAddress)
	}
	pk, err := hex.DecodeString(addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if s.PublicKeySize > 0 && len(pk) != s.PublicKeySize {
		return nil, fmt.Errorf("%w: encodes %d bytes, want %d", ErrInvalidAddress, len(pk), s.PublicKeySize)
	}
	return pk, nil
}

// HashPrefixedScheme derives "0x" + hex(SHA3-256(publicKey)[:20]).
type HashPrefixedScheme struct {
	PublicKeySize int
}

func (HashPrefixedScheme) Name() string { return HashPrefixedSchemeName }

func (s HashPrefixedScheme) Derive(publicKey []byte) (Address, error) {
	if err := checkPubKey(publicKey, s.PublicKeySize); err != nil {
		return "", err
	}
	sum := sha3.Sum256(publicKey)
	return Address(HashAddressPrefix + hex.EncodeToString(sum[:HashAddressLen])), nil
}

func (HashPrefixedScheme) ValidateAddress(addr string) error {
	body, ok := strings.CutPrefix(addr, HashAddressPrefix)
	if !ok {
		return fmt.Errorf("%w: missing %q prefix", ErrInvalidAddress, HashAddressPrefix)
	}
	if len(body) != HashAddressLen*2 || body != strings.ToLower(body) {
		return fmt.Errorf("%w: want %d lowercase hex chars after prefix", ErrInvalidAddress, HashAddressLen*2)
	}
	if _, err := hex.DecodeString(body); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	return nil
}

func checkPubKey(publicKey []byte, size int) error {
	if len(publicKey) == 0 || (size > 0 && len(publicKey) != size) {
		return fmt.Errorf("%w: must be %d bytes (got %d)", ErrInvalidPublicKey, size, len(publicKey))
	}
	return nil
}
