package pqc

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/cloudflare/circl/sign/dilithium/mode2"
)

// Dilithium2Name is the registry name of the Dilithium2 scheme.
const Dilithium2Name = "dilithium2"

// Dilithium2 sizes (round 3 parameter set).
const (
	Dilithium2PublicKeySize  = mode2.PublicKeySize  // 1312
	Dilithium2PrivateKeySize = mode2.PrivateKeySize // 2528
	Dilithium2SignatureSize  = mode2.SignatureSize  // 2420
	Dilithium2SeedSize       = mode2.SeedSize       // 32
)

type dilithium2 struct{}

// Dilithium2 returns the CRYSTALS-Dilithium2 scheme.
func Dilithium2() Scheme { return dilithium2{} }

func (dilithium2) Name() string        { return Dilithium2Name }
func (dilithium2) PublicKeySize() int  { return Dilithium2PublicKeySize }
func (dilithium2) PrivateKeySize() int { return Dilithium2PrivateKeySize }
func (dilithium2) SignatureSize() int  { return Dilithium2SignatureSize }
func (dilithium2) SeedSize() int       { return Dilithium2SeedSize }

func (dilithium2) GenerateKey(r io.Reader) ([]byte, []byte, error) {
	if r == nil {
		r = rand.Reader
	}
	// Read the seed ourselves so an RNG failure is reported as such and
	// no key material exists until the full seed has been drawn.
	var seed [mode2.SeedSize]byte
	if _, err := io.ReadFull(r, seed[:]); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrEntropyUnavailable, err)
	}
	pk, sk := mode2.NewKeyFromSeed(&seed)
	clear(seed[:])
	return packPublic(pk), packPrivate(sk), nil
}

func (dilithium2) KeyFromSeed(seed []byte) ([]byte, []byte, error) {
	if len(seed) != mode2.SeedSize {
		return nil, nil, fmt.Errorf("%w: must be %d bytes (got %d)", ErrInvalidSeed, mode2.SeedSize, len(seed))
	}
	var s [mode2.SeedSize]byte
	copy(s[:], seed)
	pk, sk := mode2.NewKeyFromSeed(&s)
	clear(s[:])
	return packPublic(pk), packPrivate(sk), nil
}

func (dilithium2) PublicKeyOf(privateKey []byte) ([]byte, error) {
	sk, err := unpackPrivate(privateKey)
	if err != nil {
		return nil, err
	}
	pk, ok := sk.Public().(*mode2.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: cannot derive public key", ErrInvalidPrivateKey)
	}
	return packPublic(pk), nil
}

func (dilithium2) Sign(privateKey, msg []byte) ([]byte, error) {
	sk, err := unpackPrivate(privateKey)
	if err != nil {
		return nil, err
	}
	sig := make([]byte, mode2.SignatureSize)
	mode2.SignTo(sk, msg, sig)
	return sig, nil
}

func (dilithium2) Verify(publicKey, msg, sig []byte) bool {
	if len(sig) != mode2.SignatureSize {
		return false
	}
	pk, err := unpackPublic(publicKey)
	if err != nil {
		return false
	}
	return mode2.Verify(pk, msg, sig)
}

func packPublic(pk *mode2.PublicKey) []byte {
	var buf [mode2.PublicKeySize]byte
	pk.Pack(&buf)
	return buf[:]
}

func packPrivate(sk *mode2.PrivateKey) []byte {
	var buf [mode2.PrivateKeySize]byte
	sk.Pack(&buf)
	return buf[:]
}

func unpackPublic(b []byte) (*mode2.PublicKey, error) {
	if len(b) != mode2.PublicKeySize {
		return nil, fmt.Errorf("%w: must be %d bytes (got %d)", ErrInvalidPublicKey, mode2.PublicKeySize, len(b))
	}
	var buf [mode2.PublicKeySize]byte
	copy(buf[:], b)
	pk := new(mode2.PublicKey)
	pk.Unpack(&buf)
	return pk, nil
}

func unpackPrivate(b []byte) (*mode2.PrivateKey, error) {
	if len(b) != mode2.PrivateKeySize {
		return nil, fmt.Errorf("%w: must be %d bytes (got %d)", ErrInvalidPrivateKey, mode2.PrivateKeySize, len(b))
	}
	var buf [mode2.PrivateKeySize]byte
	copy(buf[:], b)
	sk := new(mode2.PrivateKey)
	sk.Unpack(&buf)
	clear(buf[:])
	return sk, nil
}
