package wallet

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"github.com/bsv-blockchain/go-sdk/compat/bip39"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/sha3"

	"github.com/quantixorg/libquantix-go/pqc"
)

const (
	// Mnemonic entropy sizes.
	Mnemonic12Words = 128 // 12-word mnemonic
	Mnemonic24Words = 256 // 24-word mnemonic

	// Argon2id parameters for export encryption.
	Argon2Time        = 3
	Argon2Memory      = 64 * 1024 // 64 MB
	Argon2Parallelism = 4
	Argon2KeyLen      = 32

	// Encryption format sizes.
	SaltLen     = 16
	NonceLen    = 12
	ChecksumLen = 4
)

// mnemonicKeyDomain separates the key seed from other uses of the BIP39 seed.
const mnemonicKeyDomain = "quantix/pq-key/v1"

// GenerateMnemonic creates a new BIP39 mnemonic with the specified entropy bits.
func GenerateMnemonic(entropyBits int) (string, error) {
	if entropyBits != Mnemonic12Words && entropyBits != Mnemonic24Words {
		return "", ErrInvalidEntropy
	}

	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEntropyUnavailable, err)
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("wallet: failed to generate mnemonic: %w", err)
	}

	return mnemonic, nil
}

// ValidateMnemonic checks if a mnemonic string is valid BIP39.
func ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(mnemonic)
}

// KeyPairFromMnemonic deterministically recovers a key pair from a
// recovery phrase:
//
//	seed = SHA3-256(domain || BIP39-seed(mnemonic, passphrase))
//	(pk, sk) = scheme.KeyFromSeed(seed)
func KeyPairFromMnemonic(scheme pqc.Scheme, mnemonic, passphrase string) (*KeyPair, error) {
	if scheme == nil {
		scheme = pqc.Dilithium2()
	}
	if !ValidateMnemonic(mnemonic) {
		return nil, ErrInvalidMnemonic
	}

	bipSeed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMnemonic, err)
	}

	h := sha3.New256()
	h.Write([]byte(mnemonicKeyDomain))
	h.Write(bipSeed)
	keySeed := h.Sum(nil)
	clear(bipSeed)

	if len(keySeed) < scheme.SeedSize() {
		return nil, fmt.Errorf("wallet: scheme %s needs a %d-byte seed", scheme.Name(), scheme.SeedSize())
	}
	pk, sk, err := scheme.KeyFromSeed(keySeed[:scheme.SeedSize()])
	clear(keySeed)
	if err != nil {
		return nil, err
	}
	return &KeyPair{PublicKey: pk, PrivateKey: sk}, nil
}

// EncryptExport encrypts a wallet file with Argon2id + AES-256-GCM.
//
// Output format: salt(16B) || nonce(12B) || AES-GCM(argon2id(password,salt), nonce, data||checksum)
//
// The checksum is SHA256(data)[:4] for verifying correct decryption.
func EncryptExport(data []byte, password string) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty export", ErrSerialization)
	}

	salt := make([]byte, SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("%w: salt: %w", ErrEntropyUnavailable, err)
	}

	gcm, err := exportCipher(password, salt)
	if err != nil {
		return nil, err
	}

	sum := sha256.Sum256(data)
	plaintext := make([]byte, len(data)+ChecksumLen)
	copy(plaintext, data)
	copy(plaintext[len(data):], sum[:ChecksumLen])

	nonce := make([]byte, NonceLen)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("%w: nonce: %w", ErrEntropyUnavailable, err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)
	clear(plaintext)

	result := make([]byte, 0, SaltLen+NonceLen+len(ciphertext))
	result = append(result, salt...)
	result = append(result, nonce...)
	result = append(result, ciphertext...)
	return result, nil
}

// DecryptExport reverses EncryptExport.
func DecryptExport(encrypted []byte, password string) ([]byte, error) {
	if len(encrypted) < SaltLen+NonceLen+ChecksumLen {
		return nil, ErrDecryptionFailed
	}

	salt := encrypted[:SaltLen]
	nonce := encrypted[SaltLen : SaltLen+NonceLen]
	ciphertext := encrypted[SaltLen+NonceLen:]

	gcm, err := exportCipher(password, salt)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	if len(plaintext) < ChecksumLen {
		return nil, ErrDecryptionFailed
	}

	data := plaintext[:len(plaintext)-ChecksumLen]
	stored := plaintext[len(plaintext)-ChecksumLen:]
	sum := sha256.Sum256(data)
	if subtle.ConstantTimeCompare(stored, sum[:ChecksumLen]) != 1 {
		return nil, ErrChecksumMismatch
	}
	return data, nil
}

func exportCipher(password string, salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey([]byte(password), salt, Argon2Time, Argon2Memory, Argon2Parallelism, Argon2KeyLen)
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("wallet: AES cipher creation failed: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("wallet: GCM creation failed: %w", err)
	}
	return gcm, nil
}
