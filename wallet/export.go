package wallet

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/quantixorg/libquantix-go/pqc"
)

// WalletFileVersion is the current export document version.
const WalletFileVersion = 1

// exportFilePrefix and exportNameChars shape ExportFileName.
const (
	exportFilePrefix = "quantix_wallet_"
	exportNameChars  = 8
)

// WalletFile is the JSON backup document holding a key pair.
type WalletFile struct {
	Version    int    `json:"version"`
	Scheme     string `json:"scheme"`
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
}

// ExportKeyPair serialises kp as a wallet file. The output is canonical:
// importing and re-exporting yields identical bytes.
func ExportKeyPair(scheme pqc.Scheme, kp *KeyPair) ([]byte, error) {
	if scheme == nil {
		scheme = pqc.Dilithium2()
	}
	if err := kp.Validate(scheme); err != nil {
		return nil, err
	}
	wf := WalletFile{
		Version:    WalletFileVersion,
		Scheme:     scheme.Name(),
		PublicKey:  hex.EncodeToString(kp.PublicKey),
		PrivateKey: hex.EncodeToString(kp.PrivateKey),
	}
	data, err := json.MarshalIndent(wf, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("wallet: marshal wallet file: %w", err)
	}
	return append(data, '\n'), nil
}

// LegacyWalletFile is the browser generator's download: Dilithium2 keys as
// JSON arrays of byte values, with no version or scheme.
type LegacyWalletFile struct {
	PublicKey  []int `json:"publicKey"`
	PrivateKey []int `json:"privateKey"`
}

// ImportKeyPair parses a wallet file and returns the key pair with its
// scheme. Legacy files, recognised by array-valued keys, import as
// Dilithium2.
func ImportKeyPair(data []byte) (*KeyPair, pqc.Scheme, error) {
	var head struct {
		PublicKey json.RawMessage `json:"publicKey"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	if bytes.HasPrefix(bytes.TrimSpace(head.PublicKey), []byte("[")) {
		return importLegacy(data)
	}

	var wf WalletFile
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&wf); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	if wf.Version != WalletFileVersion {
		return nil, nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, wf.Version)
	}
	scheme, err := pqc.SchemeByName(wf.Scheme)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrSerialization, err)
	}

	pk, err := decodeLowerHex(wf.PublicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: publicKey: %w", ErrSerialization, err)
	}
	sk, err := decodeLowerHex(wf.PrivateKey)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: privateKey: %w", ErrSerialization, err)
	}

	kp := &KeyPair{PublicKey: pk, PrivateKey: sk}
	if err := kp.Validate(scheme); err != nil {
		return nil, nil, err
	}
	return kp, scheme, nil
}

func importLegacy(data []byte) (*KeyPair, pqc.Scheme, error) {
	var lf LegacyWalletFile
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&lf); err != nil {
		return nil, nil, fmt.Errorf("%w: legacy: %w", ErrSerialization, err)
	}
	pk, err := byteValues(lf.PublicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: legacy publicKey: %w", ErrSerialization, err)
	}
	sk, err := byteValues(lf.PrivateKey)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: legacy privateKey: %w", ErrSerialization, err)
	}

	scheme := pqc.Dilithium2()
	kp := &KeyPair{PublicKey: pk, PrivateKey: sk}
	if err := kp.Validate(scheme); err != nil {
		return nil, nil, err
	}
	return kp, scheme, nil
}

func byteValues(vals []int) ([]byte, error) {
	b := make([]byte, len(vals))
	for i, v := range vals {
		if v < 0 || v > 0xff {
			return nil, fmt.Errorf("element %d out of byte range: %d", i, v)
		}
		b[i] = byte(v)
	}
	return b, nil
}

// ExportFileName returns the conventional backup file name for addr.
func ExportFileName(addr Address) string {
	s := strings.TrimPrefix(string(addr), HashAddressPrefix)
	if len(s) > exportNameChars {
		s = s[:exportNameChars]
	}
	return exportFilePrefix + s + ".json"
}

func decodeLowerHex(s string) ([]byte, error) {
	if s != strings.ToLower(s) {
		return nil, fmt.Errorf("not lowercase hex")
	}
	return hex.DecodeString(s)
}
