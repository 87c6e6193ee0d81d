package wallet

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantixorg/libquantix-go/pqc"
)

func TestExportImport_RoundTrip(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)

	data, err := ExportKeyPair(nil, kp)
	require.NoError(t, err)

	got, scheme, err := ImportKeyPair(data)
	require.NoError(t, err)
	assert.Equal(t, pqc.Dilithium2Name, scheme.Name())
	assert.Equal(t, kp.PublicKey, got.PublicKey)
	assert.Equal(t, kp.PrivateKey, got.PrivateKey)

	again, err := ExportKeyPair(scheme, got)
	require.NoError(t, err)
	assert.Equal(t, data, again, "re-export must be byte-identical")
}

func TestExportKeyPair_Fields(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)
	data, err := ExportKeyPair(nil, kp)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Len(t, m, 4)
	assert.EqualValues(t, 1, m["version"])
	assert.Equal(t, "dilithium2", m["scheme"])
	assert.Len(t, m["publicKey"], 2*1312)
	assert.Len(t, m["privateKey"], 2*2528)
}

func TestExportKeyPair_RejectsInvalid(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)
	other, err := GenerateKeyPair()
	require.NoError(t, err)

	_, err = ExportKeyPair(nil, &KeyPair{PublicKey: other.PublicKey, PrivateKey: kp.PrivateKey})
	assert.ErrorIs(t, err, ErrKeyPairMismatch)
}

func TestImportKeyPair_Errors(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)
	good, err := ExportKeyPair(nil, kp)
	require.NoError(t, err)

	tests := []struct {
		name string
		data string
		want error
	}{
		{"not json", "{", ErrSerialization},
		{"unknown field", `{"version":1,"scheme":"dilithium2","publicKey":"","privateKey":"","extra":1}`, ErrSerialization},
		{"version", strings.Replace(string(good), `"version": 1`, `"version": 2`, 1), ErrUnsupportedVersion},
		{"scheme", strings.Replace(string(good), `"dilithium2"`, `"falcon512"`, 1), ErrSerialization},
		{"uppercase key", strings.Replace(string(good), `"publicKey": "`, `"publicKey": "A`, 1), ErrSerialization},
		{"truncated key", `{"version":1,"scheme":"dilithium2","publicKey":"abcd","privateKey":"abcd"}`, ErrInvalidPublicKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ImportKeyPair([]byte(tt.data))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func legacyFile(t *testing.T, pub, priv []byte) []byte {
	t.Helper()
	ints := func(b []byte) []int {
		out := make([]int, len(b))
		for i, v := range b {
			out[i] = int(v)
		}
		return out
	}
	data, err := json.Marshal(LegacyWalletFile{PublicKey: ints(pub), PrivateKey: ints(priv)})
	require.NoError(t, err)
	return data
}

func TestImportKeyPair_Legacy(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)

	got, scheme, err := ImportKeyPair(legacyFile(t, kp.PublicKey, kp.PrivateKey))
	require.NoError(t, err)
	assert.Equal(t, pqc.Dilithium2Name, scheme.Name())
	assert.Equal(t, kp.PublicKey, got.PublicKey)
	assert.Equal(t, kp.PrivateKey, got.PrivateKey)

	// Re-exporting upgrades to the current format.
	upgraded, err := ExportKeyPair(scheme, got)
	require.NoError(t, err)
	again, _, err := ImportKeyPair(upgraded)
	require.NoError(t, err)
	assert.Equal(t, kp.PublicKey, again.PublicKey)
}

func TestImportKeyPair_LegacyErrors(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)
	other, err := GenerateKeyPair()
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"byte out of range", []byte(`{"publicKey":[256],"privateKey":[1]}`), ErrSerialization},
		{"negative byte", []byte(`{"publicKey":[-1],"privateKey":[1]}`), ErrSerialization},
		{"unknown field", []byte(`{"publicKey":[1],"privateKey":[1],"address":"ab"}`), ErrSerialization},
		{"string private key", []byte(`{"publicKey":[1],"privateKey":"ab"}`), ErrSerialization},
		{"short public key", legacyFile(t, kp.PublicKey[:10], kp.PrivateKey), ErrInvalidPublicKey},
		// Keys that were never a pair, as a random-bytes generator produced.
		{"unpaired keys", legacyFile(t, other.PublicKey, kp.PrivateKey), ErrKeyPairMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ImportKeyPair(tt.data)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExportFileName(t *testing.T) {
	assert.Equal(t, "quantix_wallet_52e9b3f4.json", ExportFileName("0x52e9b3f4c9d1a7e0a3b6c8d2e4f60718293a4b5c"))
	assert.Equal(t, "quantix_wallet_aabbccdd.json", ExportFileName("aabbccddeeff"))
	assert.Equal(t, "quantix_wallet_ab.json", ExportFileName("ab"))
}
