package tx

import (
	"context"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantixorg/libquantix-go/digest"
	"github.com/quantixorg/libquantix-go/pqc"
)

func TestEncodeJSON_FieldOrder(t *testing.T) {
	txn, err := Build([]UnspentOutput{{OutputID: "ab", OutputIndex: 1, Amount: 5}}, "dest", 5, 0, "")
	require.NoError(t, err)

	data, err := EncodeJSON(txn)
	require.NoError(t, err)
	want := `{"id":"` + txn.ID + `","txIns":[{"txOutId":"ab","txOutIndex":1,"signature":""}],"txOuts":[{"address":"dest","amount":5}]}`
	assert.Equal(t, want, string(data))
}

func TestEncodeDecode_Signed(t *testing.T) {
	_, priv := generateTestKeyPair(t)
	signed, err := CreateTransaction(context.Background(), pqc.Dilithium2(), scenarioUTXOs(),
		recipientAddr, 40, priv, senderAddr)
	require.NoError(t, err)

	data, err := EncodeJSON(signed)
	require.NoError(t, err)
	assert.Contains(t, string(data), hex.EncodeToString(signed.Inputs[0].Signature))

	decoded, err := DecodeJSON(data)
	require.NoError(t, err)
	assert.Equal(t, signed, decoded)
}

func TestEncodeJSON_Nil(t *testing.T) {
	_, err := EncodeJSON(nil)
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestDecodeJSON_Malformed(t *testing.T) {
	id := digest.SumString("x")
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{{`},
		{"bad id", `{"id":"xyz","txIns":[],"txOuts":[]}`},
		{"uppercase id", `{"id":"` + strings.ToUpper(id) + `","txIns":[],"txOuts":[]}`},
		{"bad signature hex", `{"id":"` + id + `","txIns":[{"txOutId":"a","txOutIndex":0,"signature":"zz"}],"txOuts":[]}`},
		{"uppercase signature", `{"id":"` + id + `","txIns":[{"txOutId":"a","txOutIndex":0,"signature":"ABCD"}],"txOuts":[]}`},
		{"empty txOutId", `{"id":"` + id + `","txIns":[{"txOutId":"","txOutIndex":0,"signature":""}],"txOuts":[]}`},
		{"empty address", `{"id":"` + id + `","txIns":[],"txOuts":[{"address":"","amount":1}]}`},
		{"negative amount", `{"id":"` + id + `","txIns":[],"txOuts":[{"address":"a","amount":-1}]}`},
		{"unknown field", `{"id":"` + id + `","txIns":[],"txOuts":[],"extra":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn, err := DecodeJSON([]byte(tt.data))
			assert.ErrorIs(t, err, ErrSerialization)
			assert.Nil(t, txn)
		})
	}
}
