package tx

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quantixorg/libquantix-go/digest"
	"github.com/quantixorg/libquantix-go/pqc"
)

const (
	senderAddr    = "0x1111111111111111111111111111111111111111"
	recipientAddr = "0x2222222222222222222222222222222222222222"
)

func testUTXO(seed string, index uint32, amount uint64) UnspentOutput {
	return UnspentOutput{
		OutputID:     digest.SumString(seed),
		OutputIndex:  index,
		OwnerAddress: senderAddr,
		Amount:       amount,
	}
}

// scenarioUTXOs is the 50 + 25 wallet used by the end-to-end scenarios.
func scenarioUTXOs() []UnspentOutput {
	return []UnspentOutput{
		testUTXO("funding-a", 0, 50),
		testUTXO("funding-b", 1, 25),
	}
}

func generateTestKeyPair(t *testing.T) (pub, priv []byte) {
	t.Helper()
	pub, priv, err := pqc.Dilithium2().GenerateKey(nil)
	require.NoError(t, err)
	return pub, priv
}
