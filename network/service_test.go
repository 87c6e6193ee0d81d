package network

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantixorg/libquantix-go/tx"
)

func mockWithUTXOs(utxos []tx.UnspentOutput, err error) *MockLedgerService {
	return &MockLedgerService{
		ListUnspentFn: func(context.Context, string) ([]tx.UnspentOutput, error) {
			return utxos, err
		},
	}
}

func TestBalance(t *testing.T) {
	tests := []struct {
		name  string
		utxos []tx.UnspentOutput
		want  uint64
	}{
		{"empty", nil, 0},
		{"single", []tx.UnspentOutput{{OutputID: "a", Amount: 7}}, 7},
		{"several", []tx.UnspentOutput{{OutputID: "a", Amount: 50}, {OutputID: "b", Amount: 25}}, 75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Balance(context.Background(), mockWithUTXOs(tt.utxos, nil), "0xabc")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBalance_Overflow(t *testing.T) {
	svc := mockWithUTXOs([]tx.UnspentOutput{
		{OutputID: "a", Amount: math.MaxUint64},
		{OutputID: "b", Amount: 1},
	}, nil)
	_, err := Balance(context.Background(), svc, "0xabc")
	assert.ErrorIs(t, err, tx.ErrAmountOverflow)
}

func TestBalance_LedgerError(t *testing.T) {
	_, err := Balance(context.Background(), mockWithUTXOs(nil, ErrConnectionFailed), "0xabc")
	assert.ErrorIs(t, err, ErrConnectionFailed)
}

func TestRejectError(t *testing.T) {
	err := error(&RejectError{TxID: "abcd", Reason: "double spend"})
	assert.True(t, errors.Is(err, ErrBroadcastRejected))
	assert.Contains(t, err.Error(), "double spend")
	assert.Contains(t, err.Error(), "abcd")
}
