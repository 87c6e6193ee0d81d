// Package network connects the wallet engine to a Quantix ledger node.
//
// The engine consumes exactly two ledger contracts: listing the unspent
// outputs owned by an address, and submitting a signed transaction.
package network

import (
	"context"

	"github.com/quantixorg/libquantix-go/tx"
)

// LedgerService is the boundary between the wallet core and a ledger node.
type LedgerService interface {
	// ListUnspent returns the unspent outputs owned by address, in the
	// node's order. The node is responsible for excluding spent outputs.
	ListUnspent(ctx context.Context, address string) ([]tx.UnspentOutput, error)

	// SubmitTransaction hands a signed transaction to the node and returns
	// the id it accepted. A refusal is reported as a *RejectError.
	SubmitTransaction(ctx context.Context, t *tx.Transaction) (string, error)
}

// Balance sums the outputs returned by ListUnspent.
func Balance(ctx context.Context, svc LedgerService, address string) (uint64, error) {
	utxos, err := svc.ListUnspent(ctx, address)
	if err != nil {
		return 0, err
	}
	var total uint64
	for _, u := range utxos {
		next := total + u.Amount
		if next < total {
			return 0, tx.ErrAmountOverflow
		}
		total = next
	}
	return total, nil
}
