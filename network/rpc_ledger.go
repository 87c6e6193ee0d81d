package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/quantixorg/libquantix-go/tx"
)

// Compile-time interface check.
var _ LedgerService = (*RPCClient)(nil)

// RPC method names served by Quantix nodes.
const (
	MethodListUnspent     = "listunspent"
	MethodSendTransaction = "sendtransaction"
)

// listUnspentResult maps one entry of the listunspent reply.
type listUnspentResult struct {
	TxOutID    string `json:"txOutId"`
	TxOutIndex uint32 `json:"txOutIndex"`
	Address    string `json:"address"`
	Amount     uint64 `json:"amount"`
}

// ListUnspent calls `listunspent "address"`. Outputs reported for any other
// address are treated as a malformed reply.
func (c *RPCClient) ListUnspent(ctx context.Context, address string) ([]tx.UnspentOutput, error) {
	if address == "" {
		return nil, fmt.Errorf("%w: empty address", tx.ErrInvalidParams)
	}
	var results []listUnspentResult
	if err := c.Call(ctx, MethodListUnspent, []interface{}{address}, &results); err != nil {
		return nil, err
	}

	utxos := make([]tx.UnspentOutput, len(results))
	for i, r := range results {
		if r.Address != address {
			return nil, fmt.Errorf("%w: output %s:%d belongs to %q", ErrInvalidResponse, r.TxOutID, r.TxOutIndex, r.Address)
		}
		if r.TxOutID == "" {
			return nil, fmt.Errorf("%w: output %d has empty txOutId", ErrInvalidResponse, i)
		}
		utxos[i] = tx.UnspentOutput{
			OutputID:     r.TxOutID,
			OutputIndex:  r.TxOutIndex,
			OwnerAddress: r.Address,
			Amount:       r.Amount,
		}
	}
	return utxos, nil
}

// SubmitTransaction calls `sendtransaction {tx}` with the wire encoding of t.
// The node answers with the accepted transaction id, which must equal t.ID.
func (c *RPCClient) SubmitTransaction(ctx context.Context, t *tx.Transaction) (string, error) {
	if t == nil {
		return "", fmt.Errorf("%w: nil transaction", tx.ErrInvalidParams)
	}
	raw, err := tx.EncodeJSON(t)
	if err != nil {
		return "", err
	}

	var txid string
	err = c.Call(ctx, MethodSendTransaction, []interface{}{json.RawMessage(raw)}, &txid)
	if err != nil {
		var rpcErr *RPCError
		if errors.As(err, &rpcErr) {
			return "", &RejectError{TxID: t.ID, Reason: rpcErr.Message}
		}
		return "", err
	}
	if txid != t.ID {
		return "", fmt.Errorf("%w: node accepted %q, submitted %q", ErrInvalidResponse, txid, t.ID)
	}
	return txid, nil
}
