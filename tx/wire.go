package tx

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/quantixorg/libquantix-go/digest"
)

// wireTx is the JSON form accepted by ledger nodes. Field order is part
// of the format.
type wireTx struct {
	ID     string      `json:"id"`
	TxIns  []wireTxIn  `json:"txIns"`
	TxOuts []wireTxOut `json:"txOuts"`
}

type wireTxIn struct {
	TxOutID    string `json:"txOutId"`
	TxOutIndex uint32 `json:"txOutIndex"`
	Signature  string `json:"signature"`
}

type wireTxOut struct {
	Address string `json:"address"`
	Amount  uint64 `json:"amount"`
}

// MarshalJSON encodes t in wire form; absent signatures encode as "".
func (t *Transaction) MarshalJSON() ([]byte, error) {
	w := wireTx{
		ID:     t.ID,
		TxIns:  make([]wireTxIn, len(t.Inputs)),
		TxOuts: make([]wireTxOut, len(t.Outputs)),
	}
	for i, in := range t.Inputs {
		w.TxIns[i] = wireTxIn{
			TxOutID:    in.OutputID,
			TxOutIndex: in.OutputIndex,
			Signature:  hex.EncodeToString(in.Signature),
		}
	}
	for i, out := range t.Outputs {
		w.TxOuts[i] = wireTxOut{Address: out.Address, Amount: out.Amount}
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the wire form. Signatures must be lowercase hex.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var w wireTx
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&w); err != nil {
		return fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	if !digest.IsDigest(w.ID) {
		return fmt.Errorf("%w: id %q is not a digest", ErrSerialization, w.ID)
	}

	decoded := Transaction{
		ID:      w.ID,
		Inputs:  make([]TxInput, len(w.TxIns)),
		Outputs: make([]TxOutput, len(w.TxOuts)),
	}
	for i, in := range w.TxIns {
		if in.TxOutID == "" {
			return fmt.Errorf("%w: txIns[%d] has empty txOutId", ErrSerialization, i)
		}
		var sig []byte
		if in.Signature != "" {
			if in.Signature != strings.ToLower(in.Signature) {
				return fmt.Errorf("%w: txIns[%d] signature is not lowercase hex", ErrSerialization, i)
			}
			b, err := hex.DecodeString(in.Signature)
			if err != nil {
				return fmt.Errorf("%w: txIns[%d] signature: %w", ErrSerialization, i, err)
			}
			sig = b
		}
		decoded.Inputs[i] = TxInput{OutputID: in.TxOutID, OutputIndex: in.TxOutIndex, Signature: sig}
	}
	for i, out := range w.TxOuts {
		if out.Address == "" {
			return fmt.Errorf("%w: txOuts[%d] has empty address", ErrSerialization, i)
		}
		decoded.Outputs[i] = TxOutput{Address: out.Address, Amount: out.Amount}
	}

	*t = decoded
	return nil
}

// EncodeJSON returns the wire encoding of t.
func EncodeJSON(t *Transaction) ([]byte, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil transaction", ErrInvalidParams)
	}
	return json.Marshal(t)
}

// DecodeJSON parses a wire-encoded transaction.
func DecodeJSON(data []byte) (*Transaction, error) {
	var t Transaction
	if err := json.Unmarshal(data, &t); err != nil {
		if errors.Is(err, ErrSerialization) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	return &t, nil
}
