package tx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/quantixorg/libquantix-go/digest"
)

// ComputeID returns the canonical id of a transaction's unsigned content:
//
//	digest( concat(outputId || decimal(outputIndex)) || concat(address || decimal(amount)) )
//
// Signatures are not part of the preimage, and order is significant.
func ComputeID(inputs []TxInput, outputs []TxOutput) string {
	var b strings.Builder
	for _, in := range inputs {
		b.WriteString(in.OutputID)
		b.WriteString(strconv.FormatUint(uint64(in.OutputIndex), 10))
	}
	for _, out := range outputs {
		b.WriteString(out.Address)
		b.WriteString(strconv.FormatUint(out.Amount, 10))
	}
	return digest.SumString(b.String())
}

// Build assembles an unsigned transaction spending selected.
//
// Output layout:
//
//	[0] recipient <- amount
//	[1] changeAddress <- change   (only when change > 0)
//
// The selected amounts must add up to exactly amount + change. The
// returned transaction has its ID populated and no signatures.
func Build(selected []UnspentOutput, recipient string, amount, change uint64, changeAddress string) (*Transaction, error) {
	if recipient == "" {
		return nil, fmt.Errorf("%w: empty recipient address", ErrInvalidParams)
	}
	if change > 0 && changeAddress == "" {
		return nil, fmt.Errorf("%w: change of %d requires a change address", ErrInvalidParams, change)
	}

	var inTotal uint64
	inputs := make([]TxInput, len(selected))
	for i, u := range selected {
		if u.OutputID == "" {
			return nil, fmt.Errorf("%w: selected[%d] has empty output id", ErrInvalidParams, i)
		}
		next, err := addAmount(inTotal, u.Amount)
		if err != nil {
			return nil, err
		}
		inTotal = next
		inputs[i] = TxInput{OutputID: u.OutputID, OutputIndex: u.OutputIndex}
	}

	outTotal, err := addAmount(amount, change)
	if err != nil {
		return nil, err
	}
	if inTotal != outTotal {
		return nil, fmt.Errorf("%w: inputs %d, amount %d + change %d",
			ErrValueMismatch, inTotal, amount, change)
	}

	outputs := []TxOutput{{Address: recipient, Amount: amount}}
	if change > 0 {
		outputs = append(outputs, TxOutput{Address: changeAddress, Amount: change})
	}

	return &Transaction{
		ID:      ComputeID(inputs, outputs),
		Inputs:  inputs,
		Outputs: outputs,
	}, nil
}
