package tx

import (
	"context"
	"fmt"

	"github.com/quantixorg/libquantix-go/pqc"
)

// CreateTransaction selects from utxos, builds a payment of amount to
// recipient with change returned to changeAddress, and signs every input
// with privateKey. All utxos are assumed to be owned by privateKey.
func CreateTransaction(ctx context.Context, scheme pqc.Scheme, utxos []UnspentOutput,
	recipient string, amount uint64, privateKey []byte, changeAddress string) (*Transaction, error) {
	if amount == 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidParams)
	}
	if len(privateKey) == 0 {
		return nil, ErrMissingPrivateKey
	}

	sel, err := SelectCoins(utxos, amount)
	if err != nil {
		return nil, err
	}

	unsigned, err := Build(sel.Selected, recipient, amount, sel.Change, changeAddress)
	if err != nil {
		return nil, err
	}

	return SignAllInputs(ctx, scheme, unsigned, privateKey)
}
