package wallet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quantixorg/libquantix-go/network"
	"github.com/quantixorg/libquantix-go/pqc"
	"github.com/quantixorg/libquantix-go/tx"
)

// Sender runs the payment flow for one key pair: list the sender's
// unspent outputs, build and sign a transaction, and submit it.
type Sender struct {
	Ledger    network.LedgerService
	Addresses AddressScheme // the deployment's scheme; required
	Scheme    pqc.Scheme    // nil selects Dilithium2
	Logger    *slog.Logger  // nil discards
}

// Send pays amount to recipient from the outputs owned by from. Change
// returns to from. It returns the signed transaction and the id the ledger
// accepted.
//
// from must be the address kp derives to and recipient must be well formed
// under s.Addresses; otherwise ErrInvalidAddress is returned before the
// ledger is contacted. Nothing is submitted when selection, building or
// signing fails. When submission itself fails the signed transaction is
// still returned alongside the error so the caller can resubmit it.
func (s *Sender) Send(ctx context.Context, kp *KeyPair, from Address, recipient string, amount uint64) (*tx.Transaction, string, error) {
	if s.Ledger == nil {
		return nil, "", ErrNoLedger
	}
	if s.Addresses == nil {
		return nil, "", ErrAddressSchemeRequired
	}
	scheme := s.Scheme
	if scheme == nil {
		scheme = pqc.Dilithium2()
	}
	log := s.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if err := kp.Validate(scheme); err != nil {
		return nil, "", err
	}
	own, err := s.Addresses.Derive(kp.PublicKey)
	if err != nil {
		return nil, "", err
	}
	if from != own {
		return nil, "", fmt.Errorf("%w: sender %q is not the address of this key pair", ErrInvalidAddress, from)
	}
	if err := s.Addresses.ValidateAddress(recipient); err != nil {
		return nil, "", fmt.Errorf("recipient %q: %w", recipient, err)
	}

	utxos, err := s.Ledger.ListUnspent(ctx, string(from))
	if err != nil {
		return nil, "", fmt.Errorf("wallet: list unspent: %w", err)
	}
	log.Debug("listed unspent outputs", "address", from, "count", len(utxos))

	signed, err := tx.CreateTransaction(ctx, scheme, utxos, recipient, amount, kp.PrivateKey, string(from))
	if err != nil {
		log.Warn("create transaction failed", "address", from, "amount", amount, "error", err)
		return nil, "", err
	}
	log.Debug("signed transaction", "txid", signed.ID, "inputs", len(signed.Inputs), "outputs", len(signed.Outputs))

	txid, err := s.Ledger.SubmitTransaction(ctx, signed)
	if err != nil {
		log.Warn("submit transaction failed", "txid", signed.ID, "error", err)
		return signed, "", fmt.Errorf("wallet: submit: %w", err)
	}
	log.Info("transaction submitted", "txid", txid, "recipient", recipient, "amount", amount)
	return signed, txid, nil
}
