package network

import (
	"context"

	"github.com/quantixorg/libquantix-go/tx"
)

// MockLedgerService is a test double for LedgerService.
// All function fields must be set before the corresponding method is called.
type MockLedgerService struct {
	ListUnspentFn       func(ctx context.Context, address string) ([]tx.UnspentOutput, error)
	SubmitTransactionFn func(ctx context.Context, t *tx.Transaction) (string, error)
}

var _ LedgerService = (*MockLedgerService)(nil)

func (m *MockLedgerService) ListUnspent(ctx context.Context, address string) ([]tx.UnspentOutput, error) {
	return m.ListUnspentFn(ctx, address)
}

func (m *MockLedgerService) SubmitTransaction(ctx context.Context, t *tx.Transaction) (string, error) {
	return m.SubmitTransactionFn(ctx, t)
}
