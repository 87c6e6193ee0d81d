package network

import (
	"errors"
	"fmt"
)

var (
	// ErrConnectionFailed indicates the client could not connect to the node.
	ErrConnectionFailed = errors.New("network: connection failed")

	// ErrAuthFailed indicates authentication (e.g., RPC credentials) was rejected.
	ErrAuthFailed = errors.New("network: authentication failed")

	// ErrBroadcastRejected indicates the node rejected the submitted transaction.
	ErrBroadcastRejected = errors.New("network: transaction rejected")

	// ErrNoRPCURL indicates no ledger URL was configured and the network has no preset.
	ErrNoRPCURL = errors.New("network: no ledger URL configured")

	// ErrInvalidRPCURL indicates a ledger URL that is not an absolute http(s) URL.
	ErrInvalidRPCURL = errors.New("network: invalid ledger URL")

	// ErrInvalidResponse indicates the node returned a malformed or unexpected response.
	ErrInvalidResponse = errors.New("network: invalid response")
)

// RejectError carries the node's reason for refusing a transaction.
type RejectError struct {
	TxID   string
	Reason string
}

func (e *RejectError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrBroadcastRejected, e.TxID, e.Reason)
}

// Unwrap lets errors.Is match ErrBroadcastRejected.
func (e *RejectError) Unwrap() error { return ErrBroadcastRejected }
