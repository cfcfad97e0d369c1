// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

// Package pool implements the dual-pool mempool core: a txpool and a
// Dandelion stempool, a time-bounded reorg cache, and the admission,
// eviction and block-reconciliation algorithms coordinating them.
package pool

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind is the flat, stable set of pool-level failure kinds.
type ErrorKind int

const (
	// DuplicateTx a transaction with the same hash is already in the
	// txpool.
	DuplicateTx ErrorKind = iota

	// OverCapacity the pool (or stempool) is already at its configured
	// size limit.
	OverCapacity

	// InvalidTx the transaction failed structural, cryptographic or
	// chain-state validation. Cause carries the underlying error.
	InvalidTx

	// LowFeeTransaction the transaction's fee does not meet the
	// configured per-weight minimum. Threshold carries the fee it would
	// have needed.
	LowFeeTransaction

	// ChainError a BlockChain collaborator call failed. Cause carries
	// the underlying error.
	ChainError
)

var errorKindText = map[ErrorKind]string{
	DuplicateTx:       "duplicate transaction",
	OverCapacity:      "pool over capacity",
	InvalidTx:         "invalid transaction",
	LowFeeTransaction: "fee below accept threshold",
	ChainError:        "blockchain collaborator error",
}

func (k ErrorKind) String() string {
	if s, ok := errorKindText[k]; ok {
		return s
	}
	return "unknown pool error"
}

// Error is the concrete error type pool operations return. Threshold is
// meaningful only for LowFeeTransaction; Cause is meaningful only for
// InvalidTx and ChainError, wrapped with github.com/pkg/errors so a caller
// that logs e.Error() still sees the full originating chain.
type Error struct {
	Kind      ErrorKind
	Threshold uint64
	Cause     error
}

func (e *Error) Error() string {
	switch e.Kind {
	case LowFeeTransaction:
		return fmt.Sprintf("%s: need %d", e.Kind, e.Threshold)
	case InvalidTx, ChainError:
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
		}
		return e.Kind.String()
	default:
		return e.Kind.String()
	}
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError constructs an Error of the given kind with no cause.
func NewError(kind ErrorKind) *Error {
	return &Error{Kind: kind}
}

// NewLowFeeError constructs a LowFeeTransaction Error carrying threshold.
func NewLowFeeError(threshold uint64) *Error {
	return &Error{Kind: LowFeeTransaction, Threshold: threshold}
}

// NewInvalidTxError wraps cause as an InvalidTx Error.
func NewInvalidTxError(cause error) *Error {
	return &Error{Kind: InvalidTx, Cause: errors.Wrap(cause, "transaction validation failed")}
}

// NewChainError wraps cause as a ChainError Error.
func NewChainError(cause error) *Error {
	return &Error{Kind: ChainError, Cause: errors.Wrap(cause, "blockchain collaborator call failed")}
}

// IsErrorKind reports whether err is a *Error of the given kind.
func IsErrorKind(err error, kind ErrorKind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
