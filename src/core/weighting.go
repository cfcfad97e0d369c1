// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package core

import "github.com/dblokhin/grinpool/src/consensus"

// coinbaseSlotWeight is the block weight AsTransaction/AsLimitedTransaction
// reserve for the coinbase output and kernel a block built from this
// transaction will still need room for.
const coinbaseSlotWeight = consensus.BlockOutputWeight + consensus.BlockKernelWeight

// WeightingKind selects which limit a TransactionBody's weight is checked
// against.
type WeightingKind int

const (
	// AsTransaction validates as a standalone transaction destined for a
	// block that must still fit a coinbase output and kernel.
	AsTransaction WeightingKind = iota

	// AsLimitedTransaction is AsTransaction bounded additionally by a
	// caller-supplied ceiling (e.g. the pool's configured mineable
	// weight), whichever is smaller.
	AsLimitedTransaction

	// AsBlock validates as a full block body, with no coinbase slot
	// reserved (the block already contains its own coinbase).
	AsBlock

	// NoLimit skips the weight check entirely.
	NoLimit
)

// Weighting pairs a WeightingKind with the extra limit
// AsLimitedTransaction carries.
type Weighting struct {
	Kind  WeightingKind
	Limit uint64
}

// NewAsTransaction returns the AsTransaction weighting.
func NewAsTransaction() Weighting {
	return Weighting{Kind: AsTransaction}
}

// NewAsLimitedTransaction returns an AsLimitedTransaction weighting capped
// additionally at limit.
func NewAsLimitedTransaction(limit uint64) Weighting {
	return Weighting{Kind: AsLimitedTransaction, Limit: limit}
}

// NewAsBlock returns the AsBlock weighting.
func NewAsBlock() Weighting {
	return Weighting{Kind: AsBlock}
}

// NewNoLimit returns the NoLimit weighting.
func NewNoLimit() Weighting {
	return Weighting{Kind: NoLimit}
}

// maxWeight returns the weight ceiling this Weighting enforces, and whether
// any ceiling applies at all.
func (w Weighting) maxWeight() (limit uint64, limited bool) {
	switch w.Kind {
	case AsTransaction:
		return consensus.MaxBlockWeight() - coinbaseSlotWeight, true
	case AsLimitedTransaction:
		ceiling := consensus.MaxBlockWeight()
		if w.Limit < ceiling {
			ceiling = w.Limit
		}
		if ceiling < coinbaseSlotWeight {
			return 0, true
		}
		return ceiling - coinbaseSlotWeight, true
	case AsBlock:
		return consensus.MaxBlockWeight(), true
	default: // NoLimit
		return 0, false
	}
}

// MaxWeight exposes maxWeight to callers outside the package (the pool's
// mining-candidate selection needs to know the same ceiling VerifyWeight
// would enforce).
func (w Weighting) MaxWeight() (limit uint64, limited bool) {
	return w.maxWeight()
}

// txWeight is the non-consensus transaction weight used as fee-schedule
// input: it favors consolidating many inputs into few outputs. Saturates at
// 1 rather than going to zero or negative.
func txWeight(numInputs, numOutputs, numKernels int) uint64 {
	raw := int64(4*numOutputs+numKernels) - int64(numInputs)
	if raw < 1 {
		return 1
	}
	return uint64(raw)
}

// blockWeight is the consensus block weight a body of this shape occupies.
func blockWeight(numInputs, numOutputs, numKernels int) uint64 {
	return consensus.BlockInputWeight*uint64(numInputs) +
		consensus.BlockOutputWeight*uint64(numOutputs) +
		consensus.BlockKernelWeight*uint64(numKernels)
}
