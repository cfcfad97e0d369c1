// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package pool

import (
	"time"

	"github.com/dblokhin/grinpool/src/core"
)

// TxSource records where a pool entry's transaction came from, primarily
// for logging/diagnostics.
type TxSource int

const (
	// Broadcast the transaction arrived directly from a peer or a local
	// client.
	Broadcast TxSource = iota

	// Deaggregate the transaction was recovered by deaggregating an
	// incoming multi-kernel transaction against the txpool's existing
	// entries during fluff admission.
	Deaggregate

	// Reorg the transaction is being replayed from the reorg cache after
	// a chain reorganization.
	Reorg
)

func (s TxSource) String() string {
	switch s {
	case Broadcast:
		return "broadcast"
	case Deaggregate:
		return "deaggregate"
	case Reorg:
		return "reorg"
	default:
		return "unknown"
	}
}

// PoolEntry is a single transaction's presence in one of the pools: its
// provenance, its admission time, and the transaction itself.
type PoolEntry struct {
	Src  TxSource
	TxAt time.Time
	Tx   core.Transaction
}

// Kernels returns the entry's transaction's kernel list, the unit pool
// lookups and reconciliation key on.
func (e PoolEntry) Kernels() core.TxKernelList {
	return e.Tx.Body.Kernels
}

// Hash is the entry's transaction hash: the hash of its aggregate kernel
// sequence, since a Mimblewimble transaction has no single canonical
// identifying hash of its own.
func (e PoolEntry) Hash() core.Hash {
	return txHash(e.Tx)
}

// txHash derives a stable identifying hash for a transaction from the
// concatenation of its kernel hashes, in their (sorted) order.
func txHash(tx core.Transaction) core.Hash {
	var buf []byte
	for _, k := range tx.Body.Kernels {
		buf = append(buf, k.Hash()...)
	}
	return core.Hash(buf)
}

// BlockHeader is the minimal chain-head metadata the pool needs: enough to
// check lock heights and reference a reconciled block. The full header
// model (merkle roots, proof of work, ...) lives outside this core.
type BlockHeader struct {
	Height uint64
	Hash   core.Hash
}

// Block is the minimal block shape reconcile_block needs: its header and
// the kernels it carries, which is all that is required to identify which
// pool entries it has confirmed.
type Block struct {
	Header  BlockHeader
	Kernels core.TxKernelList
}

// BlockChain is the chain-state oracle the pool consults. Implementations
// own on-disk storage, UTXO tracking and MMR persistence; none of that is
// in scope here.
type BlockChain interface {
	// ChainHead returns the current chain tip header.
	ChainHead() (BlockHeader, error)

	// VerifyTxLockHeight fails if any kernel's lock height exceeds the
	// current head height.
	VerifyTxLockHeight(tx core.Transaction) error

	// VerifyCoinbaseMaturity fails if any input references a coinbase
	// output younger than the coinbase maturity window.
	VerifyCoinbaseMaturity(tx core.Transaction) error

	// ValidateTx performs full chain-state validity: every input
	// references a live unspent output, and the transaction's kernel
	// sums balance against that UTXO state.
	ValidateTx(tx core.Transaction) error
}

// PoolAdapter is notified of pool admission events so the rest of the node
// (Dandelion relay, peer broadcast) can react.
type PoolAdapter interface {
	// TxAccepted is called after a transaction enters the txpool.
	TxAccepted(entry PoolEntry)

	// StemTxAccepted hands a stem transaction to the Dandelion relay;
	// failure triggers fallback to the fluff path.
	StemTxAccepted(entry PoolEntry) error
}

// PoolConfig is the pool's tunable policy, supplied by the caller; no file
// parsing happens here.
type PoolConfig struct {
	// AcceptFeeBase is the minimum fee per unit of transaction weight a
	// transaction must pay to be admitted. Zero disables the fee gate.
	AcceptFeeBase uint64

	// MaxPoolSize is the txpool's capacity, in number of entries.
	MaxPoolSize int

	// MaxStempoolSize is the stempool's capacity, in number of entries.
	MaxStempoolSize int

	// MineableMaxWeight bounds the block weight prepare_mineable_transactions
	// will select up to.
	MineableMaxWeight uint64
}
