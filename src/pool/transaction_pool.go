// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package pool

import (
	"sync"
	"time"

	"github.com/dblokhin/grinpool/src/core"
)

// reorgCacheTTL is how long an entry survives in the reorg cache before
// truncate_reorg_cache ages it out.
const reorgCacheTTL = 30 * time.Minute

// TransactionPool coordinates the txpool, the Dandelion stempool and the
// reorg cache behind a single admission API. Its own lock, independent of
// either Pool's internal lock, guards only reorgCache; cross-pool sequences
// such as deaggregate-then-reconcile take no TransactionPool-level lock, so
// concurrent admissions are not serialized here.
type TransactionPool struct {
	config PoolConfig

	txpool     *Pool
	stempool   *Pool
	blockchain BlockChain
	adapter    PoolAdapter

	mu         sync.RWMutex
	reorgCache []PoolEntry
}

// NewTransactionPool constructs a TransactionPool with empty txpool and
// stempool, both backed by blockchain.
func NewTransactionPool(config PoolConfig, blockchain BlockChain, adapter PoolAdapter) *TransactionPool {
	return &TransactionPool{
		config:     config,
		txpool:     NewPool("txpool", blockchain),
		stempool:   NewPool("stempool", blockchain),
		blockchain: blockchain,
		adapter:    adapter,
	}
}

// ChainHead returns the current chain tip, as reported by the blockchain
// collaborator.
func (tp *TransactionPool) ChainHead() (BlockHeader, error) {
	head, err := tp.blockchain.ChainHead()
	if err != nil {
		return BlockHeader{}, NewChainError(err)
	}
	return head, nil
}

// TotalSize is the txpool's entry count; the stempool is under embargo and
// is never counted towards capacity from the outside.
func (tp *TransactionPool) TotalSize() int {
	return tp.txpool.Size()
}

// AddToPool admits tx, sourced from src, into the stempool (if stem is
// true) or the txpool, validating it against header along the way. This is
// the entry point for incoming transactions; reorg cache replay goes
// through addToTxpool directly instead (see ReconcileReorgCache).
func (tp *TransactionPool) AddToPool(src TxSource, tx core.Transaction, stem bool, header BlockHeader) error {
	if !stem && tp.txpool.ContainsTx(txHash(tx)) {
		return NewError(DuplicateTx)
	}

	evict := false
	if err := tp.isAcceptable(tx, stem); err != nil {
		if !stem && IsErrorKind(err, OverCapacity) {
			evict = true
		} else {
			return err
		}
	}

	if err := tx.Validate(core.NewAsTransaction()); err != nil {
		return NewInvalidTxError(err)
	}
	if err := tp.blockchain.VerifyTxLockHeight(tx); err != nil {
		return NewChainError(err)
	}
	if err := tp.blockchain.VerifyCoinbaseMaturity(tx); err != nil {
		return NewChainError(err)
	}

	entry := PoolEntry{Src: src, TxAt: time.Now(), Tx: tx}

	stemmed := false
	if stem {
		if err := tp.addToStempool(entry, header); err == nil {
			if err := tp.adapter.StemTxAccepted(entry); err == nil {
				stemmed = true
			}
		}
	}

	if !stemmed {
		if err := tp.addToTxpool(entry, header); err != nil {
			return err
		}
		tp.addToReorgCache(entry)
		tp.adapter.TxAccepted(entry)
	}

	if evict {
		tp.evictFromTxpool()
	}
	return nil
}

// addToStempool adds entry to the stempool, validated alongside every
// current txpool transaction (a stem tx must still be acceptable once
// aggregated with whatever is already public).
func (tp *TransactionPool) addToStempool(entry PoolEntry, header BlockHeader) error {
	return tp.stempool.AddToPool(entry, tp.txpool.AllTransactions(), header)
}

// addToTxpool admits entry to the txpool, first deaggregating it against
// the txpool's existing entries if it carries more than one kernel and any
// of those kernels are already known, then reconciling the stempool against
// the resulting txpool aggregate so any stempool entry the new admission
// has made redundant (or invalid) is evicted.
func (tp *TransactionPool) addToTxpool(entry PoolEntry, header BlockHeader) error {
	if len(entry.Tx.Body.Kernels) > 1 {
		matches := tp.txpool.FindMatchingTransactions(entry.Tx.Body.Kernels)
		if len(matches) > 0 {
			deagg, err := core.Deaggregate(entry.Tx, matches)
			if err != nil {
				return NewInvalidTxError(err)
			}
			if err := deagg.Validate(core.NewAsTransaction()); err != nil {
				return NewInvalidTxError(err)
			}
			entry.Tx = deagg
			entry.Src = Deaggregate
		}
	}

	if err := tp.txpool.AddToPool(entry, nil, header); err != nil {
		return err
	}

	// The new txpool entry may supersede a not-yet-fluffed stem sibling
	// (the deaggregated-against transactions above). Reconciling against the
	// fresh txpool aggregate evicts it along with anything else the
	// stempool can no longer independently justify.
	txpoolAgg, err := tp.txpool.AllTransactionsAggregate()
	if err != nil {
		return NewInvalidTxError(err)
	}
	return tp.stempool.Reconcile(txpoolAgg, header)
}

// addToReorgCache records entry for potential replay after a reorg,
// trimming the oldest entry once the cache exceeds the configured pool
// size (a simple, size-bounded proxy for "30 minutes of traffic").
func (tp *TransactionPool) addToReorgCache(entry PoolEntry) {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	tp.reorgCache = append(tp.reorgCache, entry)
	if len(tp.reorgCache) > tp.config.MaxPoolSize {
		tp.reorgCache = tp.reorgCache[1:]
	}
}

// evictFromTxpool drops the last entry of the txpool's fee-density-ordered
// bucket flattening: nothing in the pool depends on it, and among entries
// with no dependents it is the one paying the least per unit of weight.
func (tp *TransactionPool) evictFromTxpool() {
	bucketed := tp.txpool.BucketTransactions(core.NewNoLimit())
	if len(bucketed) == 0 {
		return
	}
	tp.txpool.removeTx(bucketed[len(bucketed)-1])
}

// ReorgCacheCutoff returns the cutoff time a caller should pass to
// TruncateReorgCache to age out anything older than reorgCacheTTL.
func ReorgCacheCutoff(now time.Time) time.Time {
	return now.Add(-reorgCacheTTL)
}

// TruncateReorgCache drops every cached entry older than cutoff.
func (tp *TransactionPool) TruncateReorgCache(cutoff time.Time) {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	i := 0
	for i < len(tp.reorgCache) && tp.reorgCache[i].TxAt.Before(cutoff) {
		i++
	}
	tp.reorgCache = tp.reorgCache[i:]
}

// ReconcileReorgCache replays every cached entry back through addToTxpool
// against the new chain head, best-effort: an entry that no longer applies
// is silently skipped rather than failing the whole replay.
func (tp *TransactionPool) ReconcileReorgCache(header BlockHeader) error {
	tp.mu.RLock()
	entries := make([]PoolEntry, len(tp.reorgCache))
	copy(entries, tp.reorgCache)
	tp.mu.RUnlock()

	for _, entry := range entries {
		_ = tp.addToTxpool(entry, header)
	}
	return nil
}

// ReconcileBlock drops every pool entry block has confirmed from both the
// txpool and the stempool, then revalidates what remains of each against
// the post-block chain state, with the stempool additionally checked
// against the txpool's updated aggregate.
func (tp *TransactionPool) ReconcileBlock(block Block) error {
	tp.txpool.ReconcileBlock(block)
	if err := tp.txpool.Reconcile(nil, block.Header); err != nil {
		return err
	}

	tp.stempool.ReconcileBlock(block)
	txpoolAgg, err := tp.txpool.AllTransactionsAggregate()
	if err != nil {
		return NewInvalidTxError(err)
	}
	return tp.stempool.Reconcile(txpoolAgg, block.Header)
}

// RetrieveTxByKernelHash looks up a single txpool transaction by kernel
// hash.
func (tp *TransactionPool) RetrieveTxByKernelHash(hash core.Hash) (core.Transaction, bool) {
	return tp.txpool.RetrieveTxByKernelHash(hash)
}

// RetrieveTransactions matches a compact block's kernel short-ids against
// the txpool only: the stempool is under Dandelion embargo and must never
// be consulted to answer a peer's compact-block request.
func (tp *TransactionPool) RetrieveTransactions(blockHash core.Hash, nonce uint64, kernIDs core.ShortIDList) ([]core.Transaction, core.ShortIDList) {
	return tp.txpool.RetrieveTransactions(blockHash, nonce, kernIDs)
}

// isAcceptable checks pool capacity and the fee-rate gate. The txpool's
// total size is checked once; it bounds both the plain-fluff path and the
// stem path, since a stem transaction still needs room once it eventually
// fluffs. The size check is inclusive (>=, not >): a pool already sitting
// at its configured capacity must reject or evict for the next admission,
// rather than being allowed to grow one past the limit first.
func (tp *TransactionPool) isAcceptable(tx core.Transaction, stem bool) error {
	if tp.TotalSize() >= tp.config.MaxPoolSize {
		return NewError(OverCapacity)
	}
	if stem && tp.stempool.Size() >= tp.config.MaxStempoolSize {
		return NewError(OverCapacity)
	}

	if tp.config.AcceptFeeBase > 0 {
		threshold := tx.Weight() * tp.config.AcceptFeeBase
		if tx.Fee() < threshold {
			return NewLowFeeError(threshold)
		}
	}
	return nil
}

// PrepareMineableTransactions returns the txpool's transactions, bucketed
// and fee-density-ordered, bounded by the pool's configured mineable
// weight ceiling.
func (tp *TransactionPool) PrepareMineableTransactions() []core.Transaction {
	return tp.txpool.BucketTransactions(core.NewAsLimitedTransaction(tp.config.MineableMaxWeight))
}

