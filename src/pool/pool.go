// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package pool

import (
	"sort"
	"sync"

	"github.com/dblokhin/grinpool/src/core"
)

// Pool is a single pool of PoolEntry values (either the txpool or the
// Dandelion stempool), preserving insertion order: a child transaction
// spending a pool-parent's output is appended after its parent, which is
// what makes bucket_transactions' dependency-ordering possible without a
// separate graph structure.
type Pool struct {
	name       string
	blockchain BlockChain

	mu      sync.RWMutex
	entries []PoolEntry
}

// NewPool constructs an empty, named pool backed by blockchain.
func NewPool(name string, blockchain BlockChain) *Pool {
	return &Pool{name: name, blockchain: blockchain}
}

// Name returns the pool's name ("txpool" or "stempool"), used in logging.
func (p *Pool) Name() string {
	return p.name
}

// Size returns the number of entries currently in the pool.
func (p *Pool) Size() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.entries)
}

// ContainsTx reports whether a transaction with the given hash is already
// in the pool.
func (p *Pool) ContainsTx(hash core.Hash) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, e := range p.entries {
		if string(e.Hash()) == string(hash) {
			return true
		}
	}
	return false
}

// AllTransactions returns every transaction currently in the pool, in
// insertion order.
func (p *Pool) AllTransactions() []core.Transaction {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]core.Transaction, len(p.entries))
	for i, e := range p.entries {
		out[i] = e.Tx
	}
	return out
}

// AllTransactionsAggregate returns the single aggregate transaction of
// every pool entry, or nil if the pool is empty.
func (p *Pool) AllTransactionsAggregate() (*core.Transaction, error) {
	txs := p.AllTransactions()
	if len(txs) == 0 {
		return nil, nil
	}

	agg, err := core.Aggregate(txs)
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

// AddToPool validates that aggregating extraTxs, the pool's existing
// transactions, and entry's transaction together produces a transaction
// that is valid both structurally (AsTransaction weighting, kernel sums)
// and against the chain state at header; on success entry is appended.
func (p *Pool) AddToPool(entry PoolEntry, extraTxs []core.Transaction, header BlockHeader) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	candidates := make([]core.Transaction, 0, len(extraTxs)+len(p.entries)+1)
	candidates = append(candidates, extraTxs...)
	for _, e := range p.entries {
		candidates = append(candidates, e.Tx)
	}
	candidates = append(candidates, entry.Tx)

	agg, err := core.Aggregate(candidates)
	if err != nil {
		return NewInvalidTxError(err)
	}

	if err := agg.Validate(core.NewAsTransaction()); err != nil {
		return NewInvalidTxError(err)
	}

	if err := p.blockchain.VerifyTxLockHeight(agg); err != nil {
		return NewChainError(err)
	}
	if err := p.blockchain.VerifyCoinbaseMaturity(agg); err != nil {
		return NewChainError(err)
	}
	if err := p.blockchain.ValidateTx(agg); err != nil {
		return NewInvalidTxError(err)
	}

	p.entries = append(p.entries, entry)
	return nil
}

// FindMatchingTransactions returns the transactions of every pool entry
// whose kernel set intersects kernels.
func (p *Pool) FindMatchingTransactions(kernels core.TxKernelList) []core.Transaction {
	p.mu.RLock()
	defer p.mu.RUnlock()

	want := make(map[string]bool, len(kernels))
	for _, k := range kernels {
		want[string(k.Hash())] = true
	}

	var out []core.Transaction
	for _, e := range p.entries {
		for _, k := range e.Kernels() {
			if want[string(k.Hash())] {
				out = append(out, e.Tx)
				break
			}
		}
	}
	return out
}

// RetrieveTxByKernelHash returns the first pool transaction whose kernel
// set contains hash.
func (p *Pool) RetrieveTxByKernelHash(hash core.Hash) (core.Transaction, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, e := range p.entries {
		for _, k := range e.Kernels() {
			if string(k.Hash()) == string(hash) {
				return e.Tx, true
			}
		}
	}
	return core.Transaction{}, false
}

// RetrieveTransactions matches a compact block's kernel short-id set
// against the pool: every pool transaction with at least one kernel that
// produces one of the wanted short-ids is returned in matched; every short-id
// that matched no pool transaction is returned in missing.
func (p *Pool) RetrieveTransactions(blockHash core.Hash, nonce uint64, kernIDs core.ShortIDList) (matched []core.Transaction, missing core.ShortIDList) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	key := core.ShortIDKey(blockHash, nonce)

	want := make(map[string]bool, len(kernIDs))
	for _, id := range kernIDs {
		want[string(id)] = true
	}

	found := make(map[string]bool)
	for _, e := range p.entries {
		txMatches := false
		for _, k := range e.Kernels() {
			id := k.Hash().ShortID(key)
			if want[string(id)] {
				found[string(id)] = true
				txMatches = true
			}
		}
		if txMatches {
			matched = append(matched, e.Tx)
		}
	}

	for _, id := range kernIDs {
		if !found[string(id)] {
			missing = append(missing, id)
		}
	}
	return matched, missing
}

// bucket is a dependency-ordered chain of pool entries: entries[i+1]
// spends an output created by one of entries[0..=i].
type bucket struct {
	entries    []PoolEntry
	feeDensity uint64
}

// BucketTransactions groups pool entries into dependency-ordered chains
// ("buckets": a parent transaction followed by everything in the pool that
// spends one of its outputs), orders the buckets by descending aggregate
// fee density, and flattens them back into a single list that preserves
// in-bucket parent-before-child order. The result is appropriate both for
// mining (take a descending-fee-density prefix) and for eviction (the last
// element is the lowest-fee-density entry with nothing left depending on
// it).
func (p *Pool) BucketTransactions(weighting core.Weighting) []core.Transaction {
	p.mu.RLock()
	entries := make([]PoolEntry, len(p.entries))
	copy(entries, p.entries)
	p.mu.RUnlock()

	buckets := make([]*bucket, 0, len(entries))
	ownerOf := make(map[string]*bucket) // output identifier -> owning bucket

	for _, e := range entries {
		var parent *bucket
		for _, in := range e.Tx.Body.Inputs {
			if b, ok := ownerOf[string(core.FromInput(in).ToHex())]; ok {
				parent = b
				break
			}
		}

		if parent == nil {
			parent = &bucket{}
			buckets = append(buckets, parent)
		}

		parent.entries = append(parent.entries, e)
		parent.feeDensity += e.Tx.FeeToWeight()

		for _, out := range e.Tx.Body.Outputs {
			ownerOf[out.Identifier().ToHex()] = parent
		}
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].feeDensity > buckets[j].feeDensity
	})

	limit, limited := weighting.MaxWeight()

	var out []core.Transaction
	var weight uint64
	for _, b := range buckets {
		for _, e := range b.entries {
			if limited && weight+e.Tx.WeightAsBlock() > limit {
				return out
			}
			out = append(out, e.Tx)
			weight += e.Tx.WeightAsBlock()
		}
	}
	return out
}

// ReconcileBlock removes every entry whose kernel set intersects the
// kernels confirmed by block.
func (p *Pool) ReconcileBlock(block Block) {
	p.mu.Lock()
	defer p.mu.Unlock()

	confirmed := make(map[string]bool, len(block.Kernels))
	for _, k := range block.Kernels {
		confirmed[string(k.Hash())] = true
	}

	kept := p.entries[:0:0]
	for _, e := range p.entries {
		stillPending := true
		for _, k := range e.Kernels() {
			if confirmed[string(k.Hash())] {
				stillPending = false
				break
			}
		}
		if stillPending {
			kept = append(kept, e)
		}
	}
	p.entries = kept
}

// Reconcile revalidates every remaining entry, aggregated alongside
// extraTx (may be nil), against the chain state at header, evicting any
// entry that is no longer individually valid.
func (p *Pool) Reconcile(extraTx *core.Transaction, header BlockHeader) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	kept := p.entries[:0:0]
	for _, e := range p.entries {
		candidates := make([]core.Transaction, 0, 2)
		if extraTx != nil {
			candidates = append(candidates, *extraTx)
		}
		candidates = append(candidates, e.Tx)

		agg, err := core.Aggregate(candidates)
		if err != nil {
			continue
		}
		if err := agg.Validate(core.NewAsTransaction()); err != nil {
			continue
		}
		if err := p.blockchain.ValidateTx(e.Tx); err != nil {
			continue
		}

		kept = append(kept, e)
	}
	p.entries = kept
	return nil
}

// removeTx drops the entry matching tx's hash, if present. Used by
// TransactionPool.evictFromTxpool to remove a specific bucketed entry.
func (p *Pool) removeTx(tx core.Transaction) {
	p.mu.Lock()
	defer p.mu.Unlock()

	target := string(txHash(tx))
	kept := p.entries[:0:0]
	for _, e := range p.entries {
		if string(e.Hash()) != target {
			kept = append(kept, e)
		}
	}
	p.entries = kept
}
