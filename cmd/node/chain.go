// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package main

import (
	"sync"

	"github.com/dblokhin/grinpool/src/core"
	"github.com/dblokhin/grinpool/src/pool"
	"github.com/sirupsen/logrus"
)

// memoryChain is a minimal in-process pool.BlockChain: it tracks a single
// chain head and a set of spendable output commitments, with no on-disk
// storage or consensus validation of its own. It exists to give the
// TransactionPool a collaborator to wire against; a real node's txhashset
// and header chain replace it entirely.
type memoryChain struct {
	mu      sync.RWMutex
	head    pool.BlockHeader
	utxoSet map[string]bool
}

func newMemoryChain() *memoryChain {
	return &memoryChain{
		head:    pool.BlockHeader{Height: 0},
		utxoSet: make(map[string]bool),
	}
}

func (c *memoryChain) ChainHead() (pool.BlockHeader, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.head, nil
}

func (c *memoryChain) VerifyTxLockHeight(tx core.Transaction) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if tx.LockHeight() > c.head.Height {
		return core.NewLockHeightError(tx.LockHeight())
	}
	return nil
}

func (c *memoryChain) VerifyCoinbaseMaturity(tx core.Transaction) error {
	// No coinbase outputs are tracked by this demo chain.
	return nil
}

func (c *memoryChain) ValidateTx(tx core.Transaction) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, in := range tx.Body.Inputs {
		if !c.utxoSet[string(in.Commit)] {
			return core.NewError(core.ErrCommitted)
		}
	}
	return nil
}

// creditOutput marks a commitment as spendable, simulating a coinbase
// reward or a prior confirmed transaction's output.
func (c *memoryChain) creditOutput(commit []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.utxoSet[string(commit)] = true
}

// memoryAdapter logs every admission event in place of a real Dandelion
// relay / peer broadcaster.
type memoryAdapter struct{}

func (a *memoryAdapter) TxAccepted(entry pool.PoolEntry) {
	logrus.WithField("source", entry.Src).Info("transaction accepted into txpool")
}

func (a *memoryAdapter) StemTxAccepted(entry pool.PoolEntry) error {
	logrus.Info("transaction relayed over dandelion stem")
	return nil
}
