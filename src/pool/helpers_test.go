// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package pool

import (
	"math/big"
	"testing"

	"github.com/dblokhin/grinpool/src/core"
	"github.com/dblokhin/grinpool/src/secp256k1zkp"
)

// fakeChain is a minimal BlockChain stub: every check passes unless the
// test configures it otherwise, so pool-level tests exercise pool logic
// rather than chain-state logic.
type fakeChain struct {
	head       BlockHeader
	validateFn func(tx core.Transaction) error
}

func (c *fakeChain) ChainHead() (BlockHeader, error) {
	return c.head, nil
}

func (c *fakeChain) VerifyTxLockHeight(tx core.Transaction) error {
	if tx.LockHeight() > c.head.Height {
		return NewError(InvalidTx)
	}
	return nil
}

func (c *fakeChain) VerifyCoinbaseMaturity(tx core.Transaction) error {
	return nil
}

func (c *fakeChain) ValidateTx(tx core.Transaction) error {
	if c.validateFn != nil {
		return c.validateFn(tx)
	}
	return nil
}

// fakeAdapter records every accepted entry; stemErr, when set, is returned
// by StemTxAccepted to simulate a Dandelion relay failure and force
// fallback to the fluff path.
type fakeAdapter struct {
	stemErr  error
	accepted []PoolEntry
	stemmed  []PoolEntry
}

func (a *fakeAdapter) TxAccepted(entry PoolEntry) {
	a.accepted = append(a.accepted, entry)
}

func (a *fakeAdapter) StemTxAccepted(entry PoolEntry) error {
	if a.stemErr != nil {
		return a.stemErr
	}
	a.stemmed = append(a.stemmed, entry)
	return nil
}

// feeOnlyTx builds a genuinely balanced, single-input, zero-output,
// single-kernel transaction that spends its entire input value as fee: it
// needs no range proof (there is no output to prove) while its kernel
// excess and signature are real, so it sails through full cryptographic
// validation without requiring a real bulletproof.
//
// seed must be distinct across transactions used in the same test so their
// input commitments (and therefore their identities) never collide.
func feeOnlyTx(t *testing.T, seed int64, fee uint64) core.Transaction {
	t.Helper()

	inBlind := big.NewInt(1000 + seed)
	inputCommit := secp256k1zkp.CompressCommitment(
		secp256k1zkp.CommitValue(inBlind, new(big.Int).SetUint64(fee)))

	excessScalar := new(big.Int).Neg(inBlind)
	excessBlind := secp256k1zkp.NewBlindingFactor(excessScalar)
	excessPoint := excessBlind.Commit()
	excessCommit := secp256k1zkp.CompressCommitment(excessPoint)

	features := core.NewPlainKernelFeatures(fee)
	sig := secp256k1zkp.SignMessage(*excessPoint, *excessScalar, features.SigMsg())
	sigBytes := sig.Bytes()
	var excessSig [64]byte
	copy(excessSig[:], sigBytes[:])

	kernel := core.TxKernel{Features: features, Excess: excessCommit, ExcessSig: excessSig}
	input := core.NewInput(core.PlainOutput, inputCommit)

	tx, err := core.NewTransaction(core.InputList{input}, nil, core.TxKernelList{kernel}, secp256k1zkp.ZeroBlindingFactor)
	if err != nil {
		t.Fatalf("feeOnlyTx: NewTransaction() error = %v", err)
	}
	return tx
}
