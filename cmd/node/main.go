package main

import (
	"math/big"
	"os"

	"github.com/dblokhin/grinpool/src/core"
	"github.com/dblokhin/grinpool/src/pool"
	"github.com/dblokhin/grinpool/src/secp256k1zkp"
	"github.com/sirupsen/logrus"
)

func init() {
	// Output to stdout instead of the default stderr
	// Can be any io.Writer, see below for File example
	logrus.SetOutput(os.Stdout)

	// Log the debug severity or above.
	logrus.SetLevel(logrus.DebugLevel)
}

// demoFeeOnlyTx builds a single-input, zero-output, single-kernel
// transaction that spends its entire input value as fee: it needs no range
// proof, and its kernel excess and signature are real, so it passes
// TransactionPool.AddToPool's full cryptographic validation. Its only job is
// to give this wiring demo something real to admit.
func demoFeeOnlyTx(inputBlind, fee int64) (core.Transaction, secp256k1zkp.Commitment) {
	inBlind := big.NewInt(inputBlind)
	inputCommit := secp256k1zkp.CompressCommitment(
		secp256k1zkp.CommitValue(inBlind, big.NewInt(fee)))

	excessScalar := new(big.Int).Neg(inBlind)
	excessBlind := secp256k1zkp.NewBlindingFactor(excessScalar)
	excessPoint := excessBlind.Commit()
	excessCommit := secp256k1zkp.CompressCommitment(excessPoint)

	features := core.NewPlainKernelFeatures(uint64(fee))
	sig := secp256k1zkp.SignMessage(*excessPoint, *excessScalar, features.SigMsg())
	sigBytes := sig.Bytes()
	var excessSig [64]byte
	copy(excessSig[:], sigBytes[:])

	kernel := core.TxKernel{Features: features, Excess: excessCommit, ExcessSig: excessSig}
	input := core.NewInput(core.PlainOutput, inputCommit)

	tx, err := core.NewTransaction(core.InputList{input}, nil, core.TxKernelList{kernel}, secp256k1zkp.ZeroBlindingFactor)
	if err != nil {
		logrus.WithError(err).Fatal("failed to build demo transaction")
	}
	return tx, inputCommit
}

func main() {
	logrus.Info("Starting")

	chain := newMemoryChain()
	adapter := &memoryAdapter{}

	config := pool.PoolConfig{
		AcceptFeeBase:     10,
		MaxPoolSize:       50000,
		MaxStempoolSize:   50,
		MineableMaxWeight: 40000,
	}

	txPool := pool.NewTransactionPool(config, chain, adapter)

	tx, inputCommit := demoFeeOnlyTx(1000, 100)
	chain.creditOutput(inputCommit)

	header, err := txPool.ChainHead()
	if err != nil {
		logrus.WithError(err).Fatal("failed to read chain head")
	}

	if err := txPool.AddToPool(pool.Broadcast, tx, false, header); err != nil {
		logrus.WithError(err).Fatal("failed to admit demo transaction")
	}

	logrus.WithField("txpool_size", txPool.TotalSize()).Info("transaction pool ready")
}
