// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package core

import (
	"math/big"
	"testing"

	"github.com/dblokhin/grinpool/src/secp256k1zkp"
	"github.com/yoss22/bulletproofs"
)

// selfSignedKernel builds a TxKernel whose excess is a real curve point and
// whose excess signature genuinely signs features.SigMsg() with that
// point's private key, so Verify()/BatchVerifyKernelSignatures have
// something real to check.
func selfSignedKernel(t *testing.T, features KernelFeatures) TxKernel {
	t.Helper()

	priv := big.NewInt(int64(7 + features.Fee + features.LockHeight + 1000))
	pub := bulletproofs.ScalarMulPoint(&bulletproofs.G, priv)

	msg := features.SigMsg()
	sig := secp256k1zkp.SignMessage(*pub, *priv, msg)

	var excessSig [64]byte
	copy(excessSig[:], sigToBytes(sig))

	return TxKernel{
		Features:  features,
		Excess:    secp256k1zkp.CompressCommitment(pub),
		ExcessSig: excessSig,
	}
}

func sigToBytes(sig secp256k1zkp.Signature) []byte {
	b := sig.Bytes()
	return b[:]
}
