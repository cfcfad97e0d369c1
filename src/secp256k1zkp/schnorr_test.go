// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package secp256k1zkp

import (
	"math/big"
	"testing"

	. "github.com/yoss22/bulletproofs"
)

func TestVerifySignature(t *testing.T) {
	x := big.NewInt(8)
	P := ScalarMulPoint(&G, x)

	msg := [32]byte{}
	sig := SignMessage(*P, *x, msg)

	if !VerifySignature(*P, msg, sig) {
		t.Errorf("failed to verify signature")
	}
}

func TestBatchVerifySignatures(t *testing.T) {
	x1, x2 := big.NewInt(8), big.NewInt(13)
	P1, P2 := ScalarMulPoint(&G, x1), ScalarMulPoint(&G, x2)

	msg1, msg2 := [32]byte{1}, [32]byte{2}
	sig1 := SignMessage(*P1, *x1, msg1)
	sig2 := SignMessage(*P2, *x2, msg2)

	publicKeys := []Point{*P1, *P2}
	messages := [][32]byte{msg1, msg2}
	signatures := []Signature{sig1, sig2}

	if idx := BatchVerifySignatures(publicKeys, messages, signatures); idx != -1 {
		t.Errorf("BatchVerifySignatures() = %d, want -1", idx)
	}

	signatures[1] = sig1
	if idx := BatchVerifySignatures(publicKeys, messages, signatures); idx != 1 {
		t.Errorf("BatchVerifySignatures() with bad sig = %d, want 1", idx)
	}
}

func TestBlindSum(t *testing.T) {
	var a, b BlindingFactor
	a[31] = 3
	b[31] = 5

	sum := BlindSum([]BlindingFactor{a, b}, nil)
	if sum.scalar().Cmp(big.NewInt(8)) != 0 {
		t.Errorf("BlindSum(3, 5) = %d, want 8", sum.scalar())
	}

	diff := BlindSum([]BlindingFactor{b}, []BlindingFactor{a})
	if diff.scalar().Cmp(big.NewInt(2)) != 0 {
		t.Errorf("BlindSum(5 - 3) = %d, want 2", diff.scalar())
	}

	withZero := BlindSum([]BlindingFactor{a, ZeroBlindingFactor}, nil)
	if withZero != BlindSum([]BlindingFactor{a}, nil) {
		t.Errorf("BlindSum with zero factor changed the result")
	}
}

func TestBlindingFactorIsZero(t *testing.T) {
	if !ZeroBlindingFactor.IsZero() {
		t.Errorf("ZeroBlindingFactor.IsZero() = false, want true")
	}

	var nonZero BlindingFactor
	nonZero[0] = 1
	if nonZero.IsZero() {
		t.Errorf("nonZero.IsZero() = true, want false")
	}
}
