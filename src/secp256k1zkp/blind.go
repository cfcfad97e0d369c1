// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package secp256k1zkp

import (
	"math/big"

	"github.com/btcsuite/btcd/btcec"
	. "github.com/yoss22/bulletproofs"
)

// BlindingFactorSize is the wire size of a blinding factor (a scalar mod the
// curve order).
const BlindingFactorSize = 32

// BlindingFactor is a scalar used to blind a Pedersen commitment: the r in
// r*G + v*H. Kernel offsets and transaction offsets are blinding factors.
type BlindingFactor [BlindingFactorSize]byte

// ZeroBlindingFactor is the identity element under BlindSum: summing it in
// changes nothing, and it is the sentinel aggregate/deaggregate use to mean
// "no offset contribution from this side".
var ZeroBlindingFactor = BlindingFactor{}

// NewBlindingFactor reduces v mod the curve order and encodes it as a
// BlindingFactor.
func NewBlindingFactor(v *big.Int) BlindingFactor {
	return blindingFactorFromScalar(v)
}

// IsZero reports whether b is the zero blinding factor.
func (b BlindingFactor) IsZero() bool {
	return b == ZeroBlindingFactor
}

// Bytes returns the blinding factor's wire encoding.
func (b BlindingFactor) Bytes() []byte {
	return b[:]
}

// scalar returns b interpreted as a big.Int scalar.
func (b BlindingFactor) scalar() *big.Int {
	return new(big.Int).SetBytes(b[:])
}

// blindingFactorFromScalar reduces v mod the curve order and encodes it as a
// BlindingFactor.
func blindingFactorFromScalar(v *big.Int) BlindingFactor {
	reduced := new(big.Int).Mod(v, btcec.S256().N)
	var out BlindingFactor
	b := GetB32(reduced)
	copy(out[:], b[:])
	return out
}

// Commit returns b interpreted as an offset contribution to a commitment
// sum: b*G. Used by the kernel-sum balance check to fold a transaction or
// kernel offset in alongside the excess commitments.
func (b BlindingFactor) Commit() *Point {
	return ScalarMulPoint(&G, b.scalar())
}

// BlindSum computes the sum of the positive blinding factors minus the sum
// of the negative ones, mod the curve order. It is how aggregate and
// deaggregate combine per-transaction kernel offsets into one: aggregate
// sums every input transaction's offset, and deaggregate subtracts the
// already-known sub-transactions' offsets back out of the multi-kernel
// transaction's offset. Zero-valued factors contribute nothing, matching
// the convention that an absent offset is the additive identity.
func BlindSum(positive, negative []BlindingFactor) BlindingFactor {
	sum := new(big.Int)

	for _, p := range positive {
		if p.IsZero() {
			continue
		}
		sum.Add(sum, p.scalar())
	}

	for _, n := range negative {
		if n.IsZero() {
			continue
		}
		sum.Sub(sum, n.scalar())
	}

	return blindingFactorFromScalar(sum)
}
