// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package secp256k1zkp

import (
	"math/big"

	"github.com/btcsuite/btcd/btcec"
	. "github.com/yoss22/bulletproofs"
)

// DecompressCommitment recovers the curve point a 33-byte commitment
// encodes: a leading parity tag (TagPubkeyEven/TagPubkeyOdd) the same way
// CompressPubkey produces it, followed by the 32-byte x coordinate.
func DecompressCommitment(c Commitment) (*Point, error) {
	if len(c) != PedersenCommitmentSize {
		return nil, ErrInvalidCommitment
	}

	tag := c[0]
	if tag != TagPubkeyEven && tag != TagPubkeyOdd {
		return nil, ErrInvalidCommitment
	}

	x := new(big.Int).SetBytes(c[1:])
	y := decompressPoint(c[1:])
	if y == nil {
		return nil, ErrInvalidCommitment
	}

	wantOdd := tag == TagPubkeyOdd
	if (y.Bit(0) == 1) != wantOdd {
		y = new(big.Int).Sub(btcec.S256().Params().P, y)
	}

	return &Point{X: x, Y: y}, nil
}

// CompressCommitment is the inverse of DecompressCommitment.
func CompressCommitment(p *Point) Commitment {
	b := CompressPubkey(*p)
	return Commitment(b[:])
}

// NegatePoint returns -p: the same x coordinate, the field-negated y.
func NegatePoint(p *Point) *Point {
	return &Point{
		X: new(big.Int).Set(p.X),
		Y: new(big.Int).Sub(btcec.S256().Params().P, p.Y),
	}
}

// PointsEqual reports whether a and b are the same curve point. Like the
// rest of this package's verification code, equality is decided on the x
// coordinate alone, following the convention VerifySignature already uses.
func PointsEqual(a, b *Point) bool {
	return a.X.Cmp(b.X) == 0
}

// SumCommitments decompresses every commitment in positive and negative and
// returns their homomorphic sum: Σpositive − Σnegative, as a curve point.
// This is how output/input commitment sums and kernel excess sums are
// folded down for the kernel-sum balance check. At least one commitment
// must be supplied.
func SumCommitments(positive, negative []Commitment) (*Point, error) {
	var acc *Point

	fold := func(c Commitment, negate bool) error {
		p, err := DecompressCommitment(c)
		if err != nil {
			return err
		}
		if negate {
			p = NegatePoint(p)
		}
		if acc == nil {
			acc = p
			return nil
		}
		acc = SumPoints(acc, p)
		return nil
	}

	for _, c := range positive {
		if err := fold(c, false); err != nil {
			return nil, err
		}
	}
	for _, c := range negative {
		if err := fold(c, true); err != nil {
			return nil, err
		}
	}

	if acc == nil {
		return nil, ErrEmptySum
	}
	return acc, nil
}
