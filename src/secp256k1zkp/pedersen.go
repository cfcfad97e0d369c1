// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

// Package secp256k1zkp adapts the secp256k1/bulletproofs primitives the
// transaction and pool domains are built on: Pedersen commitments, blinding
// factor arithmetic, aggregate Schnorr excess signatures, and range proof
// verification, single and batched.
package secp256k1zkp

import (
	"fmt"
	"io"
)

const (
	// PedersenCommitmentSize is the wire size of a compressed Pedersen
	// commitment.
	PedersenCommitmentSize = 33

	// MaxProofSize is the largest a single bulletproof range proof is
	// allowed to be.
	MaxProofSize = 5134
)

// Commitment is a Pedersen commitment to a value: r*G + v*H for blinding
// factor r and value v. It is opaque outside this package; callers compare,
// sum and serialize it but never inspect r or v directly.
type Commitment []byte

// Bytes returns the commitment's wire encoding.
func (c *Commitment) Bytes() []byte {
	return *c
}

// Read fills the commitment from exactly PedersenCommitmentSize bytes.
func (c *Commitment) Read(r io.Reader) error {
	buf := make([]byte, PedersenCommitmentSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return err
	}
	*c = buf
	return nil
}

// String implements fmt.Stringer.
func (c Commitment) String() string {
	return fmt.Sprintf("%#v", []byte(c))
}

// RangeProof is a bulletproof attesting that a commitment's value lies in
// [0, 2^64) without revealing it.
type RangeProof struct {
	// Proof is the encoded proof, at most MaxProofSize bytes.
	Proof []byte

	// ProofLen is the number of meaningful bytes in Proof.
	ProofLen int
}

// Bytes returns the proof's wire encoding.
func (p *RangeProof) Bytes() []byte {
	return p.Proof[:p.ProofLen]
}
