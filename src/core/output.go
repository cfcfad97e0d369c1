// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package core

import (
	"bytes"
	"encoding/hex"

	"github.com/dblokhin/grinpool/src/secp256k1zkp"
	"github.com/dblokhin/grinpool/src/ser"
	"github.com/sirupsen/logrus"
	"github.com/yoss22/bulletproofs"
	"golang.org/x/crypto/blake2b"
)

// OutputFeatures is the closed, one-byte enum of output kinds.
type OutputFeatures uint8

const (
	// PlainOutput is an ordinary transaction output.
	PlainOutput OutputFeatures = 0

	// CoinbaseOutput is a block subsidy output. Standalone transactions
	// must never carry one.
	CoinbaseOutput OutputFeatures = 1
)

// IsCoinbase reports whether these are coinbase output features.
func (f OutputFeatures) IsCoinbase() bool {
	return f == CoinbaseOutput
}

// Output is a new, unspent transaction output: a blinded commitment to an
// amount, together with a range proof that the amount is non-negative and
// does not overflow.
type Output struct {
	Features   OutputFeatures
	Commit     secp256k1zkp.Commitment
	RangeProof secp256k1zkp.RangeProof
}

// NewOutput builds an Output from its parts.
func NewOutput(features OutputFeatures, commit secp256k1zkp.Commitment, proof secp256k1zkp.RangeProof) Output {
	return Output{Features: features, Commit: commit, RangeProof: proof}
}

// IsCoinbase reports whether this is a coinbase output.
func (o Output) IsCoinbase() bool {
	return o.Features.IsCoinbase()
}

// Identifier returns the hash-stable projection of this output: its
// features and commitment, without the range proof.
func (o Output) Identifier() OutputIdentifier {
	return OutputIdentifier{Features: o.Features, Commit: o.Commit}
}

// writeWithoutProof writes features and commitment but not the range proof;
// shared by the wire encoding's prefix and the hash-mode encoding.
func (o Output) writeWithoutProof(w ser.Writer) error {
	if err := w.WriteU8(uint8(o.Features)); err != nil {
		return err
	}
	return w.WriteBytes(o.Commit.Bytes())
}

// Write encodes the output. In hash mode the range proof is omitted: an
// output's hash commits only to its OutputIdentifier, and the proof is
// committed to separately.
func (o Output) Write(w ser.Writer) error {
	if err := o.writeWithoutProof(w); err != nil {
		return err
	}
	if w.SerializationMode() == ser.Hash {
		return nil
	}

	proof := o.RangeProof.Bytes()
	if err := w.WriteU64(uint64(len(proof))); err != nil {
		return err
	}
	return w.WriteBytes(proof)
}

// Read decodes an output from r (always normal mode; hash-mode bytes are
// write-only and never read back).
func (o *Output) Read(r ser.Reader) error {
	features, err := r.ReadU8()
	if err != nil {
		return err
	}
	if OutputFeatures(features) != PlainOutput && OutputFeatures(features) != CoinbaseOutput {
		return NewError(ErrSerialization)
	}

	commit, err := r.ReadBytes(secp256k1zkp.PedersenCommitmentSize)
	if err != nil {
		return err
	}

	proofLen, err := r.ReadU64()
	if err != nil {
		return err
	}
	if proofLen > secp256k1zkp.MaxProofSize {
		return NewError(ErrSerialization)
	}

	proof, err := r.ReadBytes(int(proofLen))
	if err != nil {
		return err
	}

	o.Features = OutputFeatures(features)
	o.Commit = commit
	o.RangeProof = secp256k1zkp.RangeProof{Proof: proof, ProofLen: len(proof)}
	return nil
}

// Hash returns the domain-separated hash of the output's OutputIdentifier
// (features and commitment; the range proof is excluded).
func (o Output) Hash() Hash {
	var buf bytes.Buffer
	if err := o.writeWithoutProof(ser.NewHashWriter(&buf)); err != nil {
		logrus.Fatal(err)
	}
	h := blake2b.Sum256(buf.Bytes())
	return h[:]
}

// VerifyProof returns nil if the output's range proof is valid for its
// commitment.
func (o Output) VerifyProof() error {
	point, err := secp256k1zkp.DecompressCommitment(o.Commit)
	if err != nil {
		return NewError(ErrRangeProof)
	}

	proof := bulletproofs.BulletProof{}
	if err := proof.Read(bytes.NewReader(o.RangeProof.Bytes())); err != nil {
		return NewError(ErrRangeProof)
	}

	if !secp256k1zkp.VerifyProof(point, proof) {
		return NewError(ErrRangeProof)
	}
	return nil
}

// BatchVerifyProofs verifies every output's range proof in a single batched
// call, failing with ErrRangeProof if any one of them is invalid.
func BatchVerifyProofs(outputs []Output) error {
	commits := make([]*bulletproofs.Point, len(outputs))
	proofs := make([]bulletproofs.BulletProof, len(outputs))

	for i, o := range outputs {
		point, err := secp256k1zkp.DecompressCommitment(o.Commit)
		if err != nil {
			return NewError(ErrRangeProof)
		}
		commits[i] = point

		var proof bulletproofs.BulletProof
		if err := proof.Read(bytes.NewReader(o.RangeProof.Bytes())); err != nil {
			return NewError(ErrRangeProof)
		}
		proofs[i] = proof
	}

	if idx := secp256k1zkp.BatchVerifyProofs(commits, proofs); idx != -1 {
		return NewError(ErrRangeProof)
	}
	return nil
}

// OutputList is a sortable list of outputs, ordered by hash.
type OutputList []Output

func (l OutputList) Len() int      { return len(l) }
func (l OutputList) Swap(i, j int) { l[i], l[j] = l[j], l[i] }
func (l OutputList) Less(i, j int) bool {
	return bytes.Compare(l[i].Hash(), l[j].Hash()) < 0
}

// Hashes returns the hash of every output, in the list's current order.
func (l OutputList) Hashes() [][]byte {
	out := make([][]byte, len(l))
	for i, o := range l {
		out[i] = o.Hash()
	}
	return out
}

// OutputIdentifier is the hash-stable projection of an Output: its features
// and commitment, with the range proof excluded. The on-disk MMR element
// size for an output is fixed at this type's 34-byte wire encoding
// (1 feature byte + 33 commitment bytes).
type OutputIdentifier struct {
	Features OutputFeatures
	Commit   secp256k1zkp.Commitment
}

// OutputIdentifierElementSize is the fixed MMR element size an
// OutputIdentifier occupies on disk.
const OutputIdentifierElementSize = 34

// FromOutput projects an Output down to its OutputIdentifier.
func FromOutput(o Output) OutputIdentifier {
	return o.Identifier()
}

// FromInput projects an Input to the OutputIdentifier of the output it
// references.
func FromInput(in Input) OutputIdentifier {
	return OutputIdentifier{Features: in.Features, Commit: in.Commit}
}

// Write encodes the identifier: features:u8 ∥ commit(33).
func (id OutputIdentifier) Write(w ser.Writer) error {
	if err := w.WriteU8(uint8(id.Features)); err != nil {
		return err
	}
	return w.WriteBytes(id.Commit.Bytes())
}

// ToHex returns the identifier's hex-encoded wire bytes.
func (id OutputIdentifier) ToHex() string {
	var buf bytes.Buffer
	if err := id.Write(ser.NewWriter(&buf, ser.LocalProtocolVersion)); err != nil {
		logrus.Fatal(err)
	}
	return hex.EncodeToString(buf.Bytes())
}
