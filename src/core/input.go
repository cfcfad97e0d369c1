// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package core

import (
	"bytes"

	"github.com/dblokhin/grinpool/src/secp256k1zkp"
	"github.com/dblokhin/grinpool/src/ser"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/blake2b"
)

// Input references a prior unspent output being spent by a transaction.
type Input struct {
	Features OutputFeatures
	Commit   secp256k1zkp.Commitment
}

// NewInput builds an Input from features and a commitment.
func NewInput(features OutputFeatures, commit secp256k1zkp.Commitment) Input {
	return Input{Features: features, Commit: commit}
}

// IsCoinbase reports whether this input references a coinbase output.
func (in Input) IsCoinbase() bool {
	return in.Features == CoinbaseOutput
}

// Write encodes the input: features:u8 ∥ commit(33).
func (in Input) Write(w ser.Writer) error {
	if err := w.WriteU8(uint8(in.Features)); err != nil {
		return err
	}
	return w.WriteBytes(in.Commit.Bytes())
}

// Read decodes an input from r.
func (in *Input) Read(r ser.Reader) error {
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

	in.Features = OutputFeatures(features)
	in.Commit = commit
	return nil
}

// Hash returns the domain-separated hash of the input's canonical encoding,
// used to order and deduplicate inputs within a body.
func (in Input) Hash() Hash {
	var buf bytes.Buffer
	if err := in.Write(ser.NewHashWriter(&buf)); err != nil {
		logrus.Fatal(err)
	}
	h := blake2b.Sum256(buf.Bytes())
	return h[:]
}

// InputList is a sortable list of inputs, ordered by hash.
type InputList []Input

func (l InputList) Len() int      { return len(l) }
func (l InputList) Swap(i, j int) { l[i], l[j] = l[j], l[i] }
func (l InputList) Less(i, j int) bool {
	return bytes.Compare(l[i].Hash(), l[j].Hash()) < 0
}

// Hashes returns the hash of every input, in the list's current order.
func (l InputList) Hashes() [][]byte {
	out := make([][]byte, len(l))
	for i, in := range l {
		out[i] = in.Hash()
	}
	return out
}
