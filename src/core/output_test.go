// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package core

import (
	"bytes"
	"sort"
	"testing"

	"github.com/dblokhin/grinpool/src/secp256k1zkp"
	"github.com/dblokhin/grinpool/src/ser"
)

func sampleCommitment(b byte) secp256k1zkp.Commitment {
	c := make(secp256k1zkp.Commitment, secp256k1zkp.PedersenCommitmentSize)
	c[0] = secp256k1zkp.TagPubkeyEven
	c[1] = b
	return c
}

func TestOutputEncodeDecodeRoundTrip(t *testing.T) {
	proof := secp256k1zkp.RangeProof{Proof: []byte{1, 2, 3, 4}, ProofLen: 4}
	o := NewOutput(PlainOutput, sampleCommitment(7), proof)

	var buf bytes.Buffer
	w := ser.NewWriter(&buf, ser.LocalProtocolVersion)
	if err := o.Write(w); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var decoded Output
	r := ser.NewReader(bytes.NewReader(buf.Bytes()), ser.LocalProtocolVersion)
	if err := decoded.Read(r); err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if decoded.Features != o.Features || !bytes.Equal(decoded.Commit, o.Commit) ||
		!bytes.Equal(decoded.RangeProof.Bytes(), o.RangeProof.Bytes()) {
		t.Errorf("Read() = %+v, want %+v", decoded, o)
	}
}

func TestOutputHashExcludesRangeProof(t *testing.T) {
	commit := sampleCommitment(9)
	a := NewOutput(PlainOutput, commit, secp256k1zkp.RangeProof{Proof: []byte{1}, ProofLen: 1})
	b := NewOutput(PlainOutput, commit, secp256k1zkp.RangeProof{Proof: []byte{2, 3}, ProofLen: 2})

	if !bytes.Equal(a.Hash(), b.Hash()) {
		t.Errorf("Hash() differs between outputs with the same identifier but different proofs")
	}
}

func TestOutputIdentifierWireSize(t *testing.T) {
	id := OutputIdentifier{Features: PlainOutput, Commit: sampleCommitment(1)}

	var buf bytes.Buffer
	if err := id.Write(ser.NewWriter(&buf, ser.LocalProtocolVersion)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if buf.Len() != OutputIdentifierElementSize {
		t.Errorf("OutputIdentifier wire size = %d, want %d", buf.Len(), OutputIdentifierElementSize)
	}
}

func TestOutputListSortedByHash(t *testing.T) {
	proof := secp256k1zkp.RangeProof{Proof: []byte{1}, ProofLen: 1}
	list := OutputList{
		NewOutput(PlainOutput, sampleCommitment(3), proof),
		NewOutput(PlainOutput, sampleCommitment(1), proof),
		NewOutput(PlainOutput, sampleCommitment(2), proof),
	}

	sort.Sort(list)

	if !sort.IsSorted(list) {
		t.Errorf("sort.Sort(list) left list unsorted: %v", list.Hashes())
	}
}
