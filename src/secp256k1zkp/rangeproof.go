// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package secp256k1zkp

import (
	. "github.com/yoss22/bulletproofs"
)

// proofBits is the bit width range proofs are built over: a 64-bit value
// range, matching the teacher's NewProver(64) call.
const proofBits = 64

// VerifyProof returns true if proof attests that commit's value lies in
// [0, 2^64).
func VerifyProof(commit *Point, proof BulletProof) bool {
	prover := NewProver(proofBits)
	return prover.Verify(commit, proof)
}

// BatchVerifyProofs verifies every (commit, proof) pair and returns the
// index of the first one that fails, or -1 if all pass. Output validation
// runs every range proof in a transaction through this rather than the
// teacher's per-output loop in block validation, so a multi-output
// transaction pays for prover setup once.
func BatchVerifyProofs(commits []*Point, proofs []BulletProof) int {
	prover := NewProver(proofBits)
	for i := range proofs {
		if !prover.Verify(commits[i], proofs[i]) {
			return i
		}
	}
	return -1
}
