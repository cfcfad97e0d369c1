// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package secp256k1zkp

import "errors"

// ErrInvalidCommitment is returned when a Commitment's bytes do not decode
// to a point on the curve (wrong length, or x has no square root).
var ErrInvalidCommitment = errors.New("secp256k1zkp: invalid commitment")

// ErrEmptySum is returned by SumCommitments when given no terms at all; the
// callers in this module always sum at least one commitment, so seeing this
// means an upstream invariant (a non-empty output or kernel set) was
// violated before reaching here.
var ErrEmptySum = errors.New("secp256k1zkp: sum of zero commitments")
