// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package core

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"

	"github.com/dchest/siphash"
	"golang.org/x/crypto/blake2b"
)

// ShortIDSize is the size in bytes of a kernel short-id used in compact
// block relay to identify a transaction without sending its full kernel.
const ShortIDSize = 6

// Hash is a generic byte hash: a block hash, a commitment, an entity hash.
type Hash []byte

// ShortID derives the compact-block short-id for h, keyed by blockHash so
// short-ids cannot be precomputed independent of the block they're relayed
// against.
func (h Hash) ShortID(blockHash Hash) ShortID {
	result := make(ShortID, ShortIDSize+2)

	k0 := binary.LittleEndian.Uint64(blockHash[:8])
	k1 := binary.LittleEndian.Uint64(blockHash[8:16])

	hash := siphash.Hash(k0, k1, h)
	binary.LittleEndian.PutUint64(result, hash)

	return result[0:ShortIDSize]
}

// ShortIDKey derives the siphash key used to compute a set of short-ids for
// a single compact-block exchange: blockHash alone would let a peer
// precompute short-ids across requests, so a per-request nonce is folded in
// first.
func ShortIDKey(blockHash Hash, nonce uint64) Hash {
	var nonceBytes [8]byte
	binary.LittleEndian.PutUint64(nonceBytes[:], nonce)
	h := blake2b.Sum256(append(append([]byte{}, blockHash...), nonceBytes[:]...))
	return h[:]
}

// ShortID is the compact, collision-tolerant identifier derived from an
// entity's hash and a block hash.
type ShortID []byte

// String returns the short-id's hex representation.
func (id ShortID) String() string {
	return hex.EncodeToString(id)
}

// ShortIDList is a sortable list of short-ids.
type ShortIDList []ShortID

func (s ShortIDList) Len() int           { return len(s) }
func (s ShortIDList) Less(i, j int) bool { return bytes.Compare(s[i], s[j]) < 0 }
func (s ShortIDList) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
