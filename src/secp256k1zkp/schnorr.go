// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package secp256k1zkp

import (
	"crypto/rand"
	"crypto/sha256"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
	. "github.com/yoss22/bulletproofs"
)

const (
	// TagPubkeyEven is prepended to a compressed pubkey to signal that the y
	// coordinate is even.
	TagPubkeyEven = 0x02

	// TagPubkeyOdd is prepended to a compressed pubkey to signal that the y
	// coordinate is odd.
	TagPubkeyOdd = 0x03
)

// RandomBytes returns 32 bytes of randomness.
func RandomBytes() [32]byte {
	buf := [32]byte{}
	if _, err := rand.Read(buf[:]); err != nil {
		panic("secp256k1zkp: unable to generate random bytes")
	}
	return buf
}

// RandomInt returns a scalar from Z_n.
func RandomInt() *big.Int {
retry:
	buf := RandomBytes()

	r := new(big.Int).SetBytes(buf[:])
	if r.Cmp(btcec.S256().N) >= 0 {
		goto retry
	}

	return r
}

// Signature is an argument of knowledge that the signer possesses the
// private key for the excess being signed: the aggregate Schnorr excess
// signature that proves a kernel's commitment sums to zero.
type Signature struct {
	S big.Int
	R Point
}

// Bytes serializes the signature to the wire's fixed 64-byte layout.
func (s Signature) Bytes() [64]byte {
	var buf [64]byte
	Rx := GetB32(s.R.X)
	S := GetB32(&s.S)
	copy(buf[0:32], Rx[:])
	copy(buf[32:64], S[:])
	return buf
}

// SignMessage convinces a verifier in zero knowledge that the signer knows
// the private key x for a public key P = x*G.
//
// The prover sends a random curve point R = k*G which acts as a blinding
// factor. The verifier issues a non-interactive challenge e derived from a
// hash of R, P and the message. The prover returns s = k + e*x. The
// verifier checks s*G == R + e*P.
func SignMessage(publicKey Point, privateKey big.Int, message [32]byte) Signature {
	k := RandomInt()
	R := ScalarMulPoint(&G, k)

	Rx := GetB32(R.X)

	// Bytes keeps only R's x coordinate and DecodeSignature recovers y via
	// decompressPoint, so use the nonce whose R carries that same y.
	if y := decompressPoint(Rx[:]); y == nil || y.Cmp(R.Y) != 0 {
		k = new(big.Int).Sub(btcec.S256().N, k)
		R = ScalarMulPoint(&G, k)
	}
	compressedPubkey := CompressPubkey(publicKey)
	challenge := ComputeHash(Rx[:], compressedPubkey[:], message[:])
	e := new(big.Int).SetBytes(challenge[:])

	s := Sum(k, Mul(e, &privateKey))

	return Signature{S: *s, R: *R}
}

// VerifySignature returns true if signature was computed by signing message
// with the private key for publicKey.
func VerifySignature(publicKey Point, message [32]byte, signature Signature) bool {
	Rx := GetB32(signature.R.X)
	compressedPubkey := CompressPubkey(publicKey)

	challenge := ComputeHash(Rx[:], compressedPubkey[:], message[:])
	e := new(big.Int).SetBytes(challenge[:])

	lhs := ScalarMulPoint(&G, &signature.S)
	rhs := SumPoints(&signature.R, ScalarMulPoint(&publicKey, e))

	return lhs.X.Cmp(rhs.X) == 0
}

// BatchVerifySignatures verifies a batch of (publicKey, message, signature)
// triples, returning the index of the first failure, or -1 if all verify.
// There is no single-equation batching identity wired up for Schnorr
// verification here (unlike bulletproofs' native multi-proof verifier), so
// this checks each signature independently; it exists so pool and kernel
// validation code has one call site to swap in true batching later without
// changing every caller.
func BatchVerifySignatures(publicKeys []Point, messages [][32]byte, signatures []Signature) int {
	for i := range signatures {
		if !VerifySignature(publicKeys[i], messages[i], signatures[i]) {
			return i
		}
	}
	return -1
}

// CommitValue returns the Pedersen commitment to the value v with blinding
// factor blind.
func CommitValue(blind, v *big.Int) *Point {
	return SumPoints(
		ScalarMulPoint(&G, blind),
		ScalarMulPoint(&H, v))
}

// CompressPubkey returns p as a 33-byte compressed pubkey.
func CompressPubkey(p Point) [33]byte {
	var buf [33]byte
	if p.Y.Bit(0) == 1 {
		buf[0] = TagPubkeyOdd
	} else {
		buf[0] = TagPubkeyEven
	}
	x := GetB32(p.X)
	copy(buf[1:33], x[:])
	return buf
}

// decompressPoint returns a y-coordinate for the given x coordinate on the
// secp256k1 curve y^2 = x^3 + 7.
func decompressPoint(xBytes []byte) *big.Int {
	x := new(big.Int).SetBytes(xBytes)

	x3 := new(big.Int).Mul(x, x)
	x3.Mul(x3, x)
	x3.Add(x3, btcec.S256().Params().B)

	return ModSqrtFast(x3)
}

// DecodeSignature reads a 64-byte signature.
func DecodeSignature(signature [64]byte) Signature {
	s := new(big.Int).SetBytes(signature[32:64])

	R := new(Point)
	R.X = new(big.Int).SetBytes(signature[0:32])
	R.Y = decompressPoint(signature[0:32])

	return Signature{S: *s, R: *R}
}

// ComputeHash returns the SHA-256 hash of the concatenation of inputs.
func ComputeHash(inputs ...[]byte) [32]byte {
	hasher := sha256.New()
	for i := range inputs {
		hasher.Write(inputs[i])
	}

	var result [32]byte
	copy(result[:], hasher.Sum(nil))
	return result
}
