// Copyright 2018 Dmitriy Blokhin. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

// Package consensus holds the chain-wide constants the transaction and pool
// domains are validated against: denominations, coinbase maturity, and the
// block weight schedule. Block production, proof-of-work and peer protocol
// framing live outside this module.
package consensus

const (
	// GrinBase a coin is divisible to 10^9, following the SI prefixes.
	GrinBase uint64 = 1e9

	// MilliGrin a thousandth of a coin.
	MilliGrin uint64 = GrinBase / 1000

	// MicroGrin a thousandth of a MilliGrin.
	MicroGrin uint64 = MilliGrin / 1000

	// NanoGrin the smallest unit, a billion to the coin.
	NanoGrin uint64 = 1

	// Reward the block subsidy amount paid to a coinbase output.
	Reward uint64 = 60 * GrinBase

	// CoinbaseMaturity number of blocks before a coinbase output matures
	// and can be spent.
	CoinbaseMaturity uint64 = 1000

	// MaxBlockCoinbaseOutputs maximum coinbase outputs in a valid block.
	MaxBlockCoinbaseOutputs int = 1

	// MaxBlockCoinbaseKernels maximum coinbase kernels in a valid block.
	MaxBlockCoinbaseKernels int = 1

	// BlockInputWeight weight of a single input against the max block
	// weight capacity.
	BlockInputWeight uint64 = 1

	// BlockOutputWeight weight of a single output against the max block
	// weight capacity.
	BlockOutputWeight uint64 = 10

	// BlockKernelWeight weight of a single kernel against the max block
	// weight capacity.
	BlockKernelWeight uint64 = 2

	// DefaultMaxBlockWeight total maximum block weight under default
	// network parameters.
	DefaultMaxBlockWeight uint64 = 80000

	// KernelFeaturesV2Version protocol version at and after which kernel
	// features use the variable-size v2 wire encoding. Versions below this
	// always use the fixed 17-byte v1 encoding.
	KernelFeaturesV2Version uint32 = 2
)

// maxBlockWeight is the active block weight ceiling. It defaults to
// DefaultMaxBlockWeight but may be overridden by the hosting node for
// alternate network parameters (testnet, regtest); tests do this via
// SetMaxBlockWeight.
var maxBlockWeight = DefaultMaxBlockWeight

// MaxBlockWeight returns the currently configured maximum block weight.
func MaxBlockWeight() uint64 {
	return maxBlockWeight
}

// SetMaxBlockWeight overrides the maximum block weight. Intended for use by
// alternate network parameter sets and tests, not by steady-state
// validation code.
func SetMaxBlockWeight(w uint64) {
	maxBlockWeight = w
}
