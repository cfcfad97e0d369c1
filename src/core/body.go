// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package core

import (
	"sort"

	"github.com/dblokhin/grinpool/src/ser"
)

// TransactionBody is the sorted, cut-through-clean collection of inputs,
// outputs and kernels a Transaction carries. Every sequence is kept sorted
// strictly ascending by element hash with no duplicates; construction
// through NewTransactionBody is the only path that is allowed to produce an
// unsorted body, and only when asked to sort rather than verify.
type TransactionBody struct {
	Inputs  InputList
	Outputs OutputList
	Kernels TxKernelList
}

// NewTransactionBody constructs a body from the given sequences. If
// verifySorted is true, it fails with a Serialization error on any
// sequence that is not already sorted and duplicate-free; otherwise it
// sorts all three sequences in place.
func NewTransactionBody(inputs InputList, outputs OutputList, kernels TxKernelList, verifySorted bool) (TransactionBody, error) {
	body := TransactionBody{Inputs: inputs, Outputs: outputs, Kernels: kernels}

	if verifySorted {
		if err := body.verifySorted(); err != nil {
			return TransactionBody{}, err
		}
		return body, nil
	}

	body.sort()
	return body, nil
}

// sort orders all three sequences ascending by hash.
func (b *TransactionBody) sort() {
	sort.Sort(b.Inputs)
	sort.Sort(b.Outputs)
	sort.Sort(b.Kernels)
}

// verifySorted fails unless every sequence is already sorted
// strictly-ascending and duplicate-free.
func (b TransactionBody) verifySorted() error {
	if err := ser.VerifySortedAndUnique(b.Inputs.Hashes()); err != nil {
		return NewError(ErrSerialization)
	}
	if err := ser.VerifySortedAndUnique(b.Outputs.Hashes()); err != nil {
		return NewError(ErrSerialization)
	}
	if err := ser.VerifySortedAndUnique(b.Kernels.Hashes()); err != nil {
		return NewError(ErrSerialization)
	}
	return nil
}

// WithInput inserts input in sorted position, a no-op if an input with the
// same hash is already present.
func (b TransactionBody) WithInput(input Input) TransactionBody {
	h := input.Hash()
	idx := sort.Search(len(b.Inputs), func(i int) bool {
		return string(b.Inputs[i].Hash()) >= string(h)
	})
	if idx < len(b.Inputs) && string(b.Inputs[idx].Hash()) == string(h) {
		return b
	}

	b.Inputs = append(b.Inputs, Input{})
	copy(b.Inputs[idx+1:], b.Inputs[idx:])
	b.Inputs[idx] = input
	return b
}

// WithOutput inserts output in sorted position, a no-op if an output with
// the same hash is already present.
func (b TransactionBody) WithOutput(output Output) TransactionBody {
	h := output.Hash()
	idx := sort.Search(len(b.Outputs), func(i int) bool {
		return string(b.Outputs[i].Hash()) >= string(h)
	})
	if idx < len(b.Outputs) && string(b.Outputs[idx].Hash()) == string(h) {
		return b
	}

	b.Outputs = append(b.Outputs, Output{})
	copy(b.Outputs[idx+1:], b.Outputs[idx:])
	b.Outputs[idx] = output
	return b
}

// WithKernel inserts kernel in sorted position, a no-op if a kernel with the
// same hash is already present.
func (b TransactionBody) WithKernel(kernel TxKernel) TransactionBody {
	h := kernel.Hash()
	idx := sort.Search(len(b.Kernels), func(i int) bool {
		return string(b.Kernels[i].Hash()) >= string(h)
	})
	if idx < len(b.Kernels) && string(b.Kernels[idx].Hash()) == string(h) {
		return b
	}

	b.Kernels = append(b.Kernels, TxKernel{})
	copy(b.Kernels[idx+1:], b.Kernels[idx:])
	b.Kernels[idx] = kernel
	return b
}

// Fee is the saturating sum of fees across all non-coinbase kernels.
func (b TransactionBody) Fee() uint64 {
	var total uint64
	for _, k := range b.Kernels {
		f := k.Fee()
		next := total + f
		if next < total { // overflow
			return ^uint64(0)
		}
		total = next
	}
	return total
}

// LockHeight is the maximum lock_height across all HeightLocked kernels, or
// 0 if there are none.
func (b TransactionBody) LockHeight() uint64 {
	var max uint64
	for _, k := range b.Kernels {
		if k.Features.Tag == HeightLockedKernel && k.Features.LockHeight > max {
			max = k.Features.LockHeight
		}
	}
	return max
}

// Weight is this body's non-consensus transaction weight.
func (b TransactionBody) Weight() uint64 {
	return txWeight(len(b.Inputs), len(b.Outputs), len(b.Kernels))
}

// WeightAsBlock is this body's consensus block weight.
func (b TransactionBody) WeightAsBlock() uint64 {
	return blockWeight(len(b.Inputs), len(b.Outputs), len(b.Kernels))
}

// VerifyWeight checks WeightAsBlock against the ceiling weighting imposes.
func (b TransactionBody) VerifyWeight(weighting Weighting) error {
	limit, limited := weighting.maxWeight()
	if !limited {
		return nil
	}
	if b.WeightAsBlock() > limit {
		return NewError(ErrTooHeavy)
	}
	return nil
}

// VerifyCutThrough fails with ErrCutThrough if any input's hash equals any
// output's hash: a transaction body arriving pre-aggregation must already
// be free of matched (input, output) pairs, since cut_through is the only
// place that's allowed to remove them.
func (b TransactionBody) VerifyCutThrough() error {
	inputs, outputs := append(InputList(nil), b.Inputs...), append(OutputList(nil), b.Outputs...)
	sort.Sort(inputs)
	sort.Sort(outputs)

	i, j := 0, 0
	for i < len(inputs) && j < len(outputs) {
		ih, oh := string(inputs[i].Hash()), string(outputs[j].Hash())
		switch {
		case ih == oh:
			return NewError(ErrCutThrough)
		case ih < oh:
			i++
		default:
			j++
		}
	}
	return nil
}

// VerifyFeatures rejects a body carrying any coinbase output or coinbase
// kernel. Only meaningful for standalone transactions; blocks are expected
// to carry exactly one of each and validate that separately.
func (b TransactionBody) VerifyFeatures() error {
	if err := b.verifyOutputFeatures(); err != nil {
		return err
	}
	return b.verifyKernelFeatures()
}

func (b TransactionBody) verifyOutputFeatures() error {
	for _, o := range b.Outputs {
		if o.IsCoinbase() {
			return NewError(ErrInvalidOutputFeatures)
		}
	}
	return nil
}

func (b TransactionBody) verifyKernelFeatures() error {
	for _, k := range b.Kernels {
		if k.IsCoinbase() {
			return NewError(ErrInvalidKernelFeatures)
		}
	}
	return nil
}

// ValidateRead performs the cheap, non-cryptographic checks appropriate to
// run during deserialization: weight, sort/uniqueness and cut-through.
func (b TransactionBody) ValidateRead(weighting Weighting) error {
	if err := b.VerifyWeight(weighting); err != nil {
		return err
	}
	if err := b.verifySorted(); err != nil {
		return err
	}
	return b.VerifyCutThrough()
}

// Validate runs ValidateRead plus the expensive cryptographic checks: a
// single batched range-proof verify over every output and a single batched
// signature verify over every kernel.
func (b TransactionBody) Validate(weighting Weighting) error {
	if err := b.ValidateRead(weighting); err != nil {
		return err
	}
	if err := BatchVerifyProofs(b.Outputs); err != nil {
		return err
	}
	return BatchVerifyKernelSignatures(b.Kernels)
}
