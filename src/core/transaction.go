// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package core

import (
	"math/big"
	"sort"

	"github.com/dblokhin/grinpool/src/secp256k1zkp"
)

// Transaction is a TransactionBody together with the kernel offset that
// blinds the sum of individual kernel excesses: splitting part of the
// blinding factor out into the offset is what makes transaction
// aggregation safe without leaking which kernel belongs to which input or
// output.
type Transaction struct {
	Offset secp256k1zkp.BlindingFactor
	Body   TransactionBody
}

// NewTransaction builds a Transaction, sorting the body's sequences.
func NewTransaction(inputs InputList, outputs OutputList, kernels TxKernelList, offset secp256k1zkp.BlindingFactor) (Transaction, error) {
	body, err := NewTransactionBody(inputs, outputs, kernels, false)
	if err != nil {
		return Transaction{}, err
	}
	return Transaction{Offset: offset, Body: body}, nil
}

// Fee is the transaction's total fee.
func (tx Transaction) Fee() uint64 {
	return tx.Body.Fee()
}

// LockHeight is the transaction's maximum lock height.
func (tx Transaction) LockHeight() uint64 {
	return tx.Body.LockHeight()
}

// Weight is the transaction's non-consensus weight.
func (tx Transaction) Weight() uint64 {
	return tx.Body.Weight()
}

// WeightAsBlock is the consensus block weight this transaction's body
// would occupy once mined.
func (tx Transaction) WeightAsBlock() uint64 {
	return tx.Body.WeightAsBlock()
}

// FeeToWeight relates a fee to the weight it must cover: the fee rate a
// transaction pays per unit of the weight it occupies, truncated down.
// Used by the pool's bucket ordering (mining selection and eviction) to
// compare transactions of different shapes on an equal footing.
func (tx Transaction) FeeToWeight() uint64 {
	w := tx.Weight()
	if w == 0 {
		return 0
	}
	return tx.Fee() / w
}

// ValidateRead runs the body's cheap, non-cryptographic checks.
func (tx Transaction) ValidateRead(weighting Weighting) error {
	return tx.Body.ValidateRead(weighting)
}

// Validate runs ValidateRead, the body's batched cryptographic checks, and
// the kernel-sum balance identity:
//
//	Σoutputs + fee·H − Σinputs == Σexcess + offset·G
//
// i.e. once fees are accounted for, no value was created or destroyed, and
// the signer(s) proved knowledge of every excess's private key.
func (tx Transaction) Validate(weighting Weighting) error {
	if err := tx.Body.Validate(weighting); err != nil {
		return err
	}
	return tx.verifyKernelSums()
}

func (tx Transaction) verifyKernelSums() error {
	outputCommits := make([]secp256k1zkp.Commitment, len(tx.Body.Outputs))
	for i, o := range tx.Body.Outputs {
		outputCommits[i] = o.Commit
	}

	inputCommits := make([]secp256k1zkp.Commitment, len(tx.Body.Inputs))
	for i, in := range tx.Body.Inputs {
		inputCommits[i] = in.Commit
	}

	feeCommit := secp256k1zkp.CompressCommitment(
		secp256k1zkp.CommitValue(big.NewInt(0), new(big.Int).SetUint64(tx.Fee())))

	// outputs + fee·H − inputs == excess + offset·G: the fee is value that
	// leaves the output side without a matching output, so it is added
	// back in as a zero-blinded value commitment before comparing against
	// the kernel excess sum.
	lhs, err := secp256k1zkp.SumCommitments(append(outputCommits, feeCommit), inputCommits)
	if err != nil {
		return NewError(ErrSecp)
	}

	excessCommits := make([]secp256k1zkp.Commitment, len(tx.Body.Kernels))
	for i, k := range tx.Body.Kernels {
		excessCommits[i] = k.Excess
	}
	offsetCommit := secp256k1zkp.CompressCommitment(tx.Offset.Commit())

	rhs, err := secp256k1zkp.SumCommitments(append(excessCommits, offsetCommit), nil)
	if err != nil {
		return NewError(ErrSecp)
	}

	if !secp256k1zkp.PointsEqual(lhs, rhs) {
		return NewError(ErrKernelSumMismatch)
	}
	return nil
}

// cutThrough removes every (input, output) pair that shares an identifier
// (features and commitment) from inputs/outputs, returning the remaining
// sequences. Used when aggregating transactions: an output one transaction
// creates and another immediately spends never needs to appear on the
// chain.
func cutThrough(inputs InputList, outputs OutputList) (InputList, OutputList) {
	cutInputIdx := make(map[string][]int)
	for i, in := range inputs {
		key := string(FromInput(in).toBytes())
		cutInputIdx[key] = append(cutInputIdx[key], i)
	}

	cutInput := make([]bool, len(inputs))
	cutOutput := make([]bool, len(outputs))

	for j, out := range outputs {
		key := string(FromOutput(out).toBytes())
		candidates := cutInputIdx[key]
		for len(candidates) > 0 {
			i := candidates[0]
			candidates = candidates[1:]
			if cutInput[i] {
				continue
			}
			cutInput[i] = true
			cutOutput[j] = true
			cutInputIdx[key] = candidates
			break
		}
	}

	remainingInputs := make(InputList, 0, len(inputs))
	for i, in := range inputs {
		if !cutInput[i] {
			remainingInputs = append(remainingInputs, in)
		}
	}

	remainingOutputs := make(OutputList, 0, len(outputs))
	for j, out := range outputs {
		if !cutOutput[j] {
			remainingOutputs = append(remainingOutputs, out)
		}
	}

	sort.Sort(remainingInputs)
	sort.Sort(remainingOutputs)

	return remainingInputs, remainingOutputs
}

// toBytes returns a simple comparison key for an identifier: features byte
// followed by the raw commitment bytes.
func (id OutputIdentifier) toBytes() []byte {
	return append([]byte{byte(id.Features)}, id.Commit...)
}

// Aggregate combines multiple transactions into one: their inputs, outputs
// and kernels are concatenated and cut through, and their kernel offsets
// are summed (pos) into a single combined offset so that no individual
// transaction's offset is independently recoverable from the result.
func Aggregate(txs []Transaction) (Transaction, error) {
	if len(txs) == 0 {
		return Transaction{}, NewError(ErrAggregationError)
	}

	var inputs InputList
	var outputs OutputList
	var kernels TxKernelList
	offsets := make([]secp256k1zkp.BlindingFactor, 0, len(txs))

	for _, tx := range txs {
		inputs = append(inputs, tx.Body.Inputs...)
		outputs = append(outputs, tx.Body.Outputs...)
		kernels = append(kernels, tx.Body.Kernels...)
		offsets = append(offsets, tx.Offset)
	}

	if len(txs) > 1 {
		inputs, outputs = cutThrough(inputs, outputs)
	} else {
		sort.Sort(inputs)
		sort.Sort(outputs)
	}
	sort.Sort(kernels)

	body, err := NewTransactionBody(inputs, outputs, kernels, true)
	if err != nil {
		return Transaction{}, NewError(ErrAggregationError)
	}

	offset := secp256k1zkp.BlindSum(offsets, nil)
	return Transaction{Offset: offset, Body: body}, nil
}

// Deaggregate recovers the single transaction that, together with the
// already-known txs, was aggregated into multiTx: it removes each known
// tx's inputs/outputs/kernels from multiTx's body and subtracts each known
// tx's offset from multiTx's offset, leaving the one transaction that is
// "new" relative to txs.
func Deaggregate(multiTx Transaction, txs []Transaction) (Transaction, error) {
	if len(txs) == 0 {
		return multiTx, nil
	}

	knownInputs := make(map[string]bool)
	knownOutputs := make(map[string]bool)
	knownKernels := make(map[string]bool)
	knownOffsets := make([]secp256k1zkp.BlindingFactor, 0, len(txs))

	for _, tx := range txs {
		for _, in := range tx.Body.Inputs {
			knownInputs[string(in.Hash())] = true
		}
		for _, out := range tx.Body.Outputs {
			knownOutputs[string(out.Hash())] = true
		}
		for _, k := range tx.Body.Kernels {
			knownKernels[string(k.Hash())] = true
		}
		knownOffsets = append(knownOffsets, tx.Offset)
	}

	remainingInputs := make(InputList, 0, len(multiTx.Body.Inputs))
	for _, in := range multiTx.Body.Inputs {
		if !knownInputs[string(in.Hash())] {
			remainingInputs = append(remainingInputs, in)
		}
	}

	remainingOutputs := make(OutputList, 0, len(multiTx.Body.Outputs))
	for _, out := range multiTx.Body.Outputs {
		if !knownOutputs[string(out.Hash())] {
			remainingOutputs = append(remainingOutputs, out)
		}
	}

	remainingKernels := make(TxKernelList, 0, len(multiTx.Body.Kernels))
	for _, k := range multiTx.Body.Kernels {
		if !knownKernels[string(k.Hash())] {
			remainingKernels = append(remainingKernels, k)
		}
	}

	if len(remainingKernels) == 0 {
		return Transaction{}, NewError(ErrAggregationError)
	}

	body, err := NewTransactionBody(remainingInputs, remainingOutputs, remainingKernels, false)
	if err != nil {
		return Transaction{}, err
	}

	offset := secp256k1zkp.BlindSum([]secp256k1zkp.BlindingFactor{multiTx.Offset}, knownOffsets)
	return Transaction{Offset: offset, Body: body}, nil
}
