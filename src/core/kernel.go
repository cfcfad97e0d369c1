// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package core

import (
	"bytes"

	"github.com/dblokhin/grinpool/src/secp256k1zkp"
	"github.com/dblokhin/grinpool/src/ser"
	"github.com/sirupsen/logrus"
	"github.com/yoss22/bulletproofs"
	"golang.org/x/crypto/blake2b"
)

// TxKernel is the proof that a transaction (or a slice of one) sums to
// zero: the excess is the Pedersen commitment left over once inputs are
// subtracted from outputs, and the excess signature proves whoever
// constructed the kernel knows the excess's private key, i.e. that no value
// was created.
type TxKernel struct {
	Features  KernelFeatures
	Excess    secp256k1zkp.Commitment
	ExcessSig [64]byte
}

// Fee returns the kernel's fee, 0 for Coinbase kernels.
func (k TxKernel) Fee() uint64 {
	if k.Features.Tag == CoinbaseKernel {
		return 0
	}
	return k.Features.Fee
}

// IsCoinbase reports whether this is a coinbase kernel.
func (k TxKernel) IsCoinbase() bool {
	return k.Features.IsCoinbase()
}

// Write encodes the kernel: features ∥ excess(33) ∥ excess_sig(64).
func (k TxKernel) Write(w ser.Writer) error {
	if err := k.Features.Write(w); err != nil {
		return err
	}
	if err := w.WriteBytes(k.Excess.Bytes()); err != nil {
		return err
	}
	return w.WriteBytes(k.ExcessSig[:])
}

// Read decodes a kernel from r.
func (k *TxKernel) Read(r ser.Reader) error {
	if err := k.Features.Read(r); err != nil {
		return err
	}

	commit, err := r.ReadBytes(secp256k1zkp.PedersenCommitmentSize)
	if err != nil {
		return err
	}
	k.Excess = commit

	if err := r.ReadFixedBytes(k.ExcessSig[:]); err != nil {
		return err
	}

	return nil
}

// Hash returns the domain-separated hash of the kernel's canonical
// encoding, always using the v1 KernelFeatures layout regardless of the
// negotiated protocol version.
func (k TxKernel) Hash() Hash {
	var buf bytes.Buffer
	if err := k.Write(ser.NewHashWriter(&buf)); err != nil {
		logrus.Fatal(err)
	}
	h := blake2b.Sum256(buf.Bytes())
	return h[:]
}

// Verify checks the kernel's excess signature against msg_to_sign() with
// the excess as public key.
func (k TxKernel) Verify() error {
	point, err := secp256k1zkp.DecompressCommitment(k.Excess)
	if err != nil {
		return NewError(ErrSecp)
	}

	msg := k.Features.SigMsg()
	sig := secp256k1zkp.DecodeSignature(k.ExcessSig)

	if !secp256k1zkp.VerifySignature(*point, msg, sig) {
		return NewError(ErrIncorrectSignature)
	}
	return nil
}

// BatchVerifyKernelSignatures verifies every kernel's excess signature in a
// single batched call, failing with ErrIncorrectSignature if any one of
// them is invalid.
func BatchVerifyKernelSignatures(kernels []TxKernel) error {
	publicKeys := make([]bulletproofs.Point, len(kernels))
	messages := make([][32]byte, len(kernels))
	signatures := make([]secp256k1zkp.Signature, len(kernels))

	for i, k := range kernels {
		point, err := secp256k1zkp.DecompressCommitment(k.Excess)
		if err != nil {
			return NewError(ErrSecp)
		}
		publicKeys[i] = *point
		messages[i] = k.Features.SigMsg()
		signatures[i] = secp256k1zkp.DecodeSignature(k.ExcessSig)
	}

	if idx := secp256k1zkp.BatchVerifySignatures(publicKeys, messages, signatures); idx != -1 {
		return NewError(ErrIncorrectSignature)
	}
	return nil
}

// TxKernelList is a sortable list of kernels, ordered by hash.
type TxKernelList []TxKernel

func (l TxKernelList) Len() int      { return len(l) }
func (l TxKernelList) Swap(i, j int) { l[i], l[j] = l[j], l[i] }
func (l TxKernelList) Less(i, j int) bool {
	return bytes.Compare(l[i].Hash(), l[j].Hash()) < 0
}

// Hashes returns the hash of every kernel, in the list's current order.
func (l TxKernelList) Hashes() [][]byte {
	out := make([][]byte, len(l))
	for i, k := range l {
		out[i] = k.Hash()
	}
	return out
}
